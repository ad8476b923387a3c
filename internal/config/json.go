package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors the subset of [Settings] that may be supplied
// through the optional JSON config file. Sections absent from the file keep
// their composed values.
type StructuredJSONConfig struct {
	Base struct {
		HTTPAddress    string   `json:"http_address"`
		SecretKey      string   `json:"secret_key"`
		Version        string   `json:"version"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"base,omitempty"`

	Database struct {
		DSN          string `json:"dsn"`
		MaxOpenConns int    `json:"max_open_conns"`
	} `json:"database,omitempty"`

	Login struct {
		URL             string   `json:"url"`
		RedirectParam   string   `json:"redirect_param"`
		CookieName      string   `json:"cookie_name"`
		SessionDuration Duration `json:"session_duration"`
		TokenIssuer     string   `json:"token_issuer"`
	} `json:"login,omitempty"`

	Matomo struct {
		URL    string `json:"url"`
		SiteID int    `json:"site_id"`
	} `json:"matomo,omitempty"`

	Honeypot struct {
		FieldName string `json:"field_name"`
	} `json:"honeypot,omitempty"`

	Logging struct {
		Level string `json:"level"`
	} `json:"logging,omitempty"`

	Workers struct {
		PruneInterval Duration `json:"prune_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*Settings, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &Settings{
		Base: Base{
			HTTPAddress:    jsonCfg.Base.HTTPAddress,
			SecretKey:      jsonCfg.Base.SecretKey,
			Version:        jsonCfg.Base.Version,
			RequestTimeout: time.Duration(jsonCfg.Base.RequestTimeout),
		},
		Database: Database{
			DSN:          jsonCfg.Database.DSN,
			MaxOpenConns: jsonCfg.Database.MaxOpenConns,
		},
		Login: Login{
			URL:             jsonCfg.Login.URL,
			RedirectParam:   jsonCfg.Login.RedirectParam,
			CookieName:      jsonCfg.Login.CookieName,
			SessionDuration: time.Duration(jsonCfg.Login.SessionDuration),
			TokenIssuer:     jsonCfg.Login.TokenIssuer,
		},
		Matomo: Matomo{
			URL:    jsonCfg.Matomo.URL,
			SiteID: jsonCfg.Matomo.SiteID,
		},
		Honeypot: Honeypot{
			FieldName: jsonCfg.Honeypot.FieldName,
		},
		Logging: Logging{
			Level: jsonCfg.Logging.Level,
		},
		Workers: Workers{
			PruneInterval: time.Duration(jsonCfg.Workers.PruneInterval),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
