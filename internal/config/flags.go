package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-secret-key session token signing secret
//	-login-url path unauthenticated requests are redirected to
//	-session-duration session lifetime (e.g., "30m", "2h")
//	-matomo-url analytics instance base URL
//	-log-level minimum emitted log level
func ParseFlags() *Settings {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var secretKey string
	var loginURL string
	var sessionDuration time.Duration
	var matomoURL string
	var logLevel string

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&secretKey, "secret-key", "", "Session token signing secret")
	flag.StringVar(&loginURL, "login-url", "", "Login redirect path")
	flag.DurationVar(&sessionDuration, "session-duration", 0, "Session lifetime (e.g., 30m, 2h)")
	flag.StringVar(&matomoURL, "matomo-url", "", "Matomo base URL")
	flag.StringVar(&logLevel, "log-level", "", "Minimum log level")

	flag.Parse()

	return &Settings{
		Base: Base{
			HTTPAddress: serverAddress.String(),
			SecretKey:   secretKey,
		},
		Database: Database{
			DSN: databaseDSN,
		},
		Login: Login{
			URL:             loginURL,
			SessionDuration: sessionDuration,
		},
		Matomo: Matomo{
			URL: matomoURL,
		},
		Logging: Logging{
			Level: logLevel,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
