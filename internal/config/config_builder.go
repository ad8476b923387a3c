package config

import (
	"errors"
	"fmt"
	"sync"

	"dario.cat/mergo"

	"github.com/MKhiriev/go-benefit-portal/internal/analytics"
)

var (
	settingsOnce     sync.Once
	composedSettings *Settings
	composeErr       error
)

// configBuilder accumulates fragment outputs and override sources in the
// order they should be applied, then merges them in [configBuilder.build].
type configBuilder struct {
	configs []*Settings
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*Settings, 0, len(DefaultFragmentOrder)+2),
	}
}

// build merges all collected sources in order. A later source overrides an
// earlier source's non-zero fields, so the final value of every key is the
// one set by the last source that declared it.
func (b *configBuilder) build() (*Settings, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	settings := new(Settings)
	for _, cfg := range b.configs {
		if err := mergo.Merge(settings, cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	// Flags or the JSON file may have replaced the Matomo URL after the
	// fragment derived its host, so derive again from the final value.
	settings.Matomo.Host = analytics.HostOf(settings.Matomo.URL)

	return settings, settings.validate()
}

// withFragments resolves each named fragment in the registry and loads it.
// An unknown fragment name records [ErrFragmentNotFound]: composition must
// fail and the process must not start.
func (b *configBuilder) withFragments(names ...string) *configBuilder {
	for _, name := range names {
		load, ok := fragmentRegistry[name]
		if !ok {
			b.err = errors.Join(b.err, fmt.Errorf("%w: %q", ErrFragmentNotFound, name))
			continue
		}

		fragmentCfg, err := load()
		if err != nil {
			b.err = errors.Join(b.err, fmt.Errorf("loading fragment %q: %w", name, err))
			continue
		}

		b.configs = append(b.configs, fragmentCfg)
	}

	return b
}

func (b *configBuilder) withFlags() *configBuilder {
	flags := ParseFlags()

	b.configs = append(b.configs, flags)
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string
	isJSONSpecified := false

	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			isJSONSpecified = true
			jsonPath = cfg.JSONFilePath
		}
	}

	if isJSONSpecified {
		jsonCfg, err := parseJSON(jsonPath)
		if err != nil {
			b.err = errors.Join(b.err, err)
			return b
		}
		b.configs = append(b.configs, jsonCfg)
	}

	return b
}

// Compose merges the named fragments in the given order and returns the
// resulting settings without consulting flags or a JSON file. It exists for
// components (and tests) that need an isolated composition; the process-wide
// entry point is [GetSettings].
//
// Composing the same fragment list twice yields equal results as long as the
// environment does not change between calls.
func Compose(names ...string) (*Settings, error) {
	return newConfigBuilder().withFragments(names...).build()
}
