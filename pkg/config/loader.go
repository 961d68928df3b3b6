package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/webgenlabs/webgen/pkg/errors"
	"github.com/webgenlabs/webgen/pkg/logging"
)

//go:embed embedded/defaults.toml
var defaultsTOML []byte

// SiteConfigName is the configuration file webgen looks for at the
// site root.
const SiteConfigName = "webgen.toml"

// EnvPrefix is the prefix for environment variable overrides.
// WEBGEN_SITE_TITLE overrides site.title and so on.
const EnvPrefix = "WEBGEN_"

// Load builds the effective configuration for a site rooted at siteRoot.
//
// Sources are merged in order, later winning:
//  1. structural floor defaults (in code)
//  2. embedded defaults.toml
//  3. <siteRoot>/webgen.toml, when present
//  4. WEBGEN_* environment variables
//
// Array values such as [[deps]] replace rather than append, so a site
// that declares its own deps fully controls them.
func Load(siteRoot string) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Structural floor, so a broken embedded file cannot leave the
	// pipeline without its mandatory steps.
	floor := map[string]interface{}{
		"generate.processors":      []string{"html", "page", "markdown", "css"},
		"generate.ignore_patterns": []string{"_*", ".#*", "*~"},
	}
	if err := k.Load(confmap.Provider(floor, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load floor defaults: %w", err)
	}

	// 2. Embedded defaults
	if err := k.Load(rawbytes.Provider(defaultsTOML), toml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 3. Site config if it exists
	if siteRoot != "" {
		path := filepath.Join(siteRoot, SiteConfigName)
		if _, err := os.Stat(path); err == nil {
			logger.Debug().Str("path", path).Msg("loading site config")
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load site config from %s: %w", path, err)
			}
		}
	}

	// 4. Environment overrides
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns the built-in configuration without any site or
// environment contributions.
func Default() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(defaultsTOML), toml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	return unmarshal(k)
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	for _, dep := range cfg.Deps {
		if err := dep.Validate(); err != nil {
			return errors.Wrapf(err, errors.ErrConfigParse, "invalid [[deps]] entry")
		}
	}
	return nil
}
