package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/vaultpass/passgen-go/internal/crypto"
)

// Prefix is prepended to every environment variable name.
const Prefix = "passgen"

// Config holds runtime settings. The zero-configuration defaults reproduce the
// plain interactive generator.
type Config struct {
	RandomSource   string `envconfig:"RANDOM_SOURCE" default:"crypto"`
	Seed           string `envconfig:"SEED"`
	OversizePolicy string `envconfig:"OVERSIZE_POLICY" default:"extend"`
	MaxLength      int    `envconfig:"MAX_LENGTH" default:"0"`
	Hash           bool   `envconfig:"HASH" default:"false"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"warn"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{RandomSource: crypto.SourceCrypto, OversizePolicy: string(crypto.OversizeExtend), LogLevel: "warn"}
}

// Load reads PASSGEN_* environment variables. Keys listed in skip (for
// example "MAX_LENGTH") are left at their defaults and never parsed, so a
// setting supplied some other way is not blocked by a malformed variable.
func Load(skip ...string) (Config, error) {
	restore := hideEnv(skip)
	defer restore()

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "loading environment")
	}
	return cfg, nil
}

// hideEnv unsets the prefixed and bare forms of keys, which envconfig both
// consults, until the returned func is called.
func hideEnv(keys []string) func() {
	saved := make(map[string]string)
	for _, key := range keys {
		for _, name := range []string{strings.ToUpper(Prefix) + "_" + key, key} {
			if v, ok := os.LookupEnv(name); ok {
				saved[name] = v
				os.Unsetenv(name)
			}
		}
	}
	return func() {
		for name, v := range saved {
			os.Setenv(name, v)
		}
	}
}

// Validate checks values that envconfig cannot type-check on its own.
func (c Config) Validate() error {
	if c.Seed == "" && c.RandomSource != crypto.SourceCrypto && c.RandomSource != crypto.SourceMath {
		return errors.Errorf("random source must be %q or %q, got %q", crypto.SourceCrypto, crypto.SourceMath, c.RandomSource)
	}
	if _, err := crypto.ParseOversizePolicy(c.OversizePolicy); err != nil {
		return err
	}
	if c.MaxLength < 0 {
		return errors.Errorf("max length must not be negative, got %d", c.MaxLength)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, errors.Wrapf(err, "invalid log level %q", c.LogLevel)
	}
	return level, nil
}
