package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/vaultpass/passgen-go/internal/config"
	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/handler"
	"github.com/vaultpass/passgen-go/internal/service"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// The session has already reported an empty selection on stdout.
		if !errors.Is(err, crypto.ErrNoCharacterTypes) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// envKeys maps each flag to the environment variable it overrides.
var envKeys = map[string]string{
	"random":     "RANDOM_SOURCE",
	"seed":       "SEED",
	"oversize":   "OVERSIZE_POLICY",
	"max-length": "MAX_LENGTH",
	"hash":       "HASH",
	"log-level":  "LOG_LEVEL",
}

func newRootCmd() *cobra.Command {
	cfg := config.Default()

	cmd := &cobra.Command{
		Use:   "passgen",
		Short: "Interactively generate a random password",
		Long: `passgen asks which character classes to include and how long the password
should be, then prints a password containing at least one character of every
chosen class.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return applyEnv(cmd, &cfg)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.RandomSource, "random", cfg.RandomSource, `random source: "crypto" or "math"`)
	flags.StringVar(&cfg.Seed, "seed", cfg.Seed, "seed for a reproducible (insecure) random source")
	flags.StringVar(&cfg.OversizePolicy, "oversize", cfg.OversizePolicy, `when the length exceeds the character pool: "extend" or "reject"`)
	flags.IntVar(&cfg.MaxLength, "max-length", cfg.MaxLength, "maximum accepted password length (0 for no limit)")
	flags.BoolVar(&cfg.Hash, "hash", cfg.Hash, "also print an Argon2id hash of the password")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level written to stderr")

	return cmd
}

// applyEnv fills every flag the user did not set from the environment.
// Variables behind explicitly set flags are not read at all.
func applyEnv(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	var skip []string
	for name, key := range envKeys {
		if flags.Changed(name) {
			skip = append(skip, key)
		}
	}
	env, err := config.Load(skip...)
	if err != nil {
		return err
	}

	if !flags.Changed("random") {
		cfg.RandomSource = env.RandomSource
	}
	if !flags.Changed("seed") {
		cfg.Seed = env.Seed
	}
	if !flags.Changed("oversize") {
		cfg.OversizePolicy = env.OversizePolicy
	}
	if !flags.Changed("max-length") {
		cfg.MaxLength = env.MaxLength
	}
	if !flags.Changed("hash") {
		cfg.Hash = env.Hash
	}
	if !flags.Changed("log-level") {
		cfg.LogLevel = env.LogLevel
	}
	return nil
}

func run(cmd *cobra.Command, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	level, _ := cfg.Level()
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	rng, err := crypto.NewRandom(cfg.RandomSource, cfg.Seed)
	if err != nil {
		return err
	}
	if cfg.Seed != "" {
		slog.Warn("using seeded random source, passwords are reproducible")
	}
	slog.Debug("random source selected", "source", cfg.RandomSource, "seeded", cfg.Seed != "")

	oversize, _ := crypto.ParseOversizePolicy(cfg.OversizePolicy)
	svc := service.NewGeneratorService(rng, service.Options{
		Oversize:  oversize,
		MaxLength: cfg.MaxLength,
		Hash:      cfg.Hash,
	})

	return handler.NewSession(cmd.InOrStdin(), cmd.OutOrStdout(), svc).Run()
}
