package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/stupside/fingerprint/internal/app"
	"github.com/stupside/fingerprint/internal/store"
	"github.com/stupside/fingerprint/internal/version"
)

// Root returns the root CLI command.
func Root() *cli.Command {
	var configPath string

	return &cli.Command{
		Name:    "fingerprint",
		Usage:   "Curate, validate and launch browser fingerprint profiles",
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to configuration file",
				Value:       app.DefaultPath,
				Destination: &configPath,
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			cfg, err := app.Load(configPath, cmd.IsSet("config"))
			if err != nil {
				return ctx, err
			}

			level := cfg.Log.SlogLevel()
			if cmd.Bool("debug") {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

			s, err := store.Open(store.Config{
				Backend: store.Backend(cfg.Storage.Backend),
				Dir:     cfg.Storage.Dir,
				Logger:  slog.Default(),
			})
			if err != nil {
				return ctx, fmt.Errorf("opening %s store: %w", cfg.Storage.Backend, err)
			}
			slog.DebugContext(ctx, "store opened", "backend", cfg.Storage.Backend, "dir", cfg.Storage.Dir)

			cmd.Metadata["config"] = cfg
			cmd.Metadata["store"] = s
			return ctx, nil
		},
		After: func(ctx context.Context, cmd *cli.Command) error {
			s, ok := cmd.Metadata["store"].(store.Store)
			if !ok {
				return nil
			}
			if err := s.Close(); err != nil {
				return fmt.Errorf("closing store: %w", err)
			}
			return nil
		},
		Commands: []*cli.Command{
			validateCommand(),
			profileCommand(),
			presetCommand(),
			launchCommand(),
			watchCommand(),
			{
				Name:  "info",
				Usage: "Print build information",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					slog.InfoContext(ctx, "build",
						"version", version.Version,
						"commit", version.Commit,
						"build_time", version.BuildTime,
					)
					return nil
				},
			},
		},
		// main applies exit codes so that After always runs.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Metadata:       map[string]any{},
	}
}

// storeFrom extracts the profile store opened by the root command.
func storeFrom(cmd *cli.Command) (store.Store, error) {
	v, ok := cmd.Root().Metadata["store"]
	if !ok {
		return nil, fmt.Errorf("store not initialized")
	}
	s, ok := v.(store.Store)
	if !ok {
		return nil, fmt.Errorf("store has unexpected type %T", v)
	}
	return s, nil
}
