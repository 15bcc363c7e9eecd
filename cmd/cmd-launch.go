package cmd

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/stupside/fingerprint/internal/app"
	"github.com/stupside/fingerprint/internal/consistency"
	"github.com/stupside/fingerprint/internal/launch"
)

// launchCommand returns the "launch" CLI subcommand.
func launchCommand() *cli.Command {
	return &cli.Command{
		Name:  "launch",
		Usage: "Open a browser presenting a profile's fingerprint",
		Flags: append(sourceFlags(),
			&cli.BoolFlag{
				Name:  "headless",
				Usage: "Run without a window (overrides browser.headless)",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := app.ConfigFrom(cmd)
			if err != nil {
				return err
			}
			p, err := profileFrom(ctx, cmd)
			if err != nil {
				return err
			}

			// Validation is advisory; contradictions never block a launch.
			if r := consistency.Validate(p); !r.IsValid {
				slog.WarnContext(ctx, "launching an inconsistent profile",
					"id", p.ID,
					"errors", r.ErrorCount(),
					"codes", r.Codes(),
				)
			}

			browser := cfg.Browser
			if cmd.IsSet("headless") {
				browser.Headless = cmd.Bool("headless")
			}
			return launch.Run(ctx, browser, p)
		},
	}
}
