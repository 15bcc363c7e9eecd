package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/stupside/fingerprint/internal/app"
	"github.com/stupside/fingerprint/internal/consistency"
	"github.com/stupside/fingerprint/internal/metrics"
	"github.com/stupside/fingerprint/internal/profile"
)

// exitInvalid is the status returned when a validated profile has errors.
const exitInvalid = 2

func formatFlag(value string, allowed ...string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   fmt.Sprintf("Output format %v", allowed),
		Value:   value,
		Validator: func(v string) error {
			if !slices.Contains(allowed, v) {
				return fmt.Errorf("unsupported format %q, expected one of %v", v, allowed)
			}
			return nil
		},
	}
}

// validateCommand returns the "validate" CLI subcommand.
func validateCommand() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Check profiles for contradictory fingerprint values",
		Flags: append(sourceFlags(),
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Validate every stored profile",
			},
			formatFlag(formatText, formatText, formatJSON, formatSummary),
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := app.ConfigFrom(cmd)
			if err != nil {
				return err
			}

			var profiles []*profile.Profile
			if cmd.Bool("all") {
				s, err := storeFrom(cmd)
				if err != nil {
					return err
				}
				if profiles, err = s.List(ctx); err != nil {
					return fmt.Errorf("listing profiles: %w", err)
				}
			} else {
				p, err := profileFrom(ctx, cmd)
				if err != nil {
					return err
				}
				profiles = []*profile.Profile{p}
			}

			reports, err := consistency.ValidateAll(ctx, profiles, cfg.Validation.Concurrency)
			if err != nil {
				return err
			}

			if path := cfg.Metrics.Textfile; path != "" {
				rec := metrics.NewRecorder()
				for _, r := range reports {
					rec.Observe(r)
				}
				if err := rec.WriteTextfile(path); err != nil {
					return err
				}
				slog.DebugContext(ctx, "metrics written", "path", path)
			}

			if err := newRenderer(os.Stdout).reports(reports, cmd.String("format")); err != nil {
				return err
			}

			invalid := 0
			for _, r := range reports {
				if !r.IsValid {
					invalid++
				}
			}
			slog.DebugContext(ctx, "validation complete", "profiles", len(reports), "invalid", invalid)
			if invalid > 0 {
				return cli.Exit(fmt.Sprintf("%d of %d profiles are invalid", invalid, len(reports)), exitInvalid)
			}
			return nil
		},
	}
}
