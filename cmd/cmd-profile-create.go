package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/stupside/fingerprint/internal/consistency"
	"github.com/stupside/fingerprint/internal/preset"
	"github.com/stupside/fingerprint/internal/profile"
)

func profileCreateCommand() *cli.Command {
	var name string
	var targetOS string
	var presetID string

	return &cli.Command{
		Name:  "create",
		Usage: "Create a profile from the stock defaults or a preset",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "os",
				Usage:       "Target OS (macos, windows, linux)",
				Value:       string(profile.Windows),
				Destination: &targetOS,
				Validator: func(v string) error {
					if !slices.Contains(profile.OSes, profile.OS(v)) {
						return fmt.Errorf("unknown target OS %q", v)
					}
					return nil
				},
			},
			&cli.StringFlag{
				Name:        "preset",
				Usage:       "Start from a preset instead of the stock defaults",
				Destination: &presetID,
			},
		},
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:        "name",
				Destination: &name,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if name == "" {
				return cli.Exit("provide a profile name argument", 1)
			}

			s, err := storeFrom(cmd)
			if err != nil {
				return err
			}

			var p *profile.Profile
			if presetID != "" {
				if p, err = preset.Get(presetID); err != nil {
					return err
				}
				p.Name = name
			} else {
				p = consistency.EnforceOSConsistency(profile.New(name, profile.OS(targetOS)))
			}

			if err := s.Save(ctx, p); err != nil {
				return fmt.Errorf("saving profile %s: %w", p.ID, err)
			}

			r := consistency.Validate(p)
			slog.InfoContext(ctx, "profile created",
				"id", p.ID,
				"name", p.Name,
				"os", p.TargetOS,
				"errors", r.ErrorCount(),
				"warnings", r.WarningCount(),
			)
			_, err = fmt.Fprintln(os.Stdout, p.ID)
			return err
		},
	}
}
