package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/stupside/fingerprint/internal/consistency"
)

func profileFixCommand() *cli.Command {
	var id string

	return &cli.Command{
		Name:  "fix",
		Usage: "Fill missing OS-derived navigator fields and re-validate",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Print the fixed report without saving",
			},
		},
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:        "id",
				Destination: &id,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := storeFrom(cmd)
			if err != nil {
				return err
			}
			p, err := s.Load(ctx, id)
			if err != nil {
				return err
			}

			before := consistency.Validate(p)
			after := consistency.Validate(consistency.EnforceOSConsistency(p))

			slog.InfoContext(ctx, "profile fixed",
				"id", p.ID,
				"errors_before", before.ErrorCount(),
				"errors_after", after.ErrorCount(),
				"dry_run", cmd.Bool("dry-run"),
			)

			if !cmd.Bool("dry-run") {
				if err := s.Save(ctx, p); err != nil {
					return fmt.Errorf("saving profile %s: %w", p.ID, err)
				}
			}
			return newRenderer(os.Stdout).report(after)
		},
	}
}
