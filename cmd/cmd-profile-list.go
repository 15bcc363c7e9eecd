package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/stupside/fingerprint/internal/app"
	"github.com/stupside/fingerprint/internal/consistency"
)

func profileListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List stored profiles with their validation status",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := app.ConfigFrom(cmd)
			if err != nil {
				return err
			}
			s, err := storeFrom(cmd)
			if err != nil {
				return err
			}

			profiles, err := s.List(ctx)
			if err != nil {
				return fmt.Errorf("listing profiles: %w", err)
			}
			reports, err := consistency.ValidateAll(ctx, profiles, cfg.Validation.Concurrency)
			if err != nil {
				return err
			}

			rows := make([][]string, len(profiles))
			for i, p := range profiles {
				rows[i] = []string{
					p.ID,
					p.Name,
					string(p.TargetOS),
					verdict(reports[i]),
					strconv.Itoa(reports[i].ErrorCount()),
					strconv.Itoa(reports[i].WarningCount()),
					p.UpdatedAt.Format(time.DateTime),
				}
			}
			return newRenderer(os.Stdout).table(
				[]string{"ID", "NAME", "OS", "STATUS", "ERRORS", "WARNINGS", "UPDATED"},
				rows,
			)
		},
	}
}
