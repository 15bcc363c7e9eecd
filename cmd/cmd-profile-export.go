package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
)

func profileExportCommand() *cli.Command {
	var id string
	var output string

	return &cli.Command{
		Name:  "export",
		Usage: "Write a stored profile to a file or stdout",
		Flags: []cli.Flag{
			formatFlag(formatJSON, formatJSON, formatYAML),
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "Destination file (default stdout)",
				TakesFile:   true,
				Destination: &output,
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

			if output == "" {
				return newRenderer(os.Stdout).profile(p, cmd.String("format"))
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			if err := newRenderer(f).profile(p, cmd.String("format")); err != nil {
				f.Close()
				return fmt.Errorf("writing %s: %w", output, err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			slog.InfoContext(ctx, "profile exported", "id", p.ID, "file", output)
			return nil
		},
	}
}
