package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
)

func profileImportCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Store profiles read from JSON or YAML files",
		ArgsUsage: "<file>...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "new-id",
				Usage: "Assign a fresh id instead of keeping the file's",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			paths := cmd.Args().Slice()
			if len(paths) == 0 {
				return cli.Exit("provide at least one file argument", 1)
			}

			s, err := storeFrom(cmd)
			if err != nil {
				return err
			}

			var errs []error
			for _, path := range paths {
				p, err := readProfileFile(path)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				if cmd.Bool("new-id") {
					p.ID = uuid.NewString()
				}
				if err := s.Save(ctx, p); err != nil {
					errs = append(errs, fmt.Errorf("saving %s: %w", path, err))
					continue
				}
				slog.InfoContext(ctx, "profile imported", "id", p.ID, "name", p.Name, "file", path)
			}
			return errors.Join(errs...)
		},
	}
}
