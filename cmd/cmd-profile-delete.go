package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/stupside/fingerprint/internal/store"
)

func profileDeleteCommand() *cli.Command {
	var id string

	return &cli.Command{
		Name:  "delete",
		Usage: "Delete a stored profile",
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
			deleted, err := s.Delete(ctx, id)
			if err != nil {
				return err
			}
			if !deleted {
				return fmt.Errorf("deleting %q: %w", id, store.ErrNotFound)
			}
			slog.InfoContext(ctx, "profile deleted", "id", id)
			return nil
		},
	}
}
