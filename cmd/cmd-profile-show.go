package cmd

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"
)

func profileShowCommand() *cli.Command {
	var id string

	return &cli.Command{
		Name:  "show",
		Usage: "Print a stored profile",
		Flags: []cli.Flag{
			formatFlag(formatJSON, formatJSON, formatYAML),
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
			return newRenderer(os.Stdout).profile(p, cmd.String("format"))
		},
	}
}
