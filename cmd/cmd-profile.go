package cmd

import (
	"github.com/urfave/cli/v3"
)

// profileCommand returns the "profile" CLI subcommand.
func profileCommand() *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "Manage stored profiles",
		Commands: []*cli.Command{
			profileCreateCommand(),
			profileListCommand(),
			profileShowCommand(),
			profileDeleteCommand(),
			profileFixCommand(),
			profileImportCommand(),
			profileExportCommand(),
		},
	}
}
