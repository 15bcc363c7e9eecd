package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/stupside/fingerprint/internal/preset"
)

// presetCommand returns the "preset" CLI subcommand.
func presetCommand() *cli.Command {
	return &cli.Command{
		Name:  "preset",
		Usage: "Browse the captured reference fingerprints",
		Commands: []*cli.Command{
			presetListCommand(),
			presetShowCommand(),
		},
	}
}

func presetListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List available presets",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			presets := preset.List()
			rows := make([][]string, len(presets))
			for i, m := range presets {
				rows[i] = []string{m.ID, m.Name, string(m.TargetOS), m.SourceOSVersion, m.CaptureDate}
			}
			return newRenderer(os.Stdout).table(
				[]string{"ID", "NAME", "OS", "SOURCE", "CAPTURED"},
				rows,
			)
		},
	}
}

func presetShowCommand() *cli.Command {
	var id string

	return &cli.Command{
		Name:  "show",
		Usage: "Print the profile a preset builds",
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
			m, err := preset.Describe(id)
			if err != nil {
				return err
			}
			p, err := preset.Get(id)
			if err != nil {
				return err
			}

			if _, err := fmt.Fprintf(os.Stderr, "%s: %s\n", m.Name, m.Description); err != nil {
				return err
			}
			return newRenderer(os.Stdout).profile(p, cmd.String("format"))
		},
	}
}
