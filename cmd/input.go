package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/stupside/fingerprint/internal/preset"
	"github.com/stupside/fingerprint/internal/profile"
)

var errNoSource = errors.New("select a profile with --id, --preset or --file")

// readProfileFile decodes a JSON or YAML profile, chosen by extension.
func readProfileFile(path string) (*profile.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var p *profile.Profile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		p, err = profile.DecodeYAML(data)
	default:
		p, err = profile.Decode(data)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return p, nil
}

// sourceFlags are the flags that select a single profile.
func sourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "id",
			Usage: "Stored profile id",
		},
		&cli.StringFlag{
			Name:  "preset",
			Usage: "Preset id (see 'preset list')",
		},
		&cli.StringFlag{
			Name:      "file",
			Usage:     "Profile file (.json, .yaml)",
			TakesFile: true,
		},
	}
}

// profileFrom resolves the profile selected by sourceFlags. Exactly one
// source must be set.
func profileFrom(ctx context.Context, cmd *cli.Command) (*profile.Profile, error) {
	set := 0
	for _, name := range []string{"id", "preset", "file"} {
		if cmd.String(name) != "" {
			set++
		}
	}
	if set != 1 {
		return nil, errNoSource
	}

	switch {
	case cmd.String("preset") != "":
		return preset.Get(cmd.String("preset"))
	case cmd.String("file") != "":
		return readProfileFile(cmd.String("file"))
	default:
		s, err := storeFrom(cmd)
		if err != nil {
			return nil, err
		}
		return s.Load(ctx, cmd.String("id"))
	}
}
