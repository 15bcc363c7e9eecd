package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/stupside/fingerprint/internal/app"
	"github.com/stupside/fingerprint/internal/consistency"
	"github.com/stupside/fingerprint/internal/metrics"
	"github.com/stupside/fingerprint/internal/store"
	"github.com/stupside/fingerprint/internal/watch"
)

// watchCommand returns the "watch" CLI subcommand.
func watchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Re-validate profile files as they change",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := app.ConfigFrom(cmd)
			if err != nil {
				return err
			}
			if store.Backend(cfg.Storage.Backend) != store.BackendFile {
				return fmt.Errorf("watch needs the file storage backend, configured %q", cfg.Storage.Backend)
			}

			w, err := watch.New(cfg.Storage.Dir)
			if err != nil {
				return err
			}

			var rec *metrics.Recorder
			if cfg.Metrics.Textfile != "" {
				rec = metrics.NewRecorder()
			}

			slog.InfoContext(ctx, "watching profiles", "dir", w.Dir())
			return w.Run(ctx, func(path string, r *consistency.Report, err error) {
				if err != nil {
					slog.ErrorContext(ctx, "profile unreadable", "path", path, "error", err)
					return
				}

				attrs := []any{
					"path", path,
					"id", r.ProfileID,
					"errors", r.ErrorCount(),
					"warnings", r.WarningCount(),
				}
				if r.IsValid {
					slog.InfoContext(ctx, "profile valid", attrs...)
				} else {
					slog.WarnContext(ctx, "profile invalid", append(attrs, "codes", r.Codes())...)
				}

				if rec == nil {
					return
				}
				rec.Observe(r)
				if err := rec.WriteTextfile(cfg.Metrics.Textfile); err != nil {
					slog.ErrorContext(ctx, "writing metrics", "error", err)
				}
			})
		},
	}
}
