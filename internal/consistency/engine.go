package consistency

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/stupside/fingerprint/internal/profile"
)

// Validate runs every rule in catalog order and collects the issues they
// report. It is deterministic and never fails; value-level problems only
// ever surface as issues.
func Validate(p *profile.Profile) *Report {
	if p == nil {
		p = &profile.Profile{}
	}

	var issues []Issue
	for _, r := range catalog {
		if issue := r.Check(p); issue != nil {
			issues = append(issues, *issue)
		}
	}

	report := &Report{
		ProfileID:   p.ID,
		ProfileName: p.Name,
		Issues:      issues,
	}
	report.IsValid = report.ErrorCount() == 0
	return report
}

// ValidateAll validates profiles concurrently, running at most limit
// validations at once (unbounded when limit <= 0). Reports are returned in
// input order. It only fails if ctx is cancelled.
func ValidateAll(ctx context.Context, profiles []*profile.Profile, limit int) ([]*Report, error) {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	reports := make([]*Report, len(profiles))

	for i, p := range profiles {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reports[i] = Validate(p)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "validated profiles", "count", len(reports), "limit", limit)
	return reports, nil
}
