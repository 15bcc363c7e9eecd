package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"

	"github.com/stupside/fingerprint/internal/consistency"
	"github.com/stupside/fingerprint/internal/profile"
)

const (
	formatText    = "text"
	formatJSON    = "json"
	formatYAML    = "yaml"
	formatSummary = "summary"
)

var (
	validStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	invalidStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("241"))
)

// renderer writes command output, styling it only for terminals.
type renderer struct {
	out    io.Writer
	styled bool
}

func newRenderer(w io.Writer) *renderer {
	r := &renderer{out: w}
	if f, ok := w.(*os.File); ok {
		r.styled = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return r
}

func (r *renderer) report(rep *consistency.Report) error {
	text := consistency.Format(rep)
	if r.styled {
		text = strings.Replace(text, "Status: VALID", "Status: "+validStyle.Render("VALID"), 1)
		text = strings.Replace(text, "Status: INVALID", "Status: "+invalidStyle.Render("INVALID"), 1)
	}
	_, err := fmt.Fprintln(r.out, text)
	return err
}

// reports writes reps in format, separating text reports with a blank line.
// JSON output is a single object for one report and an array otherwise.
func (r *renderer) reports(reps []*consistency.Report, format string) error {
	switch format {
	case formatJSON:
		if len(reps) == 1 {
			return r.json(reps[0])
		}
		return r.json(reps)
	case formatSummary:
		summaries := make([]consistency.Summary, len(reps))
		for i, rep := range reps {
			summaries[i] = consistency.Summarize(rep)
		}
		if len(summaries) == 1 {
			return r.json(summaries[0])
		}
		return r.json(summaries)
	default:
		for i, rep := range reps {
			if i > 0 {
				if _, err := fmt.Fprintln(r.out); err != nil {
					return err
				}
			}
			if err := r.report(rep); err != nil {
				return err
			}
		}
		return nil
	}
}

func (r *renderer) json(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *renderer) profile(p *profile.Profile, format string) error {
	var (
		data []byte
		err  error
	)
	if format == formatYAML {
		data, err = profile.EncodeYAML(p)
	} else {
		data, err = profile.Encode(p)
		data = append(data, '\n')
	}
	if err != nil {
		return err
	}
	_, err = r.out.Write(data)
	return err
}

// table writes rows under headers: a bordered table on terminals and
// tab-separated lines otherwise.
func (r *renderer) table(headers []string, rows [][]string) error {
	if !r.styled {
		lines := make([]string, 0, len(rows)+1)
		lines = append(lines, strings.Join(headers, "\t"))
		for _, row := range rows {
			lines = append(lines, strings.Join(row, "\t"))
		}
		_, err := fmt.Fprintln(r.out, strings.Join(lines, "\n"))
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(headerStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...).
		Rows(rows...)
	_, err := fmt.Fprintln(r.out, t.Render())
	return err
}

// verdict is the one-word status used in listings.
func verdict(rep *consistency.Report) string {
	switch {
	case rep.HasErrors():
		return "invalid"
	case rep.HasWarnings():
		return "warnings"
	default:
		return "ok"
	}
}
