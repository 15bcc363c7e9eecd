package consistency

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Report is the result of one validation run. It is never mutated after
// Validate returns it.
type Report struct {
	ProfileID   string
	ProfileName string
	IsValid     bool
	Issues      []Issue
}

func (r *Report) count(level Level) int {
	n := 0
	for _, i := range r.Issues {
		if i.Level == level {
			n++
		}
	}
	return n
}

func (r *Report) ErrorCount() int   { return r.count(LevelError) }
func (r *Report) WarningCount() int { return r.count(LevelWarning) }
func (r *Report) InfoCount() int    { return r.count(LevelInfo) }

func (r *Report) HasErrors() bool   { return r.ErrorCount() > 0 }
func (r *Report) HasWarnings() bool { return r.WarningCount() > 0 }

// Codes returns the issue codes in report order.
func (r *Report) Codes() []string {
	codes := make([]string, len(r.Issues))
	for i, issue := range r.Issues {
		codes[i] = issue.Code
	}
	return codes
}

type reportJSON struct {
	ProfileID    string  `json:"profile_id"`
	ProfileName  string  `json:"profile_name"`
	IsValid      bool    `json:"is_valid"`
	ErrorCount   int     `json:"error_count"`
	WarningCount int     `json:"warning_count"`
	InfoCount    int     `json:"info_count"`
	Issues       []Issue `json:"issues"`
}

// MarshalJSON includes the derived counts alongside the stored fields.
func (r *Report) MarshalJSON() ([]byte, error) {
	issues := r.Issues
	if issues == nil {
		issues = []Issue{}
	}
	return json.Marshal(reportJSON{
		ProfileID:    r.ProfileID,
		ProfileName:  r.ProfileName,
		IsValid:      r.IsValid,
		ErrorCount:   r.ErrorCount(),
		WarningCount: r.WarningCount(),
		InfoCount:    r.InfoCount(),
		Issues:       issues,
	})
}

// FieldStatus maps every affected field to the most severe level reported
// for it.
func (r *Report) FieldStatus() map[string]Level {
	status := make(map[string]Level)
	for _, i := range r.Issues {
		if cur, ok := status[i.Field]; !ok || i.Level.Outranks(cur) {
			status[i.Field] = i.Level
		}
	}
	return status
}

// SummaryIssue is the reduced issue shown next to a field badge.
type SummaryIssue struct {
	Level      Level  `json:"level"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion"`
}

// Summary is the compact view used for per-field UI badges.
type Summary struct {
	IsValid      bool             `json:"is_valid"`
	ErrorCount   int              `json:"error_count"`
	WarningCount int              `json:"warning_count"`
	FieldStatus  map[string]Level `json:"field_status"`
	Issues       []SummaryIssue   `json:"issues"`
}

// Summarize builds the compact summary of r.
func Summarize(r *Report) Summary {
	issues := make([]SummaryIssue, len(r.Issues))
	for i, issue := range r.Issues {
		issues[i] = SummaryIssue{Level: issue.Level, Message: issue.Message, Suggestion: issue.Suggestion}
	}
	return Summary{
		IsValid:      r.IsValid,
		ErrorCount:   r.ErrorCount(),
		WarningCount: r.WarningCount(),
		FieldStatus:  r.FieldStatus(),
		Issues:       issues,
	}
}

var levelIcons = map[Level]string{
	LevelError:   "❌",
	LevelWarning: "⚠️",
	LevelInfo:    "ℹ️",
}

// Format renders r as a fixed-layout text report.
func Format(r *Report) string {
	status := "INVALID"
	if r.IsValid {
		status = "VALID"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Consistency Report for: %s\n", r.ProfileName)
	fmt.Fprintf(&b, "Profile ID: %s\n", r.ProfileID)
	fmt.Fprintf(&b, "Status: %s\n", status)
	fmt.Fprintf(&b, "Issues: %d errors, %d warnings, %d info\n", r.ErrorCount(), r.WarningCount(), r.InfoCount())
	b.WriteString("\n")

	if len(r.Issues) == 0 {
		b.WriteString("No issues found. Profile is internally consistent.")
		return b.String()
	}

	for _, i := range r.Issues {
		fmt.Fprintf(&b, "%s [%s] %s\n", levelIcons[i.Level], i.Code, i.Message)
		fmt.Fprintf(&b, "   Field: %s\n", i.Field)
		if i.Suggestion != "" {
			fmt.Fprintf(&b, "   Suggestion: %s\n", i.Suggestion)
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
