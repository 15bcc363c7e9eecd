package consistency

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportCounts(t *testing.T) {
	r := &Report{Issues: []Issue{
		{Level: LevelError, Code: "A"},
		{Level: LevelWarning, Code: "B"},
		{Level: LevelWarning, Code: "C"},
		{Level: LevelInfo, Code: "D"},
	}}

	assert.Equal(t, 1, r.ErrorCount())
	assert.Equal(t, 2, r.WarningCount())
	assert.Equal(t, 1, r.InfoCount())
	assert.True(t, r.HasErrors())
	assert.True(t, r.HasWarnings())
	assert.Equal(t, []string{"A", "B", "C", "D"}, r.Codes())

	empty := &Report{}
	assert.False(t, empty.HasErrors())
	assert.False(t, empty.HasWarnings())
}

func TestFieldStatus(t *testing.T) {
	tests := []struct {
		name   string
		levels []Level
		want   Level
	}{
		{"error after warning", []Level{LevelWarning, LevelError}, LevelError},
		{"error before info", []Level{LevelError, LevelInfo}, LevelError},
		{"warning outranks info", []Level{LevelInfo, LevelWarning}, LevelWarning},
		{"info after warning", []Level{LevelWarning, LevelInfo}, LevelWarning},
		{"single info", []Level{LevelInfo}, LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Report{}
			for _, l := range tt.levels {
				r.Issues = append(r.Issues, Issue{Level: l, Field: "screen.width"})
			}
			r.Issues = append(r.Issues, Issue{Level: LevelInfo, Field: "screen.color_depth"})

			status := r.FieldStatus()
			assert.Equal(t, tt.want, status["screen.width"])
			assert.Equal(t, LevelInfo, status["screen.color_depth"])
			assert.Len(t, status, 2)
		})
	}
}

func TestLevelOutranks(t *testing.T) {
	assert.True(t, LevelError.Outranks(LevelWarning))
	assert.True(t, LevelWarning.Outranks(LevelInfo))
	assert.True(t, LevelInfo.Outranks(Level("")))
	assert.False(t, LevelInfo.Outranks(LevelError))
	assert.False(t, LevelError.Outranks(LevelError))
}

func TestSummarize(t *testing.T) {
	r := &Report{
		IsValid: false,
		Issues: []Issue{
			{Level: LevelError, Code: CodeInvalidCoreCount, Message: "bad cores", Field: "navigator.hardware_concurrency", Suggestion: "fix it"},
			{Level: LevelWarning, Code: CodeSmallScreen, Message: "small", Field: "screen.width/height"},
		},
	}

	s := Summarize(r)
	assert.False(t, s.IsValid)
	assert.Equal(t, 1, s.ErrorCount)
	assert.Equal(t, 1, s.WarningCount)
	assert.Equal(t, map[string]Level{
		"navigator.hardware_concurrency": LevelError,
		"screen.width/height":            LevelWarning,
	}, s.FieldStatus)
	assert.Equal(t, []SummaryIssue{
		{Level: LevelError, Message: "bad cores", Suggestion: "fix it"},
		{Level: LevelWarning, Message: "small"},
	}, s.Issues)
}

func TestReportJSON(t *testing.T) {
	r := &Report{ProfileID: "id-1", ProfileName: "Demo", IsValid: true}

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"profile_id": "id-1",
		"profile_name": "Demo",
		"is_valid": true,
		"error_count": 0,
		"warning_count": 0,
		"info_count": 0,
		"issues": []
	}`, string(data))

	r.IsValid = false
	r.Issues = []Issue{{Level: LevelError, Code: "X", Message: "m", Field: "f", Suggestion: "s"}}
	data, err = json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"profile_id": "id-1",
		"profile_name": "Demo",
		"is_valid": false,
		"error_count": 1,
		"warning_count": 0,
		"info_count": 0,
		"issues": [{"level": "error", "code": "X", "message": "m", "field": "f", "suggestion": "s"}]
	}`, string(data))
}

func TestFormatNoIssues(t *testing.T) {
	r := &Report{ProfileID: "id-1", ProfileName: "Demo", IsValid: true}

	want := "Consistency Report for: Demo\n" +
		"Profile ID: id-1\n" +
		"Status: VALID\n" +
		"Issues: 0 errors, 0 warnings, 0 info\n" +
		"\n" +
		"No issues found. Profile is internally consistent."
	assert.Equal(t, want, Format(r))
}

func TestFormatIssues(t *testing.T) {
	r := &Report{
		ProfileID:   "id-2",
		ProfileName: "Broken",
		IsValid:     false,
		Issues: []Issue{
			{Level: LevelError, Code: "A", Message: "first", Field: "f1", Suggestion: "do this"},
			{Level: LevelWarning, Code: "B", Message: "second", Field: "f2", Suggestion: "do that"},
			{Level: LevelInfo, Code: "C", Message: "third", Field: "f3"},
		},
	}

	want := "Consistency Report for: Broken\n" +
		"Profile ID: id-2\n" +
		"Status: INVALID\n" +
		"Issues: 1 errors, 1 warnings, 1 info\n" +
		"\n" +
		"❌ [A] first\n" +
		"   Field: f1\n" +
		"   Suggestion: do this\n" +
		"\n" +
		"⚠️ [B] second\n" +
		"   Field: f2\n" +
		"   Suggestion: do that\n" +
		"\n" +
		"ℹ️ [C] third\n" +
		"   Field: f3\n"
	assert.Equal(t, want, Format(r))
}
