package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stupside/fingerprint/internal/consistency"
)

func reports() []*consistency.Report {
	return []*consistency.Report{
		{IsValid: true},
		{IsValid: true, Issues: []consistency.Issue{
			{Level: consistency.LevelWarning, Code: consistency.CodeSmallScreen},
		}},
		{IsValid: false, Issues: []consistency.Issue{
			{Level: consistency.LevelError, Code: consistency.CodeOSPlatformMismatch},
			{Level: consistency.LevelWarning, Code: consistency.CodeSmallScreen},
		}},
	}
}

func TestObserve(t *testing.T) {
	r := NewRecorder()
	for _, rep := range reports() {
		r.Observe(rep)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(r.validations.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.validations.WithLabelValues("false")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.issues.WithLabelValues(consistency.CodeSmallScreen, "warning")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.issues.WithLabelValues(consistency.CodeOSPlatformMismatch, "error")))
	assert.Positive(t, testutil.ToFloat64(r.lastValidated))
}

func TestRecordersAreIndependent(t *testing.T) {
	a, b := NewRecorder(), NewRecorder()
	a.Observe(&consistency.Report{IsValid: true})

	assert.Equal(t, 1.0, testutil.ToFloat64(a.validations.WithLabelValues("true")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.validations.WithLabelValues("true")))
}

func TestWriteTextfile(t *testing.T) {
	r := NewRecorder()
	for _, rep := range reports() {
		r.Observe(rep)
	}

	path := filepath.Join(t.TempDir(), "fingerprint.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `fingerprint_validations_total{valid="false"} 1`)
	assert.Contains(t, text, `fingerprint_issues_total{code="SMALL_SCREEN",level="warning"} 2`)

	expected := `
# HELP fingerprint_validations_total Profile validations by outcome.
# TYPE fingerprint_validations_total counter
fingerprint_validations_total{valid="false"} 1
fingerprint_validations_total{valid="true"} 2
`
	require.NoError(t, testutil.GatherAndCompare(r.Registry(), strings.NewReader(expected), "fingerprint_validations_total"))
}

func TestWriteTextfileBadPath(t *testing.T) {
	r := NewRecorder()
	assert.Error(t, r.WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom")))
}
