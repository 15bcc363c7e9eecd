package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stupside/fingerprint/internal/consistency"
	"github.com/stupside/fingerprint/internal/profile"
	"github.com/stupside/fingerprint/internal/store"
)

type result struct {
	path   string
	report *consistency.Report
	err    error
}

func start(t *testing.T, dir string) <-chan result {
	t.Helper()

	w, err := New(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	results := make(chan result, 16)
	go func() {
		defer close(done)
		_ = w.Run(ctx, func(path string, r *consistency.Report, err error) {
			results <- result{path, r, err}
		})
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return results
}

// next returns the first result for path, skipping unrelated events.
func next(t *testing.T, results <-chan result, path string) result {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case r := <-results:
			if r.path == path {
				return r
			}
		case <-timeout:
			t.Fatalf("no event for %s", path)
		}
	}
}

func TestWatchValidatesSavedProfile(t *testing.T) {
	dir := t.TempDir()
	results := start(t, dir)

	fs, err := store.NewFileStore(dir)
	require.NoError(t, err)

	p := profile.New("watched", profile.MacOS)
	p.Navigator.Platform = "Win32"
	require.NoError(t, fs.Save(context.Background(), p))

	path, err := fs.Path(p.ID)
	require.NoError(t, err)

	got := next(t, results, path)
	require.NoError(t, got.err)
	assert.Equal(t, p.ID, got.report.ProfileID)
	assert.False(t, got.report.IsValid)
	assert.Contains(t, got.report.Codes(), consistency.CodeOSPlatformMismatch)
}

func TestWatchReportsMalformedFiles(t *testing.T) {
	dir := t.TempDir()
	results := start(t, dir)

	tmp := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(tmp, []byte(`{"id":`), 0o600))
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.Rename(tmp, path))

	got := next(t, results, path)
	assert.ErrorIs(t, got.err, profile.ErrMalformed)
	assert.Nil(t, got.report)
}

func TestNewMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestRelevant(t *testing.T) {
	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"create json", fsnotify.Event{Name: "/p/a.json", Op: fsnotify.Create}, true},
		{"write json", fsnotify.Event{Name: "/p/a.json", Op: fsnotify.Write}, true},
		{"remove json", fsnotify.Event{Name: "/p/a.json", Op: fsnotify.Remove}, false},
		{"chmod json", fsnotify.Event{Name: "/p/a.json", Op: fsnotify.Chmod}, false},
		{"other extension", fsnotify.Event{Name: "/p/a.yaml", Op: fsnotify.Create}, false},
		{"temp file", fsnotify.Event{Name: "/p/.profile-123", Op: fsnotify.Create}, false},
		{"hidden json", fsnotify.Event{Name: "/p/.a.json", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, relevant(tt.ev))
		})
	}
}
