package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/stupside/fingerprint/internal/profile"
)

const fileExt = ".json"

// FileStore keeps each profile as an indented JSON file named <id>.json.
type FileStore struct {
	dir string
}

// NewFileStore creates dir if needed and returns a store rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("file store: directory is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("file store: creating %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory holding the records.
func (s *FileStore) Dir() string { return s.dir }

// Path returns the file that holds, or would hold, profile id.
func (s *FileStore) Path(id string) (string, error) {
	if err := checkID(id); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, id+fileExt), nil
}

func (s *FileStore) Save(ctx context.Context, p *profile.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rec, err := prepare(p)
	if err != nil {
		return err
	}

	data, err := profile.Encode(rec)
	if err != nil {
		return err
	}

	path, _ := s.Path(p.ID)
	if err := writeAtomic(path, data); err != nil {
		return fmt.Errorf("saving profile %s: %w", p.ID, err)
	}
	p.UpdatedAt = rec.UpdatedAt

	slog.DebugContext(ctx, "saved profile", "id", p.ID, "path", path)
	return nil
}

// writeAtomic writes data to a temp file in the target directory and renames
// it over path, so readers never see a partial record.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".profile-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (s *FileStore) Load(ctx context.Context, id string) (*profile.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.Path(id)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading profile %s: %w", id, err)
	}

	p, err := profile.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("loading profile %s: %w", id, err)
	}
	return p, nil
}

func (s *FileStore) Delete(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	path, err := s.Path(id)
	if err != nil {
		return false, err
	}

	err = os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("deleting profile %s: %w", id, err)
	}
	return true, nil
}

func (s *FileStore) List(ctx context.Context) ([]*profile.Profile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}

	var profiles []*profile.Profile
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}

		path := filepath.Join(s.dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			slog.WarnContext(ctx, "skipping unreadable profile", "path", path, "error", err)
			continue
		}
		p, err := profile.Decode(data)
		if err != nil {
			slog.WarnContext(ctx, "skipping malformed profile", "path", path, "error", err)
			continue
		}
		profiles = append(profiles, p)
	}

	sortProfiles(profiles)
	return profiles, nil
}

func (s *FileStore) Close() error { return nil }
