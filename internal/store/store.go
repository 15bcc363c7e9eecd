// Package store persists profiles, one independent record per profile id.
package store

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/stupside/fingerprint/internal/profile"
)

var (
	// ErrNotFound is returned by Load for ids with no stored record.
	ErrNotFound = errors.New("profile not found")
	// ErrInvalidID is returned for ids that cannot name a record.
	ErrInvalidID = errors.New("invalid profile id")
)

// Store is the persistence contract every backend implements.
// Load(ctx, id) after Save(ctx, p) must return a profile equal to p.
type Store interface {
	// Save refreshes p's updated_at and writes it, replacing any record
	// with the same id.
	Save(ctx context.Context, p *profile.Profile) error
	// Load returns the record for id or an error wrapping ErrNotFound.
	Load(ctx context.Context, id string) (*profile.Profile, error)
	// Delete removes the record for id and reports whether one existed.
	Delete(ctx context.Context, id string) (bool, error)
	// List returns every well-formed record, oldest first. Malformed
	// records are skipped.
	List(ctx context.Context) ([]*profile.Profile, error)
	Close() error
}

type Backend string

const (
	BackendFile   Backend = "file"
	BackendBadger Backend = "badger"
)

// Config selects and configures a backend.
type Config struct {
	Backend Backend
	Dir     string
	// InMemory keeps a badger store off disk. Ignored by the file backend.
	InMemory bool
	Logger   *slog.Logger
}

// Open builds the backend named by cfg.
func Open(cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendFile, "":
		s, err := NewFileStore(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendBadger:
		s, err := OpenBadger(cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func checkID(id string) error {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) || strings.ContainsRune(id, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// prepare validates p and returns the touched copy to write. Callers copy
// its UpdatedAt back to p only once the write succeeded.
func prepare(p *profile.Profile) (*profile.Profile, error) {
	if err := profile.CheckShape(p); err != nil {
		return nil, err
	}
	if err := checkID(p.ID); err != nil {
		return nil, err
	}
	rec := p.Clone()
	rec.Touch()
	return rec, nil
}

func sortProfiles(profiles []*profile.Profile) {
	slices.SortFunc(profiles, func(a, b *profile.Profile) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
}
