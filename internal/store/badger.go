package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"

	"github.com/stupside/fingerprint/internal/profile"
)

var keyPrefix = []byte("profile/")

func profileKey(id string) []byte {
	return append(append([]byte{}, keyPrefix...), id...)
}

// BadgerStore keeps profiles in an embedded BadgerDB, keyed profile/<id>
// with JSON values.
type BadgerStore struct {
	db *badger.DB
}

// badgerLogger adapts slog.Logger to badger's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...any) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// OpenBadger opens the database in cfg.Dir, or in memory when cfg.InMemory
// is set. A nil cfg.Logger silences badger.
func OpenBadger(cfg Config) (*BadgerStore, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Dir == "" {
			return nil, errors.New("badger store: directory is required")
		}
		if err := os.MkdirAll(cfg.Dir, 0o750); err != nil {
			return nil, fmt.Errorf("badger store: creating %s: %w", cfg.Dir, err)
		}
		opts = badger.DefaultOptions(cfg.Dir).WithSyncWrites(true)
	}
	opts = opts.WithNumVersionsToKeep(1)

	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger store: open: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Save(ctx context.Context, p *profile.Profile) error {
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

	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(profileKey(p.ID), data)
	}); err != nil {
		return fmt.Errorf("saving profile %s: %w", p.ID, err)
	}
	p.UpdatedAt = rec.UpdatedAt

	slog.DebugContext(ctx, "saved profile", "id", p.ID, "backend", BackendBadger)
	return nil
}

func (s *BadgerStore) Load(ctx context.Context, id string) (*profile.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkID(id); err != nil {
		return nil, err
	}

	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(profileKey(id))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
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

func (s *BadgerStore) Delete(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := checkID(id); err != nil {
		return false, err
	}

	existed := true
	err := s.db.Update(func(txn *badger.Txn) error {
		key := profileKey(id)
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				existed = false
				return nil
			}
			return err
		}
		return txn.Delete(key)
	})
	if err != nil {
		return false, fmt.Errorf("deleting profile %s: %w", id, err)
	}
	return existed, nil
}

func (s *BadgerStore) List(ctx context.Context) ([]*profile.Profile, error) {
	var profiles []*profile.Profile

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = keyPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			data, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			p, err := profile.Decode(data)
			if err != nil {
				slog.WarnContext(ctx, "skipping malformed profile", "key", string(item.Key()), "error", err)
				continue
			}
			profiles = append(profiles, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}

	sortProfiles(profiles)
	return profiles, nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}
