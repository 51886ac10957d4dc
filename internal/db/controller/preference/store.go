package preference

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Store exposes the preferences of one origin through the preference.Backend interface.
type Store struct {
	db     *gorm.DB
	origin string
}

// NewStore returns a Store bound to origin.
func NewStore(db *gorm.DB, origin string) *Store {
	return &Store{db: db, origin: origin}
}

// Get returns the value of key. found is false when the key has no row.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	p, err := Get(s.conn(ctx), s.origin, key)
	if errors.Is(err, ErrPreferenceNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return p.Value, true, nil
}

// Set writes value for key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := Set(s.conn(ctx), s.origin, key, value)
	return err
}

// SetIfAbsent writes value only if key has no row yet.
func (s *Store) SetIfAbsent(ctx context.Context, key, value string) (bool, error) {
	_, created, err := CreateIfAbsent(s.conn(ctx), s.origin, key, value)
	return created, err
}

// Delete removes key and reports whether it existed.
func (s *Store) Delete(ctx context.Context, key string) (bool, error) {
	err := Delete(s.conn(ctx), s.origin, key)
	if errors.Is(err, ErrPreferenceNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// All returns every preference of the origin.
func (s *Store) All(ctx context.Context) (map[string]string, error) {
	prefs, err := GetAll(s.conn(ctx), s.origin)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(prefs))
	for _, p := range prefs {
		out[p.Name] = p.Value
	}

	return out, nil
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	if s.db == nil {
		return nil
	}

	return s.db.WithContext(ctx)
}
