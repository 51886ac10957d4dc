// Package kvstore keeps viewer preferences in a gofiber storage driver.
package kvstore

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"

	"github.com/eink-vnc/vncprefs/internal/preference"
)

const (
	// separator between origin and key in storage keys.
	separator = "|"

	// valuePrefix is stored in front of every value. gofiber drivers silently
	// drop zero length values, the prefix keeps "" a storable value.
	valuePrefix = "="
)

// ErrStorageNil is returned when the store has no storage driver.
var ErrStorageNil = errors.New("kv storage is nil")

// Store implements preference.Backend on top of a fiber.Storage.
//
// fiber.Storage can not list keys, so All only reports the default keys and
// the keys written through this Store since it was created.
type Store struct {
	storage fiber.Storage
	origin  string

	// mu serializes writes so SetIfAbsent's check-then-set is not interleaved
	// with Set or Delete of this process
	mu      sync.Mutex
	written map[string]struct{}
}

// New returns a Store for origin backed by storage.
func New(storage fiber.Storage, origin string) *Store {
	return &Store{
		storage: storage,
		origin:  origin,
		written: make(map[string]struct{}),
	}
}

func (s *Store) storageKey(key string) string {
	return s.origin + separator + key
}

// Get implements preference.Store. A nil value from the driver means absent.
func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	if s == nil || s.storage == nil {
		return "", false, ErrStorageNil
	}

	val, err := s.storage.Get(s.storageKey(key))
	if err != nil {
		return "", false, err
	}

	if val == nil {
		return "", false, nil
	}

	return strings.TrimPrefix(string(val), valuePrefix), true, nil
}

// Set implements preference.Store. Values never expire.
func (s *Store) Set(_ context.Context, key, value string) error {
	if s == nil || s.storage == nil {
		return ErrStorageNil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Set(s.storageKey(key), encode(value), 0); err != nil {
		return err
	}

	s.written[key] = struct{}{}

	return nil
}

// SetIfAbsent implements preference.AbsentSetter. It is atomic only with
// respect to other writes through the same Store.
func (s *Store) SetIfAbsent(ctx context.Context, key, value string) (bool, error) {
	if s == nil {
		return false, ErrStorageNil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, found, err := s.Get(ctx, key)
	if err != nil || found {
		return false, err
	}

	if s.storage == nil {
		return false, ErrStorageNil
	}

	if err = s.storage.Set(s.storageKey(key), encode(value), 0); err != nil {
		return false, err
	}

	s.written[key] = struct{}{}

	return true, nil
}

// Delete implements preference.Backend.
func (s *Store) Delete(ctx context.Context, key string) (bool, error) {
	if s == nil {
		return false, ErrStorageNil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, found, err := s.Get(ctx, key)
	if err != nil || !found {
		return false, err
	}

	if err = s.storage.Delete(s.storageKey(key)); err != nil {
		return false, err
	}

	delete(s.written, key)

	return true, nil
}

// All implements preference.Backend for the keys this Store knows about.
func (s *Store) All(ctx context.Context) (map[string]string, error) {
	s.mu.Lock()
	keys := make([]string, 0, len(s.written)+len(preference.Defaults()))
	for k := range s.written {
		keys = append(keys, k)
	}
	s.mu.Unlock()

	for _, e := range preference.Defaults() {
		keys = append(keys, string(e.Key))
	}

	out := make(map[string]string, len(keys))

	for _, k := range keys {
		if _, seen := out[k]; seen {
			continue
		}

		v, found, err := s.Get(ctx, k)
		if err != nil {
			return nil, err
		}

		if found {
			out[k] = v
		}
	}

	return out, nil
}

// Close closes the underlying driver.
func (s *Store) Close() error {
	if s.storage == nil {
		return nil
	}

	return s.storage.Close()
}

func encode(value string) []byte {
	return []byte(valuePrefix + value)
}
