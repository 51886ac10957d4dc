// Package preference holds the viewer preferences and seeds their defaults.
//
// The viewer reads seven string preferences at startup. A preference that was
// never written gets the default listed in Defaults; a preference that already
// holds a value is never touched, whatever that value is.
package preference

import (
	"context"
	"errors"
)

// Key names one viewer preference.
type Key string

// Preference keys read by the viewer.
const (
	KeyLanguage    Key = "language"
	KeyCursor      Key = "cursor"
	KeyResize      Key = "resize"
	KeyClipboard   Key = "clipboard"
	KeyCompression Key = "compression"
	KeyQuality     Key = "quality"
	KeyDotCursor   Key = "dotCursor"
)

var (
	// ErrNilStore is returned when seeding is requested without a store.
	ErrNilStore = errors.New("preference store is nil")

	// ErrStore wraps any fault reported by the underlying store.
	ErrStore = errors.New("preference store failure")
)

// Entry is a preference key with its seeded default.
type Entry struct {
	Key         Key    `json:"key"`
	Default     string `json:"default"`
	Description string `json:"description"`
}

// defaults in seeding order.
var defaults = []Entry{ //nolint:gochecknoglobals
	{Key: KeyLanguage, Default: "en", Description: "UI locale"},
	{Key: KeyCursor, Default: "true", Description: "show client-rendered cursor"},
	{Key: KeyResize, Default: "remote", Description: "server-side resolution matching"},
	{Key: KeyClipboard, Default: "true", Description: "enable clipboard sync"},
	// e-ink / low latency tuning
	{Key: KeyCompression, Default: "0", Description: "disable transport compression"},
	{Key: KeyQuality, Default: "5", Description: "low encoding quality"},
	{Key: KeyDotCursor, Default: "true", Description: "use minimal dot cursor glyph"},
}

// Defaults returns a copy of the default table in seeding order.
func Defaults() []Entry {
	out := make([]Entry, len(defaults))
	copy(out, defaults)

	return out
}

// Default returns the seeded default for key.
func Default(key Key) (string, bool) {
	for _, e := range defaults {
		if e.Key == key {
			return e.Default, true
		}
	}

	return "", false
}

// Store is the persistence the preferences live in.
// Get reports absence with found == false.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// AbsentSetter is implemented by stores that can insert a value only when the
// key has none, in one atomic step.
type AbsentSetter interface {
	SetIfAbsent(ctx context.Context, key, value string) (written bool, err error)
}

// Backend is a Store that can also list and remove preferences.
type Backend interface {
	Store
	Delete(ctx context.Context, key string) (existed bool, err error)
	All(ctx context.Context) (map[string]string, error)
}
