// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/eink-vnc/vncprefs/internal/config"
)

const (
	appDir        = "vncprefs"
	sqliteFile    = "preferences.db"
	defaultSSLMod = "disable"
)

// mysqlOnly are go-sql-driver parameters that postgres rejects as unknown
// runtime parameters.
var mysqlOnly = []string{ //nolint:gochecknoglobals
	"allowNativePasswords", "charset", "collation", "interpolateParams",
	"loc", "parseTime", "readTimeout", "timeout", "tls", "writeTimeout",
}

// MySQL builds the go-sql-driver Data Source Name from the configuration.
func MySQL(cfg *config.Config) string {
	out := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		cfg.Store.DB.User,
		cfg.Store.DB.Password,
		cfg.Store.DB.Host,
		cfg.Store.DB.Port,
		cfg.Store.DB.Name,
		cfg.Store.DB.Extras,
	)

	return out
}

// PostgresURL builds a postgres:// connection URL from the configuration.
func PostgresURL(cfg *config.Config) string {
	sslMode := cfg.Store.DB.SSLMode
	if sslMode == "" {
		sslMode = defaultSSLMod
	}

	q, err := url.ParseQuery(cfg.Store.DB.Extras)
	if err != nil {
		q = url.Values{}
	}

	for _, k := range mysqlOnly {
		q.Del(k)
	}

	q.Set("sslmode", sslMode)

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.Store.DB.User, cfg.Store.DB.Password),
		Host:     net.JoinHostPort(cfg.Store.DB.Host, strconv.Itoa(cfg.Store.DB.Port)),
		Path:     "/" + cfg.Store.DB.Name,
		RawQuery: q.Encode(),
	}

	return u.String()
}

// SQLite returns the sqlite database file. An empty configured path resolves
// to the platform data directory of the current user.
func SQLite(cfg *config.Config) (string, error) {
	if cfg.Store.SQLite.Path != "" {
		return cfg.Store.SQLite.Path, nil
	}

	var baseDir string

	switch runtime.GOOS {
	case "windows":
		baseDir = os.Getenv("APPDATA")
		if baseDir == "" {
			baseDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(home, "Library", "Application Support")
	default:
		baseDir = os.Getenv("XDG_DATA_HOME")
		if baseDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(home, ".local", "share")
		}
	}

	return filepath.Join(baseDir, appDir, sqliteFile), nil
}
