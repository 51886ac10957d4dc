package config

import (
	"time"

	"github.com/eink-vnc/vncprefs/internal/logger"
)

// Store drivers.
const (
	DriverMemory     = "memory"
	DriverSQLite     = "sqlite"
	DriverMySQL      = "mysql"
	DriverPostgres   = "postgres"
	DriverKVMySQL    = "kv-mysql"
	DriverKVPostgres = "kv-postgres"
)

// Config overall data structure.
type Config struct {
	DevMode   bool       `env:"DEV_MODE"` // enable dev mode for development
	Title     string     `env:"TITLE"`
	Origin    string     `env:"ORIGIN"` // scope the preferences are stored under
	Log       logger.Log `envPrefix:"LOG_"`
	Store     Store      `envPrefix:"STORE_"`
	Seed      Seed       `envPrefix:"SEED_"`
	Webserver Webserver  `envPrefix:"WEBSERVER_"`
}

// Store selects and configures the preference persistence.
type Store struct {
	Driver string `env:"DRIVER" validate:"oneof=memory sqlite mysql postgres kv-mysql kv-postgres"`
	SQLite SQLite `envPrefix:"SQLITE_"`
	DB     DB     `envPrefix:"DB_"`
	KV     KV     `envPrefix:"KV_"`
}

// SQLite holds the sqlite driver settings.
type SQLite struct {
	// Path of the database file. Empty selects the per user data directory.
	Path string `env:"PATH"`
}

// KV holds the settings of the gofiber storage backed drivers.
type KV struct {
	Table      string        `env:"TABLE"`
	Reset      bool          // drop the table on start, for development only
	GCInterval time.Duration `env:"GC_INTERVAL"`
}

// Seed controls the startup seeding of preference defaults.
type Seed struct {
	Disabled bool `env:"DISABLED"`
	// Required turns a store or seeding failure into a startup fault.
	Required bool `env:"REQUIRED"`
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool   // disable recover middleware
	Port           int    `env:"PORT"` // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown
	URL            string `env:"URL"` // base url for the webserver
}
