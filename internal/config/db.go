package config

// DB holds the database configuration settings.
type DB struct {
	Extras   string `env:"EXTRAS"`
	Host     string `env:"HOST"`
	Port     int    `env:"PORT"`
	User     string `env:"USER"`
	Password string `env:"PASSWORD"`
	Name     string `env:"NAME"`
	SSLMode  string `env:"SSLMODE"` // postgres only
}
