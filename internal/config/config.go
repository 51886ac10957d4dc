// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

const (
	// FileName is the name of the main configuration file.
	FileName = "main.toml"

	// EnvJSON holds a JSON document merged over the file configuration.
	EnvJSON = "VNCPREFS_CONFIG_JSON"

	// EnvPrefix is the prefix of the single value environment overrides.
	EnvPrefix = "VNCPREFS_"

	defaultShutDownTime = 5
)

var validate = validator.New() //nolint:gochecknoglobals

// ReadConfig from config file.
// Values are applied in order: main.toml, the JSON document in
// VNCPREFS_CONFIG_JSON, single VNCPREFS_* variables.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	if _, err = toml.DecodeFile(filepath.Join(path, FileName), &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv(EnvJSON)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	if err = env.ParseWithOptions(&c, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, errors.Wrap(err, "failed to read environment overrides")
	}

	return c, validateConfig(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to decode "+EnvJSON)
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validateConfig checks the settings the service can not start without
// and fills in defaults.
func validateConfig(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Origin == "" {
		return errors.Wrap(ErrEmptyOrigin, invalidErrMessage)
	}

	if c.Store.Driver == "" {
		c.Store.Driver = DriverSQLite
	}

	if err := validate.Struct(c.Store); err != nil {
		return errors.Wrapf(ErrUnknownStoreDriver, "%s: %q", invalidErrMessage, c.Store.Driver)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	return nil
}
