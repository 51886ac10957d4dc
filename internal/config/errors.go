package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrEmptyOrigin error if config origin is empty.
	ErrEmptyOrigin = errors.New("toml config origin can not be empty")

	// ErrUnknownStoreDriver error if config store.driver is not supported.
	ErrUnknownStoreDriver = errors.New("toml config store.driver is not supported")
)
