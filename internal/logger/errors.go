package logger

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrAppNameIsEmpty is returned if Log.AppName was not defined.
	ErrAppNameIsEmpty = errors.New("config Log.AppName can not be empty")

	// ErrServiceNameIsEmpty is returned if Log.ServiceName was not defined.
	ErrServiceNameIsEmpty = errors.New("config Log.ServiceName can not be empty")
)

// ErrorHandler reports log writes that failed, e.g. a full disk under the rolling files.
// It writes to stderr because the logger itself is what broke.
func ErrorHandler(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "vncprefs: dropped log event: %v\n", err)
}
