package regulator

import (
	"errors"
	"fmt"
)

// ErrEmptyTable is returned when a configuration yields no breakpoints.
var ErrEmptyTable = errors.New("breakpoint table is empty")

// ConfigError reports a configuration file that is missing, unreadable, malformed,
// or describes an unusable breakpoint table.
type ConfigError struct {
	Op   string
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("configuration: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("configuration: %s %q: %v", e.Op, e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// SamplingError reports that host memory accounting could not be read.
type SamplingError struct {
	Source string
	Err    error
}

func (e *SamplingError) Error() string {
	return fmt.Sprintf("memory sampling (%s): %v", e.Source, e.Err)
}

func (e *SamplingError) Unwrap() error { return e.Err }

// ControlSurfaceError reports a control surface that could not be opened or written.
type ControlSurfaceError struct {
	Op   string
	Path string
	Err  error
}

func (e *ControlSurfaceError) Error() string {
	return fmt.Sprintf("control surface: %s %q: %v", e.Op, e.Path, e.Err)
}

func (e *ControlSurfaceError) Unwrap() error { return e.Err }

// IsConfigError reports whether err wraps a *ConfigError.
func IsConfigError(err error) bool {
	var target *ConfigError
	return errors.As(err, &target)
}

// IsSamplingError reports whether err wraps a *SamplingError.
func IsSamplingError(err error) bool {
	var target *SamplingError
	return errors.As(err, &target)
}

// IsControlSurfaceError reports whether err wraps a *ControlSurfaceError.
func IsControlSurfaceError(err error) bool {
	var target *ControlSurfaceError
	return errors.As(err, &target)
}
