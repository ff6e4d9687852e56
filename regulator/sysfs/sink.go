// Package sysfs applies regulator commands to the KSM tunables under /sys/kernel/mm/ksm.
package sysfs

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ksm-regulator/ksm-regulator/regulator"
)

const (
	// DefaultRunPath toggles KSM: "1" runs the scanner, "0" stops it.
	DefaultRunPath = "/sys/kernel/mm/ksm/run"
	// DefaultSleepMillisecsPath holds the scanner's sleep between passes.
	DefaultSleepMillisecsPath = "/sys/kernel/mm/ksm/sleep_millisecs"

	runEnabled  = "1"
	runDisabled = "0"
)

// Sink writes to the KSM run and sleep_millisecs control files.
// The files must already exist; a missing file is a control surface error.
type Sink struct {
	RunPath   string
	SleepPath string
}

// NewSink returns a Sink, substituting the kernel defaults for empty paths.
func NewSink(runPath, sleepPath string) *Sink {
	if runPath == "" {
		runPath = DefaultRunPath
	}
	if sleepPath == "" {
		sleepPath = DefaultSleepMillisecsPath
	}
	return &Sink{RunPath: runPath, SleepPath: sleepPath}
}

// SetInterval enables KSM, then writes ms to sleep_millisecs.
func (s *Sink) SetInterval(ms uint64) error {
	if err := s.setRun(true); err != nil {
		return err
	}

	logrus.Tracef("Setting ksm sleep to %d", ms)
	return writeControl(s.SleepPath, strconv.FormatUint(ms, 10))
}

// Disable writes "0" to the run file.
func (s *Sink) Disable() error {
	return s.setRun(false)
}

func (s *Sink) setRun(enabled bool) error {
	logrus.Tracef("Setting ksm run to %v", enabled)
	value := runDisabled
	if enabled {
		value = runEnabled
	}
	return writeControl(s.RunPath, value)
}

// writeControl opens an existing control file for writing and writes value in one call.
func writeControl(path, value string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return &regulator.ControlSurfaceError{Op: "open", Path: path, Err: err}
	}

	n, err := f.WriteString(value)
	if err == nil && n < len(value) {
		err = errors.Errorf("short write: %d of %d bytes", n, len(value))
	}
	if cerr := f.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		return &regulator.ControlSurfaceError{Op: "write " + strconv.Quote(value) + " to", Path: path, Err: err}
	}
	return nil
}
