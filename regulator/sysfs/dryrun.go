package sysfs

import (
	"github.com/sirupsen/logrus"
)

// DryRunSink logs the writes a Sink would make without touching any file.
type DryRunSink struct {
	RunPath   string
	SleepPath string
}

// NewDryRunSink mirrors NewSink's path defaults.
func NewDryRunSink(runPath, sleepPath string) *DryRunSink {
	s := NewSink(runPath, sleepPath)
	return &DryRunSink{RunPath: s.RunPath, SleepPath: s.SleepPath}
}

func (d *DryRunSink) SetInterval(ms uint64) error {
	logrus.Infof("[dry-run] would write %q to %s and %d to %s", runEnabled, d.RunPath, ms, d.SleepPath)
	return nil
}

func (d *DryRunSink) Disable() error {
	logrus.Infof("[dry-run] would write %q to %s", runDisabled, d.RunPath)
	return nil
}
