package regulator

import (
	"context"
	"errors"
)

// MemorySample is a single reading of host memory, in KiB.
type MemorySample struct {
	TotalKiB     uint64
	AvailableKiB uint64
}

// UsedKiB returns total minus available, floored at zero.
func (s MemorySample) UsedKiB() uint64 {
	if s.AvailableKiB >= s.TotalKiB {
		return 0
	}
	return s.TotalKiB - s.AvailableKiB
}

// UsagePercent returns the share of memory in use, 0-100.
func (s MemorySample) UsagePercent() (float64, error) {
	if s.TotalKiB == 0 {
		return 0, errors.New("total memory reported as zero")
	}
	return float64(s.UsedKiB()) / float64(s.TotalKiB) * 100, nil
}

// Sampler reads host memory accounting. Implementations may block.
type Sampler interface {
	Sample(ctx context.Context) (MemorySample, error)
}

// ControlSink applies control commands to KSM.
type ControlSink interface {
	// SetInterval enables KSM, then writes the sleep interval.
	SetInterval(ms uint64) error
	// Disable turns KSM off.
	Disable() error
}

// Apply dispatches cmd to the matching sink method.
func Apply(sink ControlSink, cmd Command) error {
	if cmd.Kind == CommandDisable {
		return sink.Disable()
	}
	return sink.SetInterval(cmd.IntervalMillis)
}

// Observer is notified after each completed iteration.
type Observer interface {
	Observe(sample MemorySample, usage float64, decision Decision)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(sample MemorySample, usage float64, decision Decision)

func (f ObserverFunc) Observe(sample MemorySample, usage float64, decision Decision) {
	f(sample, usage, decision)
}
