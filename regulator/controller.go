package regulator

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultInterval is the fixed delay between two iterations.
const DefaultInterval = 5 * time.Second

// Controller runs the sample -> decide -> write -> sleep loop.
// The table is read-only after construction, so a Controller needs no locking.
type Controller struct {
	table    *Table
	mode     InterpolationMode
	sampler  Sampler
	sink     ControlSink
	interval time.Duration
	observer Observer
}

// Option configures a Controller.
type Option func(*Controller)

// WithInterval overrides DefaultInterval. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithObserver registers an observer for completed iterations.
func WithObserver(o Observer) Option {
	return func(c *Controller) { c.observer = o }
}

// NewController wires a table, sampler and sink into a control loop.
func NewController(table *Table, mode InterpolationMode, sampler Sampler, sink ControlSink, opts ...Option) *Controller {
	c := &Controller{
		table:    table,
		mode:     mode,
		sampler:  sampler,
		sink:     sink,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Interval returns the delay between iterations.
func (c *Controller) Interval() time.Duration { return c.interval }

// Run loops until ctx is cancelled or an iteration fails.
// Cancellation returns nil; any sampling or control surface failure is returned as is.
func (c *Controller) Run(ctx context.Context) error {
	logrus.Debugf("Starting to process with %s interpolation, interval %s", c.mode, c.interval)
	logrus.Debugf("Breakpoints:\n%s", c.table)

	for {
		if ctx.Err() != nil {
			return c.stopped()
		}

		if _, err := c.Step(ctx); err != nil {
			if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
				return c.stopped()
			}
			return err
		}

		timer := time.NewTimer(c.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return c.stopped()
		case <-timer.C:
		}
	}
}

func (c *Controller) stopped() error {
	logrus.Info("Interrupted, stopping regulator")
	return nil
}

// Step runs a single iteration without the trailing delay.
// If ctx is cancelled before the sample arrives, nothing is written and ctx.Err() is returned.
func (c *Controller) Step(ctx context.Context) (Decision, error) {
	sample, err := c.sample(ctx)
	if err != nil {
		return Decision{}, err
	}

	usage, err := sample.UsagePercent()
	if err != nil {
		return Decision{}, &SamplingError{Source: "usage", Err: err}
	}

	if err := ctx.Err(); err != nil {
		return Decision{}, err
	}

	logrus.Infof("Total memory: %.2fM, Used memory: %.2fM, Usage percentage: %.2f",
		float64(sample.TotalKiB)/1024, float64(sample.UsedKiB())/1024, usage)

	decision := Decide(c.table, c.mode, usage)
	if decision.Command.Kind == CommandDisable {
		logrus.Infof("Usage %.2f%% is above the highest threshold %.2f%%, disabling KSM", usage, c.table.MaxThreshold())
	} else {
		logrus.Infof("Calculated sleep value: %v", decision.SleepMillis)
	}

	if err := Apply(c.sink, decision.Command); err != nil {
		return decision, err
	}

	if c.observer != nil {
		c.observer.Observe(sample, usage, decision)
	}
	return decision, nil
}

type sampleResult struct {
	sample MemorySample
	err    error
}

// sample runs the blocking Sampler on its own goroutine and races it against ctx.
// The result channel is buffered so an abandoned sampler never leaks.
func (c *Controller) sample(ctx context.Context) (MemorySample, error) {
	ch := make(chan sampleResult, 1)
	go func() {
		s, err := c.sampler.Sample(ctx)
		ch <- sampleResult{sample: s, err: err}
	}()

	select {
	case <-ctx.Done():
		return MemorySample{}, ctx.Err()
	case r := <-ch:
		if r.err != nil {
			if ctx.Err() != nil {
				return MemorySample{}, ctx.Err()
			}
			if !IsSamplingError(r.err) {
				return MemorySample{}, &SamplingError{Source: "sampler", Err: r.err}
			}
			return MemorySample{}, r.err
		}
		return r.sample, nil
	}
}
