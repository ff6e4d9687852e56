// Package memory provides regulator.Sampler implementations backed by the host's
// memory accounting.
package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/ksm-regulator/ksm-regulator/regulator"
)

const (
	// SourceProcfs reads /proc/meminfo through github.com/prometheus/procfs.
	SourceProcfs = "procfs"
	// SourceGopsutil reads memory through github.com/shirou/gopsutil.
	SourceGopsutil = "gopsutil"

	// DefaultProcRoot is the procfs mount point.
	DefaultProcRoot = "/proc"
)

// Config selects and configures a sampler.
type Config struct {
	Source   string
	ProcRoot string
}

var factories = map[string]func(Config) (regulator.Sampler, error){
	SourceProcfs: func(c Config) (regulator.Sampler, error) {
		return NewProcfsSampler(c.ProcRoot)
	},
	SourceGopsutil: func(Config) (regulator.Sampler, error) {
		return NewGopsutilSampler(), nil
	},
}

// Sources lists the accepted Config.Source values.
func Sources() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds the sampler named by c.Source.
func New(c Config) (regulator.Sampler, error) {
	factory, ok := factories[c.Source]
	if !ok {
		return nil, fmt.Errorf("unknown memory source %q, expected one of %v", c.Source, Sources())
	}
	return factory(c)
}

// sampleFunc adapts a function to regulator.Sampler.
type sampleFunc func(ctx context.Context) (regulator.MemorySample, error)

func (f sampleFunc) Sample(ctx context.Context) (regulator.MemorySample, error) { return f(ctx) }
