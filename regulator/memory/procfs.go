package memory

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prometheus/procfs"
	"github.com/sirupsen/logrus"

	"github.com/ksm-regulator/ksm-regulator/regulator"
)

// ProcfsSampler reads MemTotal and MemAvailable from <root>/meminfo.
type ProcfsSampler struct {
	root string
	fs   procfs.FS
}

// NewProcfsSampler opens the procfs mounted at root. An empty root means DefaultProcRoot.
func NewProcfsSampler(root string) (*ProcfsSampler, error) {
	if root == "" {
		root = DefaultProcRoot
	}
	fs, err := procfs.NewFS(root)
	if err != nil {
		return nil, &regulator.SamplingError{Source: SourceProcfs, Err: errors.Wrapf(err, "open procfs at %s", root)}
	}
	return &ProcfsSampler{root: root, fs: fs}, nil
}

// Sample implements regulator.Sampler. Kernels without MemAvailable fall back to
// MemFree + Buffers + Cached.
func (s *ProcfsSampler) Sample(_ context.Context) (regulator.MemorySample, error) {
	info, err := s.fs.Meminfo()
	if err != nil {
		return regulator.MemorySample{}, s.fail(errors.Wrapf(err, "read %s/meminfo", s.root))
	}

	if info.MemTotal == nil {
		return regulator.MemorySample{}, s.fail(errors.Errorf("%s/meminfo has no MemTotal", s.root))
	}

	sample := regulator.MemorySample{TotalKiB: *info.MemTotal}
	switch {
	case info.MemAvailable != nil:
		sample.AvailableKiB = *info.MemAvailable
	case info.MemFree != nil:
		logrus.Tracef("MemAvailable missing in %s/meminfo, estimating from MemFree", s.root)
		sample.AvailableKiB = *info.MemFree + value(info.Buffers) + value(info.Cached)
	default:
		return regulator.MemorySample{}, s.fail(errors.Errorf("%s/meminfo has neither MemAvailable nor MemFree", s.root))
	}
	return sample, nil
}

func (s *ProcfsSampler) fail(err error) error {
	return &regulator.SamplingError{Source: SourceProcfs, Err: err}
}

func value(p *uint64) uint64 {
	if p == nil {
		return 0
	}
	return *p
}
