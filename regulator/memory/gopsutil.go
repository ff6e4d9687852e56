package memory

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/mem"

	"github.com/ksm-regulator/ksm-regulator/regulator"
)

// NewGopsutilSampler returns a sampler that asks gopsutil for virtual memory
// statistics and converts them from bytes to KiB.
func NewGopsutilSampler() regulator.Sampler {
	return sampleFunc(func(ctx context.Context) (regulator.MemorySample, error) {
		vm, err := mem.VirtualMemoryWithContext(ctx)
		if err != nil {
			return regulator.MemorySample{}, &regulator.SamplingError{
				Source: SourceGopsutil,
				Err:    errors.Wrap(err, "read virtual memory"),
			}
		}
		return regulator.MemorySample{
			TotalKiB:     vm.Total / 1024,
			AvailableKiB: vm.Available / 1024,
		}, nil
	})
}
