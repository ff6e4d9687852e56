package regulator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMemorySample_UsagePercent(t *testing.T) {
	tests := []struct {
		sample MemorySample
		want   float64
	}{
		{MemorySample{TotalKiB: 1000, AvailableKiB: 650}, 35},
		{MemorySample{TotalKiB: 1000, AvailableKiB: 1000}, 0},
		{MemorySample{TotalKiB: 1000, AvailableKiB: 0}, 100},
		{MemorySample{TotalKiB: 1000, AvailableKiB: 1200}, 0}, // available over-reported
	}
	for _, tc := range tests {
		got, err := tc.sample.UsagePercent()
		require.NoError(t, err)
		assert.InDelta(t, tc.want, got, 1e-9, "sample %+v", tc.sample)
	}
}

func TestMemorySample_UsagePercent_ZeroTotal(t *testing.T) {
	_, err := MemorySample{}.UsagePercent()
	assert.Error(t, err)
}

func TestApply_Dispatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := NewMockControlSink(ctrl)

	sink.EXPECT().SetInterval(uint64(42)).Return(nil)
	sink.EXPECT().Disable().Return(errors.New("boom"))

	assert.NoError(t, Apply(sink, SetInterval(42)))
	assert.EqualError(t, Apply(sink, Disable()), "boom")
}

func TestErrors_MessagesAndKinds(t *testing.T) {
	cause := errors.New("cause")

	cfg := &ConfigError{Op: "read", Path: "/etc/ksm-regulator.hjson", Err: cause}
	assert.Equal(t, `configuration: read "/etc/ksm-regulator.hjson": cause`, cfg.Error())
	assert.ErrorIs(t, cfg, cause)
	assert.True(t, IsConfigError(cfg))
	assert.False(t, IsSamplingError(cfg))

	noPath := &ConfigError{Op: "build breakpoint table", Err: ErrEmptyTable}
	assert.Equal(t, "configuration: build breakpoint table: breakpoint table is empty", noPath.Error())

	smp := &SamplingError{Source: "procfs", Err: cause}
	assert.Equal(t, "memory sampling (procfs): cause", smp.Error())
	assert.True(t, IsSamplingError(smp))

	cs := &ControlSurfaceError{Op: "write", Path: "/sys/kernel/mm/ksm/run", Err: cause}
	assert.Equal(t, `control surface: write "/sys/kernel/mm/ksm/run": cause`, cs.Error())
	assert.True(t, IsControlSurfaceError(cs))
	assert.False(t, IsConfigError(cs))
}
