// Package regulator provides the control engine for ksm-regulator.
//
// # Reading Guide
//
// Start with these three files to understand the control loop:
//   - table.go: the breakpoint table (usage threshold -> sleep interval) and bracket lookup
//   - interpolate.go: linear and logarithmic interpolation between two breakpoints
//   - controller.go: the sample -> decide -> write -> sleep loop and its cancellation
//
// # Architecture
//
// The regulator package defines interfaces and value types; implementations live in
// sub-packages:
//   - regulator/config/: breakpoint file loading (relaxed JSON, YAML)
//   - regulator/memory/: memory samplers (procfs, gopsutil)
//   - regulator/sysfs/: control sinks for /sys/kernel/mm/ksm
//   - regulator/metrics/: Prometheus observer
//
// # Key Interfaces
//   - Sampler: read total and available memory from the host
//   - ControlSink: enable KSM with a sleep interval, or disable it
//   - Observer: receive the outcome of each iteration
package regulator
