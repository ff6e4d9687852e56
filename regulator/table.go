package regulator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Breakpoint pairs a memory usage threshold (percent) with the KSM sleep interval
// (milliseconds) to apply once usage reaches it.
type Breakpoint struct {
	Threshold   float64
	SleepMillis float64
}

// Table is an immutable, threshold-ordered breakpoint table.
type Table struct {
	thresholds []float64
	sleeps     []float64
}

// NewTable sorts the breakpoints by threshold and returns the table.
// Entries with equal thresholds keep their configuration order.
// An empty input is a configuration error.
func NewTable(points []Breakpoint) (*Table, error) {
	if len(points) == 0 {
		return nil, &ConfigError{Op: "build breakpoint table", Err: ErrEmptyTable}
	}

	sorted := make([]Breakpoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Threshold < sorted[j].Threshold
	})

	return &Table{
		thresholds: lo.Map(sorted, func(p Breakpoint, _ int) float64 { return p.Threshold }),
		sleeps:     lo.Map(sorted, func(p Breakpoint, _ int) float64 { return p.SleepMillis }),
	}, nil
}

// Len returns the number of breakpoints.
func (t *Table) Len() int { return len(t.thresholds) }

// At returns the i-th breakpoint in threshold order.
func (t *Table) At(i int) Breakpoint {
	return Breakpoint{Threshold: t.thresholds[i], SleepMillis: t.sleeps[i]}
}

// MaxThreshold returns the largest configured threshold.
func (t *Table) MaxThreshold() float64 { return t.thresholds[len(t.thresholds)-1] }

// Bracket is the result of a table lookup.
type Bracket struct {
	// Upper is the first entry whose threshold is >= the queried usage,
	// clamped to the last entry.
	Upper int
	// Below is Upper-1, or -1 when Upper is the first entry.
	Below int
	// AboveMax reports that no threshold is >= the queried usage.
	AboveMax bool
}

// HasBelow reports whether the bracket spans two entries.
func (b Bracket) HasBelow() bool { return b.Below >= 0 }

// Lookup performs a lower-bound search over the thresholds.
func (t *Table) Lookup(usage float64) Bracket {
	n := len(t.thresholds)
	i := sort.Search(n, func(i int) bool { return t.thresholds[i] >= usage })

	aboveMax := i == n
	if aboveMax {
		i = n - 1
	}

	return Bracket{Upper: i, Below: i - 1, AboveMax: aboveMax}
}

// String renders the table one breakpoint per line.
func (t *Table) String() string {
	var sb strings.Builder
	for i := range t.thresholds {
		fmt.Fprintf(&sb, "  above %6.2f%% -> %.0fms\n", t.thresholds[i], t.sleeps[i])
	}
	return sb.String()
}
