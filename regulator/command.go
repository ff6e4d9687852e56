package regulator

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// CommandKind distinguishes the two control commands.
type CommandKind int

const (
	// CommandSetInterval enables KSM and sets its sleep interval.
	CommandSetInterval CommandKind = iota
	// CommandDisable turns KSM off.
	CommandDisable
)

// Command is the decision of one loop iteration.
type Command struct {
	Kind CommandKind
	// IntervalMillis is only meaningful for CommandSetInterval.
	IntervalMillis uint64
}

// Disable returns the command that turns KSM off.
func Disable() Command { return Command{Kind: CommandDisable} }

// SetInterval returns the command that enables KSM with the given sleep interval.
func SetInterval(ms uint64) Command {
	return Command{Kind: CommandSetInterval, IntervalMillis: ms}
}

func (c Command) String() string {
	if c.Kind == CommandDisable {
		return "disable"
	}
	return fmt.Sprintf("set-interval(%dms)", c.IntervalMillis)
}

// Decision is the full outcome of evaluating one usage percentage.
type Decision struct {
	Bracket Bracket
	// Ratio is the position inside the bracket; zero when no interpolation happened.
	Ratio float64
	// SleepMillis is the unrounded interpolated value; zero for Disable.
	SleepMillis float64
	Command     Command
}

// Decide maps a usage percentage to a control command.
//
// Usage above the largest threshold disables KSM. Usage at or below the first
// threshold uses the first sleep value as is. Anything else is interpolated
// between the bracketing entries.
func Decide(table *Table, mode InterpolationMode, usage float64) Decision {
	bracket := table.Lookup(usage)
	logrus.Tracef("Index: %d", bracket.Upper)

	if bracket.AboveMax {
		return Decision{Bracket: bracket, Command: Disable()}
	}

	upper := table.At(bracket.Upper)
	if !bracket.HasBelow() {
		return Decision{
			Bracket:     bracket,
			SleepMillis: upper.SleepMillis,
			Command:     SetInterval(millis(upper.SleepMillis)),
		}
	}

	below := table.At(bracket.Below)
	logrus.Tracef("Below: %v, Upper: %v", below.Threshold, upper.Threshold)

	ratio := bracketRatio(usage, below.Threshold, upper.Threshold)
	logrus.Tracef("Calculated ratio: %.2f", ratio)

	sleep := mode.Interpolate(below.SleepMillis, upper.SleepMillis, ratio)
	return Decision{
		Bracket:     bracket,
		Ratio:       ratio,
		SleepMillis: sleep,
		Command:     SetInterval(millis(sleep)),
	}
}

// millis truncates v to whole milliseconds, saturating at the uint64 range.
// NaN and negative values become zero.
func millis(v float64) uint64 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= math.MaxUint64:
		return math.MaxUint64
	default:
		return uint64(v)
	}
}
