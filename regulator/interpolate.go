package regulator

import (
	"fmt"
	"math"
	"strings"
)

// InterpolationMode selects how a sleep value is derived between two breakpoints.
type InterpolationMode int

const (
	// Logarithmic interpolates geometrically: a^(1-t) * b^t.
	Logarithmic InterpolationMode = iota
	// Linear interpolates as a + t*(b-a).
	Linear
)

func (m InterpolationMode) String() string {
	switch m {
	case Linear:
		return "linear"
	case Logarithmic:
		return "logarithmic"
	default:
		return fmt.Sprintf("InterpolationMode(%d)", int(m))
	}
}

// ParseInterpolationMode maps a mode name to its InterpolationMode.
func ParseInterpolationMode(s string) (InterpolationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear", "lin":
		return Linear, nil
	case "logarithmic", "log", "":
		return Logarithmic, nil
	default:
		return Logarithmic, fmt.Errorf("unknown interpolation mode %q", s)
	}
}

// Interpolate returns the value at ratio t between a and b.
func (m InterpolationMode) Interpolate(a, b, t float64) float64 {
	if m == Linear {
		return lerp(a, b, t)
	}
	return logerp(a, b, t)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func logerp(a, b, t float64) float64 {
	return math.Pow(a, 1-t) * math.Pow(b, t)
}

// bracketRatio places usage between the below and upper thresholds.
// A ratio >= 1 is inverted rather than clamped.
func bracketRatio(usage, below, upper float64) float64 {
	ratio := (usage - below) / (upper - below)
	if ratio >= 1.0 {
		return 1.0 / ratio
	}
	return ratio
}
