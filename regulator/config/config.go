// Package config loads the breakpoint file that drives the regulator.
//
// The file is a list of entries, each with a `trigger_memory_above` usage
// percentage and the `ksm_sleep_millisecs` to apply once usage reaches it:
//
//	[
//	  # usage %, sleep ms
//	  { trigger_memory_above: 20, ksm_sleep_millisecs: 1000 }
//	  { trigger_memory_above: 50, ksm_sleep_millisecs: 200 }
//	  { trigger_memory_above: 90, ksm_sleep_millisecs: 10 }
//	]
//
// Relaxed JSON (HJSON) is the default format; files ending in .yaml or .yml are
// decoded as YAML. Both decoders reject unknown fields.
package config

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"

	hjson "github.com/hjson/hjson-go/v4"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ksm-regulator/ksm-regulator/regulator"
)

// DefaultPath is where the breakpoint file is read from unless overridden.
const DefaultPath = "/etc/ksm-regulator.hjson"

// Format is the syntax of a breakpoint file.
type Format int

const (
	FormatHJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "hjson"
}

// FormatFor picks the format from the file extension.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatHJSON
	}
}

// Entry is one breakpoint as written in the file.
// Pointers distinguish a missing field from an explicit zero.
type Entry struct {
	SleepMillis        *float64 `json:"ksm_sleep_millisecs" yaml:"ksm_sleep_millisecs"`
	TriggerMemoryAbove *float64 `json:"trigger_memory_above" yaml:"trigger_memory_above"`
}

// Load reads, parses and validates the file at path and builds the breakpoint table.
// Every failure is returned as a *regulator.ConfigError.
func Load(path string) (*regulator.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &regulator.ConfigError{Op: "read", Path: path, Err: err}
	}

	format := FormatFor(path)
	entries, err := Parse(data, format)
	if err != nil {
		return nil, &regulator.ConfigError{Op: "parse " + format.String(), Path: path, Err: err}
	}

	points, err := Breakpoints(entries)
	if err != nil {
		return nil, &regulator.ConfigError{Op: "validate", Path: path, Err: err}
	}

	table, err := regulator.NewTable(points)
	if err != nil {
		return nil, err
	}

	logrus.Debugf("Loaded %d breakpoints from %s", table.Len(), path)
	return table, nil
}

// Parse decodes a breakpoint list in the given format.
func Parse(data []byte, format Format) ([]Entry, error) {
	var entries []Entry

	if format == FormatYAML {
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&entries); err != nil {
			return nil, errors.Wrap(err, "decode yaml")
		}
		return entries, nil
	}

	opts := hjson.DefaultDecoderOptions()
	opts.DisallowUnknownFields = true
	if err := hjson.UnmarshalWithOptions(data, &entries, opts); err != nil {
		return nil, errors.Wrap(err, "decode hjson")
	}
	return entries, nil
}

// Breakpoints validates entries and converts them to table input.
func Breakpoints(entries []Entry) ([]regulator.Breakpoint, error) {
	if len(entries) == 0 {
		return nil, regulator.ErrEmptyTable
	}

	for i, e := range entries {
		if err := validate(e); err != nil {
			return nil, errors.Wrapf(err, "entry %d", i)
		}
	}

	return lo.Map(entries, func(e Entry, _ int) regulator.Breakpoint {
		return regulator.Breakpoint{Threshold: *e.TriggerMemoryAbove, SleepMillis: *e.SleepMillis}
	}), nil
}

func validate(e Entry) error {
	switch {
	case e.TriggerMemoryAbove == nil:
		return errors.New("missing trigger_memory_above")
	case e.SleepMillis == nil:
		return errors.New("missing ksm_sleep_millisecs")
	}

	threshold, sleep := *e.TriggerMemoryAbove, *e.SleepMillis
	switch {
	case math.IsNaN(threshold) || math.IsInf(threshold, 0):
		return errors.Errorf("trigger_memory_above %v is not finite", threshold)
	case threshold < 0 || threshold > 100:
		return errors.Errorf("trigger_memory_above %v is outside [0, 100]", threshold)
	case math.IsNaN(sleep) || math.IsInf(sleep, 0):
		return errors.Errorf("ksm_sleep_millisecs %v is not finite", sleep)
	case sleep < 0:
		return errors.Errorf("ksm_sleep_millisecs %v is negative", sleep)
	}
	return nil
}
