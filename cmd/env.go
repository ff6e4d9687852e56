package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/ksm-regulator/ksm-regulator/regulator"
)

const envPrefix = "KSM_REGULATOR_"

// envName returns the environment variable consulted for a flag,
// e.g. "sleep-millisecs-file" -> "KSM_REGULATOR_SLEEP_MILLISECS_FILE".
func envName(flag string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

// applyEnv fills every flag not set on the command line from its KSM_REGULATOR_*
// variable. Variables from envFile are loaded first; the process environment wins
// over the file.
func applyEnv(flags *pflag.FlagSet, envFile string) error {
	if envFile == "" {
		envFile = os.Getenv(envName("env-file"))
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return &regulator.ConfigError{Op: "load env file", Path: envFile, Err: err}
		}
	}

	var errs []error
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed || f.Name == "help" {
			return
		}
		value, ok := os.LookupEnv(envName(f.Name))
		if !ok {
			return
		}
		if err := flags.Set(f.Name, value); err != nil {
			errs = append(errs, fmt.Errorf("%s=%q: %w", envName(f.Name), value, err))
		}
	})
	if len(errs) > 0 {
		return &regulator.ConfigError{Op: "apply environment", Err: errors.Join(errs...)}
	}
	return nil
}
