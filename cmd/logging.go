package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// levelForVerbosity maps the -v counter onto logrus levels; warn is the base.
func levelForVerbosity(verbose int) logrus.Level {
	switch {
	case verbose <= 0:
		return logrus.WarnLevel
	case verbose == 1:
		return logrus.InfoLevel
	case verbose == 2:
		return logrus.DebugLevel
	default:
		return logrus.TraceLevel
	}
}

// setupLogging configures the package-level logrus logger.
// An explicit --log wins over -q and -v.
func setupLogging(o *options, explicitLevel bool) error {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05Z07:00",
	})
	logrus.SetOutput(os.Stderr)

	if explicitLevel {
		level, err := logrus.ParseLevel(o.logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", o.logLevel, err)
		}
		logrus.SetLevel(level)
		return nil
	}

	if o.quiet {
		logrus.SetOutput(io.Discard)
		return nil
	}
	logrus.SetLevel(levelForVerbosity(o.verbose))
	return nil
}
