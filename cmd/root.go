package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/ksm-regulator/ksm-regulator/regulator"
	"github.com/ksm-regulator/ksm-regulator/regulator/config"
	"github.com/ksm-regulator/ksm-regulator/regulator/memory"
	"github.com/ksm-regulator/ksm-regulator/regulator/metrics"
	"github.com/ksm-regulator/ksm-regulator/regulator/sysfs"
)

// metricsShutdownTimeout bounds how long exit waits for in-flight scrapes.
const metricsShutdownTimeout = 5 * time.Second

// options holds every CLI flag of the root command.
type options struct {
	quiet    bool   // Silence all log output
	verbose  int    // Verbosity counter (-v, -vv, -vvv)
	logLevel string // Explicit log level, overrides quiet/verbose
	envFile  string // Dotenv file with KSM_REGULATOR_* variables

	linear       bool          // Linear instead of logarithmic interpolation
	configPath   string        // Breakpoint file
	runPath      string        // KSM run control file
	sleepPath    string        // KSM sleep_millisecs control file
	interval     time.Duration // Fixed delay between iterations
	memorySource string        // Sampler backend
	procRoot     string        // procfs mount point for the procfs sampler
	dryRun       bool          // Log commands instead of writing control files
	metricsAddr  string        // Prometheus listen address, empty disables
}

// rootCmd is the base command for the CLI
var rootCmd = newRootCmd()

// newRootCmd builds the command tree with its own flag storage.
func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "ksm-regulator",
		Short: "Tune KSM scan aggressiveness from host memory pressure",
		Long: `ksm-regulator samples host memory usage every few seconds, maps it through a
breakpoint table of (usage threshold, sleep interval) pairs, and writes the
interpolated interval to /sys/kernel/mm/ksm/sleep_millisecs. Above the highest
threshold KSM is switched off.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := applyEnv(cmd.Flags(), opts.envFile); err != nil {
				return err
			}
			return setupLogging(opts, cmd.Flags().Changed("log"))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return opts.run(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.BoolVarP(&opts.quiet, "quiet", "q", false, "Silence all output")
	pf.CountVarP(&opts.verbose, "verbose", "v", "Verbose mode (-v, -vv, -vvv, etc)")
	pf.StringVar(&opts.logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic); overrides -q and -v")
	pf.StringVar(&opts.envFile, "env-file", "", "Load KSM_REGULATOR_* settings from this dotenv file")

	f := cmd.Flags()
	f.BoolVarP(&opts.linear, "linear", "l", false, "Enable linear interpolation instead of logarithmic interpolation")
	f.StringVarP(&opts.configPath, "config", "c", config.DefaultPath, "Path of config file")
	f.StringVarP(&opts.runPath, "run-file", "r", sysfs.DefaultRunPath, "Path of `run` file, which is used to toggle KSM")
	f.StringVarP(&opts.sleepPath, "sleep-millisecs-file", "s", sysfs.DefaultSleepMillisecsPath, "Path of `sleep_millisecs` file")
	f.DurationVar(&opts.interval, "interval", regulator.DefaultInterval, "Fixed delay between two adjustments")
	f.StringVar(&opts.memorySource, "memory-source", memory.SourceProcfs, "Memory accounting backend ("+strings.Join(memory.Sources(), ", ")+")")
	f.StringVar(&opts.procRoot, "proc-root", memory.DefaultProcRoot, "procfs mount point used by the procfs memory source")
	f.BoolVar(&opts.dryRun, "dry-run", false, "Log control writes instead of performing them")
	f.StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9465); empty disables")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

// run builds the controller and blocks until SIGINT/SIGTERM or a fatal error.
func (o *options) run(cmd *cobra.Command) error {
	controller, err := o.controller()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logrus.Infof("ksm-regulator %s started (config %s, interval %s)", version, o.configPath, controller.Interval())
	return controller.Run(ctx)
}

// controller wires config, sampler, sink and metrics into a regulator.Controller.
func (o *options) controller() (*regulator.Controller, error) {
	mode := regulator.Logarithmic
	if o.linear {
		mode = regulator.Linear
	}

	table, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	sampler, err := memory.New(memory.Config{Source: o.memorySource, ProcRoot: o.procRoot})
	if err != nil {
		return nil, err
	}

	var sink regulator.ControlSink = sysfs.NewSink(o.runPath, o.sleepPath)
	if o.dryRun {
		sink = sysfs.NewDryRunSink(o.runPath, o.sleepPath)
	}

	controllerOpts := []regulator.Option{regulator.WithInterval(o.interval)}
	if o.metricsAddr != "" {
		observer, err := startMetrics(o.metricsAddr)
		if err != nil {
			return nil, err
		}
		controllerOpts = append(controllerOpts, regulator.WithObserver(observer))
	}

	return regulator.NewController(table, mode, sampler, sink, controllerOpts...), nil
}

// startMetrics serves /metrics in the background until process exit.
func startMetrics(addr string) (*metrics.Observer, error) {
	observer := metrics.NewObserver()
	srv, err := metrics.Listen(addr, observer)
	if err != nil {
		return nil, fmt.Errorf("metrics listener on %s: %w", addr, err)
	}

	go func() {
		if err := srv.Serve(); err != nil {
			logrus.Errorf("Metrics server stopped: %v", err)
		}
	}()
	atexit.Register(func() {
		if err := srv.Shutdown(metricsShutdownTimeout); err != nil {
			logrus.Warnf("Metrics server shutdown: %v", err)
		}
	})
	return observer, nil
}

// Execute runs the CLI root command and exits the process.
// Exit hooks registered with atexit run on every path.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
