package cmd

import (
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/nats-io/nuid"
	"github.com/rskv-p/hier/config"
	"github.com/rskv-p/hier/constant"
	"github.com/rskv-p/hier/pkg/x_log"
	"github.com/rskv-p/hier/recover"
	"github.com/rskv-p/hier/sink"

	"github.com/spf13/cobra"
)

var (
	flagConfig    string
	flagLogLevel  string
	flagNoColor   bool
	flagColor     bool
	flagNATSURL   string
	flagKeepGoing bool
)

// app is the per-invocation state built before any subcommand runs.
type app struct {
	cfg   *config.Config
	runID string
}

var (
	current app
	panics  atomic.Int64

	// closeLog runs once the command has finished, whatever its outcome.
	closeLog = x_log.Close
)

var rootCmd = &cobra.Command{
	Use:           constant.AppName,
	Short:         "Bounded composite tree driver",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		x_log.InitWithConfig(cfg.LogConfig(), cfg.ServiceName)
		current = app{cfg: cfg, runID: nuid.Next()}
		panics.Store(0)

		l := x_log.With(constant.KeyRun, current.runID)
		cmd.SetContext(x_log.WithLogger(cmd.Context(), &l))
		l.Debug().Msg("config loaded")
		return nil
	},
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	if cerr := closeLog(); cerr != nil {
		err = errors.Join(err, cerr)
	}
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "error:", err)
		return constant.ExitFailure
	}
	return constant.ExitOK
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "config file (default $"+constant.EnvConfigPath+" or ./"+constant.DefaultConfigFile+")")
	pf.StringVar(&flagLogLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	pf.BoolVar(&flagNoColor, "no-color", false, "disable colored event output")
	pf.BoolVar(&flagColor, "color", false, "force colored event output even when not a terminal")
	pf.StringVar(&flagNATSURL, "nats-url", "", "also publish events to this NATS server (--nats-url=URL; bare flag uses "+constant.DefaultNATSURL+")")
	pf.Lookup("nats-url").NoOptDefVal = constant.DefaultNATSURL

	rootCmd.AddCommand(demoCmd, runCmd, checkCmd, versionCmd)

	recover.OnPanic = func(component, function string, recovered any) {
		panics.Add(1)
	}
}

// loadConfig reads file and env settings, then applies explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadWithFallback(flagConfig)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if flags.Changed("no-color") {
		cfg.NoColor = flagNoColor
	}
	if flags.Changed("color") {
		cfg.Color = flagColor
	}
	if flags.Changed("nats-url") {
		cfg.Sink.NATSURL = flagNATSURL
	}
	if flags.Lookup("keep-going") != nil && flags.Changed("keep-going") {
		cfg.KeepGoing = flagKeepGoing
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// consoleOptions maps the colour settings. no-color wins over color.
func consoleOptions(cfg *config.Config) []sink.ConsoleOption {
	var opts []sink.ConsoleOption
	if cfg.Color {
		opts = append(opts, sink.WithColor())
	}
	return append(opts, sink.WithNoColor(cfg.NoColor))
}

// buildSink assembles the sinks the config asks for, plus a counter.
func buildSink(cfg *config.Config, runID string, out io.Writer) (sink.Sink, *sink.Stats, error) {
	stats := sink.NewStats()
	sinks := []sink.Sink{stats}
	if cfg.Sink.Console {
		sinks = append(sinks, sink.NewConsole(out, consoleOptions(cfg)...))
	}
	if cfg.Sink.Log {
		sinks = append(sinks, sink.NewLog(x_log.New("events"), runID))
	}
	if cfg.Sink.NATSURL != "" {
		ns, err := sink.NewNATS(cfg.Sink.NATSURL,
			sink.WithSubject(cfg.Sink.Subject),
			sink.WithRunID(runID),
			sink.WithTimeout(cfg.Sink.Timeout),
		)
		if err != nil {
			return nil, nil, err
		}
		sinks = append(sinks, ns)
	}
	return sink.NewMulti(sinks...), stats, nil
}

// finish closes s and logs the event counters.
func finish(s sink.Sink, stats *sink.Stats, runErr error) error {
	err := errors.Join(runErr, s.Close())
	x_log.Info().
		Str(constant.KeyRun, current.runID).
		Int64("events", stats.Get(sink.MetricTotal)).
		Int64("failed", stats.Get(sink.MetricFailed)).
		Int64("panics", panics.Load()).
		Msg("run finished")
	return err
}
