// Command blockrun runs a sample heater control diagram under the blockx
// scheduler, in realtime or as a simulation.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"

	"github.com/comalice/blockx/internal/logging"
	"github.com/comalice/blockx/realtime"
	"github.com/comalice/blockx/telemetry"
)

type options struct {
	configPath  string
	frequency   float64
	runTime     time.Duration
	realtime    bool
	metricsAddr string
	verbosity   int
	development bool
}

func (o *options) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.configPath, "config", "", "Path to a YAML or JSON run configuration.")
	fs.Float64Var(&o.frequency, "frequency", realtime.DefaultFrequency, "Tick rate in Hz.")
	fs.DurationVar(&o.runTime, "run-time", 10*time.Second, "Application time to run for. 0 runs until interrupted.")
	fs.BoolVar(&o.realtime, "realtime", false, "Pace ticks to the wall clock instead of simulating.")
	fs.StringVar(&o.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090.")
	fs.IntVarP(&o.verbosity, "verbosity", "v", logging.DEFAULT, "Log verbosity. 3 logs telemetry, 4 logs every tick.")
	fs.BoolVar(&o.development, "dev-log", false, "Human-readable development logging.")
}

// config merges the config file with the flags the user set explicitly.
func (o *options) config(fs *pflag.FlagSet) (realtime.Config, error) {
	cfg := realtime.Config{
		Frequency: o.frequency,
		RunTime:   realtime.Duration(o.runTime),
		Realtime:  o.realtime,
	}
	if o.configPath != "" {
		loaded, err := realtime.LoadConfig(o.configPath)
		if err != nil {
			return cfg, err
		}
		if !fs.Changed("frequency") {
			cfg.Frequency = loaded.Frequency
		}
		if !fs.Changed("run-time") {
			cfg.RunTime = loaded.RunTime
		}
		if !fs.Changed("realtime") {
			cfg.Realtime = loaded.Realtime
		}
		cfg.SleepThreshold = loaded.SleepThreshold
		cfg.BusyWaitMargin = loaded.BusyWaitMargin
		cfg.TelemetryBuffer = loaded.TelemetryBuffer
	}
	cfg = cfg.WithDefaults()
	return cfg, cfg.Validate()
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "blockrun:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var opts options
	fs := pflag.NewFlagSet("blockrun", pflag.ContinueOnError)
	opts.addFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger, err := logging.NewLogger(opts.verbosity, opts.development)
	if err != nil {
		return err
	}

	cfg, err := opts.config(fs)
	if err != nil {
		logger.Error(err, "Invalid configuration")
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := realtime.NewMetrics(reg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if opts.metricsAddr != "" {
		srv := &http.Server{
			Addr:              opts.metricsAddr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go serveMetrics(srv, logger)
		defer shutdown(srv, logger)
	}

	diagram, err := newHeaterDiagram()
	if err != nil {
		logger.Error(err, "Diagram construction failed")
		return err
	}

	pub := telemetry.NewChannelPublisher(cfg.TelemetryBuffer)
	sink := telemetry.NewRetryingSink(telemetry.LogSink{Logger: logger.WithName("telemetry"), Level: logging.DEBUG})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := telemetry.Forward(context.Background(), pub.Records(), sink, logger); err != nil {
			logger.Error(err, "Telemetry forwarding had failures")
		}
	}()

	rt, err := realtime.NewRuntime(cfg,
		realtime.WithLogger(logger),
		realtime.WithMetrics(metrics),
		realtime.WithPublisher(pub),
	)
	if err != nil {
		return err
	}

	runErr := rt.Run(ctx, diagram)
	_ = pub.Close()
	wg.Wait()

	if errors.Is(runErr, context.Canceled) {
		logger.Info("Shutting down gracefully", "ticks", rt.GetTickNumber())
		return nil
	}
	if runErr != nil {
		return runErr
	}
	snap := diagram.Snapshot()
	logger.Info("Final state", "state", snap.StateID, "temperature", diagram.temp, "settledFor", diagram.since)
	return nil
}

func serveMetrics(srv *http.Server, logger logr.Logger) {
	logger.Info("Serving metrics", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error(err, "Metrics server failed")
	}
}

func shutdown(srv *http.Server, logger logr.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error(err, "Metrics server shutdown failed")
	}
}
