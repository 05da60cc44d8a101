package server

import (
	"context"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iov-one/quorum/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind    = "bind"
	flagDebug   = "debug"
	flagMetrics = "metrics"
)

// StartOptions configures the ABCI server. Values provided by the
// environment are used as flag defaults.
type StartOptions struct {
	// Bind is the address the ABCI socket server listens on.
	Bind string
	// Debug returns the full stack trace of failed transactions.
	Debug bool
	// MetricsAddr enables the prometheus endpoint when not empty.
	MetricsAddr string
}

func parseStartFlags(defaults StartOptions, args []string) (StartOptions, error) {
	opts := defaults
	startFlags := flag.NewFlagSet("start", flag.ContinueOnError)
	startFlags.StringVar(&opts.Bind, flagBind, defaults.Bind, "address server listens on")
	startFlags.BoolVar(&opts.Debug, flagDebug, defaults.Debug, "call stack returned on error")
	startFlags.StringVar(&opts.MetricsAddr, flagMetrics, defaults.MetricsAddr, "address of the prometheus metrics endpoint")
	if err := startFlags.Parse(args); err != nil {
		return opts, errors.Wrap(errors.ErrInput, err.Error())
	}
	if opts.Bind == "" {
		return opts, errors.Wrap(errors.ErrInput, "bind address is required")
	}
	return opts, nil
}

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(home string, logger log.Logger, debug bool, reg prometheus.Registerer) (abci.Application, error)

// StartCmd initializes the application and serves it until the process
// receives an interrupt or termination signal.
func StartCmd(gen AppGenerator, logger log.Logger, home string, defaults StartOptions, args []string) error {
	opts, err := parseStartFlags(defaults, args)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return Run(ctx, gen, logger, home, opts)
}

// Run serves the application until the context is cancelled.
func Run(ctx context.Context, gen AppGenerator, logger log.Logger, home string, opts StartOptions) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector())

	app, err := gen(home, logger, opts.Debug, reg)
	if err != nil {
		return errors.Wrap(err, "cannot create application")
	}

	logger.Info("Starting ABCI app", "bind", opts.Bind)
	svr, err := server.NewServer(opts.Bind, "socket", app)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot create listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrapf(errors.ErrState, "cannot start server: %s", err)
	}
	defer svr.Stop()

	if opts.MetricsAddr != "" {
		ln, err := net.Listen("tcp", opts.MetricsAddr)
		if err != nil {
			return errors.Wrapf(errors.ErrInput, "cannot listen on %q: %s", opts.MetricsAddr, err)
		}
		hs := &http.Server{Handler: metricsHandler(reg)}
		go func() {
			if err := hs.Serve(ln); err != nil && err != http.ErrServerClosed {
				logger.Error("Metrics server failed", "err", err)
			}
		}()
		logger.Info("Serving metrics", "addr", ln.Addr().String())
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = hs.Shutdown(sctx)
		}()
	}

	<-ctx.Done()
	logger.Info("Shutting down")
	return nil
}

func metricsHandler(g prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return mux
}
