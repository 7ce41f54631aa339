package server

import (
	"context"
	"flag"
	"net/http"
	"path/filepath"
	"time"

	"github.com/paystream/paystream/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind    = "bind"
	flagDebug   = "debug"
	flagMetrics = "metrics"
)

// AppOptions carries everything an application needs to be built.
type AppOptions struct {
	Home             string
	Logger           log.Logger
	Debug            bool
	EventBusCapacity int
	Registerer       prometheus.Registerer
}

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(AppOptions) (abci.Application, error)

func parseFlags(conf Config, args []string) (Config, error) {
	startFlags := flag.NewFlagSet("start", flag.ContinueOnError)
	startFlags.StringVar(&conf.Bind, flagBind, conf.Bind, "address server listens on")
	startFlags.BoolVar(&conf.Debug, flagDebug, conf.Debug, "call stack returned on error")
	startFlags.StringVar(&conf.Metrics, flagMetrics, conf.Metrics, "address of the Prometheus endpoint, empty to disable")
	if err := startFlags.Parse(args); err != nil {
		return conf, errors.Wrap(errors.ErrInput, err.Error())
	}
	return conf, conf.Validate()
}

// StartCmd initializes the application and runs the ABCI server until the
// process receives a termination signal.
func StartCmd(gen AppGenerator, logger log.Logger, home string, args []string) error {
	conf, err := LoadConfig(filepath.Join(home, ConfigFile))
	if err != nil {
		return err
	}
	conf, err = parseFlags(conf, args)
	if err != nil {
		return err
	}
	level, err := log.AllowLevel(conf.LogLevel)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	logger = log.NewFilter(logger, level)

	reg := prometheus.NewRegistry()
	app, err := gen(AppOptions{
		Home:             home,
		Logger:           logger,
		Debug:            conf.Debug,
		EventBusCapacity: conf.EventBusCapacity,
		Registerer:       reg,
	})
	if err != nil {
		return err
	}

	var metrics *http.Server
	if conf.Metrics != "" {
		metrics = metricsServer(conf.Metrics, reg)
		go func() {
			logger.Info("Serving metrics", "addr", conf.Metrics)
			if err := metrics.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server", "err", err)
			}
		}()
	}

	logger.Info("Starting ABCI app", "bind", conf.Bind)
	svr, err := server.NewServer(conf.Bind, "socket", app)
	if err != nil {
		return errors.Wrap(err, "create listener")
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrap(err, "start abci server")
	}

	// Wait forever
	cmn.TrapSignal(logger, func() {
		// Cleanup
		svr.Stop()
		if metrics != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			metrics.Shutdown(ctx)
		}
		if c, ok := app.(interface{ Close() }); ok {
			c.Close()
		}
	})
	return nil
}

// metricsServer exposes the registry under /metrics.
func metricsServer(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return &http.Server{Addr: addr, Handler: mux}
}
