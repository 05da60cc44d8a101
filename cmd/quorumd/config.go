package main

import (
	"io"

	"github.com/caarlos0/env/v6"
	"github.com/iov-one/quorum/commands/server"
	"github.com/iov-one/quorum/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Config is read from the environment. Command line flags take precedence.
type Config struct {
	Home        string `env:"QUORUM_HOME" envDefault:"$HOME/.quorumd" envExpand:"true"`
	Bind        string `env:"QUORUM_BIND" envDefault:"tcp://localhost:26658"`
	Debug       bool   `env:"QUORUM_DEBUG" envDefault:"false"`
	LogLevel    string `env:"QUORUM_LOG_LEVEL" envDefault:"info"`
	MetricsAddr string `env:"QUORUM_METRICS_ADDR"`
}

func loadConfig() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return c, errors.Wrapf(errors.ErrInput, "parse env: %s", err)
	}
	return c, nil
}

// StartOptions returns the server defaults described by the configuration.
func (c Config) StartOptions() server.StartOptions {
	return server.StartOptions{
		Bind:        c.Bind,
		Debug:       c.Debug,
		MetricsAddr: c.MetricsAddr,
	}
}

// Logger returns a tendermint logger writing to w, filtered by the
// configured level.
func (c Config) Logger(w io.Writer) (log.Logger, error) {
	allowed, err := log.AllowLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	logger := log.NewTMLogger(log.NewSyncWriter(w))
	return log.NewFilter(logger, allowed).With("module", "quorumd"), nil
}
