package main

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	oracle "github.com/rio-ARC/Oracle-of-Delphi-Chatbot"
	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/internal/config"
	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/pkg/adapters/groq"
	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/pkg/adapters/memory"
	redisArchive "github.com/rio-ARC/Oracle-of-Delphi-Chatbot/pkg/adapters/redis"
	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/pkg/observability"
	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/pkg/ritual"
)

// buildOracle wires the oracle with standard CLI conventions: Groq as
// responder, slog/trace observers always, metrics when a registry is given,
// and the event archive on Redis or in memory per config. The returned
// cleanup releases the archive connection.
func buildOracle(cfg config.Config, logger *slog.Logger, registry *prometheus.Registry) (*oracle.Oracle, func(), error) {
	responder, err := groq.New(cfg.APIKey(),
		groq.WithModel(cfg.Groq.Model),
		groq.WithTemperature(cfg.Groq.Temperature),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("%w (set %s)", err, config.APIKeyEnv)
	}

	observers := []ritual.Observer{
		observability.NewSlogObserver(logger),
		observability.NewTraceObserver(),
	}
	if registry != nil {
		observers = append(observers, observability.NewMetricsObserver(registry))
	}

	cleanup := func() {}
	if cfg.Redis.Enabled {
		archive := redisArchive.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redisArchive.WithCap(cfg.Redis.HistoryCap),
		)
		observers = append(observers, observability.NewArchiveObserver(archive, logger))
		cleanup = func() { _ = archive.Close() }
	} else {
		archive := memory.NewArchive(memory.WithCap(int(cfg.Redis.HistoryCap)))
		observers = append(observers, observability.NewArchiveObserver(archive, logger))
	}

	o, err := oracle.New(responder,
		oracle.WithLogger(logger),
		oracle.WithTiming(cfg.TimingConfig()),
		oracle.WithObservers(observers...),
	)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return o, cleanup, nil
}
