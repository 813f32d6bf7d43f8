package main

import (
	"context"
	"log/slog"

	"github.com/BearBump/ShipperBox/config"
	"github.com/BearBump/ShipperBox/internal/broker/kafka"
	"github.com/BearBump/ShipperBox/internal/clock"
	"github.com/BearBump/ShipperBox/internal/jobs"
	"github.com/BearBump/ShipperBox/internal/storage/pgshipper"
)

// workerStorage is what the worker needs from the database: the count for the job
// and a ping for /readyz.
type workerStorage interface {
	jobs.Counter
	Ping(ctx context.Context) error
}

type workerFactories struct {
	newStorage  func(cfg *config.Config) (st workerStorage, closeFn func(), err error)
	newProducer func(cfg *config.Config) jobs.Producer
}

func defaultWorkerFactories() workerFactories {
	return workerFactories{
		newStorage: func(cfg *config.Config) (workerStorage, func(), error) {
			st, err := pgshipper.New(cfg.Database.PostgresConnString())
			if err != nil {
				return nil, nil, err
			}
			return st, st.Close, nil
		},
		newProducer: func(cfg *config.Config) jobs.Producer {
			return kafka.NewProducer(cfg.Kafka.Brokers())
		},
	}
}

// RunShipperWorker runs the count job and its HTTP control surface until ctx is done.
func RunShipperWorker(ctx context.Context, cfg *config.Config, f workerFactories, httpOpts workerHTTPOpts) error {
	topic := cfg.Kafka.ShipperStatsTopicName
	if topic == "" {
		topic = "shipper.stats"
	}

	st, closeFn, err := f.newStorage(cfg)
	if err != nil {
		return err
	}
	if closeFn != nil {
		defer closeFn()
	}

	producer := f.newProducer(cfg)
	if c, ok := producer.(interface{ Close() error }); ok {
		defer func() { _ = c.Close() }()
	}

	job := jobs.NewShipperCountJob(st, producer, topic, cfg.ShipperBox.WorkerCountCron, clock.Real{}, slog.Default())
	if err := job.Start(); err != nil {
		return err
	}
	defer job.Stop()

	httpOpts.job = job
	httpOpts.cfg = cfg
	httpOpts.ready = st.Ping
	if httpOpts.httpAddr == "" {
		httpOpts.httpAddr = cfg.ShipperBox.WorkerHTTPAddr
	}

	if err := runWorkerHTTPServer(ctx, httpOpts); err != nil {
		return err
	}
	return ctx.Err()
}
