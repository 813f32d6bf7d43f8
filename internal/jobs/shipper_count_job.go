package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/BearBump/ShipperBox/internal/broker/messages"
	"github.com/BearBump/ShipperBox/internal/clock"
	"github.com/robfig/cron/v3"
)

// DefaultCountSpec fires every 12 seconds during every second minute.
const DefaultCountSpec = "*/12 */2 * * * *"

type Counter interface {
	GetTotalCount(ctx context.Context) (int, error)
}

type Producer interface {
	PublishJSON(ctx context.Context, topic, key string, v any) error
}

type Stats struct {
	StartedAt time.Time  `json:"startedAt"`
	LastRunAt *time.Time `json:"lastRunAt,omitempty"`
	Runs      int64      `json:"runs"`
	Errors    int64      `json:"errors"`
	LastTotal int        `json:"lastTotal"`
	LastError string     `json:"lastError,omitempty"`
}

// ShipperCountJob periodically reports the number of shippers.
type ShipperCountJob struct {
	counter  Counter
	producer Producer
	topic    string
	spec     string
	clock    clock.Clock
	cron     *cron.Cron
	logger   *slog.Logger

	mu    sync.Mutex
	stats Stats
}

// NewShipperCountJob creates the job. producer may be nil; an empty spec means DefaultCountSpec.
func NewShipperCountJob(counter Counter, producer Producer, topic, spec string, clk clock.Clock, logger *slog.Logger) *ShipperCountJob {
	if spec == "" {
		spec = DefaultCountSpec
	}
	if clk == nil {
		clk = clock.Real{}
	}
	return &ShipperCountJob{
		counter:  counter,
		producer: producer,
		topic:    topic,
		spec:     spec,
		clock:    clk,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "shipper_count_job"),
		stats:    Stats{StartedAt: clk.Now()},
	}
}

func (j *ShipperCountJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		_ = j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("shipper count job started", "spec", j.spec)
	return nil
}

// Stop waits for a running report to finish.
func (j *ShipperCountJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("shipper count job stopped")
}

func (j *ShipperCountJob) RunOnce(ctx context.Context) error {
	now := j.clock.Now()
	j.logger.Info("shipper count job processing", "at", now)

	total, err := j.counter.GetTotalCount(ctx)
	if err == nil && j.producer != nil {
		err = j.producer.PublishJSON(ctx, j.topic, "total", messages.ShipperCountReported{
			Total:      total,
			ReportedAt: now,
		})
	}

	j.mu.Lock()
	j.stats.Runs++
	j.stats.LastRunAt = &now
	if err != nil {
		j.stats.Errors++
		j.stats.LastError = err.Error()
	} else {
		j.stats.LastTotal = total
		j.stats.LastError = ""
	}
	j.mu.Unlock()

	if err != nil {
		j.logger.Error("shipper count job failed", "error", err.Error())
		return err
	}
	j.logger.Info("shipper count reported", "total", total)
	return nil
}

func (j *ShipperCountJob) Stats() Stats {
	j.mu.Lock()
	defer j.mu.Unlock()
	st := j.stats
	return st
}
