package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BearBump/ShipperBox/config"
	shippersapi "github.com/BearBump/ShipperBox/internal/api/shippers_api"
	tradeapi "github.com/BearBump/ShipperBox/internal/api/trade_api"
	"github.com/BearBump/ShipperBox/internal/broker/kafka"
	"github.com/BearBump/ShipperBox/internal/cache/rediscache"
	"github.com/BearBump/ShipperBox/internal/clock"
	"github.com/BearBump/ShipperBox/internal/integrations/tradedate"
	"github.com/BearBump/ShipperBox/internal/services/shippers"
	"github.com/BearBump/ShipperBox/internal/services/trade"
	"github.com/BearBump/ShipperBox/internal/storage/pgshipper"
	"github.com/BearBump/ShipperBox/internal/validation"
	"github.com/joho/godotenv"
)

type shipperAPIApp struct {
	ctx      context.Context
	cancel   context.CancelFunc
	opts     shipperAPIOpts
	deps     apiDeps
	consumer *kafka.Consumer
	producer *kafka.Producer
	redis    *rediscache.Client
	closeDB  func()
}

func mustBootstrapShipperAPI() *shipperAPIApp {
	// .env необязателен: в контейнере переменные приходят из окружения.
	_ = godotenv.Load()

	cfgPath := os.Getenv("configPath")
	if cfgPath == "" {
		panic("configPath env var is required")
	}
	swaggerPath := os.Getenv("swaggerPath")
	if swaggerPath == "" {
		panic("swaggerPath env var is required")
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		panic(fmt.Sprintf("ошибка парсинга конфига, %v", err))
	}

	httpAddr := cfg.ShipperBox.HTTPAddr
	if httpAddr == "" {
		httpAddr = ":8080"
	}
	consumerGroup := cfg.ShipperBox.KafkaConsumerGroup
	if consumerGroup == "" {
		consumerGroup = "shipper-api"
	}
	importTopic := cfg.Kafka.ShipperImportTopicName
	if importTopic == "" {
		importTopic = "shipper.import"
	}
	changedTopic := cfg.Kafka.ShipperChangedTopicName
	if changedTopic == "" {
		changedTopic = "shipper.changed"
	}
	rlPerMin := int64(cfg.ShipperBox.RateLimitPerMinute)
	if rlPerMin <= 0 {
		rlPerMin = 120
	}

	tradeLoc, err := cfg.Trade.Location()
	if err != nil {
		panic(err)
	}

	st := mustOpenPostgresWithRetry(cfg.Database.PostgresConnString(), 60*time.Second)

	rc := rediscache.New(cfg.Redis.Addr(), cfg.Redis.InstanceName)
	limiter := rediscache.NewRateLimiter(rc)

	brokers := cfg.Kafka.Brokers()
	producer := kafka.NewProducer(brokers)
	consumer := kafka.NewConsumer(brokers, importTopic, consumerGroup)

	svc := shippers.New(st, validation.New())
	api := shippersapi.New(svc,
		shippersapi.WithPublisher(producer, changedTopic),
		shippersapi.WithDebug(cfg.ShipperBox.Debug),
		shippersapi.WithLogger(slog.Default()),
	)

	clk := clock.Real{}
	tradeAPI := tradeapi.New(
		trade.New(clk, st, tradeLoc),
		trade.NewDateService(clk, tradedate.New(cfg.Trade.APIBaseURL, cfg.Trade.APIKey), tradeLoc),
		tradeapi.WithLocation(tradeLoc),
		tradeapi.WithDebug(cfg.ShipperBox.Debug),
		tradeapi.WithLogger(slog.Default()),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	return &shipperAPIApp{
		ctx:    ctx,
		cancel: cancel,
		opts: shipperAPIOpts{
			httpAddr:           httpAddr,
			swaggerPath:        swaggerPath,
			topic:              importTopic,
			consumerGroup:      consumerGroup,
			rateLimitPerMinute: rlPerMin,
		},
		deps: apiDeps{
			api:      api,
			trade:    tradeAPI,
			importer: svc,
			limiter:  limiter,
			consumer: consumer,
			ready:    st.Ping,
		},
		consumer: consumer,
		producer: producer,
		redis:    rc,
		closeDB:  st.Close,
	}
}

func mustOpenPostgresWithRetry(connString string, wait time.Duration) *pgshipper.Storage {
	deadline := time.Now().Add(wait)
	var lastErr error
	for time.Now().Before(deadline) {
		st, err := pgshipper.New(connString)
		if err == nil {
			return st
		}
		lastErr = err
		time.Sleep(1 * time.Second)
	}
	panic(fmt.Sprintf("postgres is not ready after %s: %v", wait, lastErr))
}

func (a *shipperAPIApp) Close() {
	if a.cancel != nil {
		a.cancel()
	}
	if a.consumer != nil {
		_ = a.consumer.Close()
	}
	if a.producer != nil {
		_ = a.producer.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.closeDB != nil {
		a.closeDB()
	}
}

func (a *shipperAPIApp) Run() error {
	return runShipperAPI(a.ctx, a.opts, a.deps)
}
