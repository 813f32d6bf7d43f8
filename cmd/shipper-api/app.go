package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/BearBump/ShipperBox/internal/api/middleware"
	shippersapi "github.com/BearBump/ShipperBox/internal/api/shippers_api"
	tradeapi "github.com/BearBump/ShipperBox/internal/api/trade_api"
	"github.com/BearBump/ShipperBox/internal/apperr"
	"github.com/BearBump/ShipperBox/internal/broker/kafka"
	"github.com/BearBump/ShipperBox/internal/broker/messages"
	"github.com/BearBump/ShipperBox/internal/models"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
)

type shipperAPIOpts struct {
	httpAddr    string
	swaggerPath string

	topic         string
	consumerGroup string

	rateLimitPerMinute int64

	onListen func(httpAddr string)
}

type kafkaConsumer interface {
	Consume(ctx context.Context, handler kafka.Handler) error
}

type importer interface {
	Import(ctx context.Context, msg messages.ShipperImport) (models.Result, error)
}

type apiDeps struct {
	api      *shippersapi.ShippersAPI
	trade    *tradeapi.TradeAPI
	importer importer
	limiter  middleware.Limiter
	consumer kafkaConsumer
	ready    func(ctx context.Context) error
}

func runShipperAPI(ctx context.Context, opts shipperAPIOpts, deps apiDeps) error {
	if opts.swaggerPath == "" {
		return fmt.Errorf("swaggerPath env var is required")
	}
	if _, err := os.Stat(opts.swaggerPath); os.IsNotExist(err) {
		return fmt.Errorf("swagger file not found: %s", opts.swaggerPath)
	}

	lis, err := net.Listen("tcp", opts.httpAddr)
	if err != nil {
		return err
	}
	if opts.onListen != nil {
		opts.onListen(lis.Addr().String())
	}

	httpErr := make(chan error, 1)
	go func() {
		httpErr <- runHTTPServer(ctx, lis, newRouter(opts, deps))
	}()

	if deps.consumer != nil {
		go func() {
			slog.Info("kafka consumer started", "topic", opts.topic, "group", opts.consumerGroup)
			err := deps.consumer.Consume(ctx, importHandler(deps.importer))
			if err != nil && ctx.Err() == nil {
				slog.Error("kafka consumer stopped", "topic", opts.topic, "error", err.Error())
			}
		}()
	}

	select {
	case <-ctx.Done():
		<-httpErr
		return ctx.Err()
	case err := <-httpErr:
		return err
	}
}

func newRouter(opts shipperAPIOpts, deps apiDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Correlation)
	r.Use(middleware.RequestLog(slog.Default()))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if deps.ready != nil {
			if err := deps.ready(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_ = json.NewEncoder(w).Encode(map[string]string{"status": "not ready", "error": err.Error()})
				return
			}
		}
		_, _ = w.Write([]byte(`{"status":"ready"}`))
	})

	r.Get("/swagger.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		http.ServeFile(w, r, opts.swaggerPath)
	})
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger.json"),
	))

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(slog.Default(), deps.limiter, opts.rateLimitPerMinute))
		deps.api.Register(r)
		if deps.trade != nil {
			deps.trade.Register(r)
		}
	})
	return r
}

func runHTTPServer(ctx context.Context, lis net.Listener, h http.Handler) error {
	srv := &http.Server{Handler: h, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("HTTP server listening", "addr", lis.Addr().String())
	if err := srv.Serve(lis); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// importHandler skips messages that can never succeed so they do not block the partition.
func importHandler(svc importer) kafka.Handler {
	return func(ctx context.Context, key, value []byte) error {
		var m messages.ShipperImport
		if err := json.Unmarshal(value, &m); err != nil {
			slog.Warn("skip malformed shipper import", "key", string(key), "error", err.Error())
			return nil
		}

		res, err := svc.Import(ctx, m)
		if ae, ok := apperr.AsArgument(err); ok {
			slog.Warn("skip invalid shipper import", "key", string(key), "param", ae.Param, "error", ae.Error())
			return nil
		}
		if err != nil {
			return err
		}
		if !res.Success {
			slog.Warn("shipper import rejected", "key", string(key), "message", res.Message)
		}
		return nil
	}
}
