package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/BearBump/ShipperBox/config"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(os.Getenv("configPath"))
	if err != nil {
		panic(fmt.Sprintf("ошибка парсинга конфига, %v", err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err = RunShipperWorker(ctx, cfg, defaultWorkerFactories(), workerHTTPOptsFromEnv())
	if err != nil && !errors.Is(err, context.Canceled) {
		panic(err)
	}
}

// workerHTTPOptsFromEnv reads the same swaggerPath variable as shipper-api; each
// binary gets its own environment.
func workerHTTPOptsFromEnv() workerHTTPOpts {
	return workerHTTPOpts{swaggerPath: os.Getenv("swaggerPath")}
}
