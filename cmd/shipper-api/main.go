package main

import (
	"context"
	"errors"
	_ "time/tzdata"
)

func main() {
	app := mustBootstrapShipperAPI()
	defer app.Close()

	if err := app.Run(); err != nil && !errors.Is(err, context.Canceled) {
		panic(err)
	}
}
