// Command houseprice-api serves the JSON price estimation API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/YuminosukeSato/houseprice/api"
	"github.com/YuminosukeSato/houseprice/config"
	"github.com/YuminosukeSato/houseprice/internal/app"
)

func main() {
	configFile := flag.String("config", "", "path to a config file (yaml, json or toml)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configFile); err != nil {
		fmt.Fprintf(os.Stderr, "houseprice-api: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configFile string) error {
	d, err := app.Bootstrap(config.FrontendAPI, configFile)
	if err != nil {
		return err
	}
	defer d.Close()

	engine := api.NewRouter(d.Estimator, d.Logger, d.Metrics, d.Config.IsProduction())
	return app.Serve(ctx, d, engine)
}
