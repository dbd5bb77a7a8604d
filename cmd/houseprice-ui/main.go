// Command houseprice-ui serves the interactive price estimation form.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/YuminosukeSato/houseprice/config"
	"github.com/YuminosukeSato/houseprice/internal/app"
	"github.com/YuminosukeSato/houseprice/webui"
)

func main() {
	configFile := flag.String("config", "", "path to a config file (yaml, json or toml)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configFile); err != nil {
		fmt.Fprintf(os.Stderr, "houseprice-ui: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configFile string) error {
	d, err := app.Bootstrap(config.FrontendUI, configFile)
	if err != nil {
		return err
	}
	defer d.Close()

	engine := webui.NewRouter(d.Estimator, d.Formatter, d.Logger, d.Metrics, d.Config.IsProduction())
	return app.Serve(ctx, d, engine)
}
