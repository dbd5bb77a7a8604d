// Package app wires configuration, logging, the model handle and metrics for
// the front-end binaries.
package app

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/YuminosukeSato/houseprice/config"
	"github.com/YuminosukeSato/houseprice/pipeline"
	"github.com/YuminosukeSato/houseprice/pkg/errors"
	"github.com/YuminosukeSato/houseprice/pkg/log"
	"github.com/YuminosukeSato/houseprice/pkg/telemetry"
	"github.com/YuminosukeSato/houseprice/valuation"
)

// Deps is everything a front-end needs. The handle is loaded once here and
// shared read-only afterwards.
type Deps struct {
	Config    *config.Configs
	Logger    log.Logger
	Handle    *pipeline.Handle
	Estimator *valuation.Estimator
	Formatter *valuation.Formatter
	Metrics   *telemetry.Metrics

	closer io.Closer
}

// Close releases the log file, if any.
func (d *Deps) Close() error {
	if d.closer == nil {
		return nil
	}
	return d.closer.Close()
}

// Bootstrap loads configuration for frontend and builds Deps. A missing or
// broken model artifact is not an error: the handle is unavailable and both
// front-ends report it per request.
func Bootstrap(frontend config.Frontend, configFile string) (*Deps, error) {
	cfg, err := config.Load(frontend, configFile)
	if err != nil {
		return nil, err
	}

	zl, closer, err := log.SetupLogger(cfg.LogOptions())
	if err != nil {
		return nil, errors.Wrap(err, "setup logger")
	}
	log.SetLogger(zl)
	logger := zl.With(log.FrontendKey, string(frontend))

	handle := pipeline.NewLoader(cfg.Model.Path,
		pipeline.WithLogger(logger),
		pipeline.WithExpectedColumns(valuation.Columns),
	).Handle()

	metrics := telemetry.NewMetrics()
	metrics.SetModelAvailable(handle.Available())

	estimator, err := valuation.NewEstimator(handle,
		valuation.WithEstimatorLogger(logger),
		valuation.WithObserver(metrics.Observer(string(frontend))),
		valuation.WithCache(cfg.Cache.Size),
	)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}

	formatter, err := valuation.NewFormatter(cfg.Locale, cfg.CurrencySymbol)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}

	return &Deps{
		Config:    cfg,
		Logger:    logger,
		Handle:    handle,
		Estimator: estimator,
		Formatter: formatter,
		Metrics:   metrics,
		closer:    closer,
	}, nil
}

// Serve runs handler on the configured address until ctx is done, then shuts
// down gracefully within the configured timeout.
func Serve(ctx context.Context, d *Deps, handler http.Handler) error {
	hc := d.Config.HTTP
	server := &http.Server{
		Addr:              hc.Addr,
		Handler:           handler,
		ReadTimeout:       hc.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      hc.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		d.Logger.Info("HTTP server listening", "addr", hc.Addr, log.ModelPathKey, d.Handle.Path())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return errors.Wrap(err, "http server")
		}
		return nil
	case <-ctx.Done():
	}

	d.Logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), hc.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "http server shutdown")
	}
	return nil
}
