// Package houseprice estimates the market price of a house from thirteen
// descriptive fields using a pre-trained regression pipeline.
//
// The pipeline (column scaling and one-hot encoding followed by a linear or
// gradient-boosted regressor) is trained offline and shipped as a single
// artifact, modelo_previsao_preco_v1.json by default. This module only runs
// inference:
//
//   - pipeline loads the artifact once into an immutable Handle. A missing or
//     broken artifact yields an unavailable handle instead of an error.
//   - valuation validates a Record, runs the pipeline and inverts the log1p
//     target into a Price.
//   - api serves POST /predict as JSON.
//   - webui serves an interactive form with a price curve.
//
// Callers can distinguish exactly three failures, all defined in pkg/errors:
// ErrModelUnavailable, ErrInvalidInput and ErrPredictionFailed.
//
// # Quick Start
//
//	h := pipeline.Load("modelo_previsao_preco_v1.json",
//	    pipeline.WithExpectedColumns(valuation.Columns))
//	price, err := valuation.Predict(h, valuation.Record{
//	    Bedrooms: 3, Bathrooms: 2, SqftLiving: 1800, SqftLot: 5000,
//	    Floors: 2, Condition: 3, SqftAbove: 1800, YrBuilt: 1995,
//	    City: "Seattle",
//	})
//
// # Binaries
//
//	cmd/houseprice-api  JSON API on :8000
//	cmd/houseprice-ui   interactive form on :8501
//
// Both read an optional config file (--config) and HOUSEPRICE_* environment
// variables; see package config.
package houseprice
