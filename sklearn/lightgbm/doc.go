// Package lightgbm evaluates gradient-boosted tree ensembles exported with
// LightGBM's dump_model() (JSON) in pure Go.
//
// Only inference is supported. The dump is parsed once into a flat node
// array per tree; prediction walks each tree and sums the leaf values, which
// already include the shrinkage rate.
//
// # Basic Usage
//
//	booster, err := lightgbm.LoadJSONModel(data)
//	if err != nil {
//	    return err
//	}
//	predictions, err := booster.Predict(X)
//
// Numerical splits follow LightGBM's "<=" rule including missing_type
// (None, Zero, NaN) and default_left. Categorical splits ("==") accept the
// "a||b||c" threshold form of the JSON dump.
//
// Regression objectives (regression, regression_l1, huber, fair, quantile,
// mape) return the raw score. poisson, gamma and tweedie apply exp() to the
// raw score, as LightGBM's predict() does. Classification objectives are
// rejected at load time.
package lightgbm
