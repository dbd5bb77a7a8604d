package log

// Model and Operation Context
const (
	// ModelNameKey is the artifact's declared name.
	ModelNameKey = "model.name"

	// ModelPathKey is the artifact location on disk.
	ModelPathKey = "model.path"

	// RegressorKindKey is the regressor family inside the pipeline ("linear", "lightgbm").
	RegressorKindKey = "model.regressor"

	// OperationKey specifies the operation being performed.
	// Standard values: "load", "transform", "predict"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is logging.
	// Examples: "pipeline", "valuation", "api", "webui"
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of the process lifecycle.
	PhaseKey = "ml.phase"
)

// Data Shape
const (
	// SamplesKey is the number of rows handed to the pipeline (always 1 here).
	SamplesKey = "data.samples"

	// FeaturesKey is the number of input or transformed columns.
	FeaturesKey = "data.features"

	// CityKey is the categorical value submitted for "city".
	CityKey = "input.city"
)

// Performance
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Prediction Output
const (
	// PredsKey indicates the number of predictions made.
	PredsKey = "preds.count"

	// RawOutputKey is the log-space model output before inversion.
	RawOutputKey = "preds.raw"

	// PriceKey is the inverted, currency-scale price.
	PriceKey = "preds.price"
)

// Error Context
const (
	// ErrorKindKey is the caller-visible taxonomy kind.
	// Values: "model_unavailable", "invalid_input", "prediction_failed", "internal"
	ErrorKindKey = "error.kind"

	// ErrorTypeKey is the most specific structured error type in the chain.
	ErrorTypeKey = "error.type"

	// ErrorDetailKey carries the structured fields of the error.
	ErrorDetailKey = "error.detail"

	// StacktraceKey contains stack trace information for debugging.
	StacktraceKey = "error.stacktrace"
)

// Transport
const (
	// FrontendKey identifies which front-end served the request ("api", "webui").
	FrontendKey = "app.frontend"

	HTTPMethodKey = "http.method"
	HTTPPathKey   = "http.path"
	HTTPStatusKey = "http.status"
	ClientIPKey   = "http.client_ip"
)

// Standard attribute values.
const (
	OperationLoad      = "load"
	OperationTransform = "transform"
	OperationPredict   = "predict"

	PhaseStartup   = "startup"
	PhaseInference = "inference"
)
