package api

import "github.com/YuminosukeSato/houseprice/valuation"

// WelcomeMessage is the body of GET /.
const WelcomeMessage = "Bem-vindo à API de Previsão de Preços de Casas!"

// UntrainedCategoryHint accompanies prediction_failed responses.
const UntrainedCategoryHint = "check that the city is spelled correctly and was one of the cities used to train the model"

// PredictRequest is the body of POST /predict. Every field is required; a
// pointer distinguishes a missing field from a zero value. Numeric fields
// accept numeric strings, and int fields accept integral floats.
type PredictRequest struct {
	Bedrooms     *Float   `json:"bedrooms" binding:"required"`
	Bathrooms    *Float   `json:"bathrooms" binding:"required"`
	SqftLiving   *Integer `json:"sqft_living" binding:"required"`
	SqftLot      *Integer `json:"sqft_lot" binding:"required"`
	Floors       *Float   `json:"floors" binding:"required"`
	Waterfront   *Integer `json:"waterfront" binding:"required"`
	View         *Integer `json:"view" binding:"required"`
	Condition    *Integer `json:"condition" binding:"required"`
	SqftAbove    *Integer `json:"sqft_above" binding:"required"`
	SqftBasement *Integer `json:"sqft_basement" binding:"required"`
	YrBuilt      *Integer `json:"yr_built" binding:"required"`
	YrRenovated  *Integer `json:"yr_renovated" binding:"required"`
	City         *string  `json:"city" binding:"required"`
}

// Record converts a bound request. Call only after binding succeeded.
func (r *PredictRequest) Record() valuation.Record {
	return valuation.Record{
		Bedrooms:     float64(*r.Bedrooms),
		Bathrooms:    float64(*r.Bathrooms),
		SqftLiving:   int(*r.SqftLiving),
		SqftLot:      int(*r.SqftLot),
		Floors:       float64(*r.Floors),
		Waterfront:   int(*r.Waterfront),
		View:         int(*r.View),
		Condition:    int(*r.Condition),
		SqftAbove:    int(*r.SqftAbove),
		SqftBasement: int(*r.SqftBasement),
		YrBuilt:      int(*r.YrBuilt),
		YrRenovated:  int(*r.YrRenovated),
		City:         *r.City,
	}
}

// PredictResponse is the body of a successful POST /predict.
type PredictResponse struct {
	PredictedPrice float64 `json:"predicted_price"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status         string `json:"status"`
	ModelAvailable bool   `json:"model_available"`
	ModelPath      string `json:"model_path"`
	Model          string `json:"model,omitempty"`
	Regressor      string `json:"regressor,omitempty"`
	Error          string `json:"error,omitempty"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error  string       `json:"error"`
	Detail string       `json:"detail"`
	Hint   string       `json:"hint,omitempty"`
	Fields []FieldError `json:"fields,omitempty"`
}

// FieldError names one request field that failed binding.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}
