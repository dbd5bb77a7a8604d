package api

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/YuminosukeSato/houseprice/pkg/errors"
)

var registerTagNameOnce sync.Once

// useJSONFieldNames makes validator report json names ("sqft_living")
// instead of Go field names.
func useJSONFieldNames() {
	registerTagNameOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(kind errors.Kind) int {
	switch kind {
	case errors.KindInvalidInput, errors.KindPredictionFailed:
		return http.StatusUnprocessableEntity
	case errors.KindModelUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// bindingError converts a ShouldBindJSON failure into a 422 body.
func bindingError(err error) ErrorResponse {
	resp := ErrorResponse{Error: errors.KindInvalidInput.String()}

	var verrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &verrs):
		names := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			resp.Fields = append(resp.Fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
			names = append(names, fe.Field())
		}
		resp.Detail = "missing or invalid fields: " + strings.Join(names, ", ")
	case errors.As(err, &typeErr):
		resp.Fields = []FieldError{{Field: typeErr.Field, Rule: "type"}}
		resp.Detail = "field " + typeErr.Field + " must be " + typeErr.Type.String()
	case errors.As(err, &syntaxErr):
		resp.Detail = "request body is not valid JSON"
	default:
		resp.Detail = err.Error()
	}
	return resp
}

// estimateError converts an Estimate failure into a status and body.
func estimateError(err error) (int, ErrorResponse) {
	kind := errors.KindOf(err)
	resp := ErrorResponse{Error: kind.String(), Detail: err.Error()}
	switch kind {
	case errors.KindPredictionFailed:
		resp.Hint = UntrainedCategoryHint
	case errors.KindInternal:
		resp.Detail = "internal server error"
	}
	return statusFor(kind), resp
}

func abortWith(c *gin.Context, status int, resp ErrorResponse) {
	c.AbortWithStatusJSON(status, resp)
}
