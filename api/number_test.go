package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegerUnmarshal(t *testing.T) {
	tests := []struct {
		in      string
		want    Integer
		wantErr bool
	}{
		{in: `1800`, want: 1800},
		{in: `1800.0`, want: 1800},
		{in: `-3`, want: -3},
		{in: `"1800"`, want: 1800},
		{in: `" 2005 "`, want: 2005},
		{in: `1800.5`, wantErr: true},
		{in: `"abc"`, wantErr: true},
		{in: `""`, wantErr: true},
		{in: `true`, wantErr: true},
		{in: `[1]`, wantErr: true},
		{in: `"NaN"`, wantErr: true},
		{in: `1e300`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var got Integer
			err := json.Unmarshal([]byte(tt.in), &got)
			if tt.wantErr {
				var typeErr *json.UnmarshalTypeError
				require.ErrorAs(t, err, &typeErr)
				assert.Equal(t, "int", typeErr.Type.String())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFloatUnmarshal(t *testing.T) {
	tests := []struct {
		in      string
		want    Float
		wantErr bool
	}{
		{in: `3`, want: 3},
		{in: `2.25`, want: 2.25},
		{in: `"3"`, want: 3},
		{in: `"1.5e1"`, want: 15},
		{in: `"three"`, wantErr: true},
		{in: `"Inf"`, wantErr: true},
		{in: `false`, wantErr: true},
		{in: `{}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var got Float
			err := json.Unmarshal([]byte(tt.in), &got)
			if tt.wantErr {
				var typeErr *json.UnmarshalTypeError
				require.ErrorAs(t, err, &typeErr)
				assert.Equal(t, "float64", typeErr.Type.String())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTypeErrorCarriesFieldName(t *testing.T) {
	var req PredictRequest
	err := json.Unmarshal([]byte(`{"sqft_living": 1800.5}`), &req)

	var typeErr *json.UnmarshalTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "sqft_living", typeErr.Field)
	assert.Equal(t, "number", typeErr.Value)
}
