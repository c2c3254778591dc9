package validation_test

import (
	"math"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/colorhash/internal/color"
	domainerrors "github.com/listenupapp/colorhash/internal/errors"
	"github.com/listenupapp/colorhash/internal/validation"
)

type batchRequest struct {
	Inputs []string `json:"inputs" validate:"required,min=1,max=3"`
	Format string   `json:"format" validate:"omitempty,oneof=hsl rgb hex"`
}

type palette struct {
	Saturation color.Range `json:"saturation"`
	Lightness  color.Range `json:"lightness"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Validate(batchRequest{Inputs: []string{"a"}, Format: "hex"}))
	assert.NoError(t, v.Validate(palette{
		Saturation: color.DefaultSaturation,
		Lightness:  color.Range{Min: 0, Max: 1},
	}))
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		in        any
		wantField string
		wantMsg   string
	}{
		{
			name:      "missing inputs",
			in:        batchRequest{},
			wantField: "inputs",
			wantMsg:   "is required",
		},
		{
			name:      "too many inputs",
			in:        batchRequest{Inputs: []string{"a", "b", "c", "d"}},
			wantField: "inputs",
			wantMsg:   "must not exceed 3 items",
		},
		{
			name:      "unknown format",
			in:        batchRequest{Inputs: []string{"a"}, Format: "cmyk"},
			wantField: "format",
			wantMsg:   "must be one of: hsl rgb hex",
		},
		{
			name:      "inverted range",
			in:        palette{Saturation: color.Range{Min: 0.6, Max: 0.3}, Lightness: color.DefaultLightness},
			wantField: "saturation.max",
			wantMsg:   "must be greater than or equal to Min",
		},
		{
			name:      "range above one",
			in:        palette{Saturation: color.DefaultSaturation, Lightness: color.Range{Min: 0.5, Max: 1.5}},
			wantField: "lightness.max",
			wantMsg:   "must be less than or equal to 1",
		},
		{
			name:      "nan bound",
			in:        palette{Saturation: color.Range{Min: math.NaN(), Max: 0.5}, Lightness: color.DefaultLightness},
			wantField: "saturation.min",
			wantMsg:   "must be greater than or equal to 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.in)
			require.Error(t, err)

			var domainErr *domainerrors.Error
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
			assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus())

			details, ok := domainErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Equal(t, tt.wantMsg, details[tt.wantField])
		})
	}
}
