package errors

import (
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeInvalidRange, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeRateLimited, http.StatusTooManyRequests},
		{CodeInternal, http.StatusInternalServerError},
		{Code("UNKNOWN"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}

func TestError_IsMatchesByCode(t *testing.T) {
	err := InvalidRangef("saturation min %v exceeds max %v", 0.6, 0.3)

	assert.True(t, Is(err, ErrInvalidRange))
	assert.False(t, Is(err, ErrValidation))
	assert.Equal(t, "saturation min 0.6 exceeds max 0.3", err.Error())

	wrapped := fmt.Errorf("load palette: %w", err)
	assert.True(t, Is(wrapped, ErrInvalidRange))
}

func TestError_WrapKeepsCause(t *testing.T) {
	err := Wrap(io.ErrUnexpectedEOF, CodeInternal, "read failed")

	assert.Equal(t, "read failed: unexpected EOF", err.Error())
	assert.True(t, Is(err, io.ErrUnexpectedEOF))
	assert.True(t, Is(err, ErrInternal))
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus())
}

func TestError_WithDetailsCopies(t *testing.T) {
	base := Validation("bad input")
	detailed := base.WithDetails(map[string]string{"field": "inputs"})

	assert.Nil(t, base.Details)
	assert.Equal(t, map[string]string{"field": "inputs"}, detailed.Details)
	assert.Equal(t, base.Code, detailed.Code)
}
