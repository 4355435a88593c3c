package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrCodeMissingParameter, http.StatusBadRequest},
		{ErrCodeInvalidProduct, http.StatusBadRequest},
		{ErrCodeRenderFailed, http.StatusInternalServerError},
		{ErrCodeRenderTimeout, http.StatusInternalServerError},
		{ErrCodeUnavailable, http.StatusServiceUnavailable},
		{"ERR_SOMETHING_ELSE", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeMissingParameter, NormalizeErrorCode("MISSING_PARAMETER"))
	assert.Equal(t, ErrCodeInvalidProduct, NormalizeErrorCode("NOT_FOUND"))
	assert.Equal(t, ErrCodeRenderTimeout, NormalizeErrorCode("RENDER_TIMEOUT"))
	assert.Equal(t, ErrCodeInternal, NormalizeErrorCode(ErrCodeInternal))
	assert.Equal(t, "CUSTOM", NormalizeErrorCode("CUSTOM"))
}

func TestIsServerError(t *testing.T) {
	assert.True(t, IsServerError(ErrCodeRenderFailed))
	assert.False(t, IsServerError(ErrCodeInvalidProduct))
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeInvalidProduct, "Invalid product.", "req-1")
	assert.False(t, resp.Success)
	assert.Equal(t, "req-1", resp.Error.RequestID)
	assert.Equal(t, "Invalid product.", resp.Error.Message)
}
