package printing

import (
	"errors"
	"testing"

	"github.com/codewithomar/LPWC/internal/domain/label"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name     string
		req      *RenderRequest
		wantCode string
	}{
		{"nil request", nil, ErrCodeInvalidHTML},
		{"blank html", &RenderRequest{HTML: "  \n", Page: label.LabelPage}, ErrCodeInvalidHTML},
		{"zero page", &RenderRequest{HTML: "<p>x</p>"}, ErrCodeInvalidPage},
		{"valid", &RenderRequest{HTML: "<p>x</p>", Page: label.LabelPage}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRequest(tt.req)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			var renderErr *RenderError
			require.ErrorAs(t, err, &renderErr)
			assert.Equal(t, tt.wantCode, renderErr.Code)
		})
	}
}

func TestRenderError(t *testing.T) {
	cause := errors.New("chrome crashed")
	err := NewRenderError(ErrCodeRenderFailed, "chromedp execution failed", cause)

	assert.Equal(t, "chromedp execution failed: chrome crashed", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "generated PDF is empty", NewRenderError(ErrCodeRenderFailed, "generated PDF is empty", nil).Error())
}

func TestEstimatePageCount(t *testing.T) {
	pdf := []byte("%PDF-1.4 /Type /Pages /Kids [3 0 R] /Type /Page /Type /Page")
	assert.Equal(t, 2, estimatePageCount(pdf))
	assert.Equal(t, 1, estimatePageCount([]byte("%PDF-1.4")))
}

func TestMMToInches(t *testing.T) {
	assert.InDelta(t, 4.0, mmToInches(101.6), 1e-9)
}
