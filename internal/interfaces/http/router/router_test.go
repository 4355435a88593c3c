package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	applabel "github.com/codewithomar/LPWC/internal/application/label"
	"github.com/codewithomar/LPWC/internal/interfaces/http/handler"
	"github.com/codewithomar/LPWC/internal/interfaces/http/web"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticBrowser struct{}

func (staticBrowser) ListPage(_ context.Context, query string, page int) (*applabel.SearchPage, error) {
	return &applabel.SearchPage{Query: query, Page: page, PageSize: applabel.PageSize}, nil
}

type staticGenerator struct{}

func (staticGenerator) GenerateLabel(_ context.Context, productID uint64) (*applabel.LabelPDF, error) {
	return &applabel.LabelPDF{ProductID: productID, FileName: "ProductLabel.pdf", Content: []byte("%PDF-1.4")}, nil
}

type okPinger struct{}

func (okPinger) Ping() error { return nil }

func TestRouter_Setup(t *testing.T) {
	gin.SetMode(gin.TestMode)

	assets := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(assets, "admin-styles.css"), []byte(".wcpdf{}"), 0o644))

	tmpl, err := web.Templates()
	require.NoError(t, err)

	engine := gin.New()
	NewRouter(engine, WithTemplates(tmpl), WithAssets(assets)).
		Register(LabelRoutes{Handler: handler.NewLabelHandler(staticBrowser{}, staticGenerator{})}).
		Register(HealthRoutes{Handler: handler.NewHealthHandler(okPinger{})}).
		Setup()

	tests := []struct {
		target      string
		wantStatus  int
		contentType string
	}{
		{"/admin/labels", http.StatusOK, "text/html"},
		{"/admin/labels/generate?product_id=5", http.StatusOK, "application/pdf"},
		{"/admin-post.php?action=generate_pdf_label&product_id=5", http.StatusOK, "application/pdf"},
		{"/assets/admin-styles.css", http.StatusOK, "text/css"},
		{"/healthz", http.StatusOK, "application/json"},
		{"/nope", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.target, nil))
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), tt.contentType)
		})
	}
}
