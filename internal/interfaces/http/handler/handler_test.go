package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	applabel "github.com/codewithomar/LPWC/internal/application/label"
	"github.com/codewithomar/LPWC/internal/interfaces/http/middleware"
	"github.com/codewithomar/LPWC/internal/interfaces/http/web"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockBrowser struct {
	mock.Mock
}

func (m *mockBrowser) ListPage(ctx context.Context, query string, page int) (*applabel.SearchPage, error) {
	args := m.Called(ctx, query, page)
	if p := args.Get(0); p != nil {
		return p.(*applabel.SearchPage), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) GenerateLabel(ctx context.Context, productID uint64) (*applabel.LabelPDF, error) {
	args := m.Called(ctx, productID)
	if p := args.Get(0); p != nil {
		return p.(*applabel.LabelPDF), args.Error(1)
	}
	return nil, args.Error(1)
}

type stubPinger struct {
	err error
}

func (s stubPinger) Ping() error { return s.err }

// newTestEngine wires the handlers the way the router does
func newTestEngine(t *testing.T, h *LabelHandler) *gin.Engine {
	t.Helper()
	tmpl, err := web.Templates()
	require.NoError(t, err)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(middleware.RequestID())
	r.GET("/admin/labels", h.ListProducts)
	r.GET("/admin/labels/generate", h.GenerateLabel)
	r.GET("/admin-post.php", h.GenerateLabel)
	return r
}

func get(r http.Handler, target string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
