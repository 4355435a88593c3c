package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	applabel "github.com/codewithomar/LPWC/internal/application/label"
	"github.com/codewithomar/LPWC/internal/domain/shared"
	"github.com/codewithomar/LPWC/internal/infrastructure/printing"
	"github.com/codewithomar/LPWC/internal/interfaces/http/dto"
	"github.com/codewithomar/LPWC/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func listingFixture() *applabel.SearchPage {
	return &applabel.SearchPage{
		Query:        "rice & dal",
		Page:         1,
		PageSize:     applabel.PageSize,
		TotalEntries: 30,
		TotalPages:   2,
		EntryCount:   2,
		Rows: []applabel.ListingRow{
			{Serial: 1, ProductID: 10, Name: "Rice 1kg", LabelURL: "/admin/labels/generate?product_id=10"},
			{Serial: 2, ProductID: 21, Name: "Lentils - 500g", IsVariation: true, LabelURL: "/admin/labels/generate?product_id=21"},
		},
		Pagination: []applabel.PageLink{
			{Label: "1", Current: true},
			{Label: "2", URL: "/admin/labels?paged=2&product_search=rice+%26+dal"},
			{Label: "Next »", URL: "/admin/labels?paged=2&product_search=rice+%26+dal", Rel: "next"},
		},
	}
}

func TestLabelHandler_ListProducts(t *testing.T) {
	browser := new(mockBrowser)
	browser.On("ListPage", mock.Anything, "rice & dal", 1).Return(listingFixture(), nil)
	r := newTestEngine(t, NewLabelHandler(browser, new(mockGenerator)))

	w := get(r, "/admin/labels?product_search=rice+%26+dal&paged=abc")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<h1>Generate PDF Labels</h1>")
	assert.Contains(t, body, `value="rice &amp; dal"`)
	assert.Contains(t, body, `<link rel="stylesheet" href="/assets/admin-styles.css">`)
	assert.Contains(t, body, `<span class="serial-number">1</span><a href="/admin/labels/generate?product_id=10" target="_blank">Rice 1kg</a>`)
	assert.Contains(t, body, `<span class="serial-number">2 - </span>`)
	assert.Contains(t, body, `class="tablenav-pages"`)
	assert.Contains(t, body, `class="page-numbers current">1</span>`)
	assert.Contains(t, body, `class="next page-numbers"`)
	assert.NotContains(t, body, applabel.NoProductsMessage)
	browser.AssertExpectations(t)
}

func TestLabelHandler_ListProducts_Empty(t *testing.T) {
	browser := new(mockBrowser)
	browser.On("ListPage", mock.Anything, "", 3).Return(&applabel.SearchPage{Page: 3, PageSize: applabel.PageSize}, nil)
	r := newTestEngine(t, NewLabelHandler(browser, new(mockGenerator)))

	w := get(r, "/admin/labels?paged=3")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<p>No products found.</p>")
	assert.NotContains(t, w.Body.String(), "<h2>Products:</h2>")
}

func TestLabelHandler_ListProducts_OnlyChildlessVariables(t *testing.T) {
	browser := new(mockBrowser)
	browser.On("ListPage", mock.Anything, "", 1).Return(&applabel.SearchPage{
		Page:         1,
		PageSize:     applabel.PageSize,
		TotalEntries: 30,
		TotalPages:   2,
		EntryCount:   applabel.PageSize,
		Pagination: []applabel.PageLink{
			{Label: "1", Current: true},
			{Label: "Next »", URL: "/admin/labels?paged=2", Rel: "next"},
		},
	}, nil)
	r := newTestEngine(t, NewLabelHandler(browser, new(mockGenerator)))

	w := get(r, "/admin/labels")

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), applabel.NoProductsMessage)
	assert.Contains(t, w.Body.String(), `<a class="next page-numbers" href="/admin/labels?paged=2">`)
}

func TestLabelHandler_ListProducts_LongParameters(t *testing.T) {
	search := strings.Repeat("a", 201)
	browser := new(mockBrowser)
	browser.On("ListPage", mock.Anything, search, 1).Return(&applabel.SearchPage{Query: search, Page: 1, PageSize: applabel.PageSize}, nil)
	r := newTestEngine(t, NewLabelHandler(browser, new(mockGenerator)))

	w := get(r, "/admin/labels?product_search="+search+"&paged="+strings.Repeat("9", 21))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="`+search+`"`)
	browser.AssertExpectations(t)
}

func TestLabelHandler_ListProducts_SearchFailure(t *testing.T) {
	browser := new(mockBrowser)
	browser.On("ListPage", mock.Anything, "", 1).Return(nil, errors.New("connection refused"))
	r := newTestEngine(t, NewLabelHandler(browser, new(mockGenerator)))

	w := get(r, "/admin/labels")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestLabelHandler_GenerateLabel(t *testing.T) {
	generator := new(mockGenerator)
	generator.On("GenerateLabel", mock.Anything, uint64(10)).Return(&applabel.LabelPDF{
		ProductID: 10,
		FileName:  "ProductLabel.pdf",
		Content:   []byte("%PDF-1.4 label"),
	}, nil)
	r := newTestEngine(t, NewLabelHandler(new(mockBrowser), generator))

	for _, target := range []string{
		"/admin/labels/generate?product_id=10",
		"/admin-post.php?action=generate_pdf_label&product_id=10",
	} {
		w := get(r, target)

		require.Equal(t, http.StatusOK, w.Code, target)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Equal(t, `inline; filename="ProductLabel.pdf"`, w.Header().Get("Content-Disposition"))
		assert.Equal(t, "%PDF-1.4 label", w.Body.String())
		assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	}
}

func TestLabelHandler_GenerateLabel_Errors(t *testing.T) {
	renderErr := printing.NewRenderError(printing.ErrCodeRenderFailed, "chromedp execution failed", errors.New("target crashed"))

	tests := []struct {
		name       string
		target     string
		genErr     error
		wantStatus int
		wantBody   string
	}{
		{"missing id", "/admin/labels/generate", nil, http.StatusBadRequest, "Product ID is required."},
		{"empty id", "/admin/labels/generate?product_id=", nil, http.StatusBadRequest, "Product ID is required."},
		{"zero id", "/admin/labels/generate?product_id=0", nil, http.StatusBadRequest, "Product ID is required."},
		{"non numeric id", "/admin/labels/generate?product_id=abc", nil, http.StatusBadRequest, "Invalid product."},
		{"overflowing id", "/admin/labels/generate?product_id=" + strings.Repeat("9", 21), nil, http.StatusBadRequest, "Invalid product."},
		{"wrong action", "/admin-post.php?action=delete&product_id=7", nil, http.StatusBadRequest, "Invalid input provided"},
		{"unknown product", "/admin/labels/generate?product_id=7", applabel.ErrInvalidProduct, http.StatusBadRequest, "Invalid product."},
		{"engine failure", "/admin/labels/generate?product_id=7", errors.Join(shared.ErrRenderFailed, renderErr), http.StatusInternalServerError, genericFailureMessage},
		{"unexpected error", "/admin/labels/generate?product_id=7", errors.New("boom"), http.StatusInternalServerError, genericFailureMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generator := new(mockGenerator)
			if tt.genErr != nil {
				generator.On("GenerateLabel", mock.Anything, uint64(7)).Return(nil, tt.genErr)
			}
			r := newTestEngine(t, NewLabelHandler(new(mockBrowser), generator))

			w := get(r, tt.target)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
			assert.Contains(t, w.Body.String(), tt.wantBody)
			assert.NotContains(t, w.Body.String(), "%PDF")
			if tt.genErr == nil {
				generator.AssertNotCalled(t, "GenerateLabel", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestLabelHandler_GenerateLabel_JSONError(t *testing.T) {
	r := newTestEngine(t, NewLabelHandler(new(mockBrowser), new(mockGenerator)))

	w := get(r, "/admin/labels/generate", "Accept", "application/json", middleware.RequestIDHeader, "req-7")

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeMissingParameter, resp.Error.Code)
	assert.Equal(t, "Product ID is required.", resp.Error.Message)
	assert.Equal(t, "req-7", resp.Error.RequestID)
}
