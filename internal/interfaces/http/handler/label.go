package handler

import (
	"context"
	"net/http"

	applabel "github.com/codewithomar/LPWC/internal/application/label"
	"github.com/codewithomar/LPWC/internal/domain/shared"
	"github.com/codewithomar/LPWC/internal/interfaces/http/dto"
	"github.com/codewithomar/LPWC/internal/interfaces/http/web"
	"github.com/gin-gonic/gin"
)

// StylesheetPath is where the admin stylesheet is served
const StylesheetPath = "/assets/admin-styles.css"

// LabelBrowser lists products for label printing
type LabelBrowser interface {
	ListPage(ctx context.Context, query string, page int) (*applabel.SearchPage, error)
}

// LabelGenerator produces a label PDF for one product
type LabelGenerator interface {
	GenerateLabel(ctx context.Context, productID uint64) (*applabel.LabelPDF, error)
}

// LabelHandler serves the label admin pages
type LabelHandler struct {
	BaseHandler
	browser   LabelBrowser
	generator LabelGenerator
	listPath  string
}

// NewLabelHandler creates a new LabelHandler
func NewLabelHandler(browser LabelBrowser, generator LabelGenerator) *LabelHandler {
	return &LabelHandler{
		browser:   browser,
		generator: generator,
		listPath:  applabel.DefaultListPath,
	}
}

// ListProducts renders the search form and one page of products
// GET /admin/labels?product_search=&paged=
func (h *LabelHandler) ListProducts(c *gin.Context) {
	var query dto.ListLabelsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.HandleError(c, shared.ErrInvalidInput)
		return
	}

	page, err := h.browser.ListPage(c.Request.Context(), query.Search, applabel.ParsePage(query.Paged))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.HTML(http.StatusOK, web.ListingTemplate, gin.H{
		"Page":          page,
		"ListPath":      h.listPath,
		"StylesheetURL": StylesheetPath,
		"EmptyMessage":  applabel.NoProductsMessage,
	})
}

// GenerateLabel streams the label PDF of one product inline
// GET /admin/labels/generate?product_id=
func (h *LabelHandler) GenerateLabel(c *gin.Context) {
	var query dto.GenerateLabelQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.HandleError(c, shared.ErrInvalidInput)
		return
	}

	productID, err := applabel.ParseProductID(query.ProductID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	pdf, err := h.generator.GenerateLabel(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", "inline; filename=\""+pdf.FileName+"\"")
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", pdf.Content)
}
