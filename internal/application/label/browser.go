package label

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/codewithomar/LPWC/internal/domain/catalog"
	"github.com/codewithomar/LPWC/internal/domain/shared"
)

const (
	// PageSize is the number of top-level products listed per page
	PageSize = 25

	DefaultListPath  = "/admin/labels"
	DefaultLabelPath = "/admin/labels/generate"

	// NoProductsMessage is shown when the query matched nothing on this page
	NoProductsMessage = "No products found."

	maxPage = math.MaxInt32
)

var (
	scriptPattern  = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
	tagPattern     = regexp.MustCompile(`<[^>]*>`)
	octetPattern   = regexp.MustCompile(`(?i)%[a-f0-9]{2}`)
	spacingPattern = regexp.MustCompile(`[\r\n\t ]+`)
)

// ListingRow is one printable line of the listing
type ListingRow struct {
	Serial      int
	ProductID   uint64
	Name        string
	IsVariation bool
	LabelURL    string
}

// SearchPage is one page of the product listing
type SearchPage struct {
	Query        string
	Page         int
	PageSize     int
	TotalEntries int64
	TotalPages   int
	// EntryCount is the number of top-level products on this page, before
	// variations are expanded into rows.
	EntryCount int
	Rows       []ListingRow
	Pagination []PageLink
}

// Empty reports whether the query matched no products on this page. A page of
// variable products without active variations has no rows but is not empty.
func (p *SearchPage) Empty() bool {
	return p.EntryCount == 0
}

// BrowserConfig sets the paths used for listing and label links
type BrowserConfig struct {
	ListPath  string
	LabelPath string
}

// Browser lists products for label printing
type Browser struct {
	repo      catalog.ProductRepository
	listPath  string
	labelPath string
}

// NewBrowser creates a Browser
func NewBrowser(repo catalog.ProductRepository, cfg BrowserConfig) *Browser {
	if cfg.ListPath == "" {
		cfg.ListPath = DefaultListPath
	}
	if cfg.LabelPath == "" {
		cfg.LabelPath = DefaultLabelPath
	}
	return &Browser{repo: repo, listPath: cfg.ListPath, labelPath: cfg.LabelPath}
}

// ListPage returns one page of matching top-level products. Variable products
// expand into one row per active variation and every row takes the next
// serial, starting from (page-1)*PageSize+1.
func (b *Browser) ListPage(ctx context.Context, query string, page int) (*SearchPage, error) {
	query = SanitizeQuery(query)
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}

	filter := shared.DefaultFilter()
	filter.Page = page
	filter.PageSize = PageSize
	filter.Search = query

	entries, total, err := b.repo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	result := &SearchPage{
		Query:        query,
		Page:         page,
		PageSize:     PageSize,
		TotalEntries: total,
		TotalPages:   shared.TotalPages(total, PageSize),
		EntryCount:   len(entries),
	}

	serial := (page-1)*PageSize + 1
	for _, entry := range entries {
		switch e := entry.(type) {
		case *catalog.VariableProduct:
			variations, err := b.repo.FindActiveVariations(ctx, e.ID)
			if err != nil {
				return nil, fmt.Errorf("load variations of %d: %w", e.ID, err)
			}
			for _, v := range variations {
				result.Rows = append(result.Rows, ListingRow{
					Serial:      serial,
					ProductID:   v.ID,
					Name:        v.DisplayName(e.Name),
					IsVariation: true,
					LabelURL:    b.LabelURL(v.ID),
				})
				serial++
			}
		default:
			base := entry.Fields()
			result.Rows = append(result.Rows, ListingRow{
				Serial:    serial,
				ProductID: base.ID,
				Name:      base.Name,
				LabelURL:  b.LabelURL(base.ID),
			})
			serial++
		}
	}

	if !result.Empty() {
		result.Pagination = paginate(b.listPath, query, page, result.TotalPages)
	}
	return result, nil
}

// LabelURL links to the PDF label of a product
func (b *Browser) LabelURL(productID uint64) string {
	v := url.Values{}
	v.Set("product_id", strconv.FormatUint(productID, 10))
	return b.labelPath + "?" + v.Encode()
}

// ParsePage reads a page number the way absint does: the leading integer,
// sign dropped, anything unusable becomes 1.
func ParsePage(raw string) int {
	if n := absInt(raw); n > 0 {
		return n
	}
	return 1
}

// ParseProductID reads the product_id parameter. An empty value or "0" is
// missing; a value without a usable number is an invalid product.
func ParseProductID(raw string) (uint64, error) {
	if raw == "" || raw == "0" {
		return 0, ErrProductIDRequired
	}
	n := absInt(raw)
	if n == 0 {
		return 0, ErrInvalidProduct
	}
	return uint64(n), nil
}

func absInt(raw string) int {
	n := leadingInt(strings.TrimSpace(raw))
	if n == math.MinInt {
		return 0
	}
	if n < 0 {
		return -n
	}
	return n
}

func leadingInt(s string) int {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// SanitizeQuery cleans a search term: invalid UTF-8 is dropped, tags (with
// script and style bodies) and percent-encoded octets are removed, control characters and whitespace runs
// collapse to one space and the result is trimmed.
func SanitizeQuery(raw string) string {
	if !utf8.ValidString(raw) {
		return ""
	}
	s := scriptPattern.ReplaceAllString(raw, "")
	s = tagPattern.ReplaceAllString(s, "")
	for octetPattern.MatchString(s) {
		s = octetPattern.ReplaceAllString(s, "")
	}
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, s)
	s = spacingPattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
