package label

import "github.com/codewithomar/LPWC/internal/domain/shared"

// FileName is the file name every generated label is served under
const FileName = "ProductLabel.pdf"

// Data is the display content of one label. It is built per request and
// never stored.
type Data struct {
	Name   string
	Weight string // empty when the product has no weight
	Price  string
	Date   string // YYYY-MM-DD
}

// HasWeight reports whether the weight line should be printed
func (d Data) HasWeight() bool {
	return d.Weight != ""
}

// PageFormat is a physical page size in millimeters
type PageFormat struct {
	WidthMM  float64
	HeightMM float64
}

// LabelPage is the 4x4 inch label stock
var LabelPage = PageFormat{WidthMM: 101.6, HeightMM: 101.6}

// IsValid reports whether both dimensions are positive
func (p PageFormat) IsValid() bool {
	return p.WidthMM > 0 && p.HeightMM > 0
}

// Inches returns the dimensions in inches
func (p PageFormat) Inches() (width, height float64) {
	return p.WidthMM / 25.4, p.HeightMM / 25.4
}

// Margins represents the page margins in millimeters
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// NewMargins creates a new Margins value object
func NewMargins(top, right, bottom, left float64) (Margins, error) {
	if top < 0 || right < 0 || bottom < 0 || left < 0 {
		return Margins{}, shared.NewDomainError("INVALID_MARGINS", "Margins cannot be negative")
	}
	if top+bottom >= LabelPage.HeightMM || left+right >= LabelPage.WidthMM {
		return Margins{}, shared.NewDomainError("INVALID_MARGINS", "Margins cannot exceed the label page")
	}
	return Margins{Top: top, Right: right, Bottom: bottom, Left: left}, nil
}

// DefaultMargins returns the margins used for label stock. They match the
// page box the labels were originally laid out for (16mm top and bottom,
// 15mm left and right).
func DefaultMargins() Margins {
	return Margins{Top: 16, Right: 15, Bottom: 16, Left: 15}
}

// IsZero returns true if all margins are zero
func (m Margins) IsZero() bool {
	return m.Top == 0 && m.Right == 0 && m.Bottom == 0 && m.Left == 0
}
