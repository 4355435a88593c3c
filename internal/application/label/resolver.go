package label

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/codewithomar/LPWC/internal/domain/catalog"
	"github.com/codewithomar/LPWC/internal/domain/label"
	"github.com/codewithomar/LPWC/internal/domain/shared"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DateLayout is the packaging date format printed on labels
const DateLayout = "2006-01-02"

// ErrInvalidProduct is returned when a product id does not resolve to a product
var ErrInvalidProduct = shared.NewDomainError(shared.CodeNotFound, "Invalid product.")

// ErrProductIDRequired is returned when no usable product id was supplied
var ErrProductIDRequired = shared.NewDomainError(shared.CodeMissingParameter, "Product ID is required.")

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock
type ClockFunc func() time.Time

// Now returns f()
func (f ClockFunc) Now() time.Time { return f() }

// ResolverConfig holds the locale settings used for label fields
type ResolverConfig struct {
	Locale   language.Tag
	Location *time.Location
	Clock    Clock
}

// Resolver turns a catalog entry into the fields printed on a label
type Resolver struct {
	repo       catalog.ProductRepository
	printer    *message.Printer
	decimalSep string
	location   *time.Location
	clock      Clock
}

// NewResolver creates a Resolver. Zero values fall back to English, UTC and
// the wall clock.
func NewResolver(repo catalog.ProductRepository, cfg ResolverConfig) *Resolver {
	if cfg.Locale == language.Und {
		cfg.Locale = language.English
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Clock == nil {
		cfg.Clock = ClockFunc(time.Now)
	}
	printer := message.NewPrinter(cfg.Locale)
	return &Resolver{
		repo:       repo,
		printer:    printer,
		decimalSep: decimalSeparator(printer),
		location:   cfg.Location,
		clock:      cfg.Clock,
	}
}

// decimalSeparator is whatever the locale prints between 0 and 5 in "0.5"
func decimalSeparator(p *message.Printer) string {
	half := []rune(p.Sprint(number.Decimal(0.5, number.Scale(1))))
	if len(half) < 3 {
		return "."
	}
	return string(half[1 : len(half)-1])
}

// Resolve loads the product and builds its label data. A variation takes its
// parent's name with its own weight and price.
func (r *Resolver) Resolve(ctx context.Context, productID uint64) (*label.Data, error) {
	if productID == 0 {
		return nil, ErrProductIDRequired
	}

	entry, err := r.find(ctx, productID)
	if err != nil {
		return nil, err
	}

	base := entry.Fields()
	name := base.Name
	if v, ok := entry.(*catalog.Variation); ok {
		parent, err := r.find(ctx, v.ParentID)
		if err != nil {
			return nil, err
		}
		name = parent.Fields().Name
	}

	data := &label.Data{
		Name:  name,
		Price: r.FormatPrice(base.RegularPrice),
		Date:  r.clock.Now().In(r.location).Format(DateLayout),
	}
	if base.HasWeight() {
		data.Weight = base.Weight.Decimal.String()
	}
	return data, nil
}

func (r *Resolver) find(ctx context.Context, id uint64) (catalog.Entry, error) {
	if id == 0 {
		return nil, ErrInvalidProduct
	}
	entry, err := r.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrInvalidProduct
		}
		return nil, fmt.Errorf("load product %d: %w", id, err)
	}
	if entry == nil {
		return nil, ErrInvalidProduct
	}
	return entry, nil
}

// FormatPrice renders a price with two decimals and the locale's grouping.
// An empty price renders as an empty string. The whole and fractional parts
// are formatted as integers so no digit passes through a float; amounts past
// the int64 range fall back to ungrouped digits.
func (r *Resolver) FormatPrice(price decimal.NullDecimal) string {
	if !price.Valid {
		return ""
	}
	amount := price.Decimal.Round(2)
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	whole := amount.Truncate(0)
	if !whole.Equal(decimal.NewFromInt(whole.IntPart())) {
		return sign + amount.StringFixed(2)
	}
	cents := amount.Sub(whole).Shift(2).IntPart()
	return sign +
		r.printer.Sprint(number.Decimal(whole.IntPart())) +
		r.decimalSep +
		r.printer.Sprint(number.Decimal(cents, number.MinIntegerDigits(2)))
}
