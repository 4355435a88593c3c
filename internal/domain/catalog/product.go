package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ProductType is the discriminator of a catalog entry
type ProductType string

const (
	ProductTypeSimple    ProductType = "simple"
	ProductTypeVariable  ProductType = "variable"
	ProductTypeVariation ProductType = "variation"
	ProductTypeGrouped   ProductType = "grouped"
	ProductTypeExternal  ProductType = "external"
)

// IsValid checks if the ProductType is a known value
func (t ProductType) IsValid() bool {
	switch t {
	case ProductTypeSimple, ProductTypeVariable, ProductTypeVariation,
		ProductTypeGrouped, ProductTypeExternal:
		return true
	}
	return false
}

// IsTopLevel reports whether entries of this type are listed on their own.
// Variations only appear through their parent.
func (t ProductType) IsTopLevel() bool {
	return t.IsValid() && t != ProductTypeVariation
}

// ProductStatus is the publication status of a catalog entry
type ProductStatus string

const (
	ProductStatusPublish ProductStatus = "publish"
	ProductStatusPrivate ProductStatus = "private"
	ProductStatusDraft   ProductStatus = "draft"
	ProductStatusPending ProductStatus = "pending"
	ProductStatusTrash   ProductStatus = "trash"
)

// ListableStatuses are the statuses an operator sees in the catalog browser
func ListableStatuses() []ProductStatus {
	return []ProductStatus{ProductStatusPublish, ProductStatusPrivate}
}

// Entry is a catalog record. The set of implementations is closed:
// *SimpleProduct, *VariableProduct and *Variation.
type Entry interface {
	GetID() uint64
	Type() ProductType
	Fields() *Base
	isEntry()
}

// Base holds the fields every catalog entry carries
type Base struct {
	ID           uint64
	Name         string
	Status       ProductStatus
	Weight       decimal.NullDecimal // grams
	RegularPrice decimal.NullDecimal
	MenuOrder    int
	CreatedAt    time.Time
}

// GetID returns the entry ID
func (b *Base) GetID() uint64 {
	return b.ID
}

// Fields exposes the common fields
func (b *Base) Fields() *Base {
	return b
}

// HasWeight reports whether a non-zero weight is set
func (b *Base) HasWeight() bool {
	return b.Weight.Valid && !b.Weight.Decimal.IsZero()
}

// HasPrice reports whether a regular price is set
func (b *Base) HasPrice() bool {
	return b.RegularPrice.Valid
}

// IsActive reports whether the entry is published
func (b *Base) IsActive() bool {
	return b.Status == ProductStatusPublish
}

// SimpleProduct is a standalone purchasable product. Grouped and external
// products are carried as simple products with their own Kind.
type SimpleProduct struct {
	Base
	Kind ProductType
}

// Type returns the product type
func (p *SimpleProduct) Type() ProductType {
	if p.Kind == "" {
		return ProductTypeSimple
	}
	return p.Kind
}

func (*SimpleProduct) isEntry() {}

// VariableProduct is a product sold through its variations
type VariableProduct struct {
	Base
}

// Type returns the product type
func (*VariableProduct) Type() ProductType {
	return ProductTypeVariable
}

func (*VariableProduct) isEntry() {}

// Variation is a purchasable configuration of a variable product.
// Weight and price always come from the variation itself.
type Variation struct {
	Base
	ParentID   uint64
	Attributes string // e.g. "1kg, Red"
}

// Type returns the product type
func (*Variation) Type() ProductType {
	return ProductTypeVariation
}

func (*Variation) isEntry() {}

// DisplayName returns the name shown for the variation in listings.
// A stored name wins; otherwise it is "<parent> - <attributes>".
func (v *Variation) DisplayName(parentName string) string {
	if name := strings.TrimSpace(v.Name); name != "" {
		return name
	}
	attrs := strings.TrimSpace(v.Attributes)
	if attrs == "" {
		return parentName
	}
	if parentName == "" {
		return attrs
	}
	return parentName + " - " + attrs
}

// Ensure all entry kinds implement Entry
var (
	_ Entry = (*SimpleProduct)(nil)
	_ Entry = (*VariableProduct)(nil)
	_ Entry = (*Variation)(nil)
)
