package models

import (
	"time"

	"github.com/codewithomar/LPWC/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for a catalog entry. Products and
// their variations share one table, distinguished by Type and linked by ParentID.
type ProductModel struct {
	ID           uint64              `gorm:"primaryKey;autoIncrement"`
	ParentID     uint64              `gorm:"not null;default:0;index"`
	Type         string              `gorm:"type:varchar(20);not null;default:'simple';index"`
	Name         string              `gorm:"type:varchar(200);not null;default:''"`
	Description  string              `gorm:"type:text"`
	Status       string              `gorm:"type:varchar(20);not null;default:'publish';index"`
	Weight       decimal.NullDecimal `gorm:"type:decimal(12,3)"`
	RegularPrice decimal.NullDecimal `gorm:"type:decimal(18,4)"`
	Attributes   string              `gorm:"type:varchar(255)"`
	MenuOrder    int                 `gorm:"not null;default:0"`
	CreatedAt    time.Time           `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to the matching catalog entry.
// Unknown types are treated as simple products.
func (m *ProductModel) ToDomain() catalog.Entry {
	base := catalog.Base{
		ID:           m.ID,
		Name:         m.Name,
		Status:       catalog.ProductStatus(m.Status),
		Weight:       m.Weight,
		RegularPrice: m.RegularPrice,
		MenuOrder:    m.MenuOrder,
		CreatedAt:    m.CreatedAt,
	}

	switch t := catalog.ProductType(m.Type); t {
	case catalog.ProductTypeVariation:
		return &catalog.Variation{Base: base, ParentID: m.ParentID, Attributes: m.Attributes}
	case catalog.ProductTypeVariable:
		return &catalog.VariableProduct{Base: base}
	case catalog.ProductTypeGrouped, catalog.ProductTypeExternal:
		return &catalog.SimpleProduct{Base: base, Kind: t}
	default:
		return &catalog.SimpleProduct{Base: base}
	}
}

// FromDomain populates the persistence model from a catalog entry.
func (m *ProductModel) FromDomain(e catalog.Entry) {
	b := e.Fields()
	m.ID = b.ID
	m.Type = string(e.Type())
	m.Name = b.Name
	m.Status = string(b.Status)
	m.Weight = b.Weight
	m.RegularPrice = b.RegularPrice
	m.MenuOrder = b.MenuOrder
	m.CreatedAt = b.CreatedAt
	if v, ok := e.(*catalog.Variation); ok {
		m.ParentID = v.ParentID
		m.Attributes = v.Attributes
	}
}
