package label

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/codewithomar/LPWC/internal/domain/catalog"
	"github.com/codewithomar/LPWC/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// memoryCatalog is an in-memory catalog.ProductRepository for tests. Top-level
// entries are listed in insertion order.
type memoryCatalog struct {
	entries     map[uint64]catalog.Entry
	order       []uint64
	returnError error
	lastFilter  shared.Filter
}

func newMemoryCatalog() *memoryCatalog {
	return &memoryCatalog{entries: make(map[uint64]catalog.Entry)}
}

func (m *memoryCatalog) add(entries ...catalog.Entry) *memoryCatalog {
	for _, e := range entries {
		m.entries[e.GetID()] = e
		if e.Type().IsTopLevel() {
			m.order = append(m.order, e.GetID())
		}
	}
	return m
}

func (m *memoryCatalog) FindByID(_ context.Context, id uint64) (catalog.Entry, error) {
	if m.returnError != nil {
		return nil, m.returnError
	}
	e, ok := m.entries[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return e, nil
}

func (m *memoryCatalog) Search(_ context.Context, filter shared.Filter) ([]catalog.Entry, int64, error) {
	m.lastFilter = filter
	if m.returnError != nil {
		return nil, 0, m.returnError
	}
	total := len(m.order)
	start := filter.Offset()
	if start > total {
		start = total
	}
	end := start + filter.PageSize
	if end > total {
		end = total
	}
	var page []catalog.Entry
	for _, id := range m.order[start:end] {
		page = append(page, m.entries[id])
	}
	return page, int64(total), nil
}

func (m *memoryCatalog) FindActiveVariations(_ context.Context, parentID uint64) ([]*catalog.Variation, error) {
	if m.returnError != nil {
		return nil, m.returnError
	}
	var out []*catalog.Variation
	for _, e := range m.entries {
		v, ok := e.(*catalog.Variation)
		if ok && v.ParentID == parentID && v.IsActive() {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MenuOrder != out[j].MenuOrder {
			return out[i].MenuOrder < out[j].MenuOrder
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

var errDatabase = errors.New("database unavailable")

func money(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func simple(id uint64, name, weight, price string) *catalog.SimpleProduct {
	p := &catalog.SimpleProduct{Base: catalog.Base{
		ID:        id,
		Name:      name,
		Status:    catalog.ProductStatusPublish,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}}
	if weight != "" {
		p.Weight = money(weight)
	}
	if price != "" {
		p.RegularPrice = money(price)
	}
	return p
}

func variable(id uint64, name string) *catalog.VariableProduct {
	return &catalog.VariableProduct{Base: catalog.Base{
		ID:     id,
		Name:   name,
		Status: catalog.ProductStatusPublish,
	}}
}

func variation(id, parentID uint64, attrs, weight, price string) *catalog.Variation {
	v := &catalog.Variation{
		Base: catalog.Base{
			ID:        id,
			Status:    catalog.ProductStatusPublish,
			MenuOrder: int(id),
		},
		ParentID:   parentID,
		Attributes: attrs,
	}
	if weight != "" {
		v.Weight = money(weight)
	}
	if price != "" {
		v.RegularPrice = money(price)
	}
	return v
}
