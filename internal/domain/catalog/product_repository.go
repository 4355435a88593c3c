package catalog

import (
	"context"

	"github.com/codewithomar/LPWC/internal/domain/shared"
)

// ProductRepository is the read-only port onto the external catalog store
type ProductRepository interface {
	// FindByID finds any entry (including variations) by ID.
	// Returns shared.ErrNotFound when nothing matches.
	FindByID(ctx context.Context, id uint64) (Entry, error)

	// Search returns one page of top-level entries matching filter.Search
	// together with the total number of matching top-level entries.
	Search(ctx context.Context, filter shared.Filter) ([]Entry, int64, error)

	// FindActiveVariations returns the published variations of a variable product
	// in display order
	FindActiveVariations(ctx context.Context, parentID uint64) ([]*Variation, error)
}
