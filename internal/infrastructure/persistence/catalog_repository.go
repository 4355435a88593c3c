package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/codewithomar/LPWC/internal/domain/catalog"
	"github.com/codewithomar/LPWC/internal/domain/shared"
	"github.com/codewithomar/LPWC/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCatalogRepository implements catalog.ProductRepository using GORM
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GormCatalogRepository
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// FindByID finds a catalog entry of any type by its ID
func (r *GormCatalogRepository) FindByID(ctx context.Context, id uint64) (catalog.Entry, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Search returns one page of top-level entries with a listable status,
// together with the total number of matches across all pages.
func (r *GormCatalogRepository) Search(ctx context.Context, filter shared.Filter) ([]catalog.Entry, int64, error) {
	var total int64
	if err := r.searchScope(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []catalog.Entry{}, 0, nil
	}

	orderBy := ValidateSortField(filter.OrderBy, ProductSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)

	var rows []models.ProductModel
	query := r.searchScope(ctx, filter).
		Order(orderBy + " " + orderDir).
		Order("id " + orderDir)
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return toEntries(rows), total, nil
}

// FindActiveVariations returns the published variations of a variable product
// in menu order
func (r *GormCatalogRepository) FindActiveVariations(ctx context.Context, parentID uint64) ([]*catalog.Variation, error) {
	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("parent_id = ? AND type = ? AND status = ?",
			parentID, string(catalog.ProductTypeVariation), string(catalog.ProductStatusPublish)).
		Order("menu_order ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	variations := make([]*catalog.Variation, 0, len(rows))
	for i := range rows {
		if v, ok := rows[i].ToDomain().(*catalog.Variation); ok {
			variations = append(variations, v)
		}
	}
	return variations, nil
}

// searchScope builds the WHERE clause shared by the count and page queries
func (r *GormCatalogRepository) searchScope(ctx context.Context, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("type IN ?", topLevelTypes()).
		Where("status IN ?", listableStatuses())

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		query = query.Where(`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`, pattern, pattern)
	}
	return query
}

func topLevelTypes() []string {
	return []string{
		string(catalog.ProductTypeSimple),
		string(catalog.ProductTypeVariable),
		string(catalog.ProductTypeGrouped),
		string(catalog.ProductTypeExternal),
	}
}

func listableStatuses() []string {
	statuses := catalog.ListableStatuses()
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// escapeLike escapes LIKE wildcards so user input matches literally
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func toEntries(rows []models.ProductModel) []catalog.Entry {
	entries := make([]catalog.Entry, len(rows))
	for i := range rows {
		entries[i] = rows[i].ToDomain()
	}
	return entries
}

// Ensure GormCatalogRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormCatalogRepository)(nil)
