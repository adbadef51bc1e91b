package catalog

import (
	"context"
	"encoding/json"
	"strings"

	"gorm.io/gorm"

	"talentnest/internal/database"
)

type ListFilter struct {
	Query    string
	Category string
	Limit    int
	Offset   int
}

type ListingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

func (r *ListingRepository) Create(ctx context.Context, l *Listing) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *ListingRepository) GetByID(ctx context.Context, id int64) (*Listing, error) {
	var l Listing
	if err := r.db.WithContext(ctx).First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

// detailColumns are the owner-editable columns. Status, visibility and the
// counters are written by their own methods only.
var detailColumns = []string{
	"title", "description", "category", "subcategory", "price_range",
	"delivery_time", "tags", "portfolio_urls", "updated_at",
}

// UpdateDetails writes the owner-editable columns of l and nothing else.
func (r *ListingRepository) UpdateDetails(ctx context.Context, l *Listing) error {
	res := r.db.WithContext(ctx).Model(l).Select(detailColumns).Updates(l)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ListingRepository) UpdateStatus(ctx context.Context, id int64, status Status, isActive bool) error {
	return r.updateColumns(ctx, id, map[string]any{"status": status, "is_active": isActive})
}

func (r *ListingRepository) SetActive(ctx context.Context, id int64, active bool) error {
	return r.updateColumns(ctx, id, map[string]any{"is_active": active})
}

func (r *ListingRepository) updateColumns(ctx context.Context, id int64, cols map[string]any) error {
	res := r.db.WithContext(ctx).Model(&Listing{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ListingRepository) IncrementViews(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&Listing{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// IncrementOrders bumps order_count. Pass a transaction handle to keep it
// atomic with booking creation.
func IncrementOrders(tx *gorm.DB, id int64) error {
	return tx.Model(&Listing{}).Where("id = ?", id).
		UpdateColumn("order_count", gorm.Expr("order_count + 1")).Error
}

// ListDiscoverable returns active+approved listings, newest first.
func (r *ListingRepository) ListDiscoverable(ctx context.Context, f ListFilter) ([]Listing, int64, error) {
	q := r.db.WithContext(ctx).Model(&Listing{}).
		Where("is_active = ? AND status = ?", true, StatusActive)

	if s := strings.TrimSpace(f.Query); s != "" {
		like := database.ContainsPattern(s)
		q = q.Where("LOWER(title) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\' OR LOWER(tags) LIKE ? ESCAPE '\\'",
			like, like, database.ContainsPattern(jsonText(s)))
	}
	if c := strings.TrimSpace(f.Category); c != "" {
		q = q.Where("LOWER(category) = ?", strings.ToLower(c))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []Listing
	err := q.Order("created_at DESC, id DESC").Limit(f.Limit).Offset(f.Offset).Find(&out).Error
	return out, total, err
}

func (r *ListingRepository) ListByOwner(ctx context.Context, ownerID int64) ([]Listing, error) {
	var out []Listing
	err := r.db.WithContext(ctx).Where("user_id = ?", ownerID).Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

// jsonText is s as it appears inside the json-serialized tags column, so
// characters like & (stored as \u0026) still match.
func jsonText(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return s
	}
	return string(b[1 : len(b)-1])
}
