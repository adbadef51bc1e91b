package upload

import (
	"context"

	"gorm.io/gorm"
)

type FileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) *FileRepository {
	return &FileRepository{db: db}
}

func (r *FileRepository) Create(ctx context.Context, u *Upload) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *FileRepository) GetByID(ctx context.Context, id string) (*Upload, error) {
	var u Upload
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// Delete removes the record only while it still belongs to u.UserID. A row
// already deleted by another request reports gorm.ErrRecordNotFound.
func (r *FileRepository) Delete(ctx context.Context, u *Upload) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", u.ID, u.UserID).
		Delete(&Upload{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByUserID returns newest first. An empty purpose lists every file.
func (r *FileRepository) ListByUserID(ctx context.Context, userID int64, purpose Purpose) ([]Upload, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if purpose != "" {
		q = q.Where("purpose = ?", purpose)
	}
	var uploads []Upload
	if err := q.Order("created_at DESC").Order("id DESC").Find(&uploads).Error; err != nil {
		return nil, err
	}
	return uploads, nil
}
