package verification

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"talentnest/internal/database"
	"talentnest/internal/domain/access"
	"talentnest/internal/domain/auth"
)

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, req *Request) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *requestRepository) GetByID(ctx context.Context, id int64) (*Request, error) {
	var req Request
	if err := r.db.WithContext(ctx).First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) GetByApplicant(ctx context.Context, applicantID int64) (*Request, error) {
	var req Request
	if err := r.db.WithContext(ctx).Where("applicant_id = ?", applicantID).First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) ExistsForApplicant(ctx context.Context, applicantID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Request{}).Where("applicant_id = ?", applicantID).Count(&count).Error
	return count > 0, err
}

// SetCheck persists the four sub-check flags and completeness, only while
// the request is still pending.
func (r *requestRepository) SetCheck(ctx context.Context, req *Request) error {
	res := r.db.WithContext(ctx).Model(&Request{}).
		Where("id = ? AND status = ?", req.ID, StatusPending).
		Updates(map[string]any{
			CheckMatricNumber.column(): req.MatricNumberVerified,
			CheckBusinessName.column(): req.BusinessNameVerified,
			CheckCertificates.column(): req.CertificatesVerified,
			CheckBio.column():          req.BioVerified,
			"verification_complete":    req.VerificationComplete,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInvalidStatusTransition
	}
	return nil
}

func (r *requestRepository) Review(ctx context.Context, in ReviewInput) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cols := map[string]any{
			"status":                 in.Status,
			"reviewer_id":            in.ReviewerID,
			"reviewed_at":            in.At,
			"admin_notes":            in.Notes,
			"approved_with_override": in.Override,
		}
		if in.Status == StatusRejected {
			cols["rejection_reason"] = in.Reason
		}

		res := tx.Model(&Request{}).
			Where("id = ? AND status = ?", in.RequestID, StatusPending).
			Updates(cols)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidStatusTransition
		}

		if in.Status != StatusApproved {
			return nil
		}
		return auth.SetVerified(tx, in.ApplicantID, true)
	})
}

func (r *requestRepository) List(ctx context.Context, f ListFilter) ([]Request, int64, error) {
	q := r.db.WithContext(ctx).Model(&Request{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if s := strings.TrimSpace(f.Query); s != "" {
		like := database.ContainsPattern(s)
		q = q.Where("LOWER(full_name) LIKE ? ESCAPE '\\' OR LOWER(business_name) LIKE ? ESCAPE '\\' OR LOWER(student_id) LIKE ? ESCAPE '\\'", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []Request
	err := q.Order("submitted_at DESC, id DESC").Limit(f.Limit).Offset(f.Offset).Find(&out).Error
	return out, total, err
}

// Reconcile re-derives every artisan's verified flag from the existence of
// an approved request. Returns the number of users corrected.
func (r *requestRepository) Reconcile(ctx context.Context) (int64, error) {
	var corrected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		approved := tx.Model(&Request{}).Select("applicant_id").Where("status = ?", StatusApproved)

		res := tx.Model(&auth.User{}).
			Where("role = ? AND is_verified = ? AND id IN (?)", access.RoleArtisan, false, approved).
			Update("is_verified", true)
		if res.Error != nil {
			return res.Error
		}
		corrected += res.RowsAffected

		approved = tx.Model(&Request{}).Select("applicant_id").Where("status = ?", StatusApproved)
		res = tx.Model(&auth.User{}).
			Where("role = ? AND is_verified = ? AND id NOT IN (?)", access.RoleArtisan, true, approved).
			Update("is_verified", false)
		if res.Error != nil {
			return res.Error
		}
		corrected += res.RowsAffected
		return nil
	})
	return corrected, err
}
