package gorm

import (
	"context"
	"errors"
	"time"

	"github.com/smartmeal/planner/internal/domain/profile"
	"github.com/smartmeal/planner/internal/ports/outbound"
	"gorm.io/gorm"
)

// ProfileRepository implements the profile store using GORM
type ProfileRepository struct {
	db  *gorm.DB
	now func() time.Time
}

var _ outbound.ProfileRepository = (*ProfileRepository)(nil)

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db, now: time.Now}
}

// FindByUserID returns nil, nil when the user has no profile
func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*profile.Profile, error) {
	var model ProfileModel

	result := r.db.WithContext(ctx).First(&model, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return ModelToProfile(&model), nil
}

// Save upserts the profile, keeping the original creation time
func (r *ProfileRepository) Save(ctx context.Context, p *profile.Profile) (*profile.Profile, error) {
	model := ProfileToModel(p)
	now := r.now().UTC().Truncate(time.Microsecond)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing ProfileModel
		result := tx.Select("created_at").First(&existing, "user_id = ?", p.UserID)
		switch {
		case result.Error == nil:
			model.CreatedAt = existing.CreatedAt
		case errors.Is(result.Error, gorm.ErrRecordNotFound):
			model.CreatedAt = now
		default:
			return result.Error
		}
		model.UpdatedAt = now

		return tx.Save(model).Error
	})
	if err != nil {
		return nil, err
	}

	return ModelToProfile(model), nil
}
