package gorm

import (
	"context"
	"errors"
	"time"

	"github.com/smartmeal/planner/internal/domain/menu"
	"github.com/smartmeal/planner/internal/ports/outbound"
	"gorm.io/gorm"
)

// MenuRepository implements the menu store using GORM
type MenuRepository struct {
	db  *gorm.DB
	now func() time.Time
}

var _ outbound.MenuRepository = (*MenuRepository)(nil)

// NewMenuRepository creates a new menu repository
func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{db: db, now: time.Now}
}

// FindByUserID returns the user's menus, newest first
func (r *MenuRepository) FindByUserID(ctx context.Context, userID string) ([]*menu.WeeklyMenu, error) {
	var models []MenuModel

	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	menus := make([]*menu.WeeklyMenu, len(models))
	for i := range models {
		menus[i] = ModelToMenu(&models[i])
	}
	return menus, nil
}

// FindByID returns nil, nil when the menu does not exist
func (r *MenuRepository) FindByID(ctx context.Context, id string) (*menu.WeeklyMenu, error) {
	model, err := r.find(r.db.WithContext(ctx), id)
	if err != nil || model == nil {
		return nil, err
	}
	return ModelToMenu(model), nil
}

// Create stores m under a fresh id with fresh timestamps
func (r *MenuRepository) Create(ctx context.Context, m *menu.WeeklyMenu) (*menu.WeeklyMenu, error) {
	model := MenuToModel(m)
	model.ID = ""

	now := r.now().UTC().Truncate(time.Microsecond)
	model.CreatedAt = now
	model.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, err
	}

	return ModelToMenu(model), nil
}

// Update merges patch into the stored menu inside a transaction
func (r *MenuRepository) Update(ctx context.Context, id string, patch menu.Patch) (*menu.WeeklyMenu, error) {
	var updated *menu.WeeklyMenu

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model, err := r.find(tx, id)
		if err != nil || model == nil {
			return err
		}

		m := ModelToMenu(model)
		m.Apply(patch)
		m.UpdatedAt = r.now().UTC().Truncate(time.Microsecond)

		next := MenuToModel(m)
		if err := tx.Save(next).Error; err != nil {
			return err
		}

		updated = ModelToMenu(next)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *MenuRepository) find(db *gorm.DB, id string) (*MenuModel, error) {
	var model MenuModel

	result := db.First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return &model, nil
}
