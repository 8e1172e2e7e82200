package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/smartmeal/planner/internal/domain/menu"
	"github.com/smartmeal/planner/internal/ports/outbound"
)

// MenuRepository keeps menus in a map keyed by id
type MenuRepository struct {
	mu    sync.RWMutex
	menus map[string]*menu.WeeklyMenu
	now   func() time.Time
}

var _ outbound.MenuRepository = (*MenuRepository)(nil)

// NewMenuRepository creates an empty menu store
func NewMenuRepository() *MenuRepository {
	return &MenuRepository{
		menus: make(map[string]*menu.WeeklyMenu),
		now:   time.Now,
	}
}

// FindByUserID returns the user's menus, newest first
func (r *MenuRepository) FindByUserID(ctx context.Context, userID string) ([]*menu.WeeklyMenu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*menu.WeeklyMenu
	for _, m := range r.menus {
		if m.UserID == userID {
			out = append(out, m.Clone())
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

// FindByID returns nil, nil when the menu does not exist
func (r *MenuRepository) FindByID(ctx context.Context, id string) (*menu.WeeklyMenu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.menus[id]
	if !ok {
		return nil, nil
	}
	return m.Clone(), nil
}

// Create stores a copy of m under a fresh id
func (r *MenuRepository) Create(ctx context.Context, m *menu.WeeklyMenu) (*menu.WeeklyMenu, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := m.Clone()
	stored.ID = uuid.NewString()
	for {
		if _, taken := r.menus[stored.ID]; !taken {
			break
		}
		stored.ID = uuid.NewString()
	}

	now := r.now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.menus[stored.ID] = stored

	return stored.Clone(), nil
}

// Update merges patch into the stored menu
func (r *MenuRepository) Update(ctx context.Context, id string, patch menu.Patch) (*menu.WeeklyMenu, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.menus[id]
	if !ok {
		return nil, nil
	}

	m.Apply(patch)
	m.UpdatedAt = r.now().UTC()

	return m.Clone(), nil
}
