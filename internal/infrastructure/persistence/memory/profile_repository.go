package memory

import (
	"context"
	"sync"
	"time"

	"github.com/smartmeal/planner/internal/domain/profile"
	"github.com/smartmeal/planner/internal/ports/outbound"
)

// ProfileRepository keeps one profile per user id
type ProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]profile.Profile
	now      func() time.Time
}

var _ outbound.ProfileRepository = (*ProfileRepository)(nil)

// NewProfileRepository creates an empty profile store
func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{
		profiles: make(map[string]profile.Profile),
		now:      time.Now,
	}
}

// FindByUserID returns nil, nil when the user has no profile
func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*profile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[userID]
	if !ok {
		return nil, nil
	}
	c := p.Clone()
	return &c, nil
}

// Save upserts the profile. CreatedAt survives replacement.
func (r *ProfileRepository) Save(ctx context.Context, p *profile.Profile) (*profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := p.Clone()
	now := r.now().UTC()
	if existing, ok := r.profiles[p.UserID]; ok {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	r.profiles[p.UserID] = stored

	out := stored.Clone()
	return &out, nil
}
