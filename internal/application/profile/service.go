// Package profile implements the onboarding use cases: storing a user's
// dietary profile and deriving calorie guidance from it.
package profile

import (
	"context"
	"strings"

	"github.com/smartmeal/planner/internal/domain/profile"
	"github.com/smartmeal/planner/internal/ports/inbound"
	"github.com/smartmeal/planner/internal/ports/outbound"
	"github.com/smartmeal/planner/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/smartmeal/planner/internal/application/profile"

// Service implements inbound.ProfileService
type Service struct {
	profiles outbound.ProfileRepository
	tracer   trace.Tracer
	logger   *zap.Logger
}

var _ inbound.ProfileService = (*Service)(nil)

// NewService creates a new profile service
func NewService(profiles outbound.ProfileRepository, logger *zap.Logger) *Service {
	return &Service{
		profiles: profiles,
		tracer:   otel.Tracer(tracerName),
		logger:   logger.Named("profile-service"),
	}
}

// SaveProfile validates and stores a complete profile, replacing any
// earlier one for the same user.
func (s *Service) SaveProfile(ctx context.Context, p profile.Profile) (*inbound.ProfileDTO, error) {
	ctx, span := s.tracer.Start(ctx, "profile.save", trace.WithAttributes(
		attribute.String("user.id", p.UserID),
	))
	defer span.End()

	p = normalize(p)
	if err := p.Validate(); err != nil {
		s.logger.Debug("Rejected profile", zap.String("user_id", p.UserID), zap.Error(err))
		return nil, s.fail(span, errors.NewInvalidProfileError(err))
	}

	saved, err := s.profiles.Save(ctx, &p)
	if err != nil {
		return nil, s.fail(span, errors.NewDatabaseError("save profile", err))
	}

	s.logger.Info("Profile saved",
		zap.String("user_id", saved.UserID),
		zap.String("goal", string(saved.Goal)),
		zap.String("diet_type", string(saved.DietType)),
	)

	return toDTO(saved), nil
}

// UpdateProfile merges patch into the stored profile
func (s *Service) UpdateProfile(ctx context.Context, userID string, patch profile.Patch) (*inbound.ProfileDTO, error) {
	ctx, span := s.tracer.Start(ctx, "profile.update", trace.WithAttributes(
		attribute.String("user.id", userID),
	))
	defer span.End()

	current, err := s.find(ctx, userID)
	if err != nil {
		return nil, s.fail(span, err)
	}

	next := normalize(current.Apply(patch))
	if err := next.Validate(); err != nil {
		return nil, s.fail(span, errors.NewInvalidProfileError(err))
	}

	saved, err := s.profiles.Save(ctx, &next)
	if err != nil {
		return nil, s.fail(span, errors.NewDatabaseError("save profile", err))
	}

	s.logger.Info("Profile updated", zap.String("user_id", userID))
	return toDTO(saved), nil
}

// GetProfile returns the stored profile with its recommendation
func (s *Service) GetProfile(ctx context.Context, userID string) (*inbound.ProfileDTO, error) {
	p, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toDTO(p), nil
}

// GetRecommendation returns only the calorie guidance for userID
func (s *Service) GetRecommendation(ctx context.Context, userID string) (*inbound.RecommendationDTO, error) {
	p, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}

	rec, err := recommend(*p)
	if err != nil {
		return nil, errors.NewInvalidProfileError(err)
	}
	return rec, nil
}

func (s *Service) find(ctx context.Context, userID string) (*profile.Profile, error) {
	p, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("find profile", err)
	}
	if p == nil {
		return nil, errors.NewProfileNotFoundError(userID)
	}
	return p, nil
}

func (s *Service) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func toDTO(p *profile.Profile) *inbound.ProfileDTO {
	dto := &inbound.ProfileDTO{Profile: p.Clone()}
	if rec, err := recommend(*p); err == nil {
		dto.Recommendation = rec
	}
	return dto
}

func recommend(p profile.Profile) (*inbound.RecommendationDTO, error) {
	r, err := profile.Recommend(p)
	if err != nil {
		return nil, err
	}
	return &inbound.RecommendationDTO{
		BMR:                 r.BMR,
		RecommendedCalories: r.RecommendedCalories,
		MaxDailyCalories:    r.MaxDailyCalories,
	}, nil
}

// normalize trims list entries and drops blanks so filters never match on
// empty strings.
func normalize(p profile.Profile) profile.Profile {
	p.UserID = strings.TrimSpace(p.UserID)
	p.Restrictions = clean(p.Restrictions)
	p.Allergies = clean(p.Allergies)
	p.FavoriteIngredients = clean(p.FavoriteIngredients)
	p.DislikedIngredients = clean(p.DislikedIngredients)
	return p
}

func clean(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if v := strings.TrimSpace(item); v != "" {
			out = append(out, v)
		}
	}
	return out
}
