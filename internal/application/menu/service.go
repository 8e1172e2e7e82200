// Package menu provides the application layer for menu planning.
// This implements the use cases defined in the inbound ports.
package menu

import (
	"context"
	stderrors "errors"

	"github.com/smartmeal/planner/internal/domain/menu"
	"github.com/smartmeal/planner/internal/domain/profile"
	"github.com/smartmeal/planner/internal/domain/recipe"
	"github.com/smartmeal/planner/internal/domain/shared"
	"github.com/smartmeal/planner/internal/ports/inbound"
	"github.com/smartmeal/planner/internal/ports/outbound"
	"github.com/smartmeal/planner/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/smartmeal/planner/internal/application/menu"

// Options tune menu generation
type Options struct {
	// FilterByProfile narrows candidates with the caller's dietary profile.
	FilterByProfile bool
	// NewMealID overrides meal id generation. Nil uses random UUIDs.
	NewMealID menu.IDGenerator
}

// Service implements the menu use cases
type Service struct {
	menus    outbound.MenuRepository
	recipes  outbound.RecipeRepository
	profiles outbound.ProfileRepository
	events   outbound.EventPublisher
	picker   recipe.Picker
	opts     Options
	tracer   trace.Tracer
	logger   *zap.Logger
}

var _ inbound.MenuService = (*Service)(nil)

// NewService creates a new menu service
func NewService(
	menus outbound.MenuRepository,
	recipes outbound.RecipeRepository,
	profiles outbound.ProfileRepository,
	events outbound.EventPublisher,
	picker recipe.Picker,
	opts Options,
	logger *zap.Logger,
) *Service {
	if opts.NewMealID == nil {
		opts.NewMealID = menu.NewMealID
	}
	return &Service{
		menus:    menus,
		recipes:  recipes,
		profiles: profiles,
		events:   events,
		picker:   picker,
		opts:     opts,
		tracer:   otel.Tracer(tracerName),
		logger:   logger.Named("menu-service"),
	}
}

// GenerateMenu builds and stores a new pending menu for userID
func (s *Service) GenerateMenu(ctx context.Context, userID string, req menu.GenerationRequest) (*inbound.MenuDTO, error) {
	ctx, span := s.tracer.Start(ctx, "menu.generate", trace.WithAttributes(
		attribute.String("user.id", userID),
		attribute.Int("menu.days", req.Days),
		attribute.Int("menu.meals_per_day", len(req.MealsPerDay)),
	))
	defer span.End()

	s.logger.Info("Generating menu",
		zap.String("user_id", userID),
		zap.Time("start_date", req.StartDate),
		zap.Int("days", req.Days),
		zap.Int("meals_per_day", len(req.MealsPerDay)),
	)

	if err := req.Validate(); err != nil {
		return nil, s.fail(span, errors.NewInvalidMenuRequestError(err))
	}

	candidates, err := s.candidates(ctx, userID, req.MealsPerDay, len(req.MealsPerDay), req.Servings, req.MaxCaloriesPerDay)
	if err != nil {
		return nil, s.fail(span, err)
	}

	entity, err := menu.Generate(userID, req, candidates, s.picker, s.opts.NewMealID)
	if err != nil {
		if stderrors.Is(err, menu.ErrInvalidRequest) {
			return nil, s.fail(span, errors.NewInvalidMenuRequestError(err))
		}
		return nil, s.fail(span, errors.Wrap(err, "failed to generate menu"))
	}

	created, err := s.menus.Create(ctx, entity)
	if err != nil {
		return nil, s.fail(span, errors.NewDatabaseError("create menu", err))
	}

	created.RecordGenerated()
	s.publish(ctx, created.Events())

	expected := len(req.MealsPerDay) * req.Days
	if got := created.MealCount(); got < expected {
		s.logger.Warn("Menu generated with missing meals",
			zap.String("menu_id", created.ID),
			zap.Int("expected_meals", expected),
			zap.Int("meals", got),
		)
	}

	span.SetAttributes(attribute.String("menu.id", created.ID))
	s.logger.Info("Menu generated successfully",
		zap.String("menu_id", created.ID),
		zap.String("user_id", userID),
		zap.Int("meals", created.MealCount()),
	)

	return ToDTO(created), nil
}

// RegenerateSelectedMeals replaces the recipe of every selected meal
func (s *Service) RegenerateSelectedMeals(ctx context.Context, cmd inbound.RegenerateMealsCommand) (*inbound.RegenerationResult, error) {
	ctx, span := s.tracer.Start(ctx, "menu.regenerate_meals", trace.WithAttributes(
		attribute.String("menu.id", cmd.MenuID),
		attribute.Int("menu.selected_meals", len(cmd.MealIDs)),
	))
	defer span.End()

	s.logger.Info("Regenerating meals",
		zap.String("menu_id", cmd.MenuID),
		zap.String("user_id", cmd.CallerID),
		zap.Int("selected", len(cmd.MealIDs)),
	)

	entity, err := s.findOwned(ctx, cmd.MenuID, cmd.CallerID, "modify this menu")
	if err != nil {
		return nil, s.fail(span, err)
	}

	if len(cmd.MealIDs) == 0 {
		return nil, s.fail(span, errors.NewInvalidMenuRequestError(menu.ErrNoMealsSelected))
	}

	candidates, err := s.candidates(ctx, cmd.CallerID, entity.MealTypesOf(cmd.MealIDs), len(entity.MealsPerDay), entity.ServingsPerMeal, entity.MaxCaloriesPerDay)
	if err != nil {
		return nil, s.fail(span, err)
	}

	replacements, err := entity.RegenerateMeals(cmd.MealIDs, candidates, s.picker, s.opts.NewMealID)
	if err != nil {
		if stderrors.Is(err, menu.ErrNoMealsSelected) {
			return nil, s.fail(span, errors.NewInvalidMenuRequestError(err))
		}
		return nil, s.fail(span, errors.Wrap(err, "failed to regenerate meals"))
	}

	updated, err := s.menus.Update(ctx, entity.ID, menu.Patch{Days: entity.Days})
	if err != nil {
		return nil, s.fail(span, errors.NewDatabaseError("update menu", err))
	}
	if updated == nil {
		return nil, s.fail(span, errors.NewMenuNotFoundError(cmd.MenuID))
	}

	s.publish(ctx, entity.Events())

	s.logger.Info("Meals regenerated",
		zap.String("menu_id", cmd.MenuID),
		zap.Int("requested", len(cmd.MealIDs)),
		zap.Int("regenerated", len(replacements)),
	)

	return &inbound.RegenerationResult{
		Menu:         ToDTO(updated),
		Replacements: toReplacementDTOs(replacements),
	}, nil
}

// ConfirmMenu marks a menu active
func (s *Service) ConfirmMenu(ctx context.Context, menuID, callerID string) (*inbound.MenuDTO, error) {
	ctx, span := s.tracer.Start(ctx, "menu.confirm", trace.WithAttributes(
		attribute.String("menu.id", menuID),
	))
	defer span.End()

	entity, err := s.findOwned(ctx, menuID, callerID, "confirm this menu")
	if err != nil {
		return nil, s.fail(span, err)
	}

	entity.Confirm()

	status := menu.StatusActive
	updated, err := s.menus.Update(ctx, entity.ID, menu.Patch{Status: &status})
	if err != nil {
		return nil, s.fail(span, errors.NewDatabaseError("update menu", err))
	}
	if updated == nil {
		return nil, s.fail(span, errors.NewMenuNotFoundError(menuID))
	}

	s.publish(ctx, entity.Events())

	s.logger.Info("Menu confirmed",
		zap.String("menu_id", menuID),
		zap.String("user_id", callerID),
	)

	return ToDTO(updated), nil
}

// GetMenu returns one menu owned by callerID
func (s *Service) GetMenu(ctx context.Context, menuID, callerID string) (*inbound.MenuDTO, error) {
	entity, err := s.findOwned(ctx, menuID, callerID, "view this menu")
	if err != nil {
		return nil, err
	}
	return ToDTO(entity), nil
}

// ListMenus returns the user's menus, newest first
func (s *Service) ListMenus(ctx context.Context, userID string) ([]*inbound.MenuDTO, error) {
	menus, err := s.menus.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("list menus", err)
	}

	out := make([]*inbound.MenuDTO, len(menus))
	for i, m := range menus {
		out[i] = ToDTO(m)
	}
	return out, nil
}

// GetStats summarises the user's menus
func (s *Service) GetStats(ctx context.Context, userID string) (*menu.Stats, error) {
	menus, err := s.menus.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("list menus", err)
	}

	stats := menu.ComputeStats(menus)
	return &stats, nil
}

func (s *Service) findOwned(ctx context.Context, menuID, callerID, action string) (*menu.WeeklyMenu, error) {
	entity, err := s.menus.FindByID(ctx, menuID)
	if err != nil {
		return nil, errors.NewDatabaseError("find menu", err)
	}
	if entity == nil {
		return nil, errors.NewMenuNotFoundError(menuID)
	}
	if !entity.IsOwnedBy(callerID) {
		s.logger.Warn("Menu access denied",
			zap.String("menu_id", menuID),
			zap.String("user_id", callerID),
		)
		return nil, errors.NewInsufficientPermissionsError(action)
	}
	return entity, nil
}

// candidates loads the recipes for each meal type. With profile filtering
// on, a type the filter would empty keeps its unfiltered recipes. slots is
// the number of meals per day the calorie ceiling is split across.
func (s *Service) candidates(ctx context.Context, userID string, mealTypes []recipe.MealType, slots, servings, dailyCeiling int) (menu.Candidates, error) {
	var filter recipe.Filter = recipe.AllowAll
	if s.opts.FilterByProfile && s.profiles != nil {
		p, err := s.profiles.FindByUserID(ctx, userID)
		if err != nil {
			return nil, errors.NewDatabaseError("find profile", err)
		}
		if p != nil {
			filter = profile.RecipeCriteria(*p, slots, servings, dailyCeiling)
		}
	}

	out := make(menu.Candidates, len(mealTypes))
	for _, mt := range mealTypes {
		if _, done := out[mt]; done {
			continue
		}

		all, err := s.recipes.FindByMealType(ctx, mt)
		if err != nil {
			return nil, errors.NewDatabaseError("load recipes", err)
		}
		if len(all) == 0 {
			s.logger.Warn("No recipes for meal type", zap.String("meal_type", string(mt)))
		}

		filtered := recipe.Apply(all, filter)
		if len(filtered) == 0 && len(all) > 0 {
			s.logger.Debug("Profile filter removed every recipe, using full catalog",
				zap.String("user_id", userID),
				zap.String("meal_type", string(mt)),
			)
			filtered = all
		}
		out[mt] = filtered
	}
	return out, nil
}

func (s *Service) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.events == nil || len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish events", zap.Int("count", len(events)), zap.Error(err))
	}
}

func (s *Service) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
