package security

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/smartmeal/planner/internal/domain/recipe"
	apperrors "github.com/smartmeal/planner/pkg/errors"
	"go.uber.org/zap"
)

// ValidationService validates request payloads with struct tags
type ValidationService struct {
	logger    *zap.Logger
	validator *validator.Validate
}

// NewValidationService creates a new validation service
func NewValidationService(logger *zap.Logger) *ValidationService {
	validate := validator.New()

	// Report json names rather than Go field names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	// Register custom validation rules
	_ = validate.RegisterValidation("meal_type", validateMealType)
	_ = validate.RegisterValidation("iso_date", validateISODate)
	_ = validate.RegisterValidation("ingredient", validateIngredient)

	return &ValidationService{
		logger:    logger,
		validator: validate,
	}
}

// ValidateStruct validates s and converts failures into a VALIDATION_FAILED
// AppError carrying one entry per field
func (v *ValidationService) ValidateStruct(s interface{}) error {
	err := v.validator.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		v.logger.Error("Unexpected validation failure", zap.Error(err))
		return apperrors.NewValidationError(err.Error())
	}

	out := make([]apperrors.ValidationError, 0, len(verrs))
	for _, e := range verrs {
		out = append(out, apperrors.ValidationError{
			Field:   e.Field(),
			Value:   e.Value(),
			Tag:     e.Tag(),
			Message: message(e),
		})
	}
	return apperrors.NewValidationErrors(out)
}

func message(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or more", field, e.Param())
	case "lte":
		return fmt.Sprintf("%s must be %s or less", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, e.Param())
	case "unique":
		return fmt.Sprintf("%s must not contain duplicates", field)
	case "meal_type":
		return fmt.Sprintf("%s must be breakfast, lunch, snack or dinner", field)
	case "iso_date":
		return fmt.Sprintf("%s must be a date formatted YYYY-MM-DD", field)
	case "ingredient":
		return fmt.Sprintf("%s contains an invalid ingredient name", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// Custom validation functions

func validateMealType(fl validator.FieldLevel) bool {
	return recipe.MealType(fl.Field().String()).IsValid()
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

// validateIngredient accepts printable names of at most 100 characters
// without markup
func validateIngredient(fl validator.FieldLevel) bool {
	ingredient := fl.Field().String()
	if len(ingredient) > 100 {
		return false
	}
	if strings.ContainsAny(ingredient, "<>") {
		return false
	}
	for _, r := range ingredient {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
