// Package testutils provides custom assertion helpers for domain-specific testing
package testutils

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/smartmeal/planner/internal/domain/menu"
	apperrors "github.com/smartmeal/planner/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MenuAssertions provides menu-specific assertion methods
type MenuAssertions struct {
	t *testing.T
}

// NewMenuAssertions creates a new menu assertions helper
func NewMenuAssertions(t *testing.T) *MenuAssertions {
	return &MenuAssertions{t: t}
}

// DayTotalsConsistent asserts every day total equals the sum of its meals
func (ma *MenuAssertions) DayTotalsConsistent(m *menu.WeeklyMenu) {
	require.NotNil(ma.t, m, "Menu should not be nil")

	for i, day := range m.Days {
		sum := 0
		for _, meal := range day.Meals {
			sum += meal.Recipe.Calories * meal.Servings
		}
		assert.Equal(ma.t, sum, day.TotalCalories, "day %d total", i)
	}
}

// Shape asserts the date range and day count of a menu
func (ma *MenuAssertions) Shape(m *menu.WeeklyMenu, days int) {
	require.NotNil(ma.t, m, "Menu should not be nil")
	require.Len(ma.t, m.Days, days)

	assert.Equal(ma.t, days, m.TotalDays)
	assert.True(ma.t, m.EndDate.Equal(m.StartDate.AddDate(0, 0, days-1)), "end date should be start + days - 1")
	for i, day := range m.Days {
		assert.True(ma.t, day.Date.Equal(m.StartDate.AddDate(0, 0, i)), "day %d date", i)
	}
}

// MealTypesMatchRecipes asserts every meal carries its recipe's meal type
func (ma *MenuAssertions) MealTypesMatchRecipes(m *menu.WeeklyMenu) {
	require.NotNil(ma.t, m, "Menu should not be nil")

	for _, day := range m.Days {
		for _, meal := range day.Meals {
			assert.Equal(ma.t, meal.Recipe.MealType, meal.MealType, "meal %s", meal.ID)
		}
	}
}

// HTTPAssertions provides HTTP-specific assertion methods
type HTTPAssertions struct {
	t *testing.T
}

// NewHTTPAssertions creates a new HTTP assertions helper
func NewHTTPAssertions(t *testing.T) *HTTPAssertions {
	return &HTTPAssertions{t: t}
}

// StatusCode asserts the HTTP status code
func (ha *HTTPAssertions) StatusCode(rec *httptest.ResponseRecorder, expectedCode int, msgAndArgs ...interface{}) {
	require.NotNil(ha.t, rec, "Response should not be nil")
	assert.Equal(ha.t, expectedCode, rec.Code, msgAndArgs...)
}

// JSONResponse asserts that the response is valid JSON and unmarshals it
func (ha *HTTPAssertions) JSONResponse(rec *httptest.ResponseRecorder, target interface{}) {
	require.NotNil(ha.t, rec, "Response should not be nil")

	contentType := rec.Header().Get("Content-Type")
	assert.True(ha.t, strings.Contains(contentType, "application/json"),
		"Response should have JSON content type, got: %s", contentType)

	require.NoError(ha.t, json.Unmarshal(rec.Body.Bytes(), target), "Response should be valid JSON: %s", rec.Body.String())
}

// ErrorCode asserts the status and the AppError code of an error response
func (ha *HTTPAssertions) ErrorCode(rec *httptest.ResponseRecorder, status int, code apperrors.ErrorCode) apperrors.ErrorResponse {
	ha.StatusCode(rec, status, rec.Body.String())

	var resp apperrors.ErrorResponse
	ha.JSONResponse(rec, &resp)
	assert.Equal(ha.t, code, resp.Error.Code)
	return resp
}
