// Package handlers provides the gin handlers of the SmartMeal JSON API
package handlers

import (
	"encoding/json"
	stderrors "errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/smartmeal/planner/internal/infrastructure/security"
	"github.com/smartmeal/planner/pkg/errors"
)

// Validator checks request payloads against their struct tags
type Validator interface {
	ValidateStruct(s interface{}) error
}

// bindJSON decodes the body into dst and validates it. On failure the error
// is attached to the context and false is returned. An empty body is
// accepted when allowEmpty is set.
func bindJSON(c *gin.Context, v Validator, dst interface{}, allowEmpty bool) bool {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if !(allowEmpty && stderrors.Is(err, io.EOF)) {
			_ = c.Error(errors.NewBadRequestError("Invalid JSON payload").WithCause(err))
			return false
		}
	}

	if err := v.ValidateStruct(dst); err != nil {
		_ = c.Error(err)
		return false
	}
	return true
}

// callerID returns the authenticated user or attaches 401
func callerID(c *gin.Context) (string, bool) {
	userID := security.UserID(c)
	if userID == "" {
		_ = c.Error(errors.NewUnauthorizedError("Authentication required"))
		return "", false
	}
	return userID, true
}
