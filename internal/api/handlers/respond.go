package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"newsblog/internal/api/middlewares"
	"newsblog/internal/api/models"
)

func respondError(c *gin.Context, apiErr *models.APIError) {
	c.AbortWithStatusJSON(apiErr.StatusCode, apiErr.Response(c.GetString(middlewares.ContextRequestID)))
}

// currentUser returns the identity bound by the auth gate, or answers 401
func currentUser(c *gin.Context) (int64, string, bool) {
	userID, username, ok := middlewares.CurrentUser(c)
	if !ok {
		respondError(c, models.ErrNotAuthenticated())
	}
	return userID, username, ok
}

// bindingError turns a gin binding failure into a 400 with per-field messages
func bindingError(err error) *models.APIError {
	apiErr := models.NewAPIError(models.ErrCodeValidation, "Invalid request body", http.StatusBadRequest)

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			apiErr.WithField(fe.Field(), fieldMessage(fe))
		}
		return apiErr
	}
	return apiErr.WithDetails(err.Error())
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "is invalid"
	}
}
