package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"newsblog/internal/api/interfaces"
	"newsblog/internal/api/middlewares"
	"newsblog/internal/api/models"
)

// GetAuditLogs returns the caller's own authentication events
func GetAuditLogs(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var page models.PaginationQuery
		if err := c.ShouldBindQuery(&page); err != nil {
			respondError(c, bindingError(err))
			return
		}

		userID, _, ok := currentUser(c)
		if !ok {
			return
		}
		logs, err := services.AuthService().AuditTrail(c.Request.Context(), userID, page.Limit, page.Offset)
		if err != nil {
			internalError(c, services, "failed to read audit logs", err)
			return
		}

		entries := models.NewAuditLogResponses(logs)
		c.JSON(http.StatusOK, models.Success("Audit logs retrieved successfully", map[string]interface{}{
			"logs":   entries,
			"limit":  page.Limit,
			"offset": page.Offset,
			"total":  len(entries),
		}, c.GetString(middlewares.ContextRequestID)))
	}
}
