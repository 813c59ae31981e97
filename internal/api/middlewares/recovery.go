package middlewares

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"newsblog/internal/api/models"
	"newsblog/pkg/logger"
)

// Recovery middleware recovers from panics
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.WithFields(map[string]interface{}{
			"request_id": c.GetString(ContextRequestID),
			"path":       c.Request.URL.Path,
			"panic":      fmt.Sprint(recovered),
		}).Error("Recovered from panic")

		c.AbortWithStatusJSON(http.StatusInternalServerError, models.BaseResponse{
			Success: false,
			Error: &models.ErrorInfo{
				Code:    models.ErrCodeInternalError,
				Message: "Internal server error",
			},
			Timestamp: time.Now().Unix(),
			RequestID: c.GetString(ContextRequestID),
		})
	})
}
