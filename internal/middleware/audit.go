package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/innovax/lunch-api/internal/models"
)

type auditWriter interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// Audit appends an audit trail entry for every successful mutating request.
// Domain services record richer entries for the actions that matter; this
// is the coarse request-level trail.
func Audit(writer auditWriter, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		c.Next()

		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		default:
			return
		}
		if c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		entry := &models.AuditLog{
			Action:    c.Request.Method + " " + c.FullPath(),
			Resource:  "http",
			IPAddress: c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}
		if value, exists := c.Get(ContextUserKey); exists {
			if claims, ok := value.(*models.JWTClaims); ok && claims.UserID != "" {
				id := claims.UserID
				entry.UserID = &id
			}
		}

		if err := writer.CreateAuditLog(c.Request.Context(), entry); err != nil {
			logger.Warn("failed to write request audit entry", zap.Error(err))
		}
	}
}
