package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/innovax/lunch-api/internal/middleware"
	"github.com/innovax/lunch-api/internal/models"
)

// claimsFromContext extracts the authenticated claims set by JWTAuth.
// Returns nil when the request is unauthenticated.
func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}
