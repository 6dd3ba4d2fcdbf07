package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/serviceops/receipts-api/internal/application/service"
	"github.com/serviceops/receipts-api/internal/presentation/http/dto/response"
)

// RequireAdminElevation gates the user administration routes behind the
// admin password. The JWT alone is not enough; the session must have
// entered the admin password recently.
func RequireAdminElevation(gate *service.AdminGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDValue, exists := c.Get("user_id")
		if !exists {
			response.Unauthorized(c, "User not authenticated")
			c.Abort()
			return
		}
		userID, ok := userIDValue.(uuid.UUID)
		if !ok {
			response.Unauthorized(c, "User not authenticated")
			c.Abort()
			return
		}

		if !gate.IsElevated(userID) {
			response.Forbidden(c, "Admin verification required")
			c.Abort()
			return
		}

		c.Next()
	}
}
