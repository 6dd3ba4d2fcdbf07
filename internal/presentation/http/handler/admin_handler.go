package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/serviceops/receipts-api/internal/application/service"
	"github.com/serviceops/receipts-api/internal/presentation/http/dto/response"
)

// AdminHandler handles admin gate HTTP requests
type AdminHandler struct {
	adminGate *service.AdminGate
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminGate *service.AdminGate) *AdminHandler {
	return &AdminHandler{adminGate: adminGate}
}

type elevateRequest struct {
	Password string `json:"password" binding:"required"`
}

// Elevate handles admin password verification
func (h *AdminHandler) Elevate(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req elevateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.adminGate.Elevate(*userID, req.Password); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Admin access granted", nil)
}

// Drop handles ending an admin elevation early
func (h *AdminHandler) Drop(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	h.adminGate.Drop(*userID)
	response.NoContent(c)
}
