package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/serviceops/receipts-api/internal/application/service"
	"github.com/serviceops/receipts-api/internal/presentation/http/dto/response"
)

// UserHandler handles user administration HTTP requests
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List handles listing all users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Users retrieved", users)
}

type updateRolesRequest struct {
	Changes []service.RoleChange `json:"changes" binding:"required"`
}

// UpdateRoles handles batch role assignment
func (h *UserHandler) UpdateRoles(c *gin.Context) {
	var req updateRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	outcomes, err := h.userService.UpdateRoles(c.Request.Context(), req.Changes)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Role changes processed", outcomes)
}
