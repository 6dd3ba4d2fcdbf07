package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/serviceops/receipts-api/internal/application/service"
	"github.com/serviceops/receipts-api/internal/presentation/http/dto/response"
)

// ServiceHandler handles catalog service HTTP requests
type ServiceHandler struct {
	catalogService *service.CatalogService
}

// NewServiceHandler creates a new service handler
func NewServiceHandler(catalogService *service.CatalogService) *ServiceHandler {
	return &ServiceHandler{catalogService: catalogService}
}

// Create handles catalog entry creation
func (h *ServiceHandler) Create(c *gin.Context) {
	var input service.ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	svc, err := h.catalogService.CreateService(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Service created", svc)
}

// List handles listing a provider's catalog. Without a provider_id the
// list is empty; the catalog is only browsable per provider.
func (h *ServiceHandler) List(c *gin.Context) {
	var providerID uuid.UUID
	if providerIDStr := c.Query("provider_id"); providerIDStr != "" {
		id, err := uuid.Parse(providerIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid provider ID")
			return
		}
		providerID = id
	}

	services, err := h.catalogService.ListServices(c.Request.Context(), providerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Services retrieved", services)
}

// Get handles retrieving one catalog entry
func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	svc, err := h.catalogService.GetService(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Service retrieved", svc)
}

// Update handles catalog entry updates
func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	var input service.ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	svc, err := h.catalogService.UpdateService(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Service updated", svc)
}

// Delete handles catalog entry deletion
func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	if err := h.catalogService.DeleteService(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
