package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/serviceops/receipts-api/internal/application/service"
	"github.com/serviceops/receipts-api/internal/presentation/http/dto/response"
)

// BackupHandler handles backup export HTTP requests
type BackupHandler struct {
	backupService *service.BackupService
}

// NewBackupHandler creates a new backup handler
func NewBackupHandler(backupService *service.BackupService) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

// ExportCSV streams the full receipt dataset as a CSV download
func (h *BackupHandler) ExportCSV(c *gin.Context) {
	data, filename, err := h.backupService.ExportCSV(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, "text/csv; charset=utf-8", data)
}

// ExportXLSX streams the full receipt dataset as an Excel download
func (h *BackupHandler) ExportXLSX(c *gin.Context) {
	data, filename, err := h.backupService.ExportXLSX(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
