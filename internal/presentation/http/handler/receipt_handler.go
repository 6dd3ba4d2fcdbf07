package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/serviceops/receipts-api/internal/application/service"
	"github.com/serviceops/receipts-api/internal/domain/enum"
	"github.com/serviceops/receipts-api/internal/domain/repository"
	"github.com/serviceops/receipts-api/internal/presentation/http/dto/response"
	"github.com/serviceops/receipts-api/pkg/pagination"
)

// ReceiptHandler handles service receipt HTTP requests
type ReceiptHandler struct {
	receiptService  *service.ReceiptService
	workflowService *service.WorkflowService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService, workflowService *service.WorkflowService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService, workflowService: workflowService}
}

// Create handles receipt creation
func (h *ReceiptHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var input service.CreateReceiptInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	receipt, err := h.receiptService.CreateReceipt(c.Request.Context(), *userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Receipt created", receipt)
}

// List handles listing receipts with filters
func (h *ReceiptHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.ReceiptFilterParams{
		Pagination: &pagination.Params{
			Page:    page,
			PerPage: perPage,
		},
		SerialNumber: c.Query("serial_number"),
		ProviderCode: c.Query("provider_code"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := enum.ReceiptStatus(statusStr)
		if !status.IsValid() {
			response.BadRequest(c, "Unknown status filter")
			return
		}
		params.Status = &status
	}
	if paymentStr := c.Query("payment_status"); paymentStr != "" {
		payment := enum.PaymentStatus(paymentStr)
		if !payment.IsValid() {
			response.BadRequest(c, "Unknown payment status filter")
			return
		}
		params.PaymentStatus = &payment
	}
	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}
	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}

	result, err := h.receiptService.ListReceipts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Receipts retrieved", result)
}

// Search handles serial number search
func (h *ReceiptHandler) Search(c *gin.Context) {
	receipts, err := h.receiptService.SearchReceipts(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Search results", receipts)
}

// Delayed handles the oldest-open-receipts view
func (h *ReceiptHandler) Delayed(c *gin.Context) {
	delayed, err := h.receiptService.ListDelayed(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Delayed receipts retrieved", delayed)
}

// Activity handles the recent activity feed
func (h *ReceiptHandler) Activity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	events, err := h.receiptService.ListActivity(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Recent activity retrieved", events)
}

// Get handles retrieving one receipt
func (h *ReceiptHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	receipt, err := h.receiptService.GetReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt retrieved", receipt)
}

// Items handles listing a receipt's items
func (h *ReceiptHandler) Items(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	items, err := h.receiptService.GetReceiptItems(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt items retrieved", items)
}

// Print handles building the printable receipt document
func (h *ReceiptHandler) Print(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	payload, err := h.receiptService.GetPrintPayload(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Printable receipt built", payload)
}

type workflowRequest struct {
	ReceiptIDs []uuid.UUID `json:"receipt_ids" binding:"required"`
}

func (h *ReceiptHandler) applyWorkflow(c *gin.Context, action enum.WorkflowAction, message string) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req workflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	actor := service.Actor{ID: *userID, Email: GetUserEmail(c)}
	outcomes, err := h.workflowService.Apply(c.Request.Context(), action, req.ReceiptIDs, actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, message, outcomes)
}

// Approve handles bulk receipt approval
func (h *ReceiptHandler) Approve(c *gin.Context) {
	h.applyWorkflow(c, enum.ActionApprove, "Approval processed")
}

// Reject handles bulk receipt rejection
func (h *ReceiptHandler) Reject(c *gin.Context) {
	h.applyWorkflow(c, enum.ActionReject, "Rejection processed")
}

// ReverseApproval handles moving receipts back to pending
func (h *ReceiptHandler) ReverseApproval(c *gin.Context) {
	h.applyWorkflow(c, enum.ActionReverseApproval, "Approval reversal processed")
}

// MarkPaid handles bulk payment marking
func (h *ReceiptHandler) MarkPaid(c *gin.Context) {
	h.applyWorkflow(c, enum.ActionMarkPaid, "Payment processed")
}

// ReversePayment handles reverting receipts to unpaid
func (h *ReceiptHandler) ReversePayment(c *gin.Context) {
	h.applyWorkflow(c, enum.ActionReversePayment, "Payment reversal processed")
}
