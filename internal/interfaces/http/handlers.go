package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/stocktrail/po-approval/internal/application/service"
	"github.com/stocktrail/po-approval/internal/auth"
	"github.com/stocktrail/po-approval/internal/domain/entity"
	"github.com/stocktrail/po-approval/internal/domain/workflow"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	authService     *auth.Service
	orderService    service.OrderService
	approvalService service.ApprovalService
	reportService   service.ReportService
	logger          Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	authService *auth.Service,
	orderService service.OrderService,
	approvalService service.ApprovalService,
	reportService service.ReportService,
	logger Logger,
) *Handlers {
	return &Handlers{
		authService:     authService,
		orderService:    orderService,
		approvalService: approvalService,
		reportService:   reportService,
		logger:          logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and the user's identity
type LoginResponse struct {
	Token    string `json:"token"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// CreateOrderRequest represents the order creation payload
type CreateOrderRequest struct {
	PONumber     string          `json:"po_number" binding:"required"`
	SupplierID   int64           `json:"supplier_id" binding:"required"`
	WarehouseID  int64           `json:"warehouse_id" binding:"required"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	ExpectedDate *time.Time      `json:"expected_date"`
	Comments     string          `json:"comments"`
}

// TransitionRequest carries the optional comment on a workflow action
type TransitionRequest struct {
	Comment string `json:"comment"`
}

// ListOrdersRequest represents query parameters for listing orders
type ListOrdersRequest struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0.0",
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    response,
	})
}

// Login handles POST /api/auth/login
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "username and password are required",
		})
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: LoginResponse{
			Token:    token,
			UserID:   user.ID,
			Username: user.Username,
			Role:     user.Role.String(),
		},
	})
}

// CreateOrder handles POST /api/orders
func (h *Handlers) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid order payload", "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid order payload",
		})
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), currentActor(c), service.CreateOrderInput{
		PONumber:     req.PONumber,
		SupplierID:   req.SupplierID,
		WarehouseID:  req.WarehouseID,
		TotalAmount:  req.TotalAmount,
		ExpectedDate: req.ExpectedDate,
		Comments:     req.Comments,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    order,
	})
}

// ListOrders handles GET /api/orders
func (h *Handlers) ListOrders(c *gin.Context) {
	var req ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid query parameters",
		})
		return
	}

	if req.Limit <= 0 || req.Limit > 100 {
		req.Limit = 20
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	orders, err := h.orderService.List(c.Request.Context(), req.Limit, req.Offset)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    orders,
	})
}

// GetOrder handles GET /api/orders/:id
func (h *Handlers) GetOrder(c *gin.Context) {
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    order,
	})
}

// SubmitOrder handles POST /api/orders/:id/submit
func (h *Handlers) SubmitOrder(c *gin.Context) {
	h.transition(c, h.approvalService.Submit)
}

// ApproveOrder handles POST /api/orders/:id/approve
func (h *Handlers) ApproveOrder(c *gin.Context) {
	h.transition(c, h.approvalService.Approve)
}

// RejectOrder handles POST /api/orders/:id/reject
func (h *Handlers) RejectOrder(c *gin.Context) {
	h.transition(c, h.approvalService.Reject)
}

// SendOrder handles POST /api/orders/:id/send
func (h *Handlers) SendOrder(c *gin.Context) {
	h.transition(c, h.approvalService.Send)
}

// DeliverOrder handles POST /api/orders/:id/deliver
func (h *Handlers) DeliverOrder(c *gin.Context) {
	h.transition(c, h.approvalService.Deliver)
}

// GetHistory handles GET /api/orders/:id/history
func (h *Handlers) GetHistory(c *gin.Context) {
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	entries, err := h.approvalService.History(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    entries,
	})
}

// GetTimeline handles GET /api/orders/:id/timeline
func (h *Handlers) GetTimeline(c *gin.Context) {
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	checkpoints, err := h.orderService.Timeline(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    checkpoints,
	})
}

// GetActions handles GET /api/orders/:id/actions
func (h *Handlers) GetActions(c *gin.Context) {
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	actions, err := h.approvalService.Actions(c.Request.Context(), currentActor(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    actions,
	})
}

// DownloadReport handles GET /api/orders/:id/report
func (h *Handlers) DownloadReport(c *gin.Context) {
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	buf, filename, err := h.reportService.OrderReport(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// transition runs one workflow action through the shared request plumbing:
// parse the ID, read the optional comment, call the service, map the error
func (h *Handlers) transition(c *gin.Context, fn func(ctx context.Context, actor entity.Actor, orderID int64, comment string) (*entity.PurchaseOrder, error)) {
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	var req TransitionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, Response{
				Success: false,
				Error:   "invalid request body",
			})
			return
		}
	}

	order, err := fn(c.Request.Context(), currentActor(c), id, req.Comment)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    order,
	})
}

// orderID parses the :id path parameter
func (h *Handlers) orderID(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid order ID",
		})
		return 0, false
	}
	return id, true
}

// writeError maps service errors onto HTTP status codes
func (h *Handlers) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, workflow.ErrInvalidTransition):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, workflow.ErrRoleDenied):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, service.ErrOrderNotFound):
		status = http.StatusNotFound
		message = "order not found"
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrDuplicatePONumber):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, auth.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = "invalid credentials"
	default:
		h.logger.Error("Request failed", "error", err, "path", c.Request.URL.Path)
	}

	c.JSON(status, Response{
		Success: false,
		Error:   message,
	})
}
