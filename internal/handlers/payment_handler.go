package handlers

import (
	"net/http"

	"gigwork_backend/internal/middleware"
	"gigwork_backend/internal/models"
	"gigwork_backend/internal/services"
	"gigwork_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	*BaseHandler
	ledgerService services.LedgerService
}

func NewPaymentHandler(base *BaseHandler, ledgerService services.LedgerService) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:   base,
		ledgerService: ledgerService,
	}
}

func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments",
		h.RequireAuth(),
		middleware.RoleMiddleware(models.UserRoleWorker),
		middleware.RequireNotTerminated(),
	)
	{
		payments.GET("", h.ListPayments)
		payments.GET("/balance", h.GetBalance)
		payments.POST("/withdrawals", h.RequestWithdrawal)
		payments.PUT("/payout-account", h.SetPayoutAccount)
	}

	admin := rg.Group("/admin",
		h.RequireAuth(),
		middleware.RoleMiddleware(models.UserRoleAdmin),
	)
	{
		admin.GET("/payments", h.ListPayments)
		admin.POST("/payments/:paymentId/approve", h.ApproveWithdrawal)
		admin.POST("/payments/:paymentId/reject", h.RejectWithdrawal)
		admin.GET("/workers/:workerId/balance", h.GetBalance)
		admin.PUT("/workers/:workerId/payout-account/verify", h.VerifyPayoutAccount)
		admin.GET("/ledger/reconcile", h.Reconcile)
	}
}

func (h *PaymentHandler) ListPayments(c *gin.Context) {
	sess, ok := h.CurrentSession(c)
	if !ok {
		return
	}

	var query dto.PaymentListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	payments, err := h.ledgerService.ListPayments(h.GetDB(c), sess, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

// GetBalance - воркер видит свой баланс, админ баланс воркера из пути
func (h *PaymentHandler) GetBalance(c *gin.Context) {
	sess, ok := h.CurrentSession(c)
	if !ok {
		return
	}

	summary, err := h.ledgerService.GetBalance(h.GetDB(c), sess, c.Param("workerId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *PaymentHandler) RequestWithdrawal(c *gin.Context) {
	sess, ok := h.CurrentSession(c)
	if !ok {
		return
	}

	var req dto.WithdrawalRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	payment, err := h.ledgerService.RequestWithdrawal(h.GetDB(c), sess, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

func (h *PaymentHandler) SetPayoutAccount(c *gin.Context) {
	sess, ok := h.CurrentSession(c)
	if !ok {
		return
	}

	var req dto.PayoutAccountRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.ledgerService.SetPayoutAccount(h.GetDB(c), sess, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *PaymentHandler) ApproveWithdrawal(c *gin.Context) {
	sess, ok := h.CurrentSession(c)
	if !ok {
		return
	}

	payment, err := h.ledgerService.ApproveWithdrawal(h.GetDB(c), sess, c.Param("paymentId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandler) RejectWithdrawal(c *gin.Context) {
	sess, ok := h.CurrentSession(c)
	if !ok {
		return
	}

	payment, err := h.ledgerService.RejectWithdrawal(h.GetDB(c), sess, c.Param("paymentId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandler) VerifyPayoutAccount(c *gin.Context) {
	user, err := h.ledgerService.VerifyPayoutAccount(h.GetDB(c), c.Param("workerId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *PaymentHandler) Reconcile(c *gin.Context) {
	report, err := h.ledgerService.Reconcile(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
