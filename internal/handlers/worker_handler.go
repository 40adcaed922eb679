package handlers

import (
	"net/http"

	"gigwork_backend/internal/middleware"
	"gigwork_backend/internal/models"
	"gigwork_backend/internal/services"
	"gigwork_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// WorkerHandler - админский экран воркеров и дашборд
type WorkerHandler struct {
	*BaseHandler
	workerService services.WorkerService
}

func NewWorkerHandler(base *BaseHandler, workerService services.WorkerService) *WorkerHandler {
	return &WorkerHandler{
		BaseHandler:   base,
		workerService: workerService,
	}
}

func (h *WorkerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin",
		h.RequireAuth(),
		middleware.RoleMiddleware(models.UserRoleAdmin),
	)
	{
		admin.GET("/workers", h.ListWorkers)
		admin.GET("/workers/:workerId", h.GetWorker)
		admin.PUT("/workers/:workerId/status", h.UpdateStatus)
		admin.GET("/stats", h.GetStats)
	}
}

func (h *WorkerHandler) ListWorkers(c *gin.Context) {
	var query dto.WorkerListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	workers, err := h.workerService.ListWorkers(h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, workers)
}

func (h *WorkerHandler) GetWorker(c *gin.Context) {
	worker, err := h.workerService.GetWorker(h.GetDB(c), c.Param("workerId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, worker)
}

func (h *WorkerHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateWorkerStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	worker, err := h.workerService.UpdateStatus(h.GetDB(c), c.Param("workerId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, worker)
}

func (h *WorkerHandler) GetStats(c *gin.Context) {
	sess, ok := h.CurrentSession(c)
	if !ok {
		return
	}

	stats, err := h.workerService.GetStats(h.GetDB(c), sess)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
