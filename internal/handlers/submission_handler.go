package handlers

import (
	"net/http"

	"gigwork_backend/internal/middleware"
	"gigwork_backend/internal/models"
	"gigwork_backend/internal/services"
	"gigwork_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type SubmissionHandler struct {
	*BaseHandler
	submissionService services.SubmissionService
}

func NewSubmissionHandler(base *BaseHandler, submissionService services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{
		BaseHandler:       base,
		submissionService: submissionService,
	}
}

func (h *SubmissionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	worker := rg.Group("/daily-submissions",
		h.RequireAuth(),
		middleware.RoleMiddleware(models.UserRoleWorker),
		middleware.RequireNotTerminated(),
	)
	{
		worker.POST("", h.CreateSubmission)
		worker.GET("", h.ListSubmissions)
	}

	admin := rg.Group("/admin/daily-submissions",
		h.RequireAuth(),
		middleware.RoleMiddleware(models.UserRoleAdmin),
	)
	{
		admin.GET("", h.ListSubmissions)
		admin.PUT("/:submissionId/review", h.ReviewSubmission)
	}
}

func (h *SubmissionHandler) CreateSubmission(c *gin.Context) {
	sess, ok := h.CurrentSession(c)
	if !ok {
		return
	}

	var req dto.CreateDailySubmissionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	submission, err := h.submissionService.CreateSubmission(h.GetDB(c), sess, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, submission)
}

func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	sess, ok := h.CurrentSession(c)
	if !ok {
		return
	}

	var query dto.DailySubmissionListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	items, err := h.submissionService.ListSubmissions(h.GetDB(c), sess, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *SubmissionHandler) ReviewSubmission(c *gin.Context) {
	var req dto.ReviewDailySubmissionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	submission, err := h.submissionService.ReviewSubmission(h.GetDB(c), c.Param("submissionId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, submission)
}
