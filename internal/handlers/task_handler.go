package handlers

import (
	"net/http"
	"strconv"

	"gigwork_backend/internal/middleware"
	"gigwork_backend/internal/models"
	"gigwork_backend/internal/services"
	"gigwork_backend/internal/services/dto"
	"gigwork_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	*BaseHandler
	taskService services.TaskService
}

func NewTaskHandler(base *BaseHandler, taskService services.TaskService) *TaskHandler {
	return &TaskHandler{
		BaseHandler: base,
		taskService: taskService,
	}
}

func (h *TaskHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// Воркер: только свои задачи и только после демо-задания
	tasks := rg.Group("/tasks",
		h.RequireAuth(),
		middleware.RoleMiddleware(models.UserRoleWorker),
		middleware.RequireNotTerminated(),
		middleware.RequireDemoCompleted(),
	)
	{
		tasks.GET("", h.ListTasks)
		tasks.GET("/:taskId", h.GetTask)
		tasks.POST("/:taskId/submit", h.SubmitTask)
	}

	admin := rg.Group("/admin/tasks",
		h.RequireAuth(),
		middleware.RoleMiddleware(models.UserRoleAdmin),
	)
	{
		admin.GET("", h.ListTasks)
		admin.POST("", h.CreateTask)
		admin.GET("/:taskId", h.GetTask)
		admin.DELETE("/:taskId", h.DeleteTask)
		admin.GET("/:taskId/candidates", h.SuggestWorkers)
		admin.POST("/:taskId/assign", h.AssignTask)
		admin.POST("/:taskId/approve", h.ApproveTask)
		admin.POST("/:taskId/reject", h.RejectTask)
	}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	sess, ok := h.CurrentSession(c)
	if !ok {
		return
	}

	var query dto.TaskListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	tasks, err := h.taskService.ListTasks(h.GetDB(c), sess, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	sess, ok := h.CurrentSession(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(h.GetDB(c), sess, c.Param("taskId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) SubmitTask(c *gin.Context) {
	sess, ok := h.CurrentSession(c)
	if !ok {
		return
	}

	var req dto.SubmitTaskRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	task, err := h.taskService.SubmitTask(h.GetDB(c), sess, c.Param("taskId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	sess, ok := h.CurrentSession(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	task, err := h.taskService.CreateTask(h.GetDB(c), sess, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.taskService.DeleteTask(h.GetDB(c), c.Param("taskId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

func (h *TaskHandler) AssignTask(c *gin.Context) {
	sess, ok := h.CurrentSession(c)
	if !ok {
		return
	}

	var req dto.AssignTaskRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	task, err := h.taskService.AssignTask(h.GetDB(c), sess, c.Param("taskId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// SuggestWorkers - ?limit=N, по умолчанию 10
func (h *TaskHandler) SuggestWorkers(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 0 {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Invalid query parameter: limit"))
		return
	}

	matches, err := h.taskService.SuggestWorkers(h.GetDB(c), c.Param("taskId"), limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, matches)
}

// ApproveTask - задача completed, платеж и баланс в одной транзакции
func (h *TaskHandler) ApproveTask(c *gin.Context) {
	sess, ok := h.CurrentSession(c)
	if !ok {
		return
	}

	resp, err := h.taskService.ApproveTask(h.GetDB(c), sess, c.Param("taskId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TaskHandler) RejectTask(c *gin.Context) {
	sess, ok := h.CurrentSession(c)
	if !ok {
		return
	}

	// Тело необязательно: отклонить можно без отзыва
	var req dto.RejectTaskRequest
	if c.Request.ContentLength != 0 && !h.BindAndValidate_JSON(c, &req) {
		return
	}

	task, err := h.taskService.RejectTask(h.GetDB(c), sess, c.Param("taskId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}
