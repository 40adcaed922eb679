package handlers

import (
	"net/http"

	"gigwork_backend/internal/middleware"
	"gigwork_backend/internal/models"
	"gigwork_backend/internal/services"
	"gigwork_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type OnboardingHandler struct {
	*BaseHandler
	onboardingService services.OnboardingService
}

func NewOnboardingHandler(base *BaseHandler, onboardingService services.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{
		BaseHandler:       base,
		onboardingService: onboardingService,
	}
}

func (h *OnboardingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	onboarding := rg.Group("/onboarding")
	{
		// Квиз нужен до регистрации
		onboarding.GET("/quiz", h.GetQuiz)

		worker := onboarding.Group("",
			h.RequireAuth(),
			middleware.RoleMiddleware(models.UserRoleWorker),
			middleware.RequireNotTerminated(),
		)
		worker.GET("/status", h.GetStatus)
		worker.PUT("/expertise", h.SetExpertise)
		worker.GET("/demo-task", h.GetDemoTask)
		worker.POST("/demo-task", h.SubmitDemoTask)
	}
}

func (h *OnboardingHandler) GetQuiz(c *gin.Context) {
	var query dto.QuizQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}
	c.JSON(http.StatusOK, h.onboardingService.GetQuiz(&query))
}

func (h *OnboardingHandler) GetStatus(c *gin.Context) {
	sess, ok := h.CurrentSession(c)
	if !ok {
		return
	}

	resp, err := h.onboardingService.GetStatus(h.GetDB(c), sess.UserID())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OnboardingHandler) SetExpertise(c *gin.Context) {
	sess, ok := h.CurrentSession(c)
	if !ok {
		return
	}

	var req dto.ExpertiseRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.onboardingService.SetExpertise(h.GetDB(c), sess.UserID(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OnboardingHandler) GetDemoTask(c *gin.Context) {
	sess, ok := h.CurrentSession(c)
	if !ok {
		return
	}

	task, err := h.onboardingService.GetDemoTask(h.GetDB(c), sess.UserID())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *OnboardingHandler) SubmitDemoTask(c *gin.Context) {
	sess, ok := h.CurrentSession(c)
	if !ok {
		return
	}

	var req dto.DemoSubmitRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.onboardingService.SubmitDemoTask(h.GetDB(c), sess.UserID(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
