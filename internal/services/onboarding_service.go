package services

import (
	"strings"

	"gigwork_backend/internal/logger"
	"gigwork_backend/internal/models"
	"gigwork_backend/internal/qualification"
	"gigwork_backend/internal/repositories"
	"gigwork_backend/internal/services/dto"
	"gigwork_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// OnboardingService: skills_pending -> demo_pending -> completed
type OnboardingService interface {
	GetQuiz(query *dto.QuizQuery) *dto.QuizResponse
	GetStatus(db *gorm.DB, userID string) (*dto.OnboardingStatusResponse, error)
	SetExpertise(db *gorm.DB, userID string, req *dto.ExpertiseRequest) (*dto.OnboardingStatusResponse, error)
	GetDemoTask(db *gorm.DB, userID string) (*qualification.DemoTask, error)
	SubmitDemoTask(db *gorm.DB, userID string, req *dto.DemoSubmitRequest) (*dto.DemoResultResponse, error)
}

type OnboardingServiceImpl struct {
	userRepo repositories.UserRepository
	scorer   qualification.DemoScorer
}

func NewOnboardingService(userRepo repositories.UserRepository, scorer qualification.DemoScorer) OnboardingService {
	if scorer == nil {
		scorer = qualification.RandomScorer{}
	}
	return &OnboardingServiceImpl{
		userRepo: userRepo,
		scorer:   scorer,
	}
}

// GetQuiz отдает вопросы без правильных ответов
func (s *OnboardingServiceImpl) GetQuiz(query *dto.QuizQuery) *dto.QuizResponse {
	skills := cleanList(strings.Split(query.Skills, ","))
	set := qualification.SelectQuestionSet(skills)
	return &dto.QuizResponse{
		Set:          set,
		Questions:    qualification.Questions(set),
		PassingScore: qualification.PassingScore.String(),
	}
}

func (s *OnboardingServiceImpl) GetStatus(db *gorm.DB, userID string) (*dto.OnboardingStatusResponse, error) {
	user, err := s.findUser(db, userID)
	if err != nil {
		return nil, err
	}
	return statusOf(user), nil
}

func (s *OnboardingServiceImpl) SetExpertise(db *gorm.DB, userID string, req *dto.ExpertiseRequest) (*dto.OnboardingStatusResponse, error) {
	if !qualification.IsExpertise(req.Expertise) {
		return nil, apperrors.NewValidationFieldError("expertise", "Unsupported value")
	}

	user, err := s.findUser(db, userID)
	if err != nil {
		return nil, err
	}
	if user.DemoTaskCompleted {
		return nil, apperrors.ErrDemoAlreadyCompleted
	}

	skills := qualification.BuildSkills(req.Expertise, req.ExtraSkills)
	if err := s.userRepo.Update(db, user.ID, map[string]interface{}{
		"skills": models.StringList(skills),
	}); err != nil {
		return nil, apperrors.InternalError(err)
	}
	user.Skills = models.StringList(skills)

	logger.CtxInfo(ctxOf(db), "Expertise selected", "user_id", user.ID, "expertise", req.Expertise)
	return statusOf(user), nil
}

func (s *OnboardingServiceImpl) GetDemoTask(db *gorm.DB, userID string) (*qualification.DemoTask, error) {
	user, err := s.findUser(db, userID)
	if err != nil {
		return nil, err
	}
	skills := user.SkillList()
	if len(skills) == 0 {
		return nil, apperrors.ErrExpertiseRequired
	}
	task := qualification.DemoTaskFor(skills)
	return &task, nil
}

// SubmitDemoTask оценивает демо-задание один раз
func (s *OnboardingServiceImpl) SubmitDemoTask(db *gorm.DB, userID string, req *dto.DemoSubmitRequest) (*dto.DemoResultResponse, error) {
	submission := strings.TrimSpace(req.Submission)
	if submission == "" {
		return nil, apperrors.NewValidationFieldError("submission", "This field is required")
	}

	user, err := s.findUser(db, userID)
	if err != nil {
		return nil, err
	}
	if user.DemoTaskCompleted {
		return nil, apperrors.ErrDemoAlreadyCompleted
	}
	skills := user.SkillList()
	if len(skills) == 0 {
		return nil, apperrors.ErrExpertiseRequired
	}

	category := qualification.CategoryForSkills(skills)
	score := s.scorer.Score(category, submission)

	if err := s.userRepo.CompleteDemo(db, user.ID, score); err != nil {
		if apperrors.Is(err, repositories.ErrDemoAlreadyDone) {
			return nil, apperrors.ErrDemoAlreadyCompleted
		}
		return nil, apperrors.InternalError(err)
	}
	user.DemoTaskCompleted = true
	user.DemoTaskScore = score

	logger.CtxInfo(ctxOf(db), "Demo task completed", "user_id", user.ID, "category", category, "score", score)

	return &dto.DemoResultResponse{
		Category: category,
		Score:    score,
		Status:   *statusOf(user),
	}, nil
}

func (s *OnboardingServiceImpl) findUser(db *gorm.DB, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if user.Role != models.UserRoleWorker {
		return nil, apperrors.ErrNotAWorker
	}
	return user, nil
}

func statusOf(user *models.User) *dto.OnboardingStatusResponse {
	skills := user.SkillList()
	stage := dto.StageDemoPending
	switch {
	case user.DemoTaskCompleted:
		stage = dto.StageCompleted
	case len(skills) == 0:
		stage = dto.StageSkillsPending
	}
	return &dto.OnboardingStatusResponse{
		Stage:             stage,
		Skills:            skills,
		KnowledgeScore:    user.KnowledgeScore.String(),
		DemoTaskCompleted: user.DemoTaskCompleted,
		DemoTaskScore:     user.DemoTaskScore,
		AccountStatus:     string(user.AccountStatus),
	}
}
