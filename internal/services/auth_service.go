package services

import (
	"strings"
	"time"

	"gigwork_backend/internal/auth"
	"gigwork_backend/internal/logger"
	"gigwork_backend/internal/models"
	"gigwork_backend/internal/money"
	"gigwork_backend/internal/qualification"
	"gigwork_backend/internal/repositories"
	"gigwork_backend/internal/services/dto"
	"gigwork_backend/internal/session"
	"gigwork_backend/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AuthService interface {
	Signup(db *gorm.DB, req *dto.SignupRequest) (*dto.SignupResponse, error)
	SignupExternal(db *gorm.DB, req *dto.ExternalSignupRequest) (*dto.SignupResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	LoginExternal(db *gorm.DB, req *dto.ExternalLoginRequest) (*dto.AuthResponse, error)
	Logout(db *gorm.DB, sessionID string) error

	// Authenticate превращает bearer-токен в сессию запроса
	Authenticate(db *gorm.DB, token string) (*session.Session, error)

	Me(db *gorm.DB, userID string) (*dto.UserResponse, error)
	UpdateCurrency(db *gorm.DB, userID string, req *dto.UpdateCurrencyRequest) (*dto.UserResponse, error)
}

type AuthServiceImpl struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
}

func NewAuthService(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
) AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
	}
}

// Signup - регистрация по email. Тест проверяется до записи: при score < 60 аккаунт не создается.
func (s *AuthServiceImpl) Signup(db *gorm.DB, req *dto.SignupRequest) (*dto.SignupResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.NewValidationFieldError("password", err.Error())
	}

	result, err := s.gradeQuiz(db, req.Email, &req.ProfileFields)
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := newWorker(strings.ToLower(strings.TrimSpace(req.Email)), &req.ProfileFields, result.StoredScore())
	user.AuthProvider = models.AuthProviderEmail
	user.PasswordHash = hash

	if err := s.userRepo.Create(db, user); err != nil {
		return nil, s.mapCreateError(err)
	}

	logger.CtxInfo(ctxOf(db), "Worker signed up", "user_id", user.ID, "quiz_set", result.Set, "score", result.Score.String())

	return &dto.SignupResponse{
		User: dto.NewUserResponse(user),
		Quiz: result,
	}, nil
}

// SignupExternal - регистрация через Google/GitHub, сразу с сессией
func (s *AuthServiceImpl) SignupExternal(db *gorm.DB, req *dto.ExternalSignupRequest) (*dto.SignupResponse, error) {
	identity := toIdentity(&req.Identity)
	if !identity.Valid() {
		return nil, apperrors.NewValidationFieldError("identity", "Unsupported identity provider or missing uid/email")
	}

	result, err := s.gradeQuiz(db, identity.Email, &req.ProfileFields)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByExternalID(db, identity.Provider, identity.UID); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	} else if !apperrors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	user := newWorker(strings.ToLower(identity.Email), &req.ProfileFields, result.StoredScore())
	user.AuthProvider = identity.Provider
	user.ExternalID = identity.UID
	user.EmailVerified = identity.EmailVerified
	if user.FullName == "" {
		user.FullName = identity.DisplayName
	}

	var authResp *dto.AuthResponse
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			return s.mapCreateError(err)
		}
		resp, err := s.openSession(tx, user)
		if err != nil {
			return err
		}
		authResp = resp
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctxOf(db), "Worker signed up with external identity",
		"user_id", user.ID,
		"provider", identity.Provider,
		"score", result.Score.String(),
	)

	return &dto.SignupResponse{
		User: authResp.User,
		Quiz: result,
		Auth: authResp,
	}, nil
}

func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.openSession(db, user)
}

func (s *AuthServiceImpl) LoginExternal(db *gorm.DB, req *dto.ExternalLoginRequest) (*dto.AuthResponse, error) {
	identity := toIdentity(&req.Identity)
	if !identity.Valid() {
		return nil, apperrors.NewValidationFieldError("identity", "Unsupported identity provider or missing uid/email")
	}

	user, err := s.userRepo.FindByExternalID(db, identity.Provider, identity.UID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			// Аккаунта нет: клиент должен пройти регистрацию с тестом
			return nil, apperrors.NewNotFoundError("auth", "No account for this identity, please sign up")
		}
		return nil, apperrors.InternalError(err)
	}

	return s.openSession(db, user)
}

// Logout удаляет серверную сессию, токен после этого не принимается
func (s *AuthServiceImpl) Logout(db *gorm.DB, sessionID string) error {
	if err := s.sessionRepo.Delete(db, sessionID); err != nil {
		if apperrors.Is(err, repositories.ErrSessionNotFound) {
			return apperrors.ErrSessionExpired
		}
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctxOf(db), "Session closed", "session_id", sessionID)
	return nil
}

func (s *AuthServiceImpl) Authenticate(db *gorm.DB, token string) (*session.Session, error) {
	claims, err := auth.ParseToken(token)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	sess, err := s.sessionRepo.FindByID(db, claims.SessionID())
	if err != nil {
		if apperrors.Is(err, repositories.ErrSessionNotFound) {
			return nil, apperrors.ErrSessionExpired
		}
		return nil, apperrors.InternalError(err)
	}
	if sess.UserID != claims.UserID {
		return nil, apperrors.ErrInvalidToken
	}
	if sess.Expired(now()) {
		_ = s.sessionRepo.Delete(db, sess.ID)
		return nil, apperrors.ErrSessionExpired
	}

	user, err := s.userRepo.FindByID(db, sess.UserID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}

	return &session.Session{
		ID:        sess.ID,
		User:      *user,
		ExpiresAt: sess.ExpiresAt,
	}, nil
}

func (s *AuthServiceImpl) Me(db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *AuthServiceImpl) UpdateCurrency(db *gorm.DB, userID string, req *dto.UpdateCurrencyRequest) (*dto.UserResponse, error) {
	currency, err := money.ParseCurrency(req.Currency)
	if err != nil {
		return nil, apperrors.NewValidationFieldError("currency", err.Error())
	}

	if err := s.userRepo.Update(db, userID, map[string]interface{}{
		"preferred_currency": string(currency),
	}); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return s.Me(db, userID)
}

// --- helpers ---

// gradeQuiz проверяет тест и уникальность email до любой записи в базу
func (s *AuthServiceImpl) gradeQuiz(db *gorm.DB, email string, profile *dto.ProfileFields) (*qualification.Result, error) {
	if _, err := money.ParseCurrency(profile.PreferredCurrency); err != nil {
		return nil, apperrors.NewValidationFieldError("preferred_currency", err.Error())
	}

	skills := cleanList(profile.Skills)
	if len(skills) == 0 {
		return nil, apperrors.NewValidationFieldError("skills", "Select at least one skill")
	}

	result, err := qualification.Score(skills, profile.QuizAnswers)
	if err != nil {
		return nil, apperrors.NewValidationFieldError("quiz_answers", err.Error())
	}
	if !result.Passed {
		logger.CtxInfo(ctxOf(db), "Signup blocked by knowledge test", "score", result.Score.String(), "set", result.Set)
		return nil, apperrors.QuizFailed(map[string]interface{}{
			"score":         result.StoredScore().String(),
			"passing_score": qualification.PassingScore.String(),
		})
	}

	if _, err := s.userRepo.FindByEmail(db, strings.ToLower(strings.TrimSpace(email))); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	} else if !apperrors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	return result, nil
}

func (s *AuthServiceImpl) mapCreateError(err error) error {
	if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
		return apperrors.ErrEmailAlreadyExists
	}
	return apperrors.InternalError(err)
}

// openSession создает строку сессии и подписывает токен с ее ID
func (s *AuthServiceImpl) openSession(db *gorm.DB, user *models.User) (*dto.AuthResponse, error) {
	expiresAt := now().Add(auth.TokenTTL()).Truncate(time.Second)
	sess := &models.Session{
		BaseModel: models.BaseModel{ID: uuid.NewString()},
		UserID:    user.ID,
		ExpiresAt: expiresAt,
	}
	if err := s.sessionRepo.Create(db, sess); err != nil {
		return nil, apperrors.InternalError(err)
	}

	token, err := auth.GenerateToken(user.ID, string(user.Role), sess.ID, expiresAt)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctxOf(db), "Session opened", "user_id", user.ID, "session_id", sess.ID)

	return &dto.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.NewUserResponse(user),
	}, nil
}

func newWorker(email string, profile *dto.ProfileFields, score decimal.Decimal) *models.User {
	currency, _ := money.ParseCurrency(profile.PreferredCurrency)
	return &models.User{
		Email:                 email,
		FullName:              strings.TrimSpace(profile.FullName),
		Phone:                 strings.TrimSpace(profile.Phone),
		Skills:                models.StringList(cleanList(profile.Skills)),
		Experience:            profile.Experience,
		Timezone:              profile.Timezone,
		PreferredWeeklyPayout: money.ToBase(profile.PreferredWeeklyPayout, currency),
		PreferredCurrency:     string(currency),
		Role:                  models.UserRoleWorker,
		AccountStatus:         models.AccountStatusPending,
		KnowledgeScore:        score,
		DemoTaskCompleted:     false,
		Balance:               decimal.Zero,
	}
}

func toIdentity(req *dto.ExternalIdentityRequest) auth.ExternalIdentity {
	return auth.ExternalIdentity{
		Provider:      req.Provider,
		UID:           strings.TrimSpace(req.UID),
		Email:         strings.TrimSpace(req.Email),
		EmailVerified: req.EmailVerified,
		DisplayName:   req.DisplayName,
	}
}
