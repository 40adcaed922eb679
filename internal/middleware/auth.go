package middleware

import (
	"strings"

	"gigwork_backend/internal/logger"
	"gigwork_backend/internal/models"
	"gigwork_backend/internal/session"
	"gigwork_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Authenticator превращает bearer-токен в сессию (реализуется AuthService)
type Authenticator interface {
	Authenticate(db *gorm.DB, token string) (*session.Session, error)
}

// AuthMiddleware - проверка токена и загрузка серверной сессии.
// Требует DBMiddleware выше по цепочке.
func AuthMiddleware(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		sess, err := authn.Authenticate(DB(c), tokenStr)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		session.Set(c, sess)
		c.Set("userID", sess.UserID())
		c.Set("role", sess.User.Role)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), sess.UserID()))

		c.Next()
	}
}

// RoleMiddleware - middleware ограничения по роли
func RoleMiddleware(requiredRole models.UserRole) gin.HandlerFunc {
	return RequireRoles(requiredRole)
}

// RequireRoles - пропускает любую из перечисленных ролей
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool, len(roles))
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		sess, ok := session.FromContext(c)
		if !ok {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
			return
		}
		if !roleSet[sess.User.Role] {
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			return
		}
		c.Next()
	}
}

// RequireNotTerminated - заблокированные воркеры не работают с задачами и выплатами
func RequireNotTerminated() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session.FromContext(c)
		if !ok {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
			return
		}
		switch sess.User.AccountStatus {
		case models.AccountStatusSuspended:
			apperrors.HandleError(c, apperrors.ErrAccountSuspended)
			return
		case models.AccountStatusTerminated:
			apperrors.HandleError(c, apperrors.ErrAccountTerminated)
			return
		}
		c.Next()
	}
}

// RequireDemoCompleted - платные задачи доступны только после демо-задания
func RequireDemoCompleted() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session.FromContext(c)
		if !ok {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
			return
		}
		if sess.IsWorker() && !sess.User.DemoTaskCompleted {
			apperrors.HandleError(c, apperrors.ErrDemoNotCompleted)
			return
		}
		c.Next()
	}
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	if sess, ok := session.FromContext(c); ok {
		return sess.UserID()
	}
	return ""
}
