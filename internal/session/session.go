// Package session хранит текущую аутентифицированную сессию запроса.
// Сессия создается при логине, удаляется при логауте и в остальном только читается.
package session

import (
	"time"

	"gigwork_backend/internal/models"
	"gigwork_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

type Session struct {
	ID        string
	User      models.User // копия на момент запроса
	ExpiresAt time.Time
}

func (s *Session) UserID() string { return s.User.ID }

func (s *Session) IsAdmin() bool { return s.User.Role == models.UserRoleAdmin }

func (s *Session) IsWorker() bool { return s.User.Role == models.UserRoleWorker }

// Set кладет сессию в контекст запроса (вызывается только AuthMiddleware)
func Set(c *gin.Context, s *Session) {
	c.Set(contextkeys.SessionContextKey.String(), s)
}

// FromContext возвращает сессию запроса, если пользователь аутентифицирован
func FromContext(c *gin.Context) (*Session, bool) {
	v, ok := c.Get(contextkeys.SessionContextKey.String())
	if !ok {
		return nil, false
	}
	s, ok := v.(*Session)
	return s, ok && s != nil
}
