// Package contextkeys - ключи, под которыми middleware кладут значения запроса.
package contextkeys

type contextKey string

// String - имя ключа для gin.Context.Set/Get
func (k contextKey) String() string { return string(k) }

const (
	// DBContextKey - *gorm.DB запроса (пул или транзакция)
	DBContextKey = contextKey("db")
	// SessionContextKey - *session.Session аутентифицированного пользователя
	SessionContextKey = contextKey("session")
)
