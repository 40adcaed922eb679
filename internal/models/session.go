package models

import "time"

// Session - серверная сессия, ID совпадает с jti токена
type Session struct {
	BaseModel
	UserID    string    `gorm:"type:uuid;not null;index"`
	ExpiresAt time.Time `gorm:"not null;index"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
