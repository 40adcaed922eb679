package email

import (
	"time"

	"gigwork_backend/internal/config"
)

// SMTPConfig содержит конфигурацию SMTP сервера
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	Timeout   time.Duration
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() *SMTPConfig {
	return &SMTPConfig{
		Host:    "localhost",
		Port:    587,
		Timeout: 30 * time.Second,
	}
}

// FromAppConfig собирает SMTPConfig из секции email общего конфига
func FromAppConfig(appCfg *config.Config) *SMTPConfig {
	cfg := appCfg.Email
	c := DefaultConfig()
	if cfg.SMTPHost != "" {
		c.Host = cfg.SMTPHost
	}
	if cfg.SMTPPort != 0 {
		c.Port = cfg.SMTPPort
	}
	c.Username = cfg.SMTPUsername
	c.Password = cfg.SMTPPassword
	c.FromEmail = cfg.FromEmail
	c.FromName = cfg.FromName
	return c
}
