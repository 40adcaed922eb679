package auth

import "gigwork_backend/internal/models"

// ExternalIdentity - результат входа через Google/GitHub, полученный клиентом.
// Сам провайдер сервис не вызывает.
type ExternalIdentity struct {
	Provider      models.AuthProvider
	UID           string
	Email         string
	EmailVerified bool
	DisplayName   string
}

func (i ExternalIdentity) Valid() bool {
	switch i.Provider {
	case models.AuthProviderGoogle, models.AuthProviderGithub:
		return i.UID != "" && i.Email != ""
	}
	return false
}
