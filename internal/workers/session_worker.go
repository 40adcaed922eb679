package workers

import (
	"context"
	"time"

	"gigwork_backend/internal/logger"
	"gigwork_backend/internal/repositories"

	"gorm.io/gorm"
)

// SessionWorker удаляет истекшие серверные сессии
type SessionWorker struct {
	db       *gorm.DB
	repo     repositories.SessionRepository
	interval time.Duration
	now      func() time.Time
}

func NewSessionWorker(db *gorm.DB, repo repositories.SessionRepository, interval time.Duration) *SessionWorker {
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	return &SessionWorker{db: db, repo: repo, interval: interval, now: time.Now}
}

func (w *SessionWorker) Start(ctx context.Context) {
	go w.loop(ctx)
}

func (w *SessionWorker) loop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Session worker stopped")
			return
		case <-ticker.C:
			_, _ = w.RunOnce(ctx)
		}
	}
}

// RunOnce возвращает количество удаленных сессий
func (w *SessionWorker) RunOnce(ctx context.Context) (int64, error) {
	deleted, err := w.repo.DeleteExpired(w.db.WithContext(ctx), w.now().UTC())
	if err != nil {
		logger.WorkerLog("session", "sweep_expired", err)
		return 0, err
	}
	if deleted > 0 {
		logger.WorkerLog("session", "sweep_expired", nil, "deleted", deleted)
	}
	return deleted, nil
}
