package workers

import (
	"context"
	"time"

	"gigwork_backend/internal/logger"
	"gigwork_backend/internal/services"
	"gigwork_backend/internal/services/dto"

	"gorm.io/gorm"
)

// LedgerWorker периодически сверяет кэшированные балансы с леджером.
// Только отчет: расхождения логируются, балансы не правятся.
type LedgerWorker struct {
	db       *gorm.DB
	ledger   services.LedgerService
	interval time.Duration
}

func NewLedgerWorker(db *gorm.DB, ledger services.LedgerService, interval time.Duration) *LedgerWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &LedgerWorker{db: db, ledger: ledger, interval: interval}
}

// Start запускает сверку в фоне до отмены ctx
func (w *LedgerWorker) Start(ctx context.Context) {
	go w.loop(ctx)
}

func (w *LedgerWorker) loop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Ledger worker stopped")
			return
		case <-ticker.C:
			_, _ = w.RunOnce(ctx)
		}
	}
}

// RunOnce - одна сверка
func (w *LedgerWorker) RunOnce(ctx context.Context) (*dto.ReconcileReport, error) {
	report, err := w.ledger.Reconcile(w.db.WithContext(ctx))
	if err != nil {
		logger.WorkerLog("ledger", "reconcile", err)
		return nil, err
	}

	for _, d := range report.Drifts {
		logger.Warn("Balance drift detected",
			"user_id", d.UserID,
			"cached", d.CachedBalance,
			"ledger", d.LedgerBalance,
			"difference", d.Difference,
		)
	}
	logger.WorkerLog("ledger", "reconcile", nil, "workers", report.Workers, "drifts", len(report.Drifts))
	return report, nil
}
