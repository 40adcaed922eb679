package services

import (
	"context"

	"gigwork_backend/internal/email"
	"gigwork_backend/internal/logger"
	"gigwork_backend/internal/models"
	"gigwork_backend/internal/money"
)

// Notifier отправляет пользователям письма о событиях.
// Ошибки отправки только логируются, бизнес-операцию они не откатывают.
type Notifier interface {
	AccountStatusChanged(ctx context.Context, user *models.User)
	TaskAssigned(ctx context.Context, user *models.User, task *models.Task)
	TaskApproved(ctx context.Context, user *models.User, task *models.Task)
	TaskRejected(ctx context.Context, user *models.User, task *models.Task)
	WithdrawalProcessed(ctx context.Context, user *models.User, payment *models.Payment)
}

type EmailNotifier struct {
	provider email.Provider
}

func NewEmailNotifier(provider email.Provider) Notifier {
	return &EmailNotifier{provider: provider}
}

func (n *EmailNotifier) AccountStatusChanged(ctx context.Context, user *models.User) {
	n.send(ctx, user, "Your account status changed", email.TemplateAccountStatus, email.TemplateData{
		"Status": string(user.AccountStatus),
	})
}

func (n *EmailNotifier) TaskAssigned(ctx context.Context, user *models.User, task *models.Task) {
	n.send(ctx, user, "New task assigned: "+task.Title, email.TemplateTaskAssigned, email.TemplateData{
		"Title":    task.Title,
		"Deadline": task.Deadline.Format("2006-01-02"),
		"Payout":   money.Format(task.WeeklyPayout, money.Currency(user.PreferredCurrency)),
	})
}

func (n *EmailNotifier) TaskApproved(ctx context.Context, user *models.User, task *models.Task) {
	n.send(ctx, user, "Task approved: "+task.Title, email.TemplateTaskApproved, email.TemplateData{
		"Title":  task.Title,
		"Amount": money.Format(task.WeeklyPayout, money.Currency(user.PreferredCurrency)),
	})
}

func (n *EmailNotifier) TaskRejected(ctx context.Context, user *models.User, task *models.Task) {
	n.send(ctx, user, "Task not accepted: "+task.Title, email.TemplateTaskRejected, email.TemplateData{
		"Title":    task.Title,
		"Feedback": task.Feedback,
	})
}

func (n *EmailNotifier) WithdrawalProcessed(ctx context.Context, user *models.User, payment *models.Payment) {
	tpl, subject := email.TemplateWithdrawalApproved, "Withdrawal processed"
	if payment.Status == models.PaymentStatusFailed {
		tpl, subject = email.TemplateWithdrawalRejected, "Withdrawal rejected"
	}
	n.send(ctx, user, subject, tpl, email.TemplateData{
		"Amount": money.Format(payment.Amount, money.Currency(user.PreferredCurrency)),
	})
}

func (n *EmailNotifier) send(ctx context.Context, user *models.User, subject, tpl string, data email.TemplateData) {
	if n.provider == nil || user == nil || user.Email == "" {
		return
	}
	data["Name"] = user.FullName
	if err := n.provider.SendTemplate([]string{user.Email}, subject, tpl, data); err != nil {
		logger.CtxWithError(ctx, "Failed to send notification", err,
			"template", tpl,
			"user_id", user.ID,
		)
	}
}
