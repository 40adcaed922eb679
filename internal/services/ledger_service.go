package services

import (
	"gigwork_backend/internal/logger"
	"gigwork_backend/internal/models"
	"gigwork_backend/internal/money"
	"gigwork_backend/internal/repositories"
	"gigwork_backend/internal/services/dto"
	"gigwork_backend/internal/session"
	"gigwork_backend/pkg/apperrors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LedgerService - платежи и баланс воркера.
// Баланс меняется только атомарными выражениями репозитория внутри транзакций.
type LedgerService interface {
	// CreditTaskPayment вызывается внутри транзакции одобрения задачи
	CreditTaskPayment(tx *gorm.DB, task *models.Task) (*models.Payment, error)

	RequestWithdrawal(db *gorm.DB, actor *session.Session, req *dto.WithdrawalRequest) (*dto.PaymentResponse, error)
	ApproveWithdrawal(db *gorm.DB, actor *session.Session, paymentID string) (*dto.PaymentResponse, error)
	RejectWithdrawal(db *gorm.DB, actor *session.Session, paymentID string) (*dto.PaymentResponse, error)

	ListPayments(db *gorm.DB, actor *session.Session, query *dto.PaymentListQuery) ([]dto.PaymentResponse, error)
	GetBalance(db *gorm.DB, actor *session.Session, userID string) (*dto.BalanceSummary, error)
	Reconcile(db *gorm.DB) (*dto.ReconcileReport, error)

	SetPayoutAccount(db *gorm.DB, actor *session.Session, req *dto.PayoutAccountRequest) (*dto.UserResponse, error)
	VerifyPayoutAccount(db *gorm.DB, workerID string) (*dto.UserResponse, error)
}

type LedgerServiceImpl struct {
	paymentRepo repositories.PaymentRepository
	userRepo    repositories.UserRepository
	notifier    Notifier
}

func NewLedgerService(
	paymentRepo repositories.PaymentRepository,
	userRepo repositories.UserRepository,
	notifier Notifier,
) LedgerService {
	return &LedgerServiceImpl{
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

func (s *LedgerServiceImpl) CreditTaskPayment(tx *gorm.DB, task *models.Task) (*models.Payment, error) {
	if task.AssignedTo == nil {
		return nil, apperrors.ErrTaskNotAssigned
	}

	completedAt := now()
	taskID := task.ID
	payment := &models.Payment{
		UserID:      *task.AssignedTo,
		Amount:      task.WeeklyPayout,
		Type:        models.PaymentTypeTaskPayment,
		Status:      models.PaymentStatusCompleted,
		TaskID:      &taskID,
		CompletedAt: &completedAt,
	}
	if err := s.paymentRepo.Create(tx, payment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.userRepo.AdjustBalance(tx, payment.UserID, payment.Amount); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrWorkerNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return payment, nil
}

// RequestWithdrawal - сумма проверяется против баланса, но не резервируется
func (s *LedgerServiceImpl) RequestWithdrawal(db *gorm.DB, actor *session.Session, req *dto.WithdrawalRequest) (*dto.PaymentResponse, error) {
	currency := money.BaseCurrency
	if req.Currency != "" {
		c, err := money.ParseCurrency(req.Currency)
		if err != nil {
			return nil, apperrors.NewValidationFieldError("currency", err.Error())
		}
		currency = c
	}
	amount := money.ToBase(req.Amount, currency)
	if !amount.IsPositive() {
		return nil, apperrors.NewValidationFieldError("amount", "Must be greater than 0")
	}

	user, err := s.findWorker(db, actor.UserID())
	if err != nil {
		return nil, err
	}
	if !user.PayoutAccount.IsSet() {
		return nil, apperrors.ErrPayoutAccountMissing
	}
	if amount.GreaterThan(user.Balance) {
		return nil, apperrors.ErrInsufficientBalance
	}

	payment := &models.Payment{
		UserID:       user.ID,
		Amount:       amount,
		Type:         models.PaymentTypeWithdrawal,
		Status:       models.PaymentStatusPending,
		PayoutMethod: user.PayoutAccount.Describe(),
	}
	if err := s.paymentRepo.Create(db, payment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctxOf(db), "Withdrawal requested", "payment_id", payment.ID, "user_id", user.ID, "amount", amount.String())

	resp := dto.NewPaymentResponse(payment, currencyOf(user))
	return &resp, nil
}

// ApproveWithdrawal: условное списание и смена статуса в одной транзакции
func (s *LedgerServiceImpl) ApproveWithdrawal(db *gorm.DB, actor *session.Session, paymentID string) (*dto.PaymentResponse, error) {
	var payment *models.Payment

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		payment, err = s.findPendingWithdrawal(tx, paymentID)
		if err != nil {
			return err
		}

		if err := s.userRepo.DebitBalance(tx, payment.UserID, payment.Amount); err != nil {
			switch {
			case apperrors.Is(err, repositories.ErrInsufficientBalance):
				return apperrors.ErrInsufficientBalance
			case apperrors.Is(err, repositories.ErrUserNotFound):
				return apperrors.ErrWorkerNotFound
			default:
				return apperrors.InternalError(err)
			}
		}

		completedAt := now()
		if err := s.paymentRepo.UpdateIfStatus(tx, payment.ID, models.PaymentStatusPending, map[string]interface{}{
			"status":       models.PaymentStatusCompleted,
			"completed_at": completedAt,
		}); err != nil {
			return s.mapPaymentTransitionError(err)
		}
		payment.Status = models.PaymentStatusCompleted
		payment.CompletedAt = &completedAt
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctxOf(db), "Withdrawal approved", "payment_id", payment.ID, "user_id", payment.UserID, "amount", payment.Amount.String())
	s.notifyWithdrawal(db, payment)

	resp := dto.NewPaymentResponse(payment, currencyOf(&actor.User))
	return &resp, nil
}

func (s *LedgerServiceImpl) RejectWithdrawal(db *gorm.DB, actor *session.Session, paymentID string) (*dto.PaymentResponse, error) {
	payment, err := s.findPendingWithdrawal(db, paymentID)
	if err != nil {
		return nil, err
	}

	if err := s.paymentRepo.UpdateIfStatus(db, payment.ID, models.PaymentStatusPending, map[string]interface{}{
		"status": models.PaymentStatusFailed,
	}); err != nil {
		return nil, s.mapPaymentTransitionError(err)
	}
	payment.Status = models.PaymentStatusFailed

	logger.CtxInfo(ctxOf(db), "Withdrawal rejected", "payment_id", payment.ID, "user_id", payment.UserID)
	s.notifyWithdrawal(db, payment)

	resp := dto.NewPaymentResponse(payment, currencyOf(&actor.User))
	return &resp, nil
}

// ListPayments - воркер видит только свои платежи
func (s *LedgerServiceImpl) ListPayments(db *gorm.DB, actor *session.Session, query *dto.PaymentListQuery) ([]dto.PaymentResponse, error) {
	filter := repositories.PaymentFilter{
		UserID: query.UserID,
		Type:   models.PaymentType(query.Type),
		Status: models.PaymentStatus(query.Status),
	}
	if !actor.IsAdmin() {
		filter.UserID = actor.UserID()
	}

	payments, err := s.paymentRepo.List(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPaymentResponses(payments, currencyOf(&actor.User)), nil
}

// GetBalance - суммы в валюте того, кто смотрит
func (s *LedgerServiceImpl) GetBalance(db *gorm.DB, actor *session.Session, userID string) (*dto.BalanceSummary, error) {
	if !actor.IsAdmin() {
		userID = actor.UserID()
	}

	user, err := s.findWorker(db, userID)
	if err != nil {
		return nil, err
	}

	totals, err := s.paymentRepo.SumByUser(db, user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	available := user.Balance.Sub(totals.PendingWithdrawal)
	if available.IsNegative() {
		available = decimal.Zero
	}

	c := currencyOf(&actor.User)
	return &dto.BalanceSummary{
		UserID:            user.ID,
		Balance:           money.NewAmount(user.Balance, c),
		LedgerBalance:     money.NewAmount(totals.Balance(), c),
		TotalEarned:       money.NewAmount(totals.Credited, c),
		TotalWithdrawn:    money.NewAmount(totals.Withdrawn, c),
		PendingWithdrawal: money.NewAmount(totals.PendingWithdrawal, c),
		Available:         money.NewAmount(available, c),
	}, nil
}

// Reconcile сверяет кэш баланса каждого воркера с леджером
func (s *LedgerServiceImpl) Reconcile(db *gorm.DB) (*dto.ReconcileReport, error) {
	workers, err := s.userRepo.List(db, repositories.UserFilter{Role: models.UserRoleWorker})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	totals, err := s.paymentRepo.SumAllByUser(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	report := &dto.ReconcileReport{
		CheckedAt: now(),
		Workers:   len(workers),
		Drifts:    []dto.BalanceDrift{},
	}
	for i := range workers {
		w := &workers[i]
		ledger := decimal.Zero
		if t, ok := totals[w.ID]; ok {
			ledger = t.Balance()
		}
		if !w.Balance.Equal(ledger) {
			report.Drifts = append(report.Drifts, dto.BalanceDrift{
				UserID:        w.ID,
				Email:         w.Email,
				CachedBalance: w.Balance,
				LedgerBalance: ledger,
				Difference:    w.Balance.Sub(ledger),
			})
		}
	}
	return report, nil
}

// SetPayoutAccount - любое изменение реквизитов снимает отметку о проверке
func (s *LedgerServiceImpl) SetPayoutAccount(db *gorm.DB, actor *session.Session, req *dto.PayoutAccountRequest) (*dto.UserResponse, error) {
	account := models.PayoutAccount{AccountType: req.AccountType}
	switch req.AccountType {
	case models.PayoutAccountBank:
		account.AccountName = req.AccountName
		account.AccountNumber = req.AccountNumber
		account.IFSC = req.IFSC
	case models.PayoutAccountUPI:
		account.UPIID = req.UPIID
	}
	if !account.IsSet() {
		return nil, apperrors.NewValidationFieldError("account_type", "Payout account details are incomplete")
	}

	if err := s.userRepo.Update(db, actor.UserID(), map[string]interface{}{
		"payout_account_type":   account.AccountType,
		"payout_account_name":   account.AccountName,
		"payout_account_number": account.AccountNumber,
		"payout_ifsc":           account.IFSC,
		"payout_upi_id":         account.UPIID,
		"payout_verified":       false,
	}); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctxOf(db), "Payout account updated", "user_id", actor.UserID(), "type", account.AccountType)
	return s.userResponse(db, actor.UserID())
}

func (s *LedgerServiceImpl) VerifyPayoutAccount(db *gorm.DB, workerID string) (*dto.UserResponse, error) {
	user, err := s.findWorker(db, workerID)
	if err != nil {
		return nil, err
	}
	if !user.PayoutAccount.IsSet() {
		return nil, apperrors.ErrPayoutAccountMissing
	}

	if err := s.userRepo.Update(db, user.ID, map[string]interface{}{"payout_verified": true}); err != nil {
		return nil, apperrors.InternalError(err)
	}
	logger.CtxInfo(ctxOf(db), "Payout account verified", "user_id", user.ID)
	return s.userResponse(db, user.ID)
}

// --- helpers ---

func (s *LedgerServiceImpl) findWorker(db *gorm.DB, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrWorkerNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if user.Role != models.UserRoleWorker {
		return nil, apperrors.ErrNotAWorker
	}
	return user, nil
}

func (s *LedgerServiceImpl) findPendingWithdrawal(db *gorm.DB, paymentID string) (*models.Payment, error) {
	payment, err := s.paymentRepo.FindByID(db, paymentID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPaymentNotFound) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if payment.Type != models.PaymentTypeWithdrawal {
		return nil, apperrors.ErrNotAWithdrawal
	}
	if payment.Status != models.PaymentStatusPending {
		return nil, apperrors.ErrInvalidStatus("payment", "Withdrawal is already processed")
	}
	return payment, nil
}

func (s *LedgerServiceImpl) mapPaymentTransitionError(err error) error {
	switch {
	case apperrors.Is(err, repositories.ErrPaymentNotFound):
		return apperrors.ErrPaymentNotFound
	case apperrors.Is(err, repositories.ErrPaymentStatusConflict):
		return apperrors.ErrInvalidStatus("payment", "Withdrawal is already processed")
	default:
		return apperrors.InternalError(err)
	}
}

func (s *LedgerServiceImpl) notifyWithdrawal(db *gorm.DB, payment *models.Payment) {
	if user, err := s.userRepo.FindByID(db, payment.UserID); err == nil {
		s.notifier.WithdrawalProcessed(ctxOf(db), user, payment)
	}
}

func (s *LedgerServiceImpl) userResponse(db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}
