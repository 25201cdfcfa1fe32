package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/atmbank/atm-client/internal/core/domain"
	"github.com/atmbank/atm-client/internal/core/ports"
	"github.com/atmbank/atm-client/internal/metrics"
)

// Connectivity and guard messages shared by every operation.
const (
	msgCannotConnect   = "Cannot connect to server. Please ensure the service is running."
	msgLoginFirst      = "Please login first"
	defaultDisplayName = "User"
)

// ATMService orchestrates every interaction between user input and the
// remote banking service: validate, signal busy, call, signal idle,
// interpret. Failures never escape an operation; they end as a Presenter
// notification.
type ATMService struct {
	bank      ports.BankingService
	sessions  ports.SessionStore
	presenter ports.Presenter
	log       zerolog.Logger
}

func NewATMService(bank ports.BankingService, sessions ports.SessionStore, presenter ports.Presenter, log zerolog.Logger) *ATMService {
	return &ATMService{bank: bank, sessions: sessions, presenter: presenter, log: log}
}

// Register opens a new account. On success the form resets, the auth view is
// shown, and the login account field is prefilled with the new number.
func (s *ATMService) Register(ctx context.Context, in ports.RegisterInput) {
	if s.rejectInvalid("register", in) {
		return
	}

	s.presenter.SetLoading(true)
	err := s.bank.CreateAccount(ctx, domain.AccountRegistration{
		Account: in.Account,
		Name:    in.Name,
		PIN:     in.PIN,
		Bank:    in.Bank,
		Address: in.Address,
		Balance: in.Balance,
	})
	s.presenter.SetLoading(false)

	if err != nil {
		s.fail("register", err, "Failed to create account")
		return
	}

	metrics.OperationsTotal.WithLabelValues("register", metrics.ResultSuccess).Inc()
	s.log.Info().Int("account", in.Account).Msg("account created")

	s.presenter.Notify("Account created successfully! Please login.", ports.SeveritySuccess)
	s.presenter.ResetRegisterForm()
	s.presenter.ShowAuth()
	s.presenter.PrefillLoginAccount(in.Account)
}

// Login verifies credentials via a balance check, fetches the display name,
// and persists the session. The name fetch is best-effort: a failure there
// degrades to a default display name instead of failing the login.
func (s *ATMService) Login(ctx context.Context, in ports.LoginInput) {
	if s.rejectInvalid("login", in) {
		return
	}

	s.presenter.SetLoading(true)
	balance, err := s.bank.Balance(ctx, in.Account, in.PIN)
	if err != nil {
		s.presenter.SetLoading(false)
		s.fail("login", err, "Invalid account or PIN")
		return
	}

	name, err := s.bank.AccountName(ctx, in.Account)
	if err != nil {
		s.log.Warn().Err(err).Int("account", in.Account).Msg("account name lookup failed, using default")
		name = defaultDisplayName
	}
	s.presenter.SetLoading(false)

	sess := domain.Session{Account: in.Account, PIN: in.PIN, Name: name}
	if err := s.sessions.Save(ctx, sess); err != nil {
		// The in-memory slot is still set; only the restore-on-restart is lost.
		s.log.Error().Err(err).Msg("failed to persist session")
	}

	metrics.OperationsTotal.WithLabelValues("login", metrics.ResultSuccess).Inc()
	s.log.Info().Int("account", in.Account).Msg("login successful")

	s.presenter.Notify("Login successful!", ports.SeveritySuccess)
	s.presenter.ShowDashboard(name)
	s.presenter.RenderBalance(balance)
}

// Resume restores a previously saved session at startup. With a session
// present the dashboard is shown and the balance refreshed; otherwise the
// auth view is shown.
func (s *ATMService) Resume(ctx context.Context) {
	sess, err := s.sessions.Load(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("session restore failed")
		metrics.SessionRestoresTotal.WithLabelValues("malformed").Inc()
		s.presenter.ShowAuth()
		return
	}
	if sess == nil {
		metrics.SessionRestoresTotal.WithLabelValues("none").Inc()
		s.presenter.ShowAuth()
		return
	}

	metrics.SessionRestoresTotal.WithLabelValues("restored").Inc()
	s.log.Info().Int("account", sess.Account).Msg("session restored")
	s.presenter.ShowDashboard(sess.Name)
	s.CheckBalance(ctx)
}

// CheckBalance refreshes the displayed balance. A missing session makes it a
// no-op: the operation is only reachable from the dashboard.
func (s *ATMService) CheckBalance(ctx context.Context) {
	sess := s.sessions.Current()
	if sess == nil {
		return
	}

	s.presenter.SetLoading(true)
	balance, err := s.bank.Balance(ctx, sess.Account, sess.PIN)
	s.presenter.SetLoading(false)

	if err != nil {
		s.fail("balance", err, "Failed to fetch balance")
		return
	}

	metrics.OperationsTotal.WithLabelValues("balance", metrics.ResultSuccess).Inc()
	s.presenter.RenderBalance(balance)
	s.presenter.Notify("Balance updated!", ports.SeveritySuccess)
}

// Withdraw debits the account and renders the service-reported new balance.
func (s *ATMService) Withdraw(ctx context.Context, amount float64) {
	s.move(ctx, "withdraw", amount)
}

// Deposit credits the account and renders the service-reported new balance.
func (s *ATMService) Deposit(ctx context.Context, amount float64) {
	s.move(ctx, "deposit", amount)
}

// move implements withdraw and deposit; the two differ only in endpoint,
// wording, and which amount field is cleared on success.
func (s *ATMService) move(ctx context.Context, op string, amount float64) {
	sess := s.sessions.Current()
	if sess == nil {
		s.presenter.Notify(msgLoginFirst, ports.SeverityError)
		return
	}

	if amount <= 0 {
		metrics.OperationsTotal.WithLabelValues(op, metrics.ResultInvalid).Inc()
		s.presenter.Notify("Please enter a valid amount", ports.SeverityError)
		return
	}

	var (
		newBalance float64
		err        error
	)
	s.presenter.SetLoading(true)
	if op == "withdraw" {
		newBalance, err = s.bank.Withdraw(ctx, sess.Account, sess.PIN, amount)
	} else {
		newBalance, err = s.bank.Deposit(ctx, sess.Account, sess.PIN, amount)
	}
	s.presenter.SetLoading(false)

	if err != nil {
		if op == "withdraw" {
			s.fail(op, err, "Withdrawal failed")
		} else {
			s.fail(op, err, "Deposit failed")
		}
		return
	}

	metrics.OperationsTotal.WithLabelValues(op, metrics.ResultSuccess).Inc()
	s.log.Info().Str("operation", op).Float64("amount", amount).Msg("transaction completed")

	s.presenter.RenderBalance(newBalance)
	if op == "withdraw" {
		s.presenter.Notify(fmt.Sprintf("Successfully withdrew $%.2f", amount), ports.SeveritySuccess)
		s.presenter.ClearField(ports.FieldWithdrawAmount)
	} else {
		s.presenter.Notify(fmt.Sprintf("Successfully deposited $%.2f", amount), ports.SeveritySuccess)
		s.presenter.ClearField(ports.FieldDepositAmount)
	}
}

// Transactions renders the account's ledger most-recent-first. The service
// returns entries in chronological ascending order; rendering reverses a
// copy and never mutates the source slice.
func (s *ATMService) Transactions(ctx context.Context) {
	sess := s.sessions.Current()
	if sess == nil {
		s.presenter.Notify(msgLoginFirst, ports.SeverityError)
		return
	}

	s.presenter.SetLoading(true)
	list, err := s.bank.Transactions(ctx, sess.Account, sess.PIN)
	s.presenter.SetLoading(false)

	if err != nil {
		s.fail("transactions", err, "Failed to fetch transactions")
		return
	}

	metrics.OperationsTotal.WithLabelValues("transactions", metrics.ResultSuccess).Inc()
	s.presenter.RenderTransactions(newestFirst(list))
}

// Logout destroys the session and returns to the auth view. It always
// succeeds locally, even when removing the persisted record fails.
func (s *ATMService) Logout(ctx context.Context) {
	if err := s.sessions.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to remove persisted session")
	}

	for _, f := range []ports.Field{
		ports.FieldLoginAccount,
		ports.FieldLoginPIN,
		ports.FieldWithdrawAmount,
		ports.FieldDepositAmount,
	} {
		s.presenter.ClearField(f)
	}

	metrics.OperationsTotal.WithLabelValues("logout", metrics.ResultSuccess).Inc()
	s.log.Info().Msg("logged out")

	s.presenter.ShowAuth()
	s.presenter.Notify("Logged out successfully", ports.SeveritySuccess)
}

// rejectInvalid runs struct validation and, on failure, notifies the user and
// records the metric. It reports whether the operation should stop.
func (s *ATMService) rejectInvalid(op string, in any) bool {
	verr := checkInput(in)
	if verr == nil {
		return false
	}
	metrics.OperationsTotal.WithLabelValues(op, metrics.ResultInvalid).Inc()
	s.presenter.Notify(verr.Message, ports.SeverityError)
	return true
}

// fail interprets a banking-service error into a user notification. Service
// rejections surface the service's own text when present, else the
// per-operation fallback; connectivity failures always use the generic
// connectivity message.
func (s *ATMService) fail(op string, err error, fallback string) {
	var (
		se *domain.ServiceError
		ce *domain.ConnectivityError
	)
	switch {
	case errors.As(err, &ce):
		metrics.OperationsTotal.WithLabelValues(op, metrics.ResultUnreachable).Inc()
		s.log.Error().Err(err).Str("operation", op).Msg("banking service unreachable")
		s.presenter.Notify(msgCannotConnect, ports.SeverityError)
	case errors.As(err, &se):
		metrics.OperationsTotal.WithLabelValues(op, metrics.ResultRejected).Inc()
		s.log.Warn().Int("status", se.Status).Str("operation", op).Msg("request rejected")
		msg := se.Message
		if msg == "" {
			msg = fallback
		}
		s.presenter.Notify(msg, ports.SeverityError)
	default:
		metrics.OperationsTotal.WithLabelValues(op, metrics.ResultRejected).Inc()
		s.log.Error().Err(err).Str("operation", op).Msg("operation failed")
		s.presenter.Notify(fallback, ports.SeverityError)
	}
}

// newestFirst returns a reversed copy of a chronologically ascending ledger.
func newestFirst(list []domain.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, len(list))
	for i, t := range list {
		out[len(list)-1-i] = t
	}
	return out
}
