package ports

import "github.com/atmbank/atm-client/internal/core/domain"

// Severity grades a user notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Field names an input field on the presentation surface.
type Field string

const (
	FieldLoginAccount   Field = "login-account"
	FieldLoginPIN       Field = "login-pin"
	FieldWithdrawAmount Field = "withdraw-amount"
	FieldDepositAmount  Field = "deposit-amount"
)

// Presenter is the presentation surface the orchestrator renders into. It is
// deliberately small so the core stays decoupled from any particular
// rendering technology (terminal, web view, test double).
type Presenter interface {
	Notify(message string, severity Severity)
	SetLoading(loading bool)
	ShowDashboard(name string)
	ShowAuth()
	RenderBalance(amount float64)
	// RenderTransactions receives entries most-recent-first.
	RenderTransactions(list []domain.Transaction)
	ClearField(f Field)
	PrefillLoginAccount(account int)
	ResetRegisterForm()
}
