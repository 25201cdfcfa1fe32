package ports

import (
	"context"

	"github.com/atmbank/atm-client/internal/core/domain"
)

// BankingService is the client-side view of the remote ATM banking API.
// Every call authenticates with raw account number and PIN; the service owns
// all balance arithmetic and the transaction ledger.
//
// Implementations classify failures at the call boundary: a reachable service
// that rejects a request yields *domain.ServiceError, an unreachable service
// or an unparseable response yields *domain.ConnectivityError.
type BankingService interface {
	CreateAccount(ctx context.Context, reg domain.AccountRegistration) error
	// Balance doubles as credential verification: it fails with a rejection
	// when the account/PIN pair is wrong.
	Balance(ctx context.Context, account, pin int) (float64, error)
	AccountName(ctx context.Context, account int) (string, error)
	Withdraw(ctx context.Context, account, pin int, amount float64) (float64, error)
	Deposit(ctx context.Context, account, pin int, amount float64) (float64, error)
	// Transactions returns the ledger in chronological ascending order.
	Transactions(ctx context.Context, account, pin int) ([]domain.Transaction, error)
}
