package ports

import "context"

// RegisterInput carries the fields of a new account registration.
type RegisterInput struct {
	Account int     `validate:"gte=10000"`
	Name    string  `validate:"min=2"`
	PIN     int     `validate:"gte=1000,lte=9999"`
	Bank    string
	Address string
	Balance float64 `validate:"gte=0"`
}

// LoginInput carries login credentials.
type LoginInput struct {
	Account int `validate:"gt=0"`
	PIN     int `validate:"gte=1000,lte=999999"`
}

// ATMService is the request orchestrator: it mediates every interaction
// between user input and the remote banking service.
//
// Operations never return errors. Every failure is recovered into a user
// notification on the Presenter, and every operation leaves the UI in a
// consistent, re-triable state.
type ATMService interface {
	Register(ctx context.Context, in RegisterInput)
	Login(ctx context.Context, in LoginInput)
	// Resume restores a persisted session at startup, refreshing the
	// displayed balance when one exists.
	Resume(ctx context.Context)
	CheckBalance(ctx context.Context)
	Withdraw(ctx context.Context, amount float64)
	Deposit(ctx context.Context, amount float64)
	Transactions(ctx context.Context)
	Logout(ctx context.Context)
}
