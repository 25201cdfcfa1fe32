package domain

import "time"

// TransactionType marks a ledger entry as increasing or decreasing the balance.
type TransactionType string

const (
	TransactionCredit TransactionType = "credit"
	TransactionDebit  TransactionType = "debit"
)

// Transaction is a single ledger entry owned by the remote banking service.
// The client only ever holds a read-only copy for rendering.
type Transaction struct {
	Type         TransactionType `json:"type"`
	Amount       float64         `json:"amount"`
	BalanceAfter float64         `json:"balance_after"`
	Timestamp    time.Time       `json:"timestamp"`
}

// IsCredit reports whether the entry increased the balance.
func (t Transaction) IsCredit() bool {
	return t.Type == TransactionCredit
}
