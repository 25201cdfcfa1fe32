package bankapi

import "time"

// Wire types for the remote banking service. Request and response shapes are
// owned by this package so the JSON contract stays out of the core.

type createAccountRequest struct {
	Account  int     `json:"account"`
	Name     string  `json:"name"`
	PIN      int     `json:"pin"`
	BankName string  `json:"bank_name"`
	Address  string  `json:"address"`
	Balance  float64 `json:"balance"`
}

type balanceResponse struct {
	Balance float64 `json:"balance"`
}

type accountResponse struct {
	Name string `json:"name"`
}

type movementResponse struct {
	NewBalance float64 `json:"new_balance"`
}

type transactionRecord struct {
	Type         string    `json:"type"`
	Amount       float64   `json:"amount"`
	BalanceAfter float64   `json:"balance_after"`
	Timestamp    time.Time `json:"timestamp"`
}

type transactionsResponse struct {
	Transactions []transactionRecord `json:"transactions"`
}

// errorEnvelope matches the service's error bodies. Depending on the
// endpoint the message arrives under "detail" or "error".
type errorEnvelope struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

func (e errorEnvelope) message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Error
}
