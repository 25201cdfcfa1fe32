// Package bankapi is the HTTP adapter for the remote ATM banking service.
//
// Failure classification happens here, at the call boundary: a transport
// error or an unparseable success body becomes *domain.ConnectivityError,
// while any non-2xx status becomes *domain.ServiceError carrying whatever
// error text the body provided. Callers never inspect error strings.
package bankapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/atmbank/atm-client/internal/core/domain"
	"github.com/atmbank/atm-client/internal/metrics"
)

const defaultTimeout = 10 * time.Second

// Client talks to the remote banking service. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient builds a Client for the service at baseURL. A non-positive
// timeout falls back to defaultTimeout; no retries are performed.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// CreateAccount registers a new account with the service.
func (c *Client) CreateAccount(ctx context.Context, reg domain.AccountRegistration) error {
	body := createAccountRequest{
		Account:  reg.Account,
		Name:     reg.Name,
		PIN:      reg.PIN,
		BankName: reg.Bank,
		Address:  reg.Address,
		Balance:  reg.Balance,
	}
	return c.do(ctx, "create_account", http.MethodPost, "/accounts", body, nil)
}

// Balance fetches the current balance; the service rejects the call when the
// account/PIN pair is wrong, so this doubles as credential verification.
func (c *Client) Balance(ctx context.Context, account, pin int) (float64, error) {
	var out balanceResponse
	path := fmt.Sprintf("/atm/balance/%d/%d", account, pin)
	if err := c.do(ctx, "balance", http.MethodGet, path, nil, &out); err != nil {
		return 0, err
	}
	return out.Balance, nil
}

// AccountName fetches the holder name for display purposes.
func (c *Client) AccountName(ctx context.Context, account int) (string, error) {
	var out accountResponse
	path := fmt.Sprintf("/accounts/%d", account)
	if err := c.do(ctx, "account", http.MethodGet, path, nil, &out); err != nil {
		return "", err
	}
	return out.Name, nil
}

// Withdraw debits the account and returns the new balance.
func (c *Client) Withdraw(ctx context.Context, account, pin int, amount float64) (float64, error) {
	return c.movement(ctx, "withdraw", account, pin, amount)
}

// Deposit credits the account and returns the new balance.
func (c *Client) Deposit(ctx context.Context, account, pin int, amount float64) (float64, error) {
	return c.movement(ctx, "deposit", account, pin, amount)
}

func (c *Client) movement(ctx context.Context, endpoint string, account, pin int, amount float64) (float64, error) {
	q := url.Values{}
	q.Set("account", strconv.Itoa(account))
	q.Set("pin", strconv.Itoa(pin))
	q.Set("amount", strconv.FormatFloat(amount, 'f', -1, 64))

	var out movementResponse
	path := "/atm/" + endpoint + "?" + q.Encode()
	if err := c.do(ctx, endpoint, http.MethodPost, path, nil, &out); err != nil {
		return 0, err
	}
	return out.NewBalance, nil
}

// Transactions fetches the ledger in chronological ascending order.
func (c *Client) Transactions(ctx context.Context, account, pin int) ([]domain.Transaction, error) {
	var out transactionsResponse
	path := fmt.Sprintf("/atm/transactions/%d/%d", account, pin)
	if err := c.do(ctx, "transactions", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	list := make([]domain.Transaction, 0, len(out.Transactions))
	for _, rec := range out.Transactions {
		list = append(list, domain.Transaction{
			Type:         domain.TransactionType(rec.Type),
			Amount:       rec.Amount,
			BalanceAfter: rec.BalanceAfter,
			Timestamp:    rec.Timestamp,
		})
	}
	return list, nil
}

// do executes one round trip and classifies the outcome. in is JSON-encoded
// as the request body when non-nil; out is decoded from a 2xx body when
// non-nil.
func (c *Client) do(ctx context.Context, endpoint, method, path string, in, out any) error {
	start := time.Now()
	defer func() {
		metrics.RequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", endpoint, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", endpoint, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.ConnectivityError{Op: endpoint, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.ConnectivityError{Op: endpoint, Err: err}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		// Reachable but rejected. The message is best-effort: an error body
		// that is not valid JSON still classifies as a rejection.
		var env errorEnvelope
		_ = json.Unmarshal(raw, &env)
		c.log.Debug().Str("endpoint", endpoint).Int("status", resp.StatusCode).Msg("request rejected")
		return &domain.ServiceError{Status: resp.StatusCode, Message: env.message()}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return &domain.ConnectivityError{Op: endpoint, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return nil
}
