package bankapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/atmbank/atm-client/internal/core/domain"
)

var discardLogger = zerolog.Nop()

// fakeBank runs an in-process banking service for integration tests and
// returns a Client pointed at it.
func fakeBank(t *testing.T, register func(e *echo.Echo)) *Client {
	t.Helper()
	e := echo.New()
	e.HideBanner = true
	register(e)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second, discardLogger)
}

func TestClient_CreateAccount_SendsExactFields(t *testing.T) {
	var got createAccountRequest
	client := fakeBank(t, func(e *echo.Echo) {
		e.POST("/accounts", func(c echo.Context) error {
			if err := c.Bind(&got); err != nil {
				return err
			}
			return c.JSON(http.StatusCreated, got)
		})
	})

	reg := domain.AccountRegistration{
		Account: 12345, Name: "Jo", PIN: 4321,
		Bank: "First National", Address: "12 Main St", Balance: 100,
	}
	if err := client.CreateAccount(context.Background(), reg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := createAccountRequest{
		Account: 12345, Name: "Jo", PIN: 4321,
		BankName: "First National", Address: "12 Main St", Balance: 100,
	}
	if got != want {
		t.Errorf("request body mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestClient_Balance_ParsesAmount(t *testing.T) {
	client := fakeBank(t, func(e *echo.Echo) {
		e.GET("/atm/balance/:account/:pin", func(c echo.Context) error {
			if c.Param("account") != "12345" || c.Param("pin") != "4321" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"detail": "invalid pin"})
			}
			return c.JSON(http.StatusOK, map[string]float64{"balance": 420.5})
		})
	})

	balance, err := client.Balance(context.Background(), 12345, 4321)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balance != 420.5 {
		t.Errorf("balance = %v, want 420.5", balance)
	}
}

func TestClient_Balance_RejectionCarriesDetail(t *testing.T) {
	client := fakeBank(t, func(e *echo.Echo) {
		e.GET("/atm/balance/:account/:pin", func(c echo.Context) error {
			return c.JSON(http.StatusUnauthorized, map[string]string{"detail": "invalid pin"})
		})
	})

	_, err := client.Balance(context.Background(), 12345, 1111)

	var se *domain.ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("expected ServiceError, got %T: %v", err, err)
	}
	if se.Status != http.StatusUnauthorized || se.Message != "invalid pin" {
		t.Errorf("unexpected rejection: %+v", se)
	}
}

func TestClient_Balance_RejectionCarriesErrorField(t *testing.T) {
	client := fakeBank(t, func(e *echo.Echo) {
		e.GET("/atm/balance/:account/:pin", func(c echo.Context) error {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "account not found"})
		})
	})

	_, err := client.Balance(context.Background(), 99999, 4321)

	var se *domain.ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("expected ServiceError, got %T: %v", err, err)
	}
	if se.Message != "account not found" {
		t.Errorf("message = %q, want %q", se.Message, "account not found")
	}
}

func TestClient_Rejection_WithoutBodyIsStillRejection(t *testing.T) {
	client := fakeBank(t, func(e *echo.Echo) {
		e.GET("/atm/balance/:account/:pin", func(c echo.Context) error {
			return c.HTML(http.StatusBadGateway, "<html>upstream broke</html>")
		})
	})

	_, err := client.Balance(context.Background(), 12345, 4321)

	var se *domain.ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("expected ServiceError, got %T: %v", err, err)
	}
	if se.Status != http.StatusBadGateway || se.Message != "" {
		t.Errorf("unexpected rejection: %+v", se)
	}
}

func TestClient_MalformedSuccessBodyIsConnectivityFailure(t *testing.T) {
	client := fakeBank(t, func(e *echo.Echo) {
		e.GET("/atm/balance/:account/:pin", func(c echo.Context) error {
			return c.String(http.StatusOK, "not json")
		})
	})

	_, err := client.Balance(context.Background(), 12345, 4321)

	var ce *domain.ConnectivityError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConnectivityError, got %T: %v", err, err)
	}
}

func TestClient_UnreachableServiceIsConnectivityFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing is listening anymore
	client := NewClient(srv.URL, time.Second, discardLogger)

	_, err := client.Balance(context.Background(), 12345, 4321)

	var ce *domain.ConnectivityError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConnectivityError, got %T: %v", err, err)
	}
}

func TestClient_Withdraw_SendsQueryAndParsesNewBalance(t *testing.T) {
	client := fakeBank(t, func(e *echo.Echo) {
		e.POST("/atm/withdraw", func(c echo.Context) error {
			if c.QueryParam("account") != "12345" || c.QueryParam("pin") != "4321" || c.QueryParam("amount") != "50" {
				t.Errorf("unexpected query: %v", c.QueryParams())
			}
			return c.JSON(http.StatusOK, map[string]float64{"new_balance": 50})
		})
	})

	newBalance, err := client.Withdraw(context.Background(), 12345, 4321, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if newBalance != 50 {
		t.Errorf("new balance = %v, want 50", newBalance)
	}
}

func TestClient_Deposit_ParsesNewBalance(t *testing.T) {
	client := fakeBank(t, func(e *echo.Echo) {
		e.POST("/atm/deposit", func(c echo.Context) error {
			return c.JSON(http.StatusOK, map[string]float64{"new_balance": 175.5})
		})
	})

	newBalance, err := client.Deposit(context.Background(), 12345, 4321, 25.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if newBalance != 175.5 {
		t.Errorf("new balance = %v, want 175.5", newBalance)
	}
}

func TestClient_Transactions_PreservesServiceOrder(t *testing.T) {
	client := fakeBank(t, func(e *echo.Echo) {
		e.GET("/atm/transactions/:account/:pin", func(c echo.Context) error {
			return c.JSON(http.StatusOK, map[string]any{
				"transactions": []map[string]any{
					{"type": "credit", "amount": 100, "balance_after": 100, "timestamp": "2025-03-01T12:00:00Z"},
					{"type": "debit", "amount": 30, "balance_after": 70, "timestamp": "2025-03-01T13:00:00Z"},
				},
			})
		})
	})

	list, err := client.Transactions(context.Background(), 12345, 4321)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(list))
	}
	if list[0].Type != domain.TransactionCredit || list[0].Amount != 100 {
		t.Errorf("unexpected first entry: %+v", list[0])
	}
	if list[1].Type != domain.TransactionDebit || list[1].BalanceAfter != 70 {
		t.Errorf("unexpected second entry: %+v", list[1])
	}
	if !list[0].Timestamp.Before(list[1].Timestamp) {
		t.Error("expected chronological ascending order from the service")
	}
}

func TestClient_AccountName(t *testing.T) {
	client := fakeBank(t, func(e *echo.Echo) {
		e.GET("/accounts/:account", func(c echo.Context) error {
			return c.JSON(http.StatusOK, map[string]any{"name": "Carlos", "bank_name": "First National"})
		})
	})

	name, err := client.AccountName(context.Background(), 12345)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "Carlos" {
		t.Errorf("name = %q, want Carlos", name)
	}
}
