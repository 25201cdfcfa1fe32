// Package cli is the terminal presentation surface: it renders orchestrator
// output to stdout and maps typed commands onto orchestrator operations.
package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/atmbank/atm-client/internal/core/domain"
	"github.com/atmbank/atm-client/internal/core/ports"
)

// Terminal implements ports.Presenter for an interactive terminal. Besides
// rendering, it keeps a small form-state map so prefilled and cleared fields
// behave like their on-screen counterparts (the login account is prefilled
// after registration, sensitive fields are wiped on logout).
type Terminal struct {
	out io.Writer

	mu     sync.Mutex
	fields map[ports.Field]string
}

func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{
		out:    out,
		fields: make(map[ports.Field]string),
	}
}

func (t *Terminal) Notify(message string, severity ports.Severity) {
	mark := "✔"
	if severity == ports.SeverityError {
		mark = "✖"
	}
	fmt.Fprintf(t.out, "%s %s\n", mark, message)
}

func (t *Terminal) SetLoading(loading bool) {
	if loading {
		fmt.Fprintln(t.out, "… contacting the bank")
	}
}

func (t *Terminal) ShowDashboard(name string) {
	fmt.Fprintf(t.out, "\nWelcome, %s\n", name)
	fmt.Fprintln(t.out, "Commands: balance, withdraw, deposit, history, logout")
}

func (t *Terminal) ShowAuth() {
	fmt.Fprintln(t.out, "\nPlease login or register.")
	fmt.Fprintln(t.out, "Commands: login, register, help")
}

func (t *Terminal) RenderBalance(amount float64) {
	fmt.Fprintf(t.out, "Current balance: %s\n", formatUSD(amount))
}

func (t *Terminal) RenderTransactions(list []domain.Transaction) {
	if len(list) == 0 {
		fmt.Fprintln(t.out, "No transactions yet")
		return
	}

	fmt.Fprintln(t.out, "Transaction history (most recent first):")
	for _, tx := range list {
		sign := "-"
		label := "Withdrawal"
		if tx.IsCredit() {
			sign = "+"
			label = "Deposit"
		}
		fmt.Fprintf(t.out, "  %s  %-10s %s%s  (balance after: %s)\n",
			tx.Timestamp.Format("Jan 02, 2006 15:04"),
			label,
			sign,
			formatUSD(tx.Amount),
			formatUSD(tx.BalanceAfter),
		)
	}
}

func (t *Terminal) ClearField(f ports.Field) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.fields, f)
}

func (t *Terminal) PrefillLoginAccount(account int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fields[ports.FieldLoginAccount] = strconv.Itoa(account)
}

// ResetRegisterForm exists for presentation surfaces with a persistent
// registration form; the terminal keeps no registration draft, so there is
// nothing to reset.
func (t *Terminal) ResetRegisterForm() {}

// fieldValue returns the current value of a form field, if any. Used by the
// dispatcher to honour prefills.
func (t *Terminal) fieldValue(f ports.Field) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.fields[f]
	return v, ok
}

// formatUSD renders an amount as fixed-point US dollars with thousands
// separators, e.g. 1234.5 → "$1,234.50".
func formatUSD(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}

	s := strconv.FormatFloat(v, 'f', 2, 64)
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}
