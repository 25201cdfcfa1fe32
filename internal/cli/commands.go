package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/atmbank/atm-client/internal/core/ports"
)

// Command binds one user action to an orchestrator operation. The table is
// the single place where user input meets the core; nothing in the core
// knows it is driven by a terminal.
type Command struct {
	Name  string
	Usage string
	Help  string
	Run   func(ctx context.Context, args []string)
}

// Dispatcher routes command lines to orchestrator operations.
type Dispatcher struct {
	svc   ports.ATMService
	term  *Terminal
	table map[string]*Command
	order []string
}

func NewDispatcher(svc ports.ATMService, term *Terminal) *Dispatcher {
	d := &Dispatcher{
		svc:   svc,
		term:  term,
		table: make(map[string]*Command),
	}

	d.add(&Command{
		Name:  "register",
		Usage: "register <account> <name> <pin> <bank> <address> <deposit>",
		Help:  "open a new account",
		Run:   d.register,
	})
	d.add(&Command{
		Name:  "login",
		Usage: "login [account] <pin>",
		Help:  "login with account number and PIN (account may be prefilled after register)",
		Run:   d.login,
	})
	d.add(&Command{
		Name: "balance",
		Help: "refresh the current balance",
		Run:  func(ctx context.Context, _ []string) { d.svc.CheckBalance(ctx) },
	})
	d.add(&Command{
		Name:  "withdraw",
		Usage: "withdraw <amount>",
		Help:  "withdraw money",
		Run: func(ctx context.Context, args []string) {
			d.svc.Withdraw(ctx, amountArg(args))
		},
	})
	d.add(&Command{
		Name:  "deposit",
		Usage: "deposit <amount>",
		Help:  "deposit money",
		Run: func(ctx context.Context, args []string) {
			d.svc.Deposit(ctx, amountArg(args))
		},
	})
	d.add(&Command{
		Name: "history",
		Help: "show transaction history, most recent first",
		Run:  func(ctx context.Context, _ []string) { d.svc.Transactions(ctx) },
	})
	d.add(&Command{
		Name: "logout",
		Help: "logout and clear the saved session",
		Run:  func(ctx context.Context, _ []string) { d.svc.Logout(ctx) },
	})
	d.add(&Command{
		Name: "help",
		Help: "show this help",
		Run:  func(_ context.Context, _ []string) { d.printHelp() },
	})

	return d
}

func (d *Dispatcher) add(c *Command) {
	d.table[c.Name] = c
	d.order = append(d.order, c.Name)
}

// Dispatch runs a single command line. It reports false when the user asked
// to exit.
func (d *Dispatcher) Dispatch(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}

	name := strings.ToLower(fields[0])
	if name == "exit" || name == "quit" {
		return false
	}

	cmd, ok := d.table[name]
	if !ok {
		d.term.Notify(fmt.Sprintf("Unknown command %q, try 'help'", name), ports.SeverityError)
		return true
	}

	cmd.Run(ctx, fields[1:])
	return true
}

// Loop reads command lines until EOF, exit, or context cancellation.
func (d *Dispatcher) Loop(ctx context.Context, in io.Reader) {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(d.term.out, "> ")
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		if !d.Dispatch(ctx, scanner.Text()) {
			return
		}
		fmt.Fprint(d.term.out, "> ")
	}
}

func (d *Dispatcher) register(ctx context.Context, args []string) {
	if len(args) < 6 {
		d.term.Notify("Usage: "+d.table["register"].Usage, ports.SeverityError)
		return
	}

	// Malformed numbers become out-of-range sentinels so the orchestrator's
	// validation produces the same message as an out-of-range value.
	d.svc.Register(ctx, ports.RegisterInput{
		Account: intArg(args[0]),
		Name:    args[1],
		PIN:     intArg(args[2]),
		Bank:    args[3],
		Address: args[4],
		Balance: floatArg(args[5], -1),
	})
}

func (d *Dispatcher) login(ctx context.Context, args []string) {
	var account, pin string
	switch len(args) {
	case 1:
		// Single argument is the PIN; the account comes from the prefill
		// left behind by a successful registration.
		prefill, ok := d.term.fieldValue(ports.FieldLoginAccount)
		if !ok {
			d.term.Notify("Usage: "+d.table["login"].Usage, ports.SeverityError)
			return
		}
		account, pin = prefill, args[0]
	case 2:
		account, pin = args[0], args[1]
	default:
		d.term.Notify("Usage: "+d.table["login"].Usage, ports.SeverityError)
		return
	}

	d.svc.Login(ctx, ports.LoginInput{
		Account: intArg(account),
		PIN:     intArg(pin),
	})
}

func (d *Dispatcher) printHelp() {
	fmt.Fprintln(d.term.out, "Available commands:")
	for _, name := range d.order {
		c := d.table[name]
		usage := c.Usage
		if usage == "" {
			usage = c.Name
		}
		fmt.Fprintf(d.term.out, "  %-55s %s\n", usage, c.Help)
	}
	fmt.Fprintln(d.term.out, "  exit                                                    quit the client")
}

func intArg(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func floatArg(s string, fallback float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return f
}

func amountArg(args []string) float64 {
	if len(args) == 0 {
		return -1
	}
	return floatArg(args[0], -1)
}
