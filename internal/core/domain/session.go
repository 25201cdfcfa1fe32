package domain

// Session identifies the account currently using this client. Exactly one
// session is active per client instance; it is created on successful login
// and destroyed on logout.
//
// The persisted form stores the PIN in clear text. This is an accepted
// limitation of the deployment model: the session store is scoped to the
// local machine and is wiped on logout.
type Session struct {
	Account int    `json:"account"`
	PIN     int    `json:"pin"`
	Name    string `json:"name"`
}

// AccountRegistration carries everything needed to open a new account.
// It is built from user input, sent once, and discarded.
type AccountRegistration struct {
	Account int     `json:"account"`
	Name    string  `json:"name"`
	PIN     int     `json:"pin"`
	Bank    string  `json:"bank_name"`
	Address string  `json:"address"`
	Balance float64 `json:"balance"`
}
