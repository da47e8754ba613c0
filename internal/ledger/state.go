package ledger

import "sort"

// Account is one holder's balance.
type Account struct {
	Address string `json:"address"`
	Balance uint64 `json:"balance"`
}

// State is the whole token ledger. Operations return a new State and leave
// the receiver untouched, so a caller can discard the result of a call that
// traps.
type State struct {
	accounts    map[string]Account
	Name        string `json:"name"`
	Ticker      string `json:"ticker"`
	TotalSupply uint64 `json:"totalSupply"`
}

// InitializeSupply replaces the ledger with a single account holding the
// full supply. Prior balances are discarded; repeated calls are allowed.
func (s State) InitializeSupply(name, originAddress, ticker string, totalSupply uint64) State {
	return State{
		accounts: map[string]Account{
			originAddress: {Address: originAddress, Balance: totalSupply},
		},
		Name:        name,
		Ticker:      ticker,
		TotalSupply: totalSupply,
	}
}

// Transfer moves amount from one address to another, opening either account
// at zero if it has never been seen. It traps (panics with *TrapError) when
// the sender's balance is below amount; Service recovers the trap and keeps
// the previous State.
func (s State) Transfer(from, to string, amount uint64) State {
	next := s.clone()
	next.ensureAccount(to)
	next.ensureAccount(from)

	if next.accounts[from].Balance < amount {
		trap("Insufficient amount")
	}

	sender := next.accounts[from]
	sender.Balance -= amount
	next.accounts[from] = sender

	receiver := next.accounts[to]
	receiver.Balance += amount
	next.accounts[to] = receiver
	return next
}

// Balance returns the balance of address, or 0 for an address never seen.
// It never creates an account.
func (s State) Balance(address string) uint64 {
	return s.accounts[address].Balance
}

// Accounts lists every known account ordered by address.
func (s State) Accounts() []Account {
	out := make([]Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Address < out[j].Address })
	return out
}

func (s State) clone() State {
	next := s
	next.accounts = make(map[string]Account, len(s.accounts)+2)
	for k, v := range s.accounts {
		next.accounts[k] = v
	}
	return next
}

func (s State) ensureAccount(address string) {
	if _, ok := s.accounts[address]; !ok {
		s.accounts[address] = Account{Address: address}
	}
}
