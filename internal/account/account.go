// Package account holds the session user's balance. Deduct is the only
// mutator, so the balance can never go negative.
package account

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("deduction amount must not be negative")
)

type Account struct {
	mu      sync.Mutex
	name    string
	balance float64
}

func New(name string, balance float64) (*Account, error) {
	if balance < 0 {
		return nil, fmt.Errorf("opening balance must not be negative, got %.2f", balance)
	}
	return &Account{name: name, balance: balance}, nil
}

// Deduct withdraws amount from the balance, all or nothing.
func (a *Account) Deduct(amount float64) error {
	if amount < 0 {
		return ErrInvalidAmount
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if amount > a.balance {
		return fmt.Errorf("%w: need %.2f, have %.2f", ErrInsufficientFunds, amount, a.balance)
	}
	a.balance -= amount
	return nil
}

func (a *Account) Balance() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

func (a *Account) Name() string {
	return a.name
}
