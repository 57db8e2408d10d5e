package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Inventory maps every supported currency to its current balance. All four
// keys are always present; balances may be negative.
type Inventory map[Currency]decimal.Decimal

func NewInventory() Inventory {
	inv := make(Inventory, len(Currencies))
	for _, c := range Currencies {
		inv[c] = decimal.Zero
	}
	return inv
}

func (inv Inventory) Add(c Currency, amount decimal.Decimal) {
	inv[c] = inv[c].Add(amount)
}

func (inv Inventory) Sub(c Currency, amount decimal.Decimal) {
	inv[c] = inv[c].Sub(amount)
}

func (inv Inventory) Clone() Inventory {
	out := make(Inventory, len(inv))
	for c, v := range inv {
		out[c] = v
	}
	return out
}

// Equal compares balances by value, not representation.
func (inv Inventory) Equal(other Inventory) bool {
	for _, c := range Currencies {
		if !inv[c].Equal(other[c]) {
			return false
		}
	}
	return true
}

// InventorySnapshot is one persisted row of the append-only inventory log.
type InventorySnapshot struct {
	Currency    Currency        `json:"currency"`
	Amount      decimal.Decimal `json:"amount"`
	LastUpdated time.Time       `json:"last_updated"`
}
