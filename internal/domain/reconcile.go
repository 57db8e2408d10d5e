package domain

import "sort"

// Reconcile replays every completed ledger entry into a fresh per-currency
// balance snapshot. The fold is commutative per currency, so sorting only
// makes the replay deterministic for debugging; the input may arrive in any
// order. Entries in any other status contribute nothing.
func Reconcile(ledger []Transaction) Inventory {
	sorted := make([]Transaction, len(ledger))
	copy(sorted, ledger)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, tj := sorted[i].EffectiveTime(), sorted[j].EffectiveTime()
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return sorted[i].ID < sorted[j].ID
	})

	inv := NewInventory()
	for i := range sorted {
		t := &sorted[i]
		if t.Status != OrderStatusCompleted {
			continue
		}
		switch t.Type {
		case TransactionTypeManual:
			// Amount carries its own sign.
			inv.Add(t.Item, t.Amount)
		case TransactionTypeExtraccion:
			inv.Sub(t.Item, t.Amount)
		case TransactionTypeBuy:
			// Shop buys item from the client and pays in the payment currency.
			inv.Sub(t.Item, t.Amount)
			inv.Add(t.Payment, t.PaymentAmount)
		case TransactionTypeSell:
			inv.Add(t.Item, t.Amount)
			inv.Sub(t.Payment, t.PaymentAmount)
		}
	}
	return inv
}
