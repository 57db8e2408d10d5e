package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeBuy        TransactionType = "buy"
	TransactionTypeSell       TransactionType = "sell"
	TransactionTypeManual     TransactionType = "manual"
	TransactionTypeExtraccion TransactionType = "extraccion"
)

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusCompleted      OrderStatus = "completed"
	OrderStatusCancelled      OrderStatus = "cancelled"
	OrderStatusPaymentDelayed OrderStatus = "payment_delayed"
)

// PendingPayment is the outstanding counter-leg recorded when an order is
// moved to payment_delayed.
type PendingPayment struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency Currency        `json:"currency"`
}

// Transaction is one ledger entry: a client trade, a manual balance
// correction or a cash extraction. Entries are append-mostly; after reaching
// a terminal status only notes and archival flags change.
type Transaction struct {
	ID               int64           `json:"id"`
	Type             TransactionType `json:"type"`
	Item             Currency        `json:"item"`
	Amount           decimal.Decimal `json:"amount"` // signed for manual entries
	Payment          Currency        `json:"payment"`
	PaymentAmount    decimal.Decimal `json:"payment_amount"`
	Employee         string          `json:"employee"`
	Client           *Client         `json:"client,omitempty"` // nil for manual and extraction entries
	Status           OrderStatus     `json:"status"`
	Notes            string          `json:"notes,omitempty"`
	DelayedBy        string          `json:"delayed_by,omitempty"`
	PaymentCollector string          `json:"payment_collector,omitempty"`
	PendingPayment   *PendingPayment `json:"pending_payment,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	CompletedAt      *time.Time      `json:"completed_at,omitempty"`
	Archived         bool            `json:"archived"`
	ArchiveDate      *time.Time      `json:"archive_date,omitempty"`
	ArchiveFilename  string          `json:"archive_filename,omitempty"`
	ArchiveBatchID   string          `json:"archive_batch_id,omitempty"`
}

// EffectiveTime returns the entry's creation timestamp. Legacy rows created
// before created_at existed carry an epoch-milliseconds value in the id, so
// the id is decoded as a last resort; it is otherwise an opaque key.
func (t *Transaction) EffectiveTime() time.Time {
	if !t.CreatedAt.IsZero() {
		return t.CreatedAt
	}
	if t.ID > 0 {
		if ts := time.UnixMilli(t.ID).UTC(); ts.Year() > 1970 {
			return ts
		}
	}
	return time.Time{}
}

// AppendNote concatenates a note onto the existing notes with a newline.
// Notes are never replaced.
func (t *Transaction) AppendNote(note string) {
	if note == "" {
		return
	}
	if t.Notes == "" {
		t.Notes = note
		return
	}
	t.Notes = t.Notes + "\n" + note
}

// TypeLabel is the human-readable Spanish label used in exports.
func (t *Transaction) TypeLabel() string {
	switch t.Type {
	case TransactionTypeBuy:
		return "Compra"
	case TransactionTypeSell:
		return "Venta"
	case TransactionTypeManual:
		return "Ajuste Manual"
	case TransactionTypeExtraccion:
		return "Extracción"
	}
	return string(t.Type)
}

// ClientName is empty for manual and extraction entries.
func (t *Transaction) ClientName() string {
	if t.Client == nil {
		return ""
	}
	return t.Client.Name
}
