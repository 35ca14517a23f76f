package domain

import "time"

type PaymentKind string

const (
	PaymentCharge PaymentKind = "charge"
	PaymentRefund PaymentKind = "refund"
)

// Payment is a ledger row recorded when a booking is paid or refunded.
// Processor integration is out of scope; Reference identifies the row to
// whatever external system confirmed the transaction.
type Payment struct {
	ID        int64       `json:"id"`
	BookingID int64       `json:"booking_id"`
	Amount    float64     `json:"amount"`
	Method    string      `json:"method"`
	Kind      PaymentKind `json:"kind"`
	Reference string      `json:"reference"`
	CreatedAt time.Time   `json:"created_at"`
}
