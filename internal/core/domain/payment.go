package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a single append-only ledger record of a member paying toward a
// contribution. Payments are never mutated or deleted; a member may hold any
// number of payment records against the same contribution.
type Payment struct {
	PaymentID      string          `json:"paymentID"` // Primary Key (UUID)
	ContributionID string          `json:"contributionID"`
	MemberID       string          `json:"memberID"`
	Amount         decimal.Decimal `json:"amount"` // Non-negative
	PaidOn         time.Time       `json:"paidOn"`
	AuditFields
}
