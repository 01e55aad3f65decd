package domain

import "github.com/shopspring/decimal"

// Contribution represents a fundraising campaign with a target amount.
// Contributions are created by administrators and are immutable thereafter.
type Contribution struct {
	ContributionID string          `json:"contributionID"` // Primary Key (UUID)
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	TargetAmount   decimal.Decimal `json:"targetAmount"` // Non-negative
	AuditFields
}
