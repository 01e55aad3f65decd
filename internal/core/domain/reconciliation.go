package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus marks whether a member has fully covered a contribution target.
type PaymentStatus string

const (
	StatusPaid    PaymentStatus = "paid"
	StatusPending PaymentStatus = "pending"
)

// ContributionBalance is one member's position against a single contribution
// campaign. PaidAmount is the raw (uncapped) sum of the member's payments;
// Remaining is computed from the capped amount and is never negative.
type ContributionBalance struct {
	ContributionID string          `json:"contributionID"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	TargetAmount   decimal.Decimal `json:"targetAmount"`
	PaidAmount     decimal.Decimal `json:"paidAmount"`
	Remaining      decimal.Decimal `json:"remaining"`
	LastPaidOn     *time.Time      `json:"lastPaidOn,omitempty"`
	Status         PaymentStatus   `json:"status"`
}

// MemberReconciliation is the per-member view: every campaign with the
// member's paid amount and balance, plus the grand total still owed.
type MemberReconciliation struct {
	Member        Member                `json:"member"`
	Contributions []ContributionBalance `json:"contributions"`
	TotalOwed     decimal.Decimal       `json:"totalOwed"`
}

// PayerEntry identifies a member that has paid toward a contribution.
type PayerEntry struct {
	MemberID string          `json:"memberID"`
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"` // Raw paid amount
}

// NonPayerEntry identifies a member with no qualifying payment for a contribution.
type NonPayerEntry struct {
	MemberID string `json:"memberID"`
	Name     string `json:"name"`
}

// CampaignBreakdown extends a balance row with the contribution-wide
// paid/unpaid member partition.
type CampaignBreakdown struct {
	ContributionBalance
	PaidMembers   []PayerEntry    `json:"paidMembers"`
	UnpaidMembers []NonPayerEntry `json:"unpaidMembers"`
}

// MemberCampaignRow is one member's slice of the campaign-wide view.
type MemberCampaignRow struct {
	Member        Member              `json:"member"`
	Contributions []CampaignBreakdown `json:"contributions"`
	TotalOwed     decimal.Decimal     `json:"totalOwed"`
}

// CampaignReconciliation is the campaign-wide view across all active members.
type CampaignReconciliation struct {
	Members []MemberCampaignRow `json:"members"`
}
