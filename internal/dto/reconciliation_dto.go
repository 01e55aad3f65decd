package dto

import (
	"time"

	"github.com/choralbase/choir_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ContributionBalanceResponse is one balance row in a reconciliation view.
type ContributionBalanceResponse struct {
	ContributionID string          `json:"contributionID"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	TargetAmount   decimal.Decimal `json:"targetAmount"`
	PaidAmount     decimal.Decimal `json:"paidAmount"`
	Remaining      decimal.Decimal `json:"remaining"`
	LastPaidOn     *time.Time      `json:"lastPaidOn,omitempty"`
	Status         string          `json:"status"`
}

func toContributionBalanceResponse(b domain.ContributionBalance) ContributionBalanceResponse {
	return ContributionBalanceResponse{
		ContributionID: b.ContributionID,
		Title:          b.Title,
		Description:    b.Description,
		TargetAmount:   b.TargetAmount,
		PaidAmount:     b.PaidAmount,
		Remaining:      b.Remaining,
		LastPaidOn:     b.LastPaidOn,
		Status:         string(b.Status),
	}
}

// MemberReconciliationResponse is the per-member view response.
type MemberReconciliationResponse struct {
	Member        MemberResponse                `json:"member"`
	Contributions []ContributionBalanceResponse `json:"contributions"`
	TotalOwed     decimal.Decimal               `json:"totalOwed"`
}

// ToMemberReconciliationResponse converts the domain view to its response DTO.
func ToMemberReconciliationResponse(v *domain.MemberReconciliation) MemberReconciliationResponse {
	balances := make([]ContributionBalanceResponse, len(v.Contributions))
	for i, b := range v.Contributions {
		balances[i] = toContributionBalanceResponse(b)
	}
	return MemberReconciliationResponse{
		Member:        ToMemberResponse(&v.Member),
		Contributions: balances,
		TotalOwed:     v.TotalOwed,
	}
}

// PayerEntryResponse identifies a paying member within a campaign breakdown.
type PayerEntryResponse struct {
	MemberID string          `json:"memberID"`
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
}

// NonPayerEntryResponse identifies a member with no qualifying payment.
type NonPayerEntryResponse struct {
	MemberID string `json:"memberID"`
	Name     string `json:"name"`
}

// CampaignBreakdownResponse extends a balance row with the contribution-wide
// paid/unpaid partition.
type CampaignBreakdownResponse struct {
	ContributionBalanceResponse
	PaidMembers   []PayerEntryResponse    `json:"paidMembers"`
	UnpaidMembers []NonPayerEntryResponse `json:"unpaidMembers"`
}

// MemberCampaignRowResponse is one member's slice of the campaign view.
type MemberCampaignRowResponse struct {
	Member        MemberResponse              `json:"member"`
	Contributions []CampaignBreakdownResponse `json:"contributions"`
	TotalOwed     decimal.Decimal             `json:"totalOwed"`
}

// CampaignReconciliationResponse is the campaign-wide view response.
type CampaignReconciliationResponse struct {
	Members []MemberCampaignRowResponse `json:"members"`
}

// ToCampaignReconciliationResponse converts the domain view to its response DTO.
func ToCampaignReconciliationResponse(v *domain.CampaignReconciliation) CampaignReconciliationResponse {
	rows := make([]MemberCampaignRowResponse, len(v.Members))
	for i, row := range v.Members {
		breakdowns := make([]CampaignBreakdownResponse, len(row.Contributions))
		for j, b := range row.Contributions {
			payers := make([]PayerEntryResponse, len(b.PaidMembers))
			for k, p := range b.PaidMembers {
				payers[k] = PayerEntryResponse{MemberID: p.MemberID, Name: p.Name, Amount: p.Amount}
			}
			nonPayers := make([]NonPayerEntryResponse, len(b.UnpaidMembers))
			for k, p := range b.UnpaidMembers {
				nonPayers[k] = NonPayerEntryResponse{MemberID: p.MemberID, Name: p.Name}
			}
			breakdowns[j] = CampaignBreakdownResponse{
				ContributionBalanceResponse: toContributionBalanceResponse(b.ContributionBalance),
				PaidMembers:                 payers,
				UnpaidMembers:               nonPayers,
			}
		}
		rows[i] = MemberCampaignRowResponse{
			Member:        ToMemberResponse(&row.Member),
			Contributions: breakdowns,
			TotalOwed:     row.TotalOwed,
		}
	}
	return CampaignReconciliationResponse{Members: rows}
}
