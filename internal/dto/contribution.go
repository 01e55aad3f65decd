package dto

import (
	"github.com/choralbase/choir_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateContributionRequest carries a new contribution campaign.
// TargetAmount must be non-negative; the service enforces this since the
// binding layer cannot range-check decimals.
type CreateContributionRequest struct {
	Title        string          `json:"title" binding:"required"`
	Description  string          `json:"description"`
	TargetAmount decimal.Decimal `json:"targetAmount" binding:"required"`
}

// ContributionResponse is the external representation of a contribution campaign.
type ContributionResponse struct {
	ContributionID string          `json:"contributionID"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	TargetAmount   decimal.Decimal `json:"targetAmount"`
}

// ToContributionResponse converts a domain.Contribution to its response DTO.
func ToContributionResponse(c *domain.Contribution) ContributionResponse {
	return ContributionResponse{
		ContributionID: c.ContributionID,
		Title:          c.Title,
		Description:    c.Description,
		TargetAmount:   c.TargetAmount,
	}
}

// ListContributionsResponse wraps the contribution catalog.
type ListContributionsResponse struct {
	Contributions []ContributionResponse `json:"contributions"`
}

// ToListContributionsResponse converts a catalog slice to its response DTO.
func ToListContributionsResponse(contributions []domain.Contribution) ListContributionsResponse {
	responses := make([]ContributionResponse, len(contributions))
	for i := range contributions {
		responses[i] = ToContributionResponse(&contributions[i])
	}
	return ListContributionsResponse{Contributions: responses}
}
