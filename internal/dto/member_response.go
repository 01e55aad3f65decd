package dto

import (
	"github.com/choralbase/choir_backend/internal/core/domain"
)

// MemberResponse is the external representation of a member.
type MemberResponse struct {
	MemberID     string `json:"memberID"`
	Name         string `json:"name"`
	Parish       string `json:"parish"`
	PartYouSing  string `json:"partYouSing"`
	PhoneNumber  string `json:"phoneNumber"`
	WhereYouLive string `json:"whereYouLive"`
	Email        string `json:"email"`
	Role         string `json:"role"`
}

// ToMemberResponse converts a domain.Member to its response DTO.
func ToMemberResponse(m *domain.Member) MemberResponse {
	return MemberResponse{
		MemberID:     m.MemberID,
		Name:         m.Name,
		Parish:       m.Parish,
		PartYouSing:  m.PartYouSing,
		PhoneNumber:  m.PhoneNumber,
		WhereYouLive: m.WhereYouLive,
		Email:        m.Email,
		Role:         string(m.Role),
	}
}

// ListMembersResponse wraps the list of members.
type ListMembersResponse struct {
	Members []MemberResponse `json:"members"`
}

// ToListMembersResponse converts a slice of domain.Member to ListMembersResponse.
func ToListMembersResponse(members []domain.Member) ListMembersResponse {
	memberResponses := make([]MemberResponse, len(members))
	for i := range members {
		memberResponses[i] = ToMemberResponse(&members[i])
	}
	return ListMembersResponse{Members: memberResponses}
}
