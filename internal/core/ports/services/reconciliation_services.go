package services

import (
	"context"

	"github.com/choralbase/choir_backend/internal/core/domain"
)

// ReconciliationService computes derived payment views across the member
// directory, the contribution catalog and the payment ledger. It is read-only:
// every call re-reads the three collections and computes in memory.
type ReconciliationService interface {
	// MemberView computes one member's position against every contribution.
	// Returns apperrors.ErrNotFound when the member does not exist or is
	// soft-deleted.
	MemberView(ctx context.Context, memberID string) (*domain.MemberReconciliation, error)

	// CampaignView computes, for every active member and every contribution,
	// the paid/unpaid partition and outstanding balances.
	CampaignView(ctx context.Context) (*domain.CampaignReconciliation, error)
}
