package repositories

import (
	"context"

	"github.com/choralbase/choir_backend/internal/core/domain"
)

// ContributionReader defines read operations for the contribution catalog
type ContributionReader interface {
	// FindContributionByID retrieves a specific contribution by its ID.
	FindContributionByID(ctx context.Context, contributionID string) (*domain.Contribution, error)

	// FindContributions retrieves the full catalog in creation order.
	FindContributions(ctx context.Context) ([]domain.Contribution, error)
}

// ContributionWriter defines write operations for the contribution catalog
type ContributionWriter interface {
	// SaveContribution persists a new contribution campaign.
	SaveContribution(ctx context.Context, contribution domain.Contribution) error
}

// ContributionRepositoryFacade combines all contribution-related repository interfaces
type ContributionRepositoryFacade interface {
	ContributionReader
	ContributionWriter
}
