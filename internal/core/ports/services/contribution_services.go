package services

import (
	"context"

	"github.com/choralbase/choir_backend/internal/core/domain"
	"github.com/choralbase/choir_backend/internal/dto"
)

// ContributionReaderSvc defines read operations for the contribution catalog
type ContributionReaderSvc interface {
	// GetContributionByID retrieves a contribution by ID.
	GetContributionByID(ctx context.Context, contributionID string) (*domain.Contribution, error)

	// ListContributions retrieves the full catalog in creation order.
	ListContributions(ctx context.Context) ([]domain.Contribution, error)
}

// ContributionWriterSvc defines write operations for the contribution catalog
type ContributionWriterSvc interface {
	// CreateContribution creates a new contribution campaign (admin only).
	CreateContribution(ctx context.Context, req dto.CreateContributionRequest, creatorMemberID string) (*domain.Contribution, error)
}

// ContributionSvcFacade combines all contribution-related service interfaces
type ContributionSvcFacade interface {
	ContributionReaderSvc
	ContributionWriterSvc
}
