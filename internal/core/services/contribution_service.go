package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/choralbase/choir_backend/internal/apperrors"
	"github.com/choralbase/choir_backend/internal/core/domain"
	portsrepo "github.com/choralbase/choir_backend/internal/core/ports/repositories"
	portssvc "github.com/choralbase/choir_backend/internal/core/ports/services"
	"github.com/choralbase/choir_backend/internal/dto"
	"github.com/google/uuid"
)

// contributionService implements the ContributionSvcFacade interface
type contributionService struct {
	BaseService
	contributionRepo portsrepo.ContributionRepositoryFacade
}

// NewContributionService creates a new contribution service
func NewContributionService(repo portsrepo.ContributionRepositoryFacade, authorizer portssvc.MemberAuthorizerSvc) portssvc.ContributionSvcFacade {
	return &contributionService{
		BaseService:      BaseService{MemberAuthorizer: authorizer},
		contributionRepo: repo,
	}
}

// Ensure contributionService implements the ContributionSvcFacade interface
var _ portssvc.ContributionSvcFacade = (*contributionService)(nil)

func (s *contributionService) CreateContribution(ctx context.Context, req dto.CreateContributionRequest, creatorMemberID string) (*domain.Contribution, error) {
	if err := s.RequireAdmin(ctx, creatorMemberID); err != nil {
		s.LogDebug(ctx, "Member not authorized to create contribution", slog.String("member_id", creatorMemberID))
		return nil, err
	}

	// The binding layer cannot range-check decimals.
	if req.TargetAmount.IsNegative() {
		return nil, fmt.Errorf("target amount must not be negative: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	contribution := domain.Contribution{
		ContributionID: uuid.NewString(),
		Title:          req.Title,
		Description:    req.Description,
		TargetAmount:   req.TargetAmount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorMemberID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorMemberID,
		},
	}

	if err := s.contributionRepo.SaveContribution(ctx, contribution); err != nil {
		s.LogError(ctx, err, "Failed to save contribution", slog.String("contribution_id", contribution.ContributionID))
		return nil, err
	}

	s.LogInfo(ctx, "Contribution created successfully",
		slog.String("contribution_id", contribution.ContributionID),
		slog.String("title", contribution.Title))
	return &contribution, nil
}

func (s *contributionService) GetContributionByID(ctx context.Context, contributionID string) (*domain.Contribution, error) {
	contribution, err := s.contributionRepo.FindContributionByID(ctx, contributionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find contribution by ID", slog.String("contribution_id", contributionID))
		}
		return nil, err
	}
	return contribution, nil
}

func (s *contributionService) ListContributions(ctx context.Context) ([]domain.Contribution, error) {
	contributions, err := s.contributionRepo.FindContributions(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list contributions")
		return nil, fmt.Errorf("failed to list contributions: %w", err)
	}
	if contributions == nil {
		return []domain.Contribution{}, nil
	}
	return contributions, nil
}
