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

// paymentService implements the PaymentSvcFacade interface
type paymentService struct {
	BaseService
	paymentRepo      portsrepo.PaymentRepositoryFacade
	memberRepo       portsrepo.MemberReader
	contributionRepo portsrepo.ContributionReader
}

// NewPaymentService creates a new payment service. The member and contribution
// readers validate that ledger entries reference real records.
func NewPaymentService(repo portsrepo.PaymentRepositoryFacade, memberRepo portsrepo.MemberReader, contributionRepo portsrepo.ContributionReader, authorizer portssvc.MemberAuthorizerSvc) portssvc.PaymentSvcFacade {
	return &paymentService{
		BaseService:      BaseService{MemberAuthorizer: authorizer},
		paymentRepo:      repo,
		memberRepo:       memberRepo,
		contributionRepo: contributionRepo,
	}
}

// Ensure paymentService implements the PaymentSvcFacade interface
var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

func (s *paymentService) RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, creatorMemberID string) (*domain.Payment, error) {
	if err := s.RequireAdmin(ctx, creatorMemberID); err != nil {
		s.LogDebug(ctx, "Member not authorized to record payment", slog.String("member_id", creatorMemberID))
		return nil, err
	}

	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("payment amount must not be negative: %w", apperrors.ErrValidation)
	}

	// Both references must resolve before the ledger accepts the entry.
	if _, err := s.contributionRepo.FindContributionByID(ctx, req.ContributionID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("contribution %s not found: %w", req.ContributionID, apperrors.ErrValidation)
		}
		s.LogError(ctx, err, "Failed to resolve contribution for payment", slog.String("contribution_id", req.ContributionID))
		return nil, err
	}
	if _, err := s.memberRepo.FindMemberByID(ctx, req.MemberID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("member %s not found: %w", req.MemberID, apperrors.ErrValidation)
		}
		s.LogError(ctx, err, "Failed to resolve member for payment", slog.String("member_id", req.MemberID))
		return nil, err
	}

	now := time.Now()
	payment := domain.Payment{
		PaymentID:      uuid.NewString(),
		ContributionID: req.ContributionID,
		MemberID:       req.MemberID,
		Amount:         req.Amount,
		PaidOn:         req.PaidOn,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorMemberID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorMemberID,
		},
	}

	if err := s.paymentRepo.SavePayment(ctx, payment); err != nil {
		s.LogError(ctx, err, "Failed to save payment", slog.String("payment_id", payment.PaymentID))
		return nil, err
	}

	s.LogInfo(ctx, "Payment recorded successfully",
		slog.String("payment_id", payment.PaymentID),
		slog.String("member_id", payment.MemberID),
		slog.String("contribution_id", payment.ContributionID))
	return &payment, nil
}

func (s *paymentService) GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find payment by ID", slog.String("payment_id", paymentID))
		}
		return nil, err
	}
	return payment, nil
}

func (s *paymentService) ListPayments(ctx context.Context, memberID string) ([]domain.Payment, error) {
	var payments []domain.Payment
	var err error
	if memberID != "" {
		payments, err = s.paymentRepo.FindPaymentsByMember(ctx, memberID)
	} else {
		payments, err = s.paymentRepo.FindPayments(ctx)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments", slog.String("member_id", memberID))
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	if payments == nil {
		return []domain.Payment{}, nil
	}
	return payments, nil
}
