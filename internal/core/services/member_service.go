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
	"github.com/choralbase/choir_backend/internal/utils"
	"github.com/google/uuid"
)

// memberService implements the MemberSvcFacade interface
type memberService struct {
	BaseService
	memberRepo portsrepo.MemberRepositoryFacade
	mailer     *utils.Mailer
}

// MemberServiceOption is a functional option for configuring the member service
type MemberServiceOption func(*memberService)

// WithMailer wires the welcome-email sender into the member service
func WithMailer(mailer *utils.Mailer) MemberServiceOption {
	return func(s *memberService) {
		s.mailer = mailer
	}
}

// NewMemberService creates a new member service with the provided options
func NewMemberService(repo portsrepo.MemberRepositoryFacade, options ...MemberServiceOption) portssvc.MemberSvcFacade {
	svc := &memberService{
		memberRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	// The member service authorizes against itself
	svc.MemberAuthorizer = svc
	return svc
}

// Ensure memberService implements the MemberSvcFacade interface
var _ portssvc.MemberSvcFacade = (*memberService)(nil)

func (s *memberService) RegisterMember(ctx context.Context, req dto.RegisterMemberRequest) (*domain.Member, error) {
	// Reject duplicate emails up front for a clean error. The unique index
	// still backstops a concurrent registration.
	existing, err := s.memberRepo.FindMemberByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check for existing member", slog.String("email", req.Email))
		return nil, fmt.Errorf("failed to check for existing member: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("member with email %s already exists: %w", req.Email, apperrors.ErrDuplicate)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	newMemberID := uuid.NewString()

	member := domain.Member{
		MemberID:     newMemberID,
		Name:         req.Name,
		Parish:       req.Parish,
		PartYouSing:  req.PartYouSing,
		PhoneNumber:  req.PhoneNumber,
		WhereYouLive: req.WhereYouLive,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         domain.RoleMember,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     newMemberID, // Self-registration
			LastUpdatedAt: now,
			LastUpdatedBy: newMemberID,
		},
	}

	if err := s.memberRepo.SaveMember(ctx, member); err != nil {
		s.LogError(ctx, err, "Failed to save member", slog.String("member_id", member.MemberID))
		return nil, err
	}

	s.LogInfo(ctx, "Member registered successfully", slog.String("member_id", member.MemberID))

	// Welcome email is best-effort; registration succeeded either way.
	if s.mailer != nil {
		s.sendWelcomeEmail(ctx, member)
	}

	return &member, nil
}

func (s *memberService) sendWelcomeEmail(ctx context.Context, member domain.Member) {
	body := fmt.Sprintf("Dear %s,\n\nWelcome to the choir! Your registration was successful.\n\nPart: %s\nParish: %s\n\nGod bless you.", member.Name, member.PartYouSing, member.Parish)
	if err := s.mailer.Send(member.Email, "Welcome to the choir", body); err != nil {
		s.LogError(ctx, err, "Failed to send welcome email", slog.String("member_id", member.MemberID))
	}
}

func (s *memberService) GetMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	member, err := s.memberRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find member by ID", slog.String("member_id", memberID))
		}
		return nil, err
	}
	return member, nil
}

func (s *memberService) GetMemberByEmail(ctx context.Context, email string) (*domain.Member, error) {
	member, err := s.memberRepo.FindMemberByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find member by email")
		}
		return nil, err
	}
	return member, nil
}

func (s *memberService) ListMembers(ctx context.Context, limit, offset int) ([]domain.Member, error) {
	members, err := s.memberRepo.FindMembers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list members", slog.Int("limit", limit), slog.Int("offset", offset))
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	if members == nil {
		return []domain.Member{}, nil
	}
	return members, nil
}

func (s *memberService) UpdateMember(ctx context.Context, memberID string, req dto.UpdateMemberRequest, requestingMemberID string) (*domain.Member, error) {
	// Members update themselves; admins may update anyone.
	if memberID != requestingMemberID {
		if err := s.RequireAdmin(ctx, requestingMemberID); err != nil {
			return nil, err
		}
	}

	member, err := s.memberRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find member for update", slog.String("member_id", memberID))
		}
		return nil, err
	}

	if req.Name != nil {
		member.Name = *req.Name
	}
	if req.Parish != nil {
		member.Parish = *req.Parish
	}
	if req.PartYouSing != nil {
		member.PartYouSing = *req.PartYouSing
	}
	if req.PhoneNumber != nil {
		member.PhoneNumber = *req.PhoneNumber
	}
	if req.WhereYouLive != nil {
		member.WhereYouLive = *req.WhereYouLive
	}
	member.LastUpdatedAt = time.Now()
	member.LastUpdatedBy = requestingMemberID

	if err := s.memberRepo.UpdateMember(ctx, *member); err != nil {
		s.LogError(ctx, err, "Failed to update member", slog.String("member_id", memberID))
		return nil, err
	}

	s.LogInfo(ctx, "Member updated successfully", slog.String("member_id", memberID))
	return member, nil
}

func (s *memberService) PromoteMember(ctx context.Context, memberID string, requestingMemberID string) (*domain.Member, error) {
	if err := s.RequireAdmin(ctx, requestingMemberID); err != nil {
		return nil, err
	}

	member, err := s.memberRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find member for promotion", slog.String("member_id", memberID))
		}
		return nil, err
	}

	if member.IsAdmin() {
		// Idempotent: promoting an admin is a no-op.
		return member, nil
	}

	member.Role = domain.RoleAdmin
	member.LastUpdatedAt = time.Now()
	member.LastUpdatedBy = requestingMemberID

	if err := s.memberRepo.UpdateMember(ctx, *member); err != nil {
		s.LogError(ctx, err, "Failed to promote member", slog.String("member_id", memberID))
		return nil, err
	}

	s.LogInfo(ctx, "Member promoted to admin", slog.String("member_id", memberID), slog.String("promoted_by", requestingMemberID))
	return member, nil
}

func (s *memberService) DeleteMember(ctx context.Context, memberID string, requestingMemberID string) error {
	// Members may remove themselves; admins may remove anyone.
	if memberID != requestingMemberID {
		if err := s.RequireAdmin(ctx, requestingMemberID); err != nil {
			return err
		}
	}

	now := time.Now()
	if err := s.memberRepo.MarkMemberDeleted(ctx, memberID, now, requestingMemberID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to mark member deleted", slog.String("member_id", memberID))
		}
		return err
	}

	s.LogInfo(ctx, "Member marked as deleted", slog.String("member_id", memberID), slog.String("deleted_by", requestingMemberID))
	return nil
}

func (s *memberService) AuthenticateMember(ctx context.Context, email, password string) (*domain.Member, error) {
	member, err := s.memberRepo.FindMemberByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same error for unknown email and bad password.
			return nil, apperrors.ErrForbidden
		}
		s.LogError(ctx, err, "Failed to find member for authentication")
		return nil, err
	}

	if !utils.CheckPasswordHash(password, member.PasswordHash) {
		s.LogDebug(ctx, "Password mismatch during authentication", slog.String("member_id", member.MemberID))
		return nil, apperrors.ErrForbidden
	}

	return member, nil
}

func (s *memberService) AuthorizeAdmin(ctx context.Context, requestingMemberID string) error {
	member, err := s.memberRepo.FindMemberByID(ctx, requestingMemberID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrForbidden
		}
		s.LogError(ctx, err, "Failed to find requesting member for authorization", slog.String("member_id", requestingMemberID))
		return err
	}
	if !member.IsAdmin() {
		s.LogDebug(ctx, "Member lacks admin role", slog.String("member_id", requestingMemberID))
		return apperrors.ErrForbidden
	}
	return nil
}
