package services

import (
	"context"

	"github.com/choralbase/choir_backend/internal/core/domain"
	"github.com/choralbase/choir_backend/internal/dto"
)

// MemberReaderSvc defines read operations for member data
type MemberReaderSvc interface {
	// GetMemberByID retrieves a member by ID.
	GetMemberByID(ctx context.Context, memberID string) (*domain.Member, error)

	// GetMemberByEmail retrieves a member by email.
	GetMemberByEmail(ctx context.Context, email string) (*domain.Member, error)

	// ListMembers retrieves a paginated list of members.
	ListMembers(ctx context.Context, limit, offset int) ([]domain.Member, error)
}

// MemberWriterSvc defines write operations for member data
type MemberWriterSvc interface {
	// RegisterMember creates a new member from a registration request.
	RegisterMember(ctx context.Context, req dto.RegisterMemberRequest) (*domain.Member, error)

	// UpdateMember updates an existing member.
	UpdateMember(ctx context.Context, memberID string, req dto.UpdateMemberRequest, requestingMemberID string) (*domain.Member, error)

	// PromoteMember grants the admin role to a member.
	PromoteMember(ctx context.Context, memberID string, requestingMemberID string) (*domain.Member, error)
}

// MemberLifecycleSvc defines operations for managing member lifecycle
type MemberLifecycleSvc interface {
	// DeleteMember marks a member as deleted (soft delete).
	DeleteMember(ctx context.Context, memberID string, requestingMemberID string) error
}

// MemberAuthSvc defines operations for member authentication
type MemberAuthSvc interface {
	// AuthenticateMember authenticates a member with email and password.
	AuthenticateMember(ctx context.Context, email, password string) (*domain.Member, error)
}

// MemberAuthorizerSvc authorizes privileged actions against the member directory.
type MemberAuthorizerSvc interface {
	// AuthorizeAdmin returns apperrors.ErrForbidden when the requesting member
	// does not hold the admin role.
	AuthorizeAdmin(ctx context.Context, requestingMemberID string) error
}

// MemberSvcFacade combines all member-related service interfaces
type MemberSvcFacade interface {
	MemberReaderSvc
	MemberWriterSvc
	MemberLifecycleSvc
	MemberAuthSvc
	MemberAuthorizerSvc
}
