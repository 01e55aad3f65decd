package repositories

import (
	"context"
	"time"

	"github.com/choralbase/choir_backend/internal/core/domain"
)

// MemberReader defines read operations for member data
type MemberReader interface {
	// FindMemberByID retrieves a specific non-deleted member by their ID.
	FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error)

	// FindMemberByEmail retrieves a non-deleted member by email.
	FindMemberByEmail(ctx context.Context, email string) (*domain.Member, error)

	// FindMembers retrieves a paginated list of members ordered by name.
	FindMembers(ctx context.Context, limit int, offset int) ([]domain.Member, error)

	// ListActiveMembers retrieves the full snapshot of non-deleted members.
	// Used by the reconciliation engine, which joins across whole collections.
	ListActiveMembers(ctx context.Context) ([]domain.Member, error)
}

// MemberWriter defines write operations for member data
type MemberWriter interface {
	// SaveMember persists a new member.
	SaveMember(ctx context.Context, member domain.Member) error

	// UpdateMember updates an existing member's details.
	UpdateMember(ctx context.Context, member domain.Member) error
}

// MemberLifecycleManager defines operations for managing member lifecycle
type MemberLifecycleManager interface {
	// MarkMemberDeleted marks a member as deleted (soft delete).
	MarkMemberDeleted(ctx context.Context, memberID string, deletedAt time.Time, deletedBy string) error
}

// MemberRepositoryFacade combines all member-related repository interfaces
type MemberRepositoryFacade interface {
	MemberReader
	MemberWriter
	MemberLifecycleManager
}
