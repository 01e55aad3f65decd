package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/choralbase/choir_backend/internal/apperrors"
	"github.com/choralbase/choir_backend/internal/core/domain"
	portsrepo "github.com/choralbase/choir_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxMemberRepository struct {
	db *pgxpool.Pool
}

func newPgxMemberRepository(db *pgxpool.Pool) portsrepo.MemberRepositoryFacade {
	return &PgxMemberRepository{db: db}
}

// Ensure PgxMemberRepository implements portsrepo.MemberRepositoryFacade
var _ portsrepo.MemberRepositoryFacade = (*PgxMemberRepository)(nil)

const memberColumns = `member_id, name, parish, part_you_sing, phone_number, where_you_live, email, password_hash, role, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanMember(row pgx.Row) (domain.Member, error) {
	var m domain.Member
	err := row.Scan(
		&m.MemberID,
		&m.Name,
		&m.Parish,
		&m.PartYouSing,
		&m.PhoneNumber,
		&m.WhereYouLive,
		&m.Email,
		&m.PasswordHash,
		&m.Role,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	return m, err
}

func (r *PgxMemberRepository) SaveMember(ctx context.Context, member domain.Member) error {
	query := `
        INSERT INTO members (member_id, name, parish, part_you_sing, phone_number, where_you_live, email, password_hash, role, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
    `
	_, err := r.db.Exec(ctx, query,
		member.MemberID,
		member.Name,
		member.Parish,
		member.PartYouSing,
		member.PhoneNumber,
		member.WhereYouLive,
		member.Email,
		member.PasswordHash,
		member.Role,
		member.CreatedAt,
		member.CreatedBy,
		member.LastUpdatedAt,
		member.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("member email already registered: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save member: %w", err)
	}
	return nil
}

func (r *PgxMemberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM members
		WHERE member_id = $1 AND deleted_at IS NULL;
	`
	member, err := scanMember(r.db.QueryRow(ctx, query, memberID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find member by ID %s: %w", memberID, err)
	}
	return &member, nil
}

func (r *PgxMemberRepository) FindMemberByEmail(ctx context.Context, email string) (*domain.Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM members
		WHERE email = $1 AND deleted_at IS NULL;
	`
	member, err := scanMember(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find member by email: %w", err)
	}
	return &member, nil
}

func (r *PgxMemberRepository) FindMembers(ctx context.Context, limit int, offset int) ([]domain.Member, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT ` + memberColumns + `
        FROM members
        WHERE deleted_at IS NULL
        ORDER BY name ASC
        LIMIT $1 OFFSET $2;
    `
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	return collectMembers(rows)
}

func (r *PgxMemberRepository) ListActiveMembers(ctx context.Context) ([]domain.Member, error) {
	query := `
        SELECT ` + memberColumns + `
        FROM members
        WHERE deleted_at IS NULL
        ORDER BY name ASC;
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active members: %w", err)
	}
	defer rows.Close()

	return collectMembers(rows)
}

func collectMembers(rows pgx.Rows) ([]domain.Member, error) {
	members := []domain.Member{}
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}
		members = append(members, member)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating member rows: %w", rows.Err())
	}
	return members, nil
}

func (r *PgxMemberRepository) UpdateMember(ctx context.Context, member domain.Member) error {
	query := `
        UPDATE members
        SET name = $1, parish = $2, part_you_sing = $3, phone_number = $4, where_you_live = $5, role = $6, last_updated_at = $7, last_updated_by = $8
        WHERE member_id = $9 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		member.Name,
		member.Parish,
		member.PartYouSing,
		member.PhoneNumber,
		member.WhereYouLive,
		member.Role,
		member.LastUpdatedAt,
		member.LastUpdatedBy,
		member.MemberID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update member query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("member not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxMemberRepository) MarkMemberDeleted(ctx context.Context, memberID string, deletedAt time.Time, deletedBy string) error {
	query := `
        UPDATE members
        SET deleted_at = $1, last_updated_at = $1, last_updated_by = $2
        WHERE member_id = $3 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query, deletedAt, deletedBy, memberID)
	if err != nil {
		return fmt.Errorf("failed to mark member as deleted: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("member not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}
