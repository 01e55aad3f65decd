package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/choralbase/choir_backend/internal/apperrors"
	"github.com/choralbase/choir_backend/internal/core/domain"
	portsrepo "github.com/choralbase/choir_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxContributionRepository struct {
	db *pgxpool.Pool
}

func newPgxContributionRepository(db *pgxpool.Pool) portsrepo.ContributionRepositoryFacade {
	return &PgxContributionRepository{db: db}
}

// Ensure PgxContributionRepository implements portsrepo.ContributionRepositoryFacade
var _ portsrepo.ContributionRepositoryFacade = (*PgxContributionRepository)(nil)

func (r *PgxContributionRepository) SaveContribution(ctx context.Context, contribution domain.Contribution) error {
	query := `
        INSERT INTO contributions (contribution_id, title, description, target_amount, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err := r.db.Exec(ctx, query,
		contribution.ContributionID,
		contribution.Title,
		contribution.Description,
		contribution.TargetAmount,
		contribution.CreatedAt,
		contribution.CreatedBy,
		contribution.LastUpdatedAt,
		contribution.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save contribution: %w", err)
	}
	return nil
}

func (r *PgxContributionRepository) FindContributionByID(ctx context.Context, contributionID string) (*domain.Contribution, error) {
	query := `
		SELECT contribution_id, title, description, target_amount, created_at, created_by, last_updated_at, last_updated_by
		FROM contributions
		WHERE contribution_id = $1;
	`
	var c domain.Contribution
	err := r.db.QueryRow(ctx, query, contributionID).Scan(
		&c.ContributionID,
		&c.Title,
		&c.Description,
		&c.TargetAmount,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find contribution by ID %s: %w", contributionID, err)
	}
	return &c, nil
}

func (r *PgxContributionRepository) FindContributions(ctx context.Context) ([]domain.Contribution, error) {
	// Catalog order is creation order; reconciliation views rely on it.
	query := `
        SELECT contribution_id, title, description, target_amount, created_at, created_by, last_updated_at, last_updated_by
        FROM contributions
        ORDER BY created_at ASC;
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query contributions: %w", err)
	}
	defer rows.Close()

	contributions := []domain.Contribution{}
	for rows.Next() {
		var c domain.Contribution
		err := rows.Scan(
			&c.ContributionID,
			&c.Title,
			&c.Description,
			&c.TargetAmount,
			&c.CreatedAt,
			&c.CreatedBy,
			&c.LastUpdatedAt,
			&c.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contribution row: %w", err)
		}
		contributions = append(contributions, c)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating contribution rows: %w", rows.Err())
	}
	return contributions, nil
}
