package pgsql

import (
	"context"
	"fmt"

	"github.com/choralbase/choir_backend/internal/core/domain"
	portsrepo "github.com/choralbase/choir_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAttendanceRepository struct {
	BaseRepository
}

func newPgxAttendanceRepository(db *pgxpool.Pool) portsrepo.AttendanceRepositoryFacade {
	return &PgxAttendanceRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// Ensure PgxAttendanceRepository implements portsrepo.AttendanceRepositoryFacade
var _ portsrepo.AttendanceRepositoryFacade = (*PgxAttendanceRepository)(nil)

// UpsertAttendances saves all records in a single transaction so a bulk save
// for one rehearsal date is all-or-nothing.
func (r *PgxAttendanceRepository) UpsertAttendances(ctx context.Context, records []domain.Attendance) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
        INSERT INTO attendance (attendance_id, member_id, date, present, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (member_id, date) DO UPDATE SET
            present = EXCLUDED.present,
            last_updated_at = EXCLUDED.last_updated_at,
            last_updated_by = EXCLUDED.last_updated_by;
    `
	for _, record := range records {
		_, err := tx.Exec(ctx, query,
			record.AttendanceID,
			record.MemberID,
			record.Date,
			record.Present,
			record.CreatedAt,
			record.CreatedBy,
			record.LastUpdatedAt,
			record.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert attendance for member %s: %w", record.MemberID, err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxAttendanceRepository) FindAttendanceByMember(ctx context.Context, memberID string) ([]domain.Attendance, error) {
	query := `
        SELECT attendance_id, member_id, date, present, created_at, created_by, last_updated_at, last_updated_by
        FROM attendance
        WHERE member_id = $1
        ORDER BY date DESC;
    `
	rows, err := r.Pool.Query(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance for member %s: %w", memberID, err)
	}
	defer rows.Close()

	records := []domain.Attendance{}
	for rows.Next() {
		var a domain.Attendance
		err := rows.Scan(
			&a.AttendanceID,
			&a.MemberID,
			&a.Date,
			&a.Present,
			&a.CreatedAt,
			&a.CreatedBy,
			&a.LastUpdatedAt,
			&a.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		records = append(records, a)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating attendance rows: %w", rows.Err())
	}
	return records, nil
}
