package repositories

import (
	"context"

	"github.com/choralbase/choir_backend/internal/core/domain"
)

// AttendanceReader defines read operations for attendance data
type AttendanceReader interface {
	// FindAttendanceByMember retrieves a member's attendance records, newest first.
	FindAttendanceByMember(ctx context.Context, memberID string) ([]domain.Attendance, error)
}

// AttendanceWriter defines write operations for attendance data
type AttendanceWriter interface {
	// UpsertAttendances saves the given records in one transaction,
	// inserting or updating on the (member, date) key.
	UpsertAttendances(ctx context.Context, records []domain.Attendance) error
}

// AttendanceRepositoryFacade combines all attendance-related repository interfaces
type AttendanceRepositoryFacade interface {
	AttendanceReader
	AttendanceWriter
}
