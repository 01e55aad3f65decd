package services

import (
	"context"

	"github.com/choralbase/choir_backend/internal/core/domain"
	"github.com/choralbase/choir_backend/internal/dto"
)

// AttendanceSvcFacade defines operations for attendance tracking
type AttendanceSvcFacade interface {
	// SaveAttendance bulk-upserts attendance records for one date (admin only).
	SaveAttendance(ctx context.Context, req dto.SaveAttendanceRequest, creatorMemberID string) error

	// ListAttendanceByMember retrieves a member's attendance history, newest first.
	ListAttendanceByMember(ctx context.Context, memberID string) ([]domain.Attendance, error)
}
