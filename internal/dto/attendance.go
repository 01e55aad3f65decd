package dto

import (
	"time"

	"github.com/choralbase/choir_backend/internal/core/domain"
)

// AttendanceRecord is one member's presence flag within a bulk save.
type AttendanceRecord struct {
	MemberID string `json:"memberID" binding:"required"`
	Present  bool   `json:"present"`
}

// SaveAttendanceRequest bulk-upserts attendance for a single date.
type SaveAttendanceRequest struct {
	Date    time.Time          `json:"date" binding:"required"`
	Records []AttendanceRecord `json:"records" binding:"required,min=1,dive"`
}

// AttendanceResponse is the external representation of an attendance record.
type AttendanceResponse struct {
	AttendanceID string    `json:"attendanceID"`
	MemberID     string    `json:"memberID"`
	Date         time.Time `json:"date"`
	Present      bool      `json:"present"`
}

// ListAttendanceResponse wraps a member's attendance history.
type ListAttendanceResponse struct {
	Attendance []AttendanceResponse `json:"attendance"`
}

// ToListAttendanceResponse converts attendance records to their response DTO.
func ToListAttendanceResponse(records []domain.Attendance) ListAttendanceResponse {
	responses := make([]AttendanceResponse, len(records))
	for i, r := range records {
		responses[i] = AttendanceResponse{
			AttendanceID: r.AttendanceID,
			MemberID:     r.MemberID,
			Date:         r.Date,
			Present:      r.Present,
		}
	}
	return ListAttendanceResponse{Attendance: responses}
}
