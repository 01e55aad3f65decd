package domain

import "time"

// Attendance records presence of a member on a given rehearsal date.
// The (member, date) pair is unique; bulk saves upsert on that key.
type Attendance struct {
	AttendanceID string    `json:"attendanceID"` // Primary Key (UUID)
	MemberID     string    `json:"memberID"`
	Date         time.Time `json:"date"`
	Present      bool      `json:"present"`
	AuditFields
}
