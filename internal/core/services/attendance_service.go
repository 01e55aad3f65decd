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
	"github.com/google/uuid"
)

// attendanceService implements the AttendanceSvcFacade interface
type attendanceService struct {
	BaseService
	attendanceRepo portsrepo.AttendanceRepositoryFacade
	memberRepo     portsrepo.MemberReader
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(repo portsrepo.AttendanceRepositoryFacade, memberRepo portsrepo.MemberReader, authorizer portssvc.MemberAuthorizerSvc) portssvc.AttendanceSvcFacade {
	return &attendanceService{
		BaseService:    BaseService{MemberAuthorizer: authorizer},
		attendanceRepo: repo,
		memberRepo:     memberRepo,
	}
}

// Ensure attendanceService implements the AttendanceSvcFacade interface
var _ portssvc.AttendanceSvcFacade = (*attendanceService)(nil)

func (s *attendanceService) SaveAttendance(ctx context.Context, req dto.SaveAttendanceRequest, creatorMemberID string) error {
	if err := s.RequireAdmin(ctx, creatorMemberID); err != nil {
		s.LogDebug(ctx, "Member not authorized to save attendance", slog.String("member_id", creatorMemberID))
		return err
	}

	// Normalize to midnight UTC so the (member, date) key folds all times
	// within one day onto the same row.
	day := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, time.UTC)

	// Reject records for unknown members before touching the table.
	seen := make(map[string]bool, len(req.Records))
	for _, record := range req.Records {
		if seen[record.MemberID] {
			return fmt.Errorf("duplicate attendance record for member %s: %w", record.MemberID, apperrors.ErrValidation)
		}
		seen[record.MemberID] = true
		if _, err := s.memberRepo.FindMemberByID(ctx, record.MemberID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("member %s not found: %w", record.MemberID, apperrors.ErrValidation)
			}
			s.LogError(ctx, err, "Failed to resolve member for attendance", slog.String("member_id", record.MemberID))
			return err
		}
	}

	now := time.Now()
	records := make([]domain.Attendance, len(req.Records))
	for i, record := range req.Records {
		records[i] = domain.Attendance{
			AttendanceID: uuid.NewString(),
			MemberID:     record.MemberID,
			Date:         day,
			Present:      record.Present,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorMemberID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorMemberID,
			},
		}
	}

	if err := s.attendanceRepo.UpsertAttendances(ctx, records); err != nil {
		s.LogError(ctx, err, "Failed to upsert attendance records", slog.Time("date", day), slog.Int("count", len(records)))
		return err
	}

	s.LogInfo(ctx, "Attendance saved successfully", slog.Time("date", day), slog.Int("count", len(records)))
	return nil
}

func (s *attendanceService) ListAttendanceByMember(ctx context.Context, memberID string) ([]domain.Attendance, error) {
	if _, err := s.memberRepo.FindMemberByID(ctx, memberID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to resolve member for attendance history", slog.String("member_id", memberID))
		}
		return nil, err
	}

	records, err := s.attendanceRepo.FindAttendanceByMember(ctx, memberID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list attendance records", slog.String("member_id", memberID))
		return nil, fmt.Errorf("failed to list attendance for member %s: %w", memberID, err)
	}
	if records == nil {
		return []domain.Attendance{}, nil
	}
	return records, nil
}
