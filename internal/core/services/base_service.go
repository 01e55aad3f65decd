package services

import (
	"context"
	"log/slog"

	portssvc "github.com/choralbase/choir_backend/internal/core/ports/services"
	"github.com/choralbase/choir_backend/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	MemberAuthorizer portssvc.MemberAuthorizerSvc
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		// Return a default logger if not found in context
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// RequireAdmin checks that the requesting member holds the admin role
func (s *BaseService) RequireAdmin(ctx context.Context, requestingMemberID string) error {
	if s.MemberAuthorizer != nil {
		return s.MemberAuthorizer.AuthorizeAdmin(ctx, requestingMemberID)
	}
	// No authorizer wired, allow and log. This only happens in tests that
	// exercise a service in isolation.
	s.LogDebug(ctx, "No member authorizer provided, access granted by default",
		slog.String("member_id", requestingMemberID))
	return nil
}
