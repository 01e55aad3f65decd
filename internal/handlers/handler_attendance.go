package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/choralbase/choir_backend/internal/apperrors"
	portssvc "github.com/choralbase/choir_backend/internal/core/ports/services"
	"github.com/choralbase/choir_backend/internal/dto"
	"github.com/choralbase/choir_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// attendanceHandler handles HTTP requests related to attendance tracking.
type attendanceHandler struct {
	attendanceService portssvc.AttendanceSvcFacade
}

// newAttendanceHandler creates a new attendanceHandler.
func newAttendanceHandler(as portssvc.AttendanceSvcFacade) *attendanceHandler {
	return &attendanceHandler{
		attendanceService: as,
	}
}

// registerAttendanceRoutes registers all attendance-related routes.
func registerAttendanceRoutes(rg *gin.RouterGroup, attendanceService portssvc.AttendanceSvcFacade) {
	h := newAttendanceHandler(attendanceService)

	attendance := rg.Group("/attendance")
	{
		attendance.POST("", h.saveAttendance) // Admin only
	}
}

// saveAttendance godoc
// @Summary Save attendance for a date
// @Description Bulk-upserts attendance records for one rehearsal date (admin action)
// @Tags attendance
// @Accept  json
// @Produce  json
// @Param   attendance body dto.SaveAttendanceRequest true "Attendance records"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to save attendance"
// @Security BearerAuth
// @Router /attendance [post]
func (h *attendanceHandler) saveAttendance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SaveAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for saveAttendance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorMemberID, ok := middleware.GetMemberIDFromContext(c)
	if !ok {
		logger.Error("Creator member ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.attendanceService.SaveAttendance(c.Request.Context(), req, creatorMemberID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to save attendance in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save attendance"})
		}
		return
	}

	logger.Info("Attendance saved successfully", slog.Int("count", len(req.Records)))
	c.Status(http.StatusNoContent)
}
