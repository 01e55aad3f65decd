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

// memberHandler handles HTTP requests related to choir members.
type memberHandler struct {
	memberService     portssvc.MemberSvcFacade
	attendanceService portssvc.AttendanceSvcFacade
}

// newMemberHandler creates a new memberHandler.
func newMemberHandler(ms portssvc.MemberSvcFacade, as portssvc.AttendanceSvcFacade) *memberHandler {
	return &memberHandler{
		memberService:     ms,
		attendanceService: as,
	}
}

// registerMemberRoutes registers all member-related routes.
func registerMemberRoutes(rg *gin.RouterGroup, memberService portssvc.MemberSvcFacade, attendanceService portssvc.AttendanceSvcFacade) {
	h := newMemberHandler(memberService, attendanceService)

	members := rg.Group("/members")
	{
		members.GET("", h.listMembers)
		members.POST("", h.createMember)                       // Admin only
		members.GET("/:id", h.getMember)                       // Own or admin
		members.PUT("/:id", h.updateMember)                    // Own or admin
		members.DELETE("/:id", h.deleteMember)                 // Own or admin
		members.PATCH("/:id/promote", h.promoteMember)         // Admin only
		members.GET("/:id/attendance", h.listMemberAttendance) // Own or admin
	}
}

// listMembers godoc
// @Summary List choir members
// @Description Retrieves a paginated list of registered members
// @Tags members
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListMembersResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list members"
// @Security BearerAuth
// @Router /members [get]
func (h *memberHandler) listMembers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListMembersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for listMembers", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	members, err := h.memberService.ListMembers(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list members from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list members"})
		return
	}

	logger.Debug("Members listed successfully", slog.Int("count", len(members)))
	c.JSON(http.StatusOK, dto.ToListMembersResponse(members))
}

// createMember godoc
// @Summary Create a member
// @Description Registers a member on their behalf (admin action)
// @Tags members
// @Accept  json
// @Produce  json
// @Param   member body dto.RegisterMemberRequest true "Member details"
// @Success 201 {object} dto.MemberResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Email already registered"
// @Failure 500 {object} map[string]string "Failed to create member"
// @Security BearerAuth
// @Router /members [post]
func (h *memberHandler) createMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createMember", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorMemberID, ok := middleware.GetMemberIDFromContext(c)
	if !ok {
		logger.Error("Creator member ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.memberService.AuthorizeAdmin(c.Request.Context(), creatorMemberID); err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		logger.Error("Failed to authorize member creation", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create member"})
		return
	}

	member, err := h.memberService.RegisterMember(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
			return
		}
		logger.Error("Failed to create member in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create member"})
		return
	}

	logger.Info("Member created successfully", slog.String("new_member_id", member.MemberID))
	c.JSON(http.StatusCreated, dto.ToMemberResponse(member))
}

// getMember godoc
// @Summary Get a member by ID
// @Description Retrieves details for a specific member
// @Tags members
// @Produce  json
// @Param   id path string true "Member ID"
// @Success 200 {object} dto.MemberResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Member not found"
// @Failure 500 {object} map[string]string "Failed to retrieve member"
// @Security BearerAuth
// @Router /members/{id} [get]
func (h *memberHandler) getMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("id")

	member, err := h.memberService.GetMemberByID(c.Request.Context(), memberID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		} else {
			logger.Error("Failed to get member from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve member"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberResponse(member))
}

// updateMember godoc
// @Summary Update a member
// @Description Updates a member's registration details
// @Tags members
// @Accept  json
// @Produce  json
// @Param   id path string true "Member ID to update"
// @Param   member body dto.UpdateMemberRequest true "Member details to update"
// @Success 200 {object} dto.MemberResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Member not found"
// @Failure 500 {object} map[string]string "Failed to update member"
// @Security BearerAuth
// @Router /members/{id} [put]
func (h *memberHandler) updateMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("id")
	var req dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateMember", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingMemberID, ok := middleware.GetMemberIDFromContext(c)
	if !ok {
		logger.Error("Requesting member ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	updatedMember, err := h.memberService.UpdateMember(c.Request.Context(), memberID, req, requestingMemberID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		default:
			logger.Error("Failed to update member in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update member"})
		}
		return
	}

	logger.Info("Member updated successfully", slog.String("member_id", memberID))
	c.JSON(http.StatusOK, dto.ToMemberResponse(updatedMember))
}

// promoteMember godoc
// @Summary Promote a member to admin
// @Description Grants the admin role to a member (admin action)
// @Tags members
// @Produce  json
// @Param   id path string true "Member ID to promote"
// @Success 200 {object} dto.MemberResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Member not found"
// @Failure 500 {object} map[string]string "Failed to promote member"
// @Security BearerAuth
// @Router /members/{id}/promote [patch]
func (h *memberHandler) promoteMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("id")

	requestingMemberID, ok := middleware.GetMemberIDFromContext(c)
	if !ok {
		logger.Error("Requesting member ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	promotedMember, err := h.memberService.PromoteMember(c.Request.Context(), memberID, requestingMemberID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		default:
			logger.Error("Failed to promote member in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to promote member"})
		}
		return
	}

	logger.Info("Member promoted successfully", slog.String("member_id", memberID), slog.String("promoted_by", requestingMemberID))
	c.JSON(http.StatusOK, dto.ToMemberResponse(promotedMember))
}

// deleteMember godoc
// @Summary Delete a member
// @Description Marks a member as deleted (soft delete)
// @Tags members
// @Produce  json
// @Param   id path string true "Member ID to delete"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Member not found"
// @Failure 500 {object} map[string]string "Failed to delete member"
// @Security BearerAuth
// @Router /members/{id} [delete]
func (h *memberHandler) deleteMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("id")

	requestingMemberID, ok := middleware.GetMemberIDFromContext(c)
	if !ok {
		logger.Error("Requesting member ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.memberService.DeleteMember(c.Request.Context(), memberID, requestingMemberID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		default:
			logger.Error("Failed to delete member in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete member"})
		}
		return
	}

	logger.Info("Member deleted successfully", slog.String("member_id", memberID), slog.String("deleted_by", requestingMemberID))
	c.Status(http.StatusNoContent)
}

// listMemberAttendance godoc
// @Summary List a member's attendance history
// @Description Retrieves attendance records for a member, newest first
// @Tags members
// @Produce  json
// @Param   id path string true "Member ID"
// @Success 200 {object} dto.ListAttendanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Member not found"
// @Failure 500 {object} map[string]string "Failed to list attendance"
// @Security BearerAuth
// @Router /members/{id}/attendance [get]
func (h *memberHandler) listMemberAttendance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("id")

	records, err := h.attendanceService.ListAttendanceByMember(c.Request.Context(), memberID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		} else {
			logger.Error("Failed to list attendance from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list attendance"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListAttendanceResponse(records))
}
