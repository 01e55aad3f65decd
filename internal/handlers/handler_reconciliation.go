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

// reconciliationHandler exposes the derived paid/owed views.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationService
}

// newReconciliationHandler creates a new reconciliationHandler.
func newReconciliationHandler(rs portssvc.ReconciliationService) *reconciliationHandler {
	return &reconciliationHandler{
		reconciliationService: rs,
	}
}

// RegisterReconciliationRoutes registers all reconciliation routes.
func RegisterReconciliationRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationService) {
	h := newReconciliationHandler(reconciliationService)

	reconciliation := rg.Group("/reconciliation")
	{
		reconciliation.GET("/members/:id", h.getMemberView)
		reconciliation.GET("/campaigns", h.getCampaignView)
	}
}

// getMemberView godoc
// @Summary Get a member's reconciliation view
// @Description Computes one member's paid and owed position against every contribution campaign
// @Tags reconciliation
// @Produce  json
// @Param   id path string true "Member ID"
// @Success 200 {object} dto.MemberReconciliationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Member not found"
// @Failure 500 {object} map[string]string "Failed to compute reconciliation"
// @Security BearerAuth
// @Router /reconciliation/members/{id} [get]
func (h *reconciliationHandler) getMemberView(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("id")

	view, err := h.reconciliationService.MemberView(c.Request.Context(), memberID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		} else {
			logger.Error("Failed to compute member reconciliation", slog.String("error", err.Error()), slog.String("member_id", memberID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute reconciliation"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberReconciliationResponse(view))
}

// getCampaignView godoc
// @Summary Get the campaign-wide reconciliation view
// @Description Computes every active member's position against every contribution campaign, including the paid/unpaid partition per campaign
// @Tags reconciliation
// @Produce  json
// @Success 200 {object} dto.CampaignReconciliationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute reconciliation"
// @Security BearerAuth
// @Router /reconciliation/campaigns [get]
func (h *reconciliationHandler) getCampaignView(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	view, err := h.reconciliationService.CampaignView(c.Request.Context())
	if err != nil {
		logger.Error("Failed to compute campaign reconciliation", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute reconciliation"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCampaignReconciliationResponse(view))
}
