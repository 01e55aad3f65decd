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

// contributionHandler handles HTTP requests related to contribution campaigns.
type contributionHandler struct {
	contributionService portssvc.ContributionSvcFacade
}

// newContributionHandler creates a new contributionHandler.
func newContributionHandler(cs portssvc.ContributionSvcFacade) *contributionHandler {
	return &contributionHandler{
		contributionService: cs,
	}
}

// registerContributionRoutes registers all contribution-related routes.
func registerContributionRoutes(rg *gin.RouterGroup, contributionService portssvc.ContributionSvcFacade) {
	h := newContributionHandler(contributionService)

	contributions := rg.Group("/contributions")
	{
		contributions.GET("", h.listContributions)
		contributions.GET("/:id", h.getContribution)
		contributions.POST("", h.createContribution) // Admin only
	}
}

// createContribution godoc
// @Summary Create a contribution campaign
// @Description Creates a new contribution campaign with a target amount (admin action)
// @Tags contributions
// @Accept  json
// @Produce  json
// @Param   contribution body dto.CreateContributionRequest true "Contribution details"
// @Success 201 {object} dto.ContributionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to create contribution"
// @Security BearerAuth
// @Router /contributions [post]
func (h *contributionHandler) createContribution(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createContribution", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorMemberID, ok := middleware.GetMemberIDFromContext(c)
	if !ok {
		logger.Error("Creator member ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	contribution, err := h.contributionService.CreateContribution(c.Request.Context(), req, creatorMemberID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create contribution in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create contribution"})
		}
		return
	}

	logger.Info("Contribution created successfully", slog.String("contribution_id", contribution.ContributionID))
	c.JSON(http.StatusCreated, dto.ToContributionResponse(contribution))
}

// getContribution godoc
// @Summary Get a contribution by ID
// @Description Retrieves details for a specific contribution campaign
// @Tags contributions
// @Produce  json
// @Param   id path string true "Contribution ID"
// @Success 200 {object} dto.ContributionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Contribution not found"
// @Failure 500 {object} map[string]string "Failed to retrieve contribution"
// @Security BearerAuth
// @Router /contributions/{id} [get]
func (h *contributionHandler) getContribution(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	contributionID := c.Param("id")

	contribution, err := h.contributionService.GetContributionByID(c.Request.Context(), contributionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contribution not found"})
		} else {
			logger.Error("Failed to get contribution from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve contribution"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToContributionResponse(contribution))
}

// listContributions godoc
// @Summary List contribution campaigns
// @Description Retrieves the full contribution catalog in creation order
// @Tags contributions
// @Produce  json
// @Success 200 {object} dto.ListContributionsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list contributions"
// @Security BearerAuth
// @Router /contributions [get]
func (h *contributionHandler) listContributions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	contributions, err := h.contributionService.ListContributions(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list contributions from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list contributions"})
		return
	}

	logger.Debug("Contributions listed successfully", slog.Int("count", len(contributions)))
	c.JSON(http.StatusOK, dto.ToListContributionsResponse(contributions))
}
