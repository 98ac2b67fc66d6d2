package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitlife-app/membership-service/internal/services"
	"github.com/fitlife-app/membership-service/internal/utils"
)

type TrainerHandler struct {
	BaseHandler
	trainerService services.TrainerService
	userService    services.UserService
}

func NewTrainerHandler(trainerService services.TrainerService, userService services.UserService, logger utils.Logger) *TrainerHandler {
	return &TrainerHandler{
		BaseHandler:    NewBaseHandler(logger),
		trainerService: trainerService,
		userService:    userService,
	}
}

// Apply submits a trainer application
// @Summary Apply to become a trainer
// @Description Submit a trainer application; a repeat submission for the same email returns an already-exists result with a null insertedId
// @Tags trainers
// @Accept json
// @Produce json
// @Param request body services.ApplyTrainerRequest true "Application"
// @Success 200 {object} services.ApplyResult
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /betrainer [post]
func (h *TrainerHandler) Apply(c *gin.Context) {
	var req services.ApplyTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Submitting trainer application", "email", req.Email)

	result, err := h.trainerService.Apply(c.Request.Context(), &req)
	if err != nil {
		h.LogError(c, err, "Failed to submit application")
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListApplications lists all trainer applications
// @Summary List trainer applications
// @Tags trainers
// @Produce json
// @Success 200 {array} models.TrainerApplication
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /betrainer [get]
func (h *TrainerHandler) ListApplications(c *gin.Context) {
	h.LogRequest(c, "Listing trainer applications")

	apps, err := h.trainerService.List(c.Request.Context())
	if err != nil {
		h.LogError(c, err, "Failed to list applications")
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, apps)
}

// GetApplication retrieves a trainer application by ID
// @Summary Get trainer application
// @Tags trainers
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {object} models.TrainerApplication
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /betrainer/{id} [get]
func (h *TrainerHandler) GetApplication(c *gin.Context) {
	appID := c.Param("id")
	if appID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Application ID is required",
		})
		return
	}

	h.LogRequest(c, "Getting trainer application", "application_id", appID)

	app, err := h.trainerService.GetByID(c.Request.Context(), appID)
	if err != nil {
		h.LogError(c, err, "Failed to get application")
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}

// GetApplicationByEmail retrieves a trainer application by applicant email
// @Summary Get trainer application by email
// @Description Only the authenticated user may read their own application
// @Tags trainers
// @Produce json
// @Param email path string true "Applicant email"
// @Success 200 {object} models.TrainerApplication
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /trainer/{email} [get]
func (h *TrainerHandler) GetApplicationByEmail(c *gin.Context) {
	email := c.Param("email")

	h.LogRequest(c, "Getting trainer application by email", "email", email)

	app, err := h.trainerService.GetByEmail(c.Request.Context(), email)
	if err != nil {
		h.LogError(c, err, "Failed to get application")
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}

// Approve approves a trainer application
// @Summary Approve trainer application
// @Description Mark the application approved and mirror the trainer role onto the user record; both writes commit together or not at all
// @Tags trainers
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {object} repositories.UpdateResult
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /betrainer/{id} [patch]
func (h *TrainerHandler) Approve(c *gin.Context) {
	appID := c.Param("id")
	if appID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Application ID is required",
		})
		return
	}

	h.LogRequest(c, "Approving trainer application", "application_id", appID)

	result, err := h.trainerService.Approve(c.Request.Context(), appID)
	if err != nil {
		h.LogError(c, err, "Failed to approve application")
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Reject rejects a trainer application with reviewer feedback
// @Summary Reject trainer application
// @Description Mark the application rejected with required feedback and revert the applicant's role to member
// @Tags trainers
// @Accept json
// @Produce json
// @Param id path string true "Application ID"
// @Param request body services.RejectTrainerRequest true "Reviewer feedback"
// @Success 200 {object} repositories.UpdateResult
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /reject/{id} [patch]
func (h *TrainerHandler) Reject(c *gin.Context) {
	appID := c.Param("id")
	if appID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Application ID is required",
		})
		return
	}

	var req services.RejectTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Rejecting trainer application", "application_id", appID)

	result, err := h.trainerService.Reject(c.Request.Context(), appID, req.FeedbackText)
	if err != nil {
		h.LogError(c, err, "Failed to reject application")
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CheckTrainer reports whether the given email belongs to a trainer
// @Summary Check trainer role
// @Description Resolve the stored role for an email; only the authenticated user may probe their own email
// @Tags trainers
// @Produce json
// @Param email path string true "Email to check"
// @Success 200 {object} map[string]bool "{trainer: bool}"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /betrainer/trainer/{email} [get]
func (h *TrainerHandler) CheckTrainer(c *gin.Context) {
	email := c.Param("email")

	h.LogRequest(c, "Checking trainer role", "email", email)

	isTrainer, err := h.userService.IsTrainer(c.Request.Context(), email)
	if err != nil {
		h.LogError(c, err, "Failed to resolve role")
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trainer": isTrainer})
}

// SetTrainerRole sets the application role to trainer outside the review flow
// @Summary Set application role to trainer
// @Tags trainers
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {object} repositories.UpdateResult
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /betrainer/trainer/{id} [patch]
func (h *TrainerHandler) SetTrainerRole(c *gin.Context) {
	appID := c.Param("id")
	if appID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Application ID is required",
		})
		return
	}

	h.LogRequest(c, "Setting application role to trainer", "application_id", appID)

	result, err := h.trainerService.SetTrainerRole(c.Request.Context(), appID)
	if err != nil {
		h.LogError(c, err, "Failed to set trainer role")
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DemoteRole reverts the application role to member
// @Summary Demote application role to member
// @Tags trainers
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {object} repositories.UpdateResult
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /betrainer/role/{id} [patch]
func (h *TrainerHandler) DemoteRole(c *gin.Context) {
	appID := c.Param("id")
	if appID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Application ID is required",
		})
		return
	}

	h.LogRequest(c, "Demoting application role", "application_id", appID)

	result, err := h.trainerService.DemoteRole(c.Request.Context(), appID)
	if err != nil {
		h.LogError(c, err, "Failed to demote role")
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// PurgeApplication removes a trainer application record
// @Summary Delete trainer application
// @Description Administrative purge; an unknown id yields deletedCount 0, not an error
// @Tags trainers
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {object} repositories.DeleteResult
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /betrainer/{id} [delete]
func (h *TrainerHandler) PurgeApplication(c *gin.Context) {
	appID := c.Param("id")
	if appID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Application ID is required",
		})
		return
	}

	h.LogRequest(c, "Purging trainer application", "application_id", appID)

	result, err := h.trainerService.Purge(c.Request.Context(), appID)
	if err != nil {
		h.LogError(c, err, "Failed to purge application")
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
