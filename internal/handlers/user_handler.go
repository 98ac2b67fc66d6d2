package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitlife-app/membership-service/internal/services"
	"github.com/fitlife-app/membership-service/internal/utils"
)

type UserHandler struct {
	BaseHandler
	userService services.UserService
}

func NewUserHandler(userService services.UserService, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		userService: userService,
	}
}

// RegisterUser registers a user on first sign-in
// @Summary Register user
// @Description Register a user by email; an existing email returns an already-exists result with a null insertedId
// @Tags users
// @Accept json
// @Produce json
// @Param request body services.CreateUserRequest true "User to register"
// @Success 200 {object} services.RegisterUserResult
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /users [post]
func (h *UserHandler) RegisterUser(c *gin.Context) {
	var req services.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Registering user", "email", req.Email)

	result, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		h.LogError(c, err, "Failed to register user")
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListUsers lists all users
// @Summary List users
// @Description Get the full user roster
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	h.LogRequest(c, "Listing users")

	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		h.LogError(c, err, "Failed to list users")
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// DeleteUser removes a user by ID
// @Summary Delete user
// @Description Delete a user record; an unknown id yields deletedCount 0, not an error
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} repositories.DeleteResult
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "User ID is required",
		})
		return
	}

	h.LogRequest(c, "Deleting user", "user_id", userID)

	result, err := h.userService.Delete(c.Request.Context(), userID)
	if err != nil {
		h.LogError(c, err, "Failed to delete user")
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CheckAdmin reports whether the given email belongs to an admin
// @Summary Check admin role
// @Description Resolve the stored role for an email; only the authenticated user may probe their own email
// @Tags users
// @Produce json
// @Param email path string true "Email to check"
// @Success 200 {object} map[string]bool "{admin: bool}"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /users/admin/{email} [get]
func (h *UserHandler) CheckAdmin(c *gin.Context) {
	email := c.Param("email")

	h.LogRequest(c, "Checking admin role", "email", email)

	isAdmin, err := h.userService.IsAdmin(c.Request.Context(), email)
	if err != nil {
		h.LogError(c, err, "Failed to resolve role")
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"admin": isAdmin})
}

// PromoteToAdmin promotes a user to admin
// @Summary Promote user to admin
// @Description Set the user's role to admin; an unknown id yields matchedCount 0, not an error
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} repositories.UpdateResult
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /users/admin/{id} [patch]
func (h *UserHandler) PromoteToAdmin(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "User ID is required",
		})
		return
	}

	h.LogRequest(c, "Promoting user to admin", "user_id", userID)

	result, err := h.userService.PromoteToAdmin(c.Request.Context(), userID)
	if err != nil {
		h.LogError(c, err, "Failed to promote user")
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
