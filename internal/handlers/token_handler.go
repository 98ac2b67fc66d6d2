package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitlife-app/membership-service/internal/auth"
	"github.com/fitlife-app/membership-service/internal/utils"
	"github.com/fitlife-app/membership-service/internal/validator"
)

// TokenHandler issues signed access tokens for a self-asserted identity.
type TokenHandler struct {
	BaseHandler
	tokens    *auth.TokenService
	validator *validator.Validator
}

func NewTokenHandler(tokens *auth.TokenService, v *validator.Validator, logger utils.Logger) *TokenHandler {
	return &TokenHandler{
		BaseHandler: NewBaseHandler(logger),
		tokens:      tokens,
		validator:   v,
	}
}

// IssueToken issues a signed access token
// @Summary Issue access token
// @Description Issue a signed short-lived access token for the submitted identity
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validator.TokenRequest true "Identity claim"
// @Success 200 {object} map[string]interface{} "Token response"
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /jwt [post]
func (h *TokenHandler) IssueToken(c *gin.Context) {
	var req validator.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	if errs := h.validator.Validate(&req); errs != nil {
		h.handleServiceError(c, errs)
		return
	}

	h.LogRequest(c, "Issuing token", "email", req.Email)

	token, err := h.tokens.Issue(req.Email, req.Name)
	if err != nil {
		h.LogError(c, err, "Failed to issue token")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Failed to issue token",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
