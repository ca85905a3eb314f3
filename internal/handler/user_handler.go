package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/cohort-tools-api/internal/models"
	appErrors "github.com/noah-isme/cohort-tools-api/pkg/errors"
	"github.com/noah-isme/cohort-tools-api/pkg/response"
)

type userService interface {
	GetSelf(ctx context.Context, requesterID, id string) (*models.User, error)
}

// UserHandler serves the authenticated user's own record.
type UserHandler struct {
	service userService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(svc userService) *UserHandler {
	return &UserHandler{service: svc}
}

// Get godoc
// @Summary Get user
// @Description Get the authenticated user's record
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /api/users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	user, err := h.service.GetSelf(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, user)
}
