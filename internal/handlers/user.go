package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/tutorbuddy/internal/services"
	"github.com/localnerve/tutorbuddy/internal/utils"
)

// UserHandler handles routes about the signed-in user
type UserHandler struct {
	GW *services.Gateway
}

// IsTutorResponseStruct defines the schema for the tutor check
type IsTutorResponseStruct struct {
	IsTutor bool `json:"is_tutor"`
}

// GetProfile handles GET /api/v1/user/profile
// @Summary Get the user profile
// @Tags User
// @Produce json
// @Success 200 {object} services.UserProfile
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /api/v1/user/profile [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	profile, err := h.GW.GetUserProfile(c.UserContext(), user.ID)
	if err != nil {
		return gatewayError(c, err, "getUserProfile")
	}

	return utils.SuccessResponse(c, profile, fiber.StatusOK)
}

// IsTutor handles GET /api/v1/user/tutor
// @Summary Check whether the user is a tutor
// @Tags User
// @Produce json
// @Success 200 {object} IsTutorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /api/v1/user/tutor [get]
func (h *UserHandler) IsTutor(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	isTutor, err := h.GW.IsTutor(c.UserContext(), user.ID)
	if err != nil {
		return gatewayError(c, err, "isTutor")
	}

	return utils.SuccessResponse(c, IsTutorResponseStruct{IsTutor: isTutor}, fiber.StatusOK)
}
