package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/tutorbuddy/internal/services"
	"github.com/localnerve/tutorbuddy/internal/utils"
)

// TutorHandler handles tutor profile routes
type TutorHandler struct {
	GW *services.Gateway
}

// GetProfile handles GET /api/v1/tutor/profile
// @Summary Get the tutor profile of the user
// @Tags Tutor
// @Produce json
// @Success 200 {object} models.Tutor
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /api/v1/tutor/profile [get]
func (h *TutorHandler) GetProfile(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	tutor, err := h.GW.GetTutorProfile(c.UserContext(), user.ID)
	if err != nil {
		return gatewayError(c, err, "getTutorProfile")
	}

	return utils.SuccessResponse(c, tutor, fiber.StatusOK)
}

// CreateProfile handles POST /api/v1/tutor/profile
// @Summary Create a tutor profile for the user
// @Tags Tutor
// @Produce json
// @Success 201 {object} utils.CreatedResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /api/v1/tutor/profile [post]
func (h *TutorHandler) CreateProfile(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	tutorID, err := h.GW.CreateTutorProfile(c.UserContext(), user.ID)
	if err != nil {
		return gatewayError(c, err, "createTutorProfile")
	}

	return utils.CreatedResponse(c, tutorID)
}
