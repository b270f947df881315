package handlers

import (
	"crypto/subtle"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/localnerve/tutorbuddy/internal/middleware"
	"github.com/localnerve/tutorbuddy/internal/models"
	"github.com/localnerve/tutorbuddy/internal/services"
	"github.com/localnerve/tutorbuddy/internal/utils"
)

// CallbackSecretHeader carries the shared secret of the login callback
const CallbackSecretHeader = "X-Auth-Callback-Secret"

// SessionHandler handles session routes
type SessionHandler struct {
	GW           *services.Gateway
	Secret       string
	CookieSecure bool
	CookieMaxAge time.Duration
}

// LoginRequest is the identity forwarded by the login callback
type LoginRequest struct {
	FirstName     string `json:"first_name" validate:"required,max=255"`
	LastName      string `json:"last_name" validate:"required,max=255"`
	Email         string `json:"email" validate:"omitempty,email,max=255"`
	ExternalID    string `json:"facebook_id" validate:"required,max=64"`
	ExternalToken string `json:"facebook_token" validate:"max=512"`
}

// SessionResponseStruct defines the schema for login responses
type SessionResponseStruct struct {
	Ok        bool   `json:"ok"`
	UserID    uint64 `json:"user_id"`
	IsTutor   bool   `json:"is_tutor"`
	Created   bool   `json:"created"`
	Timestamp string `json:"timestamp"`
}

// CreateSession handles POST /auth/session
// @Summary Start a session
// @Description Find or create the user of a completed external login and issue a session cookie
// @Tags Session
// @Accept json
// @Produce json
// @Param X-Auth-Callback-Secret header string true "Login callback secret"
// @Param body body LoginRequest true "External identity"
// @Success 200 {object} SessionResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /auth/session [post]
func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	secret := c.Get(CallbackSecretHeader)
	if h.Secret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(h.Secret)) != 1 {
		return utils.ErrorResponse(c, "Invalid callback secret", fiber.StatusForbidden, "data.authorization.callback")
	}

	var body LoginRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}

	ctx := c.UserContext()
	created := false

	user, err := h.GW.FindUserByExternalID(ctx, body.ExternalID)
	if services.IsNotFound(err) {
		var id uint64
		id, err = h.GW.CreateUser(ctx, services.CreateUserInput{
			FirstName:     body.FirstName,
			LastName:      body.LastName,
			Email:         body.Email,
			ExternalID:    body.ExternalID,
			ExternalToken: body.ExternalToken,
		})
		switch {
		case err == nil:
			created = true
			user = &models.User{ID: id}
		case services.IsConflict(err):
			// Lost a race with a concurrent login of the same identity
			user, err = h.GW.FindUserByExternalID(ctx, body.ExternalID)
		}
	}
	if err != nil {
		return gatewayError(c, err, "createSession")
	}

	token := uuid.NewString()
	if err := h.GW.CreateSession(ctx, user.ID, token); err != nil {
		return gatewayError(c, err, "createSession")
	}

	cookie := &fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if h.CookieMaxAge > 0 {
		cookie.MaxAge = int(h.CookieMaxAge.Seconds())
	}
	c.Cookie(cookie)

	return c.Status(fiber.StatusOK).JSON(SessionResponseStruct{
		Ok:        true,
		UserID:    user.ID,
		IsTutor:   user.IsTutor(),
		Created:   created,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// DeleteSession handles DELETE /auth/session
// @Summary End the session
// @Tags Session
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /auth/session [delete]
func (h *SessionHandler) DeleteSession(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.GW.TerminateSession(c.UserContext(), user.ID); err != nil {
		return gatewayError(c, err, "deleteSession")
	}

	c.ClearCookie(middleware.SessionCookie)
	return utils.MutationSuccessResponse(c)
}
