// auth.go
//
// Data service for the tutor-buddy tutoring dashboard
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of tutorbuddy.
// tutorbuddy is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// tutorbuddy is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with tutorbuddy.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package middleware

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/tutorbuddy/internal/models"
	"github.com/localnerve/tutorbuddy/internal/services"
	"github.com/localnerve/tutorbuddy/internal/types"
)

// Context locals set by this package
const (
	LocalUser       = "user"
	LocalTutorID    = "tutorId"
	LocalBatchID    = "batchId"
	LocalAPIVersion = "apiVersion"
)

// SessionCookie is the name of the session cookie issued by POST /auth/session
const SessionCookie = "tb_session"

// SessionStore resolves session tokens to users
type SessionStore interface {
	FindUserBySession(ctx context.Context, token string) (*models.User, error)
}

// AuthUser requires a valid session cookie and stores the user in context
func AuthUser(store SessionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		const errorType = "data.authorization.user"

		token := c.Cookies(SessionCookie)
		if token == "" {
			return types.NewError(fiber.StatusUnauthorized, errorType, "Session cookie %q not found", SessionCookie)
		}

		user, err := store.FindUserBySession(c.UserContext(), token)
		if err != nil {
			if services.IsNotFound(err) {
				return types.NewError(fiber.StatusUnauthorized, errorType, "Invalid session")
			}
			return types.NewError(fiber.StatusInternalServerError, "authUser", "Session lookup failed: %v", err)
		}

		c.Locals(LocalUser, user)
		return c.Next()
	}
}

// RequireTutor allows only users linked to a tutor profile. Must follow AuthUser.
func RequireTutor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return types.NewError(fiber.StatusUnauthorized, "data.authorization.user", "user not found in context")
		}
		if !user.IsTutor() {
			return types.NewError(fiber.StatusForbidden, "data.authorization.tutor", "User %d is not a tutor", user.ID)
		}

		c.Locals(LocalTutorID, *user.TutorProfileID)
		return c.Next()
	}
}

// CurrentUser returns the user stored by AuthUser
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(LocalUser).(*models.User)
	return user, ok && user != nil
}

// TutorID returns the tutor id stored by RequireTutor
func TutorID(c *fiber.Ctx) (uint64, error) {
	id, ok := c.Locals(LocalTutorID).(uint64)
	if !ok {
		return 0, fmt.Errorf("tutor not found in context")
	}
	return id, nil
}
