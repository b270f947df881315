// common.go
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

package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/tutorbuddy/internal/middleware"
	"github.com/localnerve/tutorbuddy/internal/models"
	"github.com/localnerve/tutorbuddy/internal/services"
	"github.com/localnerve/tutorbuddy/internal/types"
	"github.com/localnerve/tutorbuddy/internal/utils"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// parseBody decodes the JSON request body into dst and validates its struct tags
func parseBody(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return types.NewError(fiber.StatusBadRequest, "data.validation.input", "Invalid input")
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return types.NewError(fiber.StatusBadRequest, "data.validation.input", "Invalid input: %s", strings.Join(fields, ", "))
		}
		return types.NewError(fiber.StatusBadRequest, "data.validation.input", "Invalid input")
	}

	return nil
}

// parseID reads a positive integer path parameter
func parseID(c *fiber.Ctx, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, types.NewError(fiber.StatusBadRequest, "data.validation.input", "Invalid %s %q", name, c.Params(name))
	}
	return id, nil
}

// currentUser extracts the user set by the session middleware
func currentUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, types.NewError(fiber.StatusUnauthorized, "data.authorization.user", "user not found in context")
	}
	return user, nil
}

// batchID returns the batch id verified by the ownership middleware
func batchID(c *fiber.Ctx) (uint64, error) {
	if id, ok := middleware.BatchID(c); ok {
		return id, nil
	}
	return parseID(c, "batchId")
}

// gatewayError renders a Gateway error. errorType names the failed operation for 500s.
func gatewayError(c *fiber.Ctx, err error, errorType string) error {
	var (
		nf *services.NotFoundError
		ce *services.ConflictError
	)
	switch {
	case errors.As(err, &nf):
		return utils.NotFoundResponse(c, nf.Error())
	case errors.As(err, &ce):
		return utils.ErrorResponse(c, ce.Error(), fiber.StatusConflict, "data.conflict")
	}
	return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, errorType)
}

// ErrorHandler renders errors returned from middleware and handlers in the standard envelope
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	var (
		fe *fiber.Error
		ce *types.CustomError
	)
	switch {
	case errors.As(err, &ce):
		code = ce.Code
		message = ce.Message
		errorType = ce.Type
	case errors.As(err, &fe):
		code = fe.Code
		message = fe.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}

// NotFound handles requests that match no route
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"status":    fiber.StatusNotFound,
		"message":   "[404] Resource Not Found",
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
	})
}
