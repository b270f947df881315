package middleware

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/tutorbuddy/internal/services"
	"github.com/localnerve/tutorbuddy/internal/types"
)

// OwnerLookup finds the tutor owning a batch
type OwnerLookup interface {
	GetBatchOwner(ctx context.Context, batchID uint64) (services.BatchOwner, error)
}

// BatchOwner lets the request through only when the calling tutor owns the :batchId batch.
// Must follow RequireTutor.
func BatchOwner(lookup OwnerLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		batchID, err := strconv.ParseUint(c.Params("batchId"), 10, 64)
		if err != nil || batchID == 0 {
			return types.NewError(fiber.StatusBadRequest, "data.validation.input", "Invalid batch id %q", c.Params("batchId"))
		}

		tutorID, err := TutorID(c)
		if err != nil {
			return types.NewError(fiber.StatusForbidden, "data.authorization.tutor", "%v", err)
		}

		owner, err := lookup.GetBatchOwner(c.UserContext(), batchID)
		if err != nil {
			return types.NewError(fiber.StatusInternalServerError, "batchOwner", "Owner lookup failed: %v", err)
		}

		switch owner.Status {
		case services.OwnerNotFound:
			return types.NewError(fiber.StatusNotFound, "data.notfound.batch", "Batch %d not found", batchID)
		case services.OwnerConflict:
			return types.NewError(fiber.StatusInternalServerError, "data.integrity.owner", "Batch %d has more than one owner", batchID)
		}

		if owner.TutorID != tutorID {
			return types.NewError(fiber.StatusForbidden, "data.authorization.owner", "Batch %d is not owned by tutor %d", batchID, tutorID)
		}

		c.Locals(LocalBatchID, batchID)
		return c.Next()
	}
}

// BatchID returns the batch id stored by BatchOwner
func BatchID(c *fiber.Ctx) (uint64, bool) {
	id, ok := c.Locals(LocalBatchID).(uint64)
	return id, ok
}
