package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/tutorbuddy/internal/middleware"
	"github.com/localnerve/tutorbuddy/internal/services"
	"github.com/localnerve/tutorbuddy/internal/types"
	"github.com/localnerve/tutorbuddy/internal/utils"
)

// BatchHandler handles batch routes. All routes run behind RequireTutor.
type BatchHandler struct {
	GW *services.Gateway
}

// CreateBatchRequest is the body of POST /api/v1/batches
type CreateBatchRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Subject     string `json:"subject" validate:"max=255"`
	AddressText string `json:"address_text" validate:"max=1024"`
}

func tutorID(c *fiber.Ctx) (uint64, error) {
	id, err := middleware.TutorID(c)
	if err != nil {
		return 0, types.NewError(fiber.StatusForbidden, "data.authorization.tutor", "%v", err)
	}
	return id, nil
}

// ListBatches handles GET /api/v1/batches
// @Summary List the tutor's batches
// @Tags Batch
// @Produce json
// @Success 200 {array} models.Batch
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /api/v1/batches [get]
func (h *BatchHandler) ListBatches(c *fiber.Ctx) error {
	tid, err := tutorID(c)
	if err != nil {
		return err
	}

	batches, err := h.GW.ListBatchesForTutor(c.UserContext(), tid)
	if err != nil {
		return gatewayError(c, err, "listBatches")
	}

	return utils.SuccessResponse(c, batches, fiber.StatusOK)
}

// CreateBatch handles POST /api/v1/batches
// @Summary Create a batch owned by the tutor
// @Tags Batch
// @Accept json
// @Produce json
// @Param body body CreateBatchRequest true "Batch"
// @Success 201 {object} utils.CreatedResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /api/v1/batches [post]
func (h *BatchHandler) CreateBatch(c *fiber.Ctx) error {
	tid, err := tutorID(c)
	if err != nil {
		return err
	}

	var body CreateBatchRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}

	id, err := h.GW.CreateBatch(c.UserContext(), tid, services.CreateBatchInput{
		Name:        body.Name,
		Subject:     body.Subject,
		AddressText: body.AddressText,
	})
	if err != nil {
		return gatewayError(c, err, "createBatch")
	}

	return utils.CreatedResponse(c, id)
}

// DeleteBatch handles DELETE /api/v1/batch/:batchId
// @Summary Delete a batch
// @Tags Batch
// @Produce json
// @Param batchId path int true "Batch ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /api/v1/batch/{batchId} [delete]
func (h *BatchHandler) DeleteBatch(c *fiber.Ctx) error {
	id, err := batchID(c)
	if err != nil {
		return err
	}

	if err := h.GW.DeleteBatch(c.UserContext(), id); err != nil {
		return gatewayError(c, err, "deleteBatch")
	}

	return utils.MutationSuccessResponse(c)
}
