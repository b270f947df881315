package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/tutorbuddy/internal/services"
	"github.com/localnerve/tutorbuddy/internal/types"
	"github.com/localnerve/tutorbuddy/internal/utils"
	"github.com/shopspring/decimal"
)

// PaymentHandler handles payments made by the students of a batch
type PaymentHandler struct {
	GW *services.Gateway
}

// RecordPaymentRequest is the body of POST /api/v1/batch/:batchId/student/:studentId/payments.
// Amount accepts a JSON number or string. Time accepts "2006-01-02 15:04:05" (UTC) or RFC3339.
type RecordPaymentRequest struct {
	Amount       decimal.Decimal   `json:"amount" swaggertype:"string" example:"1500.00"`
	Currency     string            `json:"currency" validate:"omitempty,len=3,alpha"`
	PaidAt       *types.PaidAtTime `json:"time" swaggertype:"string" example:"2026-03-01 10:00:00"`
	TutorComment string            `json:"tutor_comment" validate:"max=1024"`
}

// ListPayments handles GET /api/v1/batch/:batchId/payments
// @Summary List the payments of a batch
// @Tags Payment
// @Produce json
// @Param batchId path int true "Batch ID"
// @Success 200 {array} models.Payment
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /api/v1/batch/{batchId}/payments [get]
func (h *PaymentHandler) ListPayments(c *fiber.Ctx) error {
	id, err := batchID(c)
	if err != nil {
		return err
	}

	payments, err := h.GW.ListPaymentsForBatch(c.UserContext(), id)
	if err != nil {
		return gatewayError(c, err, "listPayments")
	}

	return utils.SuccessResponse(c, payments, fiber.StatusOK)
}

// RecordPayment handles POST /api/v1/batch/:batchId/student/:studentId/payments
// @Summary Record a payment by a student of the batch
// @Tags Payment
// @Accept json
// @Produce json
// @Param batchId path int true "Batch ID"
// @Param studentId path int true "Student ID"
// @Param body body RecordPaymentRequest true "Payment"
// @Success 201 {object} utils.CreatedResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /api/v1/batch/{batchId}/student/{studentId}/payments [post]
func (h *PaymentHandler) RecordPayment(c *fiber.Ctx) error {
	id, err := batchID(c)
	if err != nil {
		return err
	}
	studentID, err := parseID(c, "studentId")
	if err != nil {
		return err
	}

	var body RecordPaymentRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}
	if !body.Amount.IsPositive() {
		return types.NewError(fiber.StatusBadRequest, "data.validation.input", "Invalid input: amount must be positive")
	}
	if !body.Amount.Equal(body.Amount.Round(2)) {
		return types.NewError(fiber.StatusBadRequest, "data.validation.input", "Invalid input: amount has more than 2 decimal places")
	}

	in := services.RecordPaymentInput{
		Amount:       body.Amount,
		Currency:     body.Currency,
		TutorComment: body.TutorComment,
	}
	if body.PaidAt != nil {
		in.PaidAt = body.PaidAt.Time
	}

	paymentID, err := h.GW.RecordPayment(c.UserContext(), id, studentID, in)
	if err != nil {
		return gatewayError(c, err, "recordPayment")
	}

	return utils.CreatedResponse(c, paymentID)
}
