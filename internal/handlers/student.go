package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/tutorbuddy/internal/services"
	"github.com/localnerve/tutorbuddy/internal/utils"
)

// StudentHandler handles the students of a batch
type StudentHandler struct {
	GW *services.Gateway
}

// AddStudentRequest is the body of POST /api/v1/batch/:batchId/students
type AddStudentRequest struct {
	FirstName string `json:"first_name" validate:"required,max=255"`
	LastName  string `json:"last_name" validate:"required,max=255"`
	Phone     string `json:"phone" validate:"max=32"`
	Email     string `json:"email" validate:"omitempty,email,max=255"`
}

// ListStudents handles GET /api/v1/batch/:batchId/students
// @Summary List the students of a batch
// @Tags Student
// @Produce json
// @Param batchId path int true "Batch ID"
// @Success 200 {array} models.Student
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /api/v1/batch/{batchId}/students [get]
func (h *StudentHandler) ListStudents(c *fiber.Ctx) error {
	id, err := batchID(c)
	if err != nil {
		return err
	}

	students, err := h.GW.ListStudentsForBatch(c.UserContext(), id)
	if err != nil {
		return gatewayError(c, err, "listStudents")
	}

	return utils.SuccessResponse(c, students, fiber.StatusOK)
}

// AddStudent handles POST /api/v1/batch/:batchId/students
// @Summary Add a student to a batch
// @Description The student is created unverified
// @Tags Student
// @Accept json
// @Produce json
// @Param batchId path int true "Batch ID"
// @Param body body AddStudentRequest true "Student"
// @Success 201 {object} utils.CreatedResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /api/v1/batch/{batchId}/students [post]
func (h *StudentHandler) AddStudent(c *fiber.Ctx) error {
	id, err := batchID(c)
	if err != nil {
		return err
	}

	var body AddStudentRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}

	studentID, err := h.GW.AddStudentToBatch(c.UserContext(), id, services.AddStudentInput{
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Phone:     body.Phone,
		Email:     body.Email,
	})
	if err != nil {
		return gatewayError(c, err, "addStudent")
	}

	return utils.CreatedResponse(c, studentID)
}
