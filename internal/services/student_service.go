package services

import (
	"context"
	"log"

	"github.com/localnerve/tutorbuddy/internal/models"
	"gorm.io/gorm"
)

// AddStudentInput carries the fields of a student joining a batch
type AddStudentInput struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
}

// AddStudentToBatch creates an unverified student and maps it into the batch atomically.
// Sending the verification email is left to the caller.
func (g *Gateway) AddStudentToBatch(ctx context.Context, batchID uint64, in AddStudentInput) (uint64, error) {
	const op = "AddStudentToBatch"

	ctx, cancel := g.opContext(ctx)
	defer cancel()

	var studentID uint64
	err := g.withTx(ctx, op, func(tx *gorm.DB) error {
		student := models.Student{
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Phone:     in.Phone,
			Email:     in.Email,
			Verified:  false,
		}
		if err := tx.Table(g.tables.Students).Create(&student).Error; err != nil {
			return stepErr(op, "insert student", err)
		}

		log.Printf("services: creating mapping entry for batch %d, student %d", batchID, student.ID)
		if err := tx.Table(g.tables.BatchStudentMap).
			Create(&models.BatchStudentMap{BatchID: batchID, StudentID: student.ID}).Error; err != nil {
			return stepErr(op, "insert batch student mapping", err)
		}

		studentID = student.ID
		return nil
	})
	if err != nil {
		return 0, err
	}

	return studentID, nil
}

// ListStudentsForBatch returns the students mapped to the batch, oldest first
func (g *Gateway) ListStudentsForBatch(ctx context.Context, batchID uint64) ([]models.Student, error) {
	ctx, cancel := g.opContext(ctx)
	defer cancel()

	students := []models.Student{}
	err := g.read(ctx).Table(g.tables.Students+" AS s").
		Select("s.*").
		Joins("JOIN "+g.tables.BatchStudentMap+" AS m ON m.student_id = s.id").
		Where("m.batch_id = ?", batchID).
		Order("s.id").
		Find(&students).Error
	if err != nil {
		return nil, queryFailed("ListStudentsForBatch", err)
	}

	return students, nil
}
