package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/localnerve/tutorbuddy/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// GetTutorProfile returns the tutor profile linked to the user
func (g *Gateway) GetTutorProfile(ctx context.Context, userID uint64) (*models.Tutor, error) {
	ctx, cancel := g.opContext(ctx)
	defer cancel()

	var tutor models.Tutor
	err := g.lookup(ctx).Table(g.tables.Tutors+" AS t").
		Select("t.*").
		Joins("JOIN "+g.tables.Users+" AS u ON u.tutor_profile_id = t.id").
		Where("u.id = ?", userID).
		Take(&tutor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "tutor profile for user", Key: userID}
		}
		return nil, queryFailed("GetTutorProfile", err)
	}

	return &tutor, nil
}

// CreateTutorProfile creates a tutor profile and links the user to it, atomically.
// A user is linked at most once: a second call fails with ConflictError.
func (g *Gateway) CreateTutorProfile(ctx context.Context, userID uint64) (uint64, error) {
	const op = "CreateTutorProfile"

	ctx, cancel := g.opContext(ctx)
	defer cancel()

	var tutorID uint64
	err := g.withTx(ctx, op, func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Session(&gorm.Session{Logger: tx.Logger.LogMode(logger.Silent)}).
			Table(g.tables.Users).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "tutor_profile_id").
			Where("id = ?", userID).
			Take(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "user", Key: userID}
			}
			return stepErr(op, "lock user", err)
		}
		if user.IsTutor() {
			return &ConflictError{Entity: "user", Key: userID, Reason: "already has a tutor profile"}
		}

		// Create a new tutor profile
		tutor := models.Tutor{}
		if err := tx.Table(g.tables.Tutors).Create(&tutor).Error; err != nil {
			return stepErr(op, "insert tutor", err)
		}

		// Map the created tutor profile to the user
		result := tx.Table(g.tables.Users).Model(&models.User{}).
			Where("id = ?", userID).
			Update("tutor_profile_id", tutor.ID)
		if result.Error != nil {
			return stepErr(op, "link user", result.Error)
		}
		if result.RowsAffected != 1 {
			return stepErr(op, "link user", fmt.Errorf("expected to update 1 user, updated %d", result.RowsAffected))
		}

		tutorID = tutor.ID
		return nil
	})
	if err != nil {
		return 0, err
	}

	return tutorID, nil
}
