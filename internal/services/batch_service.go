package services

import (
	"context"
	"log"

	"github.com/localnerve/tutorbuddy/internal/models"
	"gorm.io/gorm"
)

// OwnerStatus tags the outcome of a batch ownership lookup
type OwnerStatus int

const (
	// OwnerNotFound means no tutor owns the batch
	OwnerNotFound OwnerStatus = iota
	// OwnerFound means exactly one tutor owns the batch
	OwnerFound
	// OwnerConflict means more than one tutor is mapped to the batch, a data-integrity violation
	OwnerConflict
)

func (s OwnerStatus) String() string {
	switch s {
	case OwnerFound:
		return "found"
	case OwnerConflict:
		return "conflict"
	}
	return "not_found"
}

// BatchOwner is the result of GetBatchOwner. TutorID is set only when Status is OwnerFound.
type BatchOwner struct {
	Status  OwnerStatus
	TutorID uint64
}

// CreateBatchInput carries the fields of a new batch
type CreateBatchInput struct {
	Name        string
	Subject     string
	AddressText string
}

// ListBatchesForTutor returns the batches owned by the tutor, oldest first
func (g *Gateway) ListBatchesForTutor(ctx context.Context, tutorID uint64) ([]models.Batch, error) {
	ctx, cancel := g.opContext(ctx)
	defer cancel()

	batches := []models.Batch{}
	err := g.read(ctx).Table(g.tables.Batches+" AS b").
		Select("b.*").
		Joins("JOIN "+g.tables.TutorBatchMap+" AS m ON m.batch_id = b.id").
		Where("m.tutor_id = ?", tutorID).
		Order("b.id").
		Find(&batches).Error
	if err != nil {
		return nil, queryFailed("ListBatchesForTutor", err)
	}

	return batches, nil
}

// CreateBatch inserts a batch and its ownership mapping atomically
func (g *Gateway) CreateBatch(ctx context.Context, tutorID uint64, in CreateBatchInput) (uint64, error) {
	const op = "CreateBatch"

	ctx, cancel := g.opContext(ctx)
	defer cancel()

	var batchID uint64
	err := g.withTx(ctx, op, func(tx *gorm.DB) error {
		batch := models.Batch{
			Name:        in.Name,
			Subject:     in.Subject,
			AddressText: in.AddressText,
		}
		if err := tx.Table(g.tables.Batches).Create(&batch).Error; err != nil {
			return stepErr(op, "insert batch", err)
		}

		// Map this batch to the tutor
		if err := tx.Table(g.tables.TutorBatchMap).
			Create(&models.TutorBatchMap{TutorID: tutorID, BatchID: batch.ID}).Error; err != nil {
			return stepErr(op, "insert tutor batch mapping", err)
		}

		batchID = batch.ID
		return nil
	})
	if err != nil {
		return 0, err
	}

	return batchID, nil
}

// GetBatchOwner looks up the tutor owning a batch.
// Zero or multiple owners are reported through Status, not as errors.
func (g *Gateway) GetBatchOwner(ctx context.Context, batchID uint64) (BatchOwner, error) {
	ctx, cancel := g.opContext(ctx)
	defer cancel()

	var owners []uint64
	err := g.read(ctx).Table(g.tables.TutorBatchMap).
		Where("batch_id = ?", batchID).
		Pluck("tutor_id", &owners).Error
	if err != nil {
		return BatchOwner{}, queryFailed("GetBatchOwner", err)
	}

	switch len(owners) {
	case 0:
		log.Printf("services: found no owner for batch %d", batchID)
		return BatchOwner{Status: OwnerNotFound}, nil
	case 1:
		return BatchOwner{Status: OwnerFound, TutorID: owners[0]}, nil
	}

	log.Printf("services: ERROR found %d owners for batch %d: %v", len(owners), batchID, owners)
	return BatchOwner{Status: OwnerConflict}, nil
}

// DeleteBatch deletes a batch and every ownership mapping for it atomically.
// Deleting a batch that does not exist succeeds.
func (g *Gateway) DeleteBatch(ctx context.Context, batchID uint64) error {
	const op = "DeleteBatch"

	ctx, cancel := g.opContext(ctx)
	defer cancel()

	return g.withTx(ctx, op, func(tx *gorm.DB) error {
		if err := tx.Table(g.tables.Batches).
			Where("id = ?", batchID).
			Delete(&models.Batch{}).Error; err != nil {
			return stepErr(op, "delete batch", err)
		}

		if err := tx.Table(g.tables.TutorBatchMap).
			Where("batch_id = ?", batchID).
			Delete(&models.TutorBatchMap{}).Error; err != nil {
			return stepErr(op, "delete tutor batch mapping", err)
		}

		return nil
	})
}
