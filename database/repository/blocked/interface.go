// File: database/repository/blocked/interface.go
package blockedRepo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"calendra/database"
	"calendra/models"
)

// ErrNotFound is returned when the targeted rule does not exist.
var ErrNotFound = errors.New("blocked time not found")

// BlockedTimeRepository is the collaborator store contract for blocked-time
// rules. Rules are stored as templates, never as materialized occurrences.
type BlockedTimeRepository interface {
	Create(ctx context.Context, rule *models.BlockedTime) error
	Update(ctx context.Context, rule *models.BlockedTime) error
	Delete(ctx context.Context, userID, ruleID string) error
	GetByID(ctx context.Context, ruleID string) (*models.BlockedTime, error)
	// ListActiveInWindow returns the rules that can produce at least one
	// occurrence intersecting the window: one-off rules overlapping it plus
	// every recurring rule anchored before the window closes.
	ListActiveInWindow(ctx context.Context, userID string, window models.Interval) ([]models.BlockedTime, error)
}

type mongoBlockedTimeRepo struct {
	coll *mongo.Collection
}

// NewMongoBlockedTimeRepo constructs a new MongoDB BlockedTimeRepository.
func NewMongoBlockedTimeRepo() BlockedTimeRepository {
	db := database.MongoClient.Database("calendra")
	return &mongoBlockedTimeRepo{
		coll: db.Collection("blocked_times"),
	}
}
