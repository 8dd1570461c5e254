// File: database/repository/event/interface.go
package eventRepo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"calendra/database"
	"calendra/models"
)

// ErrNotFound is returned when the targeted event does not exist.
var ErrNotFound = errors.New("event not found")

// EventRepository is the collaborator store contract for committed events.
// Window-bounded queries return complete, non-paginated results for the
// requested range.
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, userID, eventID string) error
	GetByID(ctx context.Context, eventID string) (*models.Event, error)
	// ListByUserAndWindow returns every event that makes the user busy
	// within the window: events they own plus events where they are a
	// required attendee.
	ListByUserAndWindow(ctx context.Context, userID string, window models.Interval) ([]models.Event, error)
}

type mongoEventRepo struct {
	coll *mongo.Collection
}

// NewMongoEventRepo constructs a new MongoDB EventRepository.
func NewMongoEventRepo() EventRepository {
	db := database.MongoClient.Database("calendra")
	return &mongoEventRepo{
		coll: db.Collection("events"),
	}
}
