// File: database/repository/event/queries.go
package eventRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"calendra/models"
)

func (r *mongoEventRepo) ListByUserAndWindow(ctx context.Context, userID string, window models.Interval) ([]models.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// All-day normalization can stretch an event to the full UTC day, so the
	// raw start/end filter is widened by a day on each side; the caller
	// clips the expanded intervals back to the window.
	filter := bson.M{
		"$or": bson.A{
			bson.M{"userId": userID},
			bson.M{"requiredAttendees": userID},
		},
		"start": bson.M{"$lt": window.End.Add(24 * time.Hour)},
		"end":   bson.M{"$gt": window.Start.Add(-24 * time.Hour)},
	}

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "start", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []models.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("error decoding events: %w", err)
	}
	return events, nil
}
