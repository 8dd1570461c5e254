// File: database/repository/blocked/queries.go
package blockedRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"calendra/models"
)

func (r *mongoBlockedTimeRepo) ListActiveInWindow(ctx context.Context, userID string, window models.Interval) ([]models.BlockedTime, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// A recurring rule anchored before the window closes recurs into it no
	// matter how old the anchor is; only one-off rules can be excluded by
	// their template interval.
	filter := bson.M{
		"userId": userID,
		"$or": bson.A{
			bson.M{
				"recurrence": models.RecurrenceNone,
				"start":      bson.M{"$lt": window.End},
				"end":        bson.M{"$gt": window.Start},
			},
			bson.M{
				"recurrence": bson.M{"$in": bson.A{models.RecurrenceDaily, models.RecurrenceWeekly}},
				"start":      bson.M{"$lt": window.End},
			},
		},
	}

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "start", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blocked times: %w", err)
	}
	defer cursor.Close(ctx)

	var rules []models.BlockedTime
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, fmt.Errorf("error decoding blocked times: %w", err)
	}
	return rules, nil
}
