// File: database/repository/blocked/crud.go
package blockedRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"calendra/models"
)

func (r *mongoBlockedTimeRepo) Create(ctx context.Context, rule *models.BlockedTime) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if rule.ID == "" {
		rule.ID = uuid.New().String()
	}
	_, err := r.coll.InsertOne(ctx, rule)
	return err
}

func (r *mongoBlockedTimeRepo) Update(ctx context.Context, rule *models.BlockedTime) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": rule.ID, "userId": rule.UserID}
	res, err := r.coll.ReplaceOne(ctx, filter, rule)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoBlockedTimeRepo) Delete(ctx context.Context, userID, ruleID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": ruleID, "userId": userID}
	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoBlockedTimeRepo) GetByID(ctx context.Context, ruleID string) (*models.BlockedTime, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rule models.BlockedTime
	err := r.coll.FindOne(ctx, bson.M{"id": ruleID}).Decode(&rule)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rule, nil
}
