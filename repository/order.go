package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"truefood/models"
)

// OrderRepository persists order aggregates wholesale: every mutation is a
// single document write, so consistency rests on Mongo's single-document
// atomicity.
type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(col *mongo.Collection) *OrderRepository {
	return &OrderRepository{col: col}
}

// FindPending returns (nil, nil) when the user has no pending order.
func (r *OrderRepository) FindPending(ctx context.Context, userID primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := r.col.FindOne(ctx, bson.M{
		"userId": userID,
		"status": models.OrderStatusPending,
	}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) Save(ctx context.Context, order *models.Order) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": order.ID}, order, opts)
	return err
}

// DeleteEmptyPending prunes pending orders with no items, left behind by
// races or partial failures.
func (r *OrderRepository) DeleteEmptyPending(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{
		"userId": userID,
		"status": models.OrderStatusPending,
		"items":  bson.M{"$size": 0},
	})
	return err
}

// CompletePending closes out the user's cart after the payment provider
// confirms success. Orders are kept for history, never deleted here.
func (r *OrderRepository) CompletePending(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	result, err := r.col.UpdateMany(ctx,
		bson.M{"userId": userID, "status": models.OrderStatusPending},
		bson.M{"$set": bson.M{"status": models.OrderStatusCompleted, "updatedAt": time.Now()}},
	)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// History returns the user's non-pending orders, newest first.
func (r *OrderRepository) History(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{
		"userId": userID,
		"status": bson.M{"$ne": models.OrderStatusPending},
	}, opts)
	if err != nil {
		return nil, err
	}

	var orders []models.Order = []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus moves a pending order to the given status and reports whether
// a matching order existed.
func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID primitive.ObjectID, status string) (bool, error) {
	result, err := r.col.UpdateOne(ctx,
		bson.M{"_id": orderID, "status": models.OrderStatusPending},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
	)
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}
