package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"truefood/models"
)

// MenuRepository is the read side of the menu catalog. Writes happen only
// through the seeding command.
type MenuRepository struct {
	col *mongo.Collection
}

func NewMenuRepository(col *mongo.Collection) *MenuRepository {
	return &MenuRepository{col: col}
}

func (r *MenuRepository) ListItems(ctx context.Context) ([]models.MenuItem, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	var items []models.MenuItem = []models.MenuItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem returns (nil, nil) when the id does not resolve; a deleted menu
// item is a normal outcome for callers holding old references.
func (r *MenuRepository) GetItem(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ReplaceAll clears the catalog and inserts the given items.
func (r *MenuRepository) ReplaceAll(ctx context.Context, items []models.MenuItem) error {
	if _, err := r.col.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}

	docs := make([]interface{}, 0, len(items))
	for _, item := range items {
		if item.ID.IsZero() {
			item.ID = primitive.NewObjectID()
		}
		docs = append(docs, item)
	}

	_, err := r.col.InsertMany(ctx, docs)
	return err
}
