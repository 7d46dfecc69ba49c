package reviews

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const listLimit = 200

type Repository interface {
	Create(ctx context.Context, item Review) error
	ListByCourse(ctx context.Context, courseID string) ([]Review, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, item Review) error {
	_, err := r.col.InsertOne(ctx, item)
	return err
}

func (r *MongoRepository) ListByCourse(ctx context.Context, courseID string) ([]Review, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(listLimit)

	cursor, err := r.col.Find(ctx, bson.M{"courseId": courseID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]Review, 0)
	for cursor.Next(ctx) {
		var item Review
		if err := cursor.Decode(&item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
