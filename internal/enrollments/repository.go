package enrollments

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Create(ctx context.Context, item Enrollment) error
	ListByEmail(ctx context.Context, email string) ([]Enrollment, error)
	ExistsForOrder(ctx context.Context, orderID string) (bool, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, item Enrollment) error {
	_, err := r.col.InsertOne(ctx, item)
	return err
}

func (r *MongoRepository) ListByEmail(ctx context.Context, email string) ([]Enrollment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.col.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]Enrollment, 0)
	for cursor.Next(ctx) {
		var item Enrollment
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

func (r *MongoRepository) ExistsForOrder(ctx context.Context, orderID string) (bool, error) {
	err := r.col.FindOne(ctx, bson.M{"orderId": orderID}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
