package catalog

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	List(ctx context.Context) ([]Course, error)
	GetByID(ctx context.Context, id string) (Course, error)
	GetBySlug(ctx context.Context, slug string) (Course, error)
	IncrementEnrollment(ctx context.Context, id string) error
	SetRatingStats(ctx context.Context, id string, rating float64, reviewCount int) error
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) List(ctx context.Context) ([]Course, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	courses := make([]Course, 0)
	for cursor.Next(ctx) {
		var course Course
		if err := cursor.Decode(&course); err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (Course, error) {
	var course Course
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&course); err != nil {
		return Course{}, err
	}
	return course, nil
}

func (r *MongoRepository) GetBySlug(ctx context.Context, slug string) (Course, error) {
	var course Course
	if err := r.col.FindOne(ctx, bson.M{"slug": slug}).Decode(&course); err != nil {
		return Course{}, err
	}
	return course, nil
}

func (r *MongoRepository) IncrementEnrollment(ctx context.Context, id string) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"enrollmentCount": 1}})
	return err
}

func (r *MongoRepository) SetRatingStats(ctx context.Context, id string, rating float64, reviewCount int) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"rating": rating, "reviewCount": reviewCount},
	})
	return err
}
