package repositories

import (
	"context"
	"time"

	"shopstack-products/internal/models"
	"shopstack-products/pkg/database"
	"shopstack-products/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type reviewRepository struct {
	collection *mongo.Collection
}

func NewReviewRepository() ReviewRepository {
	return &reviewRepository{
		collection: database.DB.Collection("reviews"),
	}
}

// Create inserts a review. Reviews are immutable; there is no update path.
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	review.ID = primitive.NewObjectID()
	review.CreatedAt = time.Now().UTC()

	start := time.Now()
	_, err := r.collection.InsertOne(ctx, review)
	metrics.MongoOperationDuration.WithLabelValues("insert", "reviews").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("insert", "reviews").Inc()
		return err
	}
	return nil
}

func (r *reviewRepository) FindByProduct(ctx context.Context, productID primitive.ObjectID) ([]models.Review, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	start := time.Now()
	cursor, err := r.collection.Find(ctx, bson.M{"product": productID}, findOptions)
	metrics.MongoOperationDuration.WithLabelValues("find", "reviews").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("find", "reviews").Inc()
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("cursor_all", "reviews").Inc()
		return nil, err
	}
	return reviews, nil
}
