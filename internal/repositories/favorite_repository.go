package repositories

import (
	"context"
	"fmt"
	"time"

	"shopstack-products/internal/models"
	"shopstack-products/pkg/database"
	"shopstack-products/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type favoriteRepository struct {
	collection *mongo.Collection
}

func NewFavoriteRepository() FavoriteRepository {
	return &favoriteRepository{
		collection: database.DB.Collection("favorites"),
	}
}

func (r *favoriteRepository) Create(ctx context.Context, favorite *models.Favorite) error {
	favorite.ID = primitive.NewObjectID()
	if favorite.Favorites == nil {
		favorite.Favorites = []models.FavoriteItem{}
	}
	favorite.Quantity = len(favorite.Favorites)
	now := time.Now().UTC()
	favorite.CreatedAt = now
	favorite.UpdatedAt = now

	start := time.Now()
	_, err := r.collection.InsertOne(ctx, favorite)
	metrics.MongoOperationDuration.WithLabelValues("insert", "favorites").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("insert", "favorites").Inc()
		return err
	}
	return nil
}

func (r *favoriteRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Favorite, error) {
	start := time.Now()
	var favorite models.Favorite
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&favorite)
	metrics.MongoOperationDuration.WithLabelValues("find_one", "favorites").Observe(time.Since(start).Seconds())
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("find_one", "favorites").Inc()
		return nil, err
	}
	return &favorite, nil
}

// PullProduct removes the product and decrements the count in one guarded
// update. The membership filter makes it a test-and-mutate: it only applies
// when the product is actually present, so the count stays equal to the list
// length under concurrent toggles.
func (r *favoriteRepository) PullProduct(ctx context.Context, id, productID primitive.ObjectID) (bool, error) {
	filter := bson.M{"_id": id, "favorites.product": productID}
	update := bson.M{
		"$pull": bson.M{"favorites": bson.M{"product": productID}},
		"$inc":  bson.M{"quantity": -1},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}

	start := time.Now()
	result, err := r.collection.UpdateOne(ctx, filter, update)
	metrics.MongoOperationDuration.WithLabelValues("update_one", "favorites").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("update_one", "favorites").Inc()
		return false, err
	}
	return result.ModifiedCount > 0, nil
}

// PushProduct adds the product and increments the count, guarded by a $ne
// non-membership filter so a racing duplicate add cannot apply twice.
func (r *favoriteRepository) PushProduct(ctx context.Context, id, productID primitive.ObjectID) (bool, error) {
	filter := bson.M{"_id": id, "favorites.product": bson.M{"$ne": productID}}
	update := bson.M{
		"$push": bson.M{"favorites": bson.M{"product": productID}},
		"$inc":  bson.M{"quantity": 1},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}

	start := time.Now()
	result, err := r.collection.UpdateOne(ctx, filter, update)
	metrics.MongoOperationDuration.WithLabelValues("update_one", "favorites").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("update_one", "favorites").Inc()
		return false, err
	}
	return result.ModifiedCount > 0, nil
}

func (r *favoriteRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	start := time.Now()
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	metrics.MongoOperationDuration.WithLabelValues("delete_one", "favorites").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("delete_one", "favorites").Inc()
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("favorite not found")
	}
	return nil
}
