package database

import (
	"context"
	"time"

	"shopstack-products/pkg/logger"
	"shopstack-products/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateCatalogIndexes creates the indexes the catalog depends on. The unique
// indexes on brands.name and categories.slug are the source of truth for the
// no-duplicate guarantee of the reference resolver.
func CreateCatalogIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	start := time.Now()
	_, err := db.Collection("products").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "brand", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
		{Keys: bson.D{{Key: "rating", Value: 1}}},
	})
	metrics.MongoOperationDuration.WithLabelValues("create_indexes", "products").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("create_indexes", "products").Inc()
		logger.GlobalLogger.Errorf("Failed to create product indexes: %v", err)
		return err
	}

	start = time.Now()
	_, err = db.Collection("brands").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	metrics.MongoOperationDuration.WithLabelValues("create_indexes", "brands").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("create_indexes", "brands").Inc()
		logger.GlobalLogger.Errorf("Failed to create brand indexes: %v", err)
		return err
	}

	start = time.Now()
	_, err = db.Collection("categories").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	metrics.MongoOperationDuration.WithLabelValues("create_indexes", "categories").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("create_indexes", "categories").Inc()
		logger.GlobalLogger.Errorf("Failed to create category indexes: %v", err)
		return err
	}

	start = time.Now()
	_, err = db.Collection("reviews").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "product", Value: 1}},
	})
	metrics.MongoOperationDuration.WithLabelValues("create_indexes", "reviews").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("create_indexes", "reviews").Inc()
		logger.GlobalLogger.Errorf("Failed to create review indexes: %v", err)
		return err
	}

	logger.GlobalLogger.Println("MongoDB indexes created successfully.")
	return nil
}
