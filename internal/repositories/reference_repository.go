package repositories

import (
	"context"
	"regexp"
	"time"

	"shopstack-products/internal/models"
	"shopstack-products/internal/transformers"
	"shopstack-products/pkg/database"
	"shopstack-products/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type referenceRepository struct {
	brands     *mongo.Collection
	categories *mongo.Collection
	catTrans   transformers.CategoryTransformer
}

func NewReferenceRepository(catTrans transformers.CategoryTransformer) ReferenceRepository {
	return &referenceRepository{
		brands:     database.DB.Collection("brands"),
		categories: database.DB.Collection("categories"),
		catTrans:   catTrans,
	}
}

// ResolveBrand finds a brand by exact name or creates it. The upsert is a
// fast path; the unique index on name is what actually prevents duplicates
// under concurrent resolution of the same name.
func (r *referenceRepository) ResolveBrand(ctx context.Context, name string) (*models.Brand, error) {
	now := time.Now().UTC()
	filter := bson.M{"name": name}
	update := bson.M{
		"$setOnInsert": bson.M{"name": name, "createdAt": now},
		"$set":         bson.M{"updatedAt": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	start := time.Now()
	var brand models.Brand
	err := r.brands.FindOneAndUpdate(ctx, filter, update, opts).Decode(&brand)
	metrics.MongoOperationDuration.WithLabelValues("find_one_and_update", "brands").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("find_one_and_update", "brands").Inc()
		return nil, err
	}
	return &brand, nil
}

// ResolveCategory upserts a category by slug, deriving the display name from
// the slug when the entity is created.
func (r *referenceRepository) ResolveCategory(ctx context.Context, slug string) (*models.Category, error) {
	slug = r.catTrans.Slugify(slug)
	now := time.Now().UTC()
	filter := bson.M{"slug": slug}
	update := bson.M{
		"$setOnInsert": bson.M{
			"slug":      slug,
			"name":      r.catTrans.DisplayName(slug),
			"createdAt": now,
		},
		"$set": bson.M{"updatedAt": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	start := time.Now()
	var category models.Category
	err := r.categories.FindOneAndUpdate(ctx, filter, update, opts).Decode(&category)
	metrics.MongoOperationDuration.WithLabelValues("find_one_and_update", "categories").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("find_one_and_update", "categories").Inc()
		return nil, err
	}
	return &category, nil
}

// FindBrandByName matches case-insensitively on a substring. Returns
// (nil, nil) when no brand matches.
func (r *referenceRepository) FindBrandByName(ctx context.Context, name string) (*models.Brand, error) {
	filter := bson.M{"name": bson.M{"$regex": regexp.QuoteMeta(name), "$options": "i"}}

	start := time.Now()
	var brand models.Brand
	err := r.brands.FindOne(ctx, filter).Decode(&brand)
	metrics.MongoOperationDuration.WithLabelValues("find_one", "brands").Observe(time.Since(start).Seconds())
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("find_one", "brands").Inc()
		return nil, err
	}
	return &brand, nil
}

// FindCategoryByName matches slug or display name, case-insensitively on a
// substring. Returns (nil, nil) when no category matches.
func (r *referenceRepository) FindCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	pattern := bson.M{"$regex": regexp.QuoteMeta(name), "$options": "i"}
	filter := bson.M{"$or": bson.A{bson.M{"slug": pattern}, bson.M{"name": pattern}}}

	start := time.Now()
	var category models.Category
	err := r.categories.FindOne(ctx, filter).Decode(&category)
	metrics.MongoOperationDuration.WithLabelValues("find_one", "categories").Observe(time.Since(start).Seconds())
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("find_one", "categories").Inc()
		return nil, err
	}
	return &category, nil
}

func (r *referenceRepository) ListBrands(ctx context.Context) ([]models.Brand, error) {
	start := time.Now()
	cursor, err := r.brands.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	metrics.MongoOperationDuration.WithLabelValues("find", "brands").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("find", "brands").Inc()
		return nil, err
	}
	defer cursor.Close(ctx)

	var brands []models.Brand
	if err := cursor.All(ctx, &brands); err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("cursor_all", "brands").Inc()
		return nil, err
	}
	return brands, nil
}

func (r *referenceRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	start := time.Now()
	cursor, err := r.categories.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "slug", Value: 1}}))
	metrics.MongoOperationDuration.WithLabelValues("find", "categories").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("find", "categories").Inc()
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("cursor_all", "categories").Inc()
		return nil, err
	}
	return categories, nil
}
