// Package filters turns loosely-typed search requests into canonical catalog
// store predicates and the deterministic strings used to key their caches.
package filters

import (
	"context"

	"shopstack-products/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReferenceResolver looks up brand/category entities by name for the filter
// path. A nil result with nil error means the name matched nothing.
type ReferenceResolver interface {
	FindBrandByName(ctx context.Context, name string) (*models.Brand, error)
	FindCategoryByName(ctx context.Context, name string) (*models.Category, error)
}

// BuildProductFilter produces the canonical filter predicate for a product
// search. When the caller constrains by brand or category and none of the
// names resolve, the predicate keeps an empty $in and matches nothing; a
// typo'd filter must not silently widen to the whole catalog. Names that
// resolve partially keep the resolved ids only.
func BuildProductFilter(ctx context.Context, refs ReferenceResolver, req *models.SearchRequest) (bson.M, error) {
	filter := bson.M{}

	if req.Name != "" {
		filter["name"] = bson.M{"$options": "i", "$regex": req.Name}
	}

	if len(req.Brands) > 0 {
		ids, err := resolveBrandIDs(ctx, refs, req.Brands)
		if err != nil {
			return nil, err
		}
		filter["brand"] = bson.M{"$in": ids}
	}

	if len(req.Categories) > 0 {
		ids, err := resolveCategoryIDs(ctx, refs, req.Categories)
		if err != nil {
			return nil, err
		}
		filter["category"] = bson.M{"$in": ids}
	}

	// A price range needs both bounds; either alone is ignored.
	if req.MinPrice != nil && req.MaxPrice != nil {
		filter["price"] = bson.M{"$gte": *req.MinPrice, "$lte": *req.MaxPrice}
	}

	// Rating filters select the half-open bucket [r, r+1).
	if req.Rating != nil {
		filter["rating"] = bson.M{"$gte": *req.Rating, "$lt": *req.Rating + 1}
	}

	return filter, nil
}

// BuildPriceRangeFilter produces the predicate for the price-range aggregate.
// It honors brand, category and rating constraints but never price itself.
func BuildPriceRangeFilter(ctx context.Context, refs ReferenceResolver, req *models.SearchRequest) (bson.M, error) {
	filter := bson.M{}

	if len(req.Brands) > 0 {
		ids, err := resolveBrandIDs(ctx, refs, req.Brands)
		if err != nil {
			return nil, err
		}
		filter["brand"] = bson.M{"$in": ids}
	}

	if len(req.Categories) > 0 {
		ids, err := resolveCategoryIDs(ctx, refs, req.Categories)
		if err != nil {
			return nil, err
		}
		filter["category"] = bson.M{"$in": ids}
	}

	if req.Rating != nil {
		filter["rating"] = bson.M{"$gte": *req.Rating, "$lt": *req.Rating + 1}
	}

	return filter, nil
}

func resolveBrandIDs(ctx context.Context, refs ReferenceResolver, names []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(names))
	for _, name := range names {
		brand, err := refs.FindBrandByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if brand != nil {
			ids = append(ids, brand.ID)
		}
	}
	return ids, nil
}

func resolveCategoryIDs(ctx context.Context, refs ReferenceResolver, names []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(names))
	for _, name := range names {
		category, err := refs.FindCategoryByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if category != nil {
			ids = append(ids, category.ID)
		}
	}
	return ids, nil
}
