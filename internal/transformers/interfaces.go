package transformers

import (
	"go.mongodb.org/mongo-driver/bson"
)

// ProductTransformer owns the explicit brand/category join. The catalog store
// keeps references only; every read that returns products to callers appends
// these stages instead of relying on implicit store-level population.
type ProductTransformer interface {
	JoinStages() []bson.M
	SummaryProjection() bson.M
}

// CategoryTransformer derives display fields for category entities.
type CategoryTransformer interface {
	DisplayName(slug string) string
	Slugify(name string) string
}
