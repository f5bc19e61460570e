package transformers

import (
	"go.mongodb.org/mongo-driver/bson"
)

type productTransformer struct{}

func NewProductTransformer() ProductTransformer {
	return &productTransformer{}
}

// JoinStages returns the aggregation stages that attach the brand name and
// category slug to each product document and drop the intermediate arrays.
func (t *productTransformer) JoinStages() []bson.M {
	return []bson.M{
		{"$lookup": bson.M{
			"from":         "brands",
			"localField":   "brand",
			"foreignField": "_id",
			"as":           "_brand",
		}},
		{"$lookup": bson.M{
			"from":         "categories",
			"localField":   "category",
			"foreignField": "_id",
			"as":           "_category",
		}},
		{"$addFields": bson.M{
			"brandName":    bson.M{"$arrayElemAt": bson.A{"$_brand.name", 0}},
			"categorySlug": bson.M{"$arrayElemAt": bson.A{"$_category.slug", 0}},
		}},
		{"$project": bson.M{"_brand": 0, "_category": 0}},
	}
}

// SummaryProjection drops the heavyweight fields from listing payloads.
func (t *productTransformer) SummaryProjection() bson.M {
	return bson.M{"description": 0, "images": 0}
}
