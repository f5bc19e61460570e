package repositories

import (
	"context"
	"fmt"
	"time"

	"shopstack-products/internal/models"
	"shopstack-products/internal/transformers"
	"shopstack-products/pkg/database"
	"shopstack-products/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type productRepository struct {
	collection *mongo.Collection
	trans      transformers.ProductTransformer
}

func NewProductRepository(trans transformers.ProductTransformer) ProductRepository {
	return &productRepository{
		collection: database.DB.Collection("products"),
		trans:      trans,
	}
}

func (r *productRepository) findOneJoined(ctx context.Context, filter bson.M) (*models.Product, error) {
	pipeline := []bson.M{{"$match": filter}, {"$limit": 1}}
	pipeline = append(pipeline, r.trans.JoinStages()...)

	start := time.Now()
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	metrics.MongoOperationDuration.WithLabelValues("aggregate", "products").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("aggregate", "products").Inc()
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("cursor_all", "products").Inc()
		return nil, err
	}
	if len(products) == 0 {
		return nil, nil
	}
	return &products[0], nil
}

func (r *productRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	return r.findOneJoined(ctx, bson.M{"_id": id})
}

func (r *productRepository) FindByName(ctx context.Context, name string) (*models.Product, error) {
	return r.findOneJoined(ctx, bson.M{"name": name})
}

func (r *productRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	pipeline := []bson.M{{"$match": bson.M{"_id": bson.M{"$in": ids}}}}
	pipeline = append(pipeline, r.trans.JoinStages()...)

	start := time.Now()
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	metrics.MongoOperationDuration.WithLabelValues("aggregate", "products").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("aggregate", "products").Inc()
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("cursor_all", "products").Inc()
		return nil, err
	}
	return products, nil
}

func (r *productRepository) find(ctx context.Context, filter bson.M, page, limit int, projection bson.M) ([]models.Product, int64, error) {
	start := time.Now()
	total, err := r.collection.CountDocuments(ctx, filter)
	metrics.MongoOperationDuration.WithLabelValues("count_documents", "products").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("count_documents", "products").Inc()
		return nil, 0, err
	}

	pipeline := []bson.M{
		{"$match": filter},
		{"$sort": bson.M{"name": 1, "_id": 1}},
		{"$skip": (page - 1) * limit},
		{"$limit": limit},
	}
	pipeline = append(pipeline, r.trans.JoinStages()...)
	if projection != nil {
		pipeline = append(pipeline, bson.M{"$project": projection})
	}

	start = time.Now()
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	metrics.MongoOperationDuration.WithLabelValues("aggregate", "products").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("aggregate", "products").Inc()
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("cursor_all", "products").Inc()
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepository) Find(ctx context.Context, filter bson.M, page, limit int) ([]models.Product, int64, error) {
	return r.find(ctx, filter, page, limit, nil)
}

func (r *productRepository) FindSummaries(ctx context.Context, filter bson.M, page, limit int) ([]models.Product, int64, error) {
	return r.find(ctx, filter, page, limit, r.trans.SummaryProjection())
}

func (r *productRepository) Autocomplete(ctx context.Context, term string, limit int) ([]models.ProductSuggestion, error) {
	filter := bson.M{"name": bson.M{"$regex": term, "$options": "i"}}
	findOptions := options.Find().
		SetProjection(bson.M{"name": 1}).
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit))

	start := time.Now()
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	metrics.MongoOperationDuration.WithLabelValues("find", "products").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("find", "products").Inc()
		return nil, err
	}
	defer cursor.Close(ctx)

	var suggestions []models.ProductSuggestion
	if err := cursor.All(ctx, &suggestions); err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("cursor_all", "products").Inc()
		return nil, err
	}
	return suggestions, nil
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	product.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	start := time.Now()
	_, err := r.collection.InsertOne(ctx, product)
	metrics.MongoOperationDuration.WithLabelValues("insert", "products").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("insert", "products").Inc()
		return err
	}
	return nil
}

func (r *productRepository) Update(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Product, error) {
	update["updatedAt"] = time.Now().UTC()

	start := time.Now()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	metrics.MongoOperationDuration.WithLabelValues("update_one", "products").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("update_one", "products").Inc()
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

func (r *productRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	start := time.Now()
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	metrics.MongoOperationDuration.WithLabelValues("delete_one", "products").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("delete_one", "products").Inc()
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("product not found")
	}
	return nil
}

func (r *productRepository) PriceRange(ctx context.Context, filter bson.M) (*models.PriceRange, error) {
	pipeline := []bson.M{
		{"$match": filter},
		{"$group": bson.M{
			"_id": nil,
			"min": bson.M{"$min": "$price"},
			"max": bson.M{"$max": "$price"},
		}},
	}

	start := time.Now()
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	metrics.MongoOperationDuration.WithLabelValues("aggregate", "products").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("aggregate", "products").Inc()
		return nil, err
	}
	defer cursor.Close(ctx)

	var ranges []models.PriceRange
	if err := cursor.All(ctx, &ranges); err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("cursor_all", "products").Inc()
		return nil, err
	}
	if len(ranges) == 0 {
		return nil, nil
	}
	return &ranges[0], nil
}

func (r *productRepository) DashboardKPI(ctx context.Context) (*models.DashboardKPI, error) {
	pipeline := []bson.M{
		{"$facet": bson.M{
			"totalAssetValue": []bson.M{
				{"$group": bson.M{
					"_id":        nil,
					"totalValue": bson.M{"$sum": bson.M{"$multiply": bson.A{"$price", "$quantity"}}},
				}},
			},
			"totalUniqueProducts": []bson.M{
				{"$count": "count"},
			},
			"totalStock": []bson.M{
				{"$group": bson.M{
					"_id":   nil,
					"total": bson.M{"$sum": "$quantity"},
				}},
			},
			"stockBreakdown": []bson.M{
				{"$group": bson.M{
					"_id": bson.M{"$switch": bson.M{
						"branches": bson.A{
							bson.M{"case": bson.M{"$eq": bson.A{"$quantity", 0}}, "then": "noStock"},
							bson.M{"case": bson.M{"$lte": bson.A{"$quantity", 10}}, "then": "lowStock"},
						},
						"default": "inStock",
					}},
					"count": bson.M{"$sum": 1},
				}},
			},
			"statusBreakdown": []bson.M{
				{"$group": bson.M{
					"_id":   "$status",
					"count": bson.M{"$sum": 1},
				}},
			},
		}},
	}

	start := time.Now()
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	metrics.MongoOperationDuration.WithLabelValues("aggregate", "products").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("aggregate", "products").Inc()
		return nil, err
	}
	defer cursor.Close(ctx)

	var facets []struct {
		TotalAssetValue []struct {
			TotalValue float64 `bson:"totalValue"`
		} `bson:"totalAssetValue"`
		TotalUniqueProducts []struct {
			Count int `bson:"count"`
		} `bson:"totalUniqueProducts"`
		TotalStock []struct {
			Total int `bson:"total"`
		} `bson:"totalStock"`
		StockBreakdown []struct {
			ID    string `bson:"_id"`
			Count int    `bson:"count"`
		} `bson:"stockBreakdown"`
		StatusBreakdown []struct {
			ID    string `bson:"_id"`
			Count int    `bson:"count"`
		} `bson:"statusBreakdown"`
	}
	if err := cursor.All(ctx, &facets); err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("cursor_all", "products").Inc()
		return nil, err
	}

	kpi := &models.DashboardKPI{}
	if len(facets) == 0 {
		return kpi, nil
	}
	facet := facets[0]

	if len(facet.TotalAssetValue) > 0 {
		kpi.TotalAssetValue = facet.TotalAssetValue[0].TotalValue
	}
	if len(facet.TotalUniqueProducts) > 0 {
		kpi.TotalUniqueProducts = facet.TotalUniqueProducts[0].Count
	}
	if len(facet.TotalStock) > 0 {
		kpi.TotalStock = facet.TotalStock[0].Total
	}
	for _, bucket := range facet.StockBreakdown {
		switch bucket.ID {
		case "inStock":
			kpi.StockBreakdown.InStock = bucket.Count
		case "lowStock":
			kpi.StockBreakdown.LowStock = bucket.Count
		case "noStock":
			kpi.StockBreakdown.NoStock = bucket.Count
		}
	}
	for _, bucket := range facet.StatusBreakdown {
		switch bucket.ID {
		case models.StatusActive:
			kpi.StatusBreakdown.Active = bucket.Count
		case models.StatusInactive:
			kpi.StatusBreakdown.Inactive = bucket.Count
		case models.StatusDiscontinued:
			kpi.StatusBreakdown.Discontinued = bucket.Count
		}
	}
	return kpi, nil
}

// DecrementStock applies one conditional update per item: the decrement only
// matches while enough stock remains, so concurrent checkouts cannot drive
// quantity negative. On the first item that cannot be satisfied it returns
// the decremented prefix with ErrInsufficientStock for compensation.
func (r *productRepository) DecrementStock(ctx context.Context, items []models.CartItem) ([]models.CartItem, error) {
	applied := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		filter := bson.M{"_id": item.Product, "quantity": bson.M{"$gte": item.Quantity}}
		update := bson.M{"$inc": bson.M{"quantity": -item.Quantity}}

		start := time.Now()
		result, err := r.collection.UpdateOne(ctx, filter, update)
		metrics.MongoOperationDuration.WithLabelValues("update_one", "products").Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.MongoErrorsTotal.WithLabelValues("update_one", "products").Inc()
			return applied, err
		}
		if result.ModifiedCount == 0 {
			return applied, ErrInsufficientStock
		}
		applied = append(applied, item)
	}
	return applied, nil
}

// IncrementStock batches unconditional restocks in one bulk write; it is the
// compensation path for a partially applied decrement.
func (r *productRepository) IncrementStock(ctx context.Context, items []models.CartItem) error {
	if len(items) == 0 {
		return nil
	}
	writes := make([]mongo.WriteModel, 0, len(items))
	for _, item := range items {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": item.Product}).
			SetUpdate(bson.M{"$inc": bson.M{"quantity": item.Quantity}}))
	}

	start := time.Now()
	_, err := r.collection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	metrics.MongoOperationDuration.WithLabelValues("bulk_write", "products").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("bulk_write", "products").Inc()
		return err
	}
	return nil
}
