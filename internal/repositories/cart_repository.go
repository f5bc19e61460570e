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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type cartRepository struct {
	collection *mongo.Collection
}

func NewCartRepository() CartRepository {
	return &cartRepository{
		collection: database.DB.Collection("carts"),
	}
}

func (r *cartRepository) Create(ctx context.Context, cart *models.Cart) error {
	cart.ID = primitive.NewObjectID()
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	now := time.Now().UTC()
	cart.CreatedAt = now
	cart.UpdatedAt = now

	start := time.Now()
	_, err := r.collection.InsertOne(ctx, cart)
	metrics.MongoOperationDuration.WithLabelValues("insert", "carts").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("insert", "carts").Inc()
		return err
	}
	return nil
}

func (r *cartRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Cart, error) {
	start := time.Now()
	var cart models.Cart
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&cart)
	metrics.MongoOperationDuration.WithLabelValues("find_one", "carts").Observe(time.Since(start).Seconds())
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("find_one", "carts").Inc()
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*models.Cart, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	start := time.Now()
	var cart models.Cart
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&cart)
	metrics.MongoOperationDuration.WithLabelValues("find_one_and_update", "carts").Observe(time.Since(start).Seconds())
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("find_one_and_update", "carts").Inc()
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) ReplaceItems(ctx context.Context, id primitive.ObjectID, items []models.CartItem) (*models.Cart, error) {
	if items == nil {
		items = []models.CartItem{}
	}
	return r.findOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"items": items, "updatedAt": time.Now().UTC()}},
	)
}

// SetItemQuantity overwrites the quantity of an existing item via the
// positional operator. The second return reports whether the item existed.
func (r *cartRepository) SetItemQuantity(ctx context.Context, cartID, productID primitive.ObjectID, quantity int) (*models.Cart, bool, error) {
	cart, err := r.findOneAndUpdate(ctx,
		bson.M{"_id": cartID, "items.product": productID},
		bson.M{"$set": bson.M{"items.$.quantity": quantity, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return nil, false, err
	}
	return cart, cart != nil, nil
}

// PushItem appends a new item. The $ne guard keeps the at-most-one-entry-per-
// product invariant even when racing a concurrent insert of the same product.
func (r *cartRepository) PushItem(ctx context.Context, cartID primitive.ObjectID, item models.CartItem) (*models.Cart, error) {
	return r.findOneAndUpdate(ctx,
		bson.M{"_id": cartID, "items.product": bson.M{"$ne": item.Product}},
		bson.M{
			"$push": bson.M{"items": item},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
}

// PullItem removes an item if present. The second return reports whether the
// item was actually in the cart.
func (r *cartRepository) PullItem(ctx context.Context, cartID, productID primitive.ObjectID) (*models.Cart, bool, error) {
	cart, err := r.findOneAndUpdate(ctx,
		bson.M{"_id": cartID, "items.product": productID},
		bson.M{
			"$pull": bson.M{"items": bson.M{"product": productID}},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return nil, false, err
	}
	return cart, cart != nil, nil
}

func (r *cartRepository) ClearItems(ctx context.Context, id primitive.ObjectID) (*models.Cart, error) {
	return r.findOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"items": []models.CartItem{}, "updatedAt": time.Now().UTC()}},
	)
}

func (r *cartRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	start := time.Now()
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	metrics.MongoOperationDuration.WithLabelValues("delete_one", "carts").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("delete_one", "carts").Inc()
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("cart not found")
	}
	return nil
}
