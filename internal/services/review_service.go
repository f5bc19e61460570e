package services

import (
	"context"

	"shopstack-products/internal/errors"
	"shopstack-products/internal/models"
	"shopstack-products/internal/repositories"
	"shopstack-products/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewService stores immutable reviews and keeps the product's rating equal
// to the running average of its reviews.
type ReviewService struct {
	reviews  repositories.ReviewRepository
	products repositories.ProductRepository
	cache    repositories.ProductCache
}

func NewReviewService(
	reviews repositories.ReviewRepository,
	products repositories.ProductRepository,
	productCache repositories.ProductCache,
) *ReviewService {
	return &ReviewService{reviews: reviews, products: products, cache: productCache}
}

func (s *ReviewService) CreateReview(ctx context.Context, productID string, req *models.CreateReviewRequest) (*models.Review, error) {
	productObjectID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, errors.NewInvalidIdentifier(errors.MsgInvalidID)
	}
	if req.Rating == nil || *req.Rating < 0 || *req.Rating > 5 {
		return nil, errors.NewValidationFailure("rating must be between 0 and 5")
	}

	product, err := s.products.FindByID(ctx, productObjectID)
	if err != nil {
		return nil, errors.NewStoreFailure("product lookup failed", err)
	}
	if product == nil {
		return nil, errors.NewNotFound(errors.MsgProductNotFound)
	}

	review := &models.Review{
		Product: productObjectID,
		Author:  req.Author,
		Rating:  *req.Rating,
		Comment: req.Comment,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, errors.NewStoreFailure("review create failed", err)
	}

	s.refreshRating(ctx, productObjectID)
	return review, nil
}

func (s *ReviewService) GetReviews(ctx context.Context, productID string) ([]models.Review, error) {
	productObjectID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, errors.NewInvalidIdentifier(errors.MsgInvalidID)
	}
	reviews, err := s.reviews.FindByProduct(ctx, productObjectID)
	if err != nil {
		return nil, errors.NewStoreFailure("review listing query failed", err)
	}
	return reviews, nil
}

// refreshRating recomputes the average and writes it through the product
// collection, which counts as a product write and so sweeps the listing cache.
func (s *ReviewService) refreshRating(ctx context.Context, productID primitive.ObjectID) {
	reviews, err := s.reviews.FindByProduct(ctx, productID)
	if err != nil || len(reviews) == 0 {
		return
	}
	var sum float64
	for _, review := range reviews {
		sum += review.Rating
	}
	average := sum / float64(len(reviews))

	if _, err := s.products.Update(ctx, productID, bson.M{"rating": average}); err != nil {
		logger.GlobalLogger.Warnf("Failed to refresh product rating: id=%s, error=%v", productID.Hex(), err)
		return
	}
	if err := s.cache.Invalidate(ctx, []string{productID.Hex()}); err != nil {
		logger.GlobalLogger.Warnf("Cache invalidation failed: id=%s, error=%v", productID.Hex(), err)
	}
}
