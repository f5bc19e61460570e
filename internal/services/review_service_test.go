package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "shopstack-products/internal/errors"
	"shopstack-products/internal/models"
)

type reviewFixture struct {
	service *ReviewService
	repo    *fakeProductRepo
	cache   *fakeProductCache
}

func newReviewFixture() *reviewFixture {
	repo := newFakeProductRepo()
	cache := newFakeProductCache()
	return &reviewFixture{
		service: NewReviewService(newFakeReviewRepo(), repo, cache),
		repo:    repo,
		cache:   cache,
	}
}

func TestCreateReviewUpdatesRating(t *testing.T) {
	f := newReviewFixture()
	product := f.repo.add(models.Product{ID: primitive.NewObjectID(), Name: "Smart TV", Rating: 0})

	_, err := f.service.CreateReview(context.Background(), product.ID.Hex(), &models.CreateReviewRequest{
		Author: "ana", Rating: floatPtr(5), Comment: "great",
	})
	require.NoError(t, err)
	_, err = f.service.CreateReview(context.Background(), product.ID.Hex(), &models.CreateReviewRequest{
		Author: "bo", Rating: floatPtr(3),
	})
	require.NoError(t, err)

	got, err := f.repo.FindByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, got.Rating)

	// Rating writes sweep the cache like any other product write.
	assert.Equal(t, 2, f.cache.invalidations)

	reviews, err := f.service.GetReviews(context.Background(), product.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}

func TestCreateReviewValidation(t *testing.T) {
	f := newReviewFixture()
	product := f.repo.add(models.Product{ID: primitive.NewObjectID(), Name: "Smart TV"})

	_, err := f.service.CreateReview(context.Background(), product.ID.Hex(), &models.CreateReviewRequest{Rating: floatPtr(9)})
	assertAppErrorCode(t, err, apperrors.ErrCodeValidationFailure)

	_, err = f.service.CreateReview(context.Background(), product.ID.Hex(), &models.CreateReviewRequest{})
	assertAppErrorCode(t, err, apperrors.ErrCodeValidationFailure)
}

func TestCreateReviewUnknownProduct(t *testing.T) {
	f := newReviewFixture()
	_, err := f.service.CreateReview(context.Background(), primitive.NewObjectID().Hex(), &models.CreateReviewRequest{Rating: floatPtr(4)})
	assertAppErrorCode(t, err, apperrors.ErrCodeNotFound)
}
