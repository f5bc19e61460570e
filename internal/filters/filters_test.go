package filters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopstack-products/internal/models"
)

type stubResolver struct {
	brands     map[string]primitive.ObjectID
	categories map[string]primitive.ObjectID
}

func (s *stubResolver) FindBrandByName(_ context.Context, name string) (*models.Brand, error) {
	id, ok := s.brands[name]
	if !ok {
		return nil, nil
	}
	return &models.Brand{ID: id, Name: name}, nil
}

func (s *stubResolver) FindCategoryByName(_ context.Context, name string) (*models.Category, error) {
	id, ok := s.categories[name]
	if !ok {
		return nil, nil
	}
	return &models.Category{ID: id, Slug: name}, nil
}

func newStubResolver() *stubResolver {
	return &stubResolver{
		brands:     map[string]primitive.ObjectID{"Samsung": primitive.NewObjectID()},
		categories: map[string]primitive.ObjectID{"electronics": primitive.NewObjectID()},
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestBuildProductFilterEmptyRequest(t *testing.T) {
	filter, err := BuildProductFilter(context.Background(), newStubResolver(), &models.SearchRequest{})
	require.NoError(t, err)
	assert.Equal(t, bson.M{}, filter)
}

func TestBuildProductFilterName(t *testing.T) {
	filter, err := BuildProductFilter(context.Background(), newStubResolver(), &models.SearchRequest{Name: "tv"})
	require.NoError(t, err)
	assert.Equal(t, bson.M{"name": bson.M{"$options": "i", "$regex": "tv"}}, filter)
}

func TestBuildProductFilterResolvedBrand(t *testing.T) {
	refs := newStubResolver()
	filter, err := BuildProductFilter(context.Background(), refs, &models.SearchRequest{Brands: []string{"Samsung"}})
	require.NoError(t, err)
	assert.Equal(t, bson.M{"$in": []primitive.ObjectID{refs.brands["Samsung"]}}, filter["brand"])
}

func TestBuildProductFilterUnresolvedBrandMatchesNothing(t *testing.T) {
	filter, err := BuildProductFilter(context.Background(), newStubResolver(), &models.SearchRequest{Brands: []string{"NoSuchBrand"}})
	require.NoError(t, err)
	assert.Equal(t, bson.M{"$in": []primitive.ObjectID{}}, filter["brand"])
}

func TestBuildProductFilterPartialResolution(t *testing.T) {
	refs := newStubResolver()
	filter, err := BuildProductFilter(context.Background(), refs, &models.SearchRequest{Brands: []string{"Samsung", "NoSuchBrand"}})
	require.NoError(t, err)
	assert.Equal(t, bson.M{"$in": []primitive.ObjectID{refs.brands["Samsung"]}}, filter["brand"])
}

func TestBuildProductFilterPriceRequiresBothBounds(t *testing.T) {
	filter, err := BuildProductFilter(context.Background(), newStubResolver(), &models.SearchRequest{MinPrice: floatPtr(10)})
	require.NoError(t, err)
	assert.NotContains(t, filter, "price")

	filter, err = BuildProductFilter(context.Background(), newStubResolver(), &models.SearchRequest{MinPrice: floatPtr(10), MaxPrice: floatPtr(100)})
	require.NoError(t, err)
	assert.Equal(t, bson.M{"$gte": 10.0, "$lte": 100.0}, filter["price"])
}

func TestBuildProductFilterRatingBucket(t *testing.T) {
	filter, err := BuildProductFilter(context.Background(), newStubResolver(), &models.SearchRequest{Rating: floatPtr(4)})
	require.NoError(t, err)
	assert.Equal(t, bson.M{"$gte": 4.0, "$lt": 5.0}, filter["rating"])
}

func TestBuildPriceRangeFilterIgnoresPriceAndName(t *testing.T) {
	refs := newStubResolver()
	filter, err := BuildPriceRangeFilter(context.Background(), refs, &models.SearchRequest{
		Name:       "tv",
		Brands:     []string{"Samsung"},
		MinPrice:   floatPtr(10),
		MaxPrice:   floatPtr(100),
		Categories: []string{"electronics"},
	})
	require.NoError(t, err)
	assert.NotContains(t, filter, "price")
	assert.NotContains(t, filter, "name")
	assert.Contains(t, filter, "brand")
	assert.Contains(t, filter, "category")
}

func TestCanonicalStableAcrossEquivalentRequests(t *testing.T) {
	refs := newStubResolver()
	a, err := BuildProductFilter(context.Background(), refs, &models.SearchRequest{Name: "tv", Rating: floatPtr(4)})
	require.NoError(t, err)
	b, err := BuildProductFilter(context.Background(), refs, &models.SearchRequest{Rating: floatPtr(4), Name: "tv"})
	require.NoError(t, err)
	assert.Equal(t, Canonical(a), Canonical(b))
}
