package services

import (
	"context"

	"shopstack-products/internal/errors"
	"shopstack-products/internal/filters"
	"shopstack-products/internal/models"
	"shopstack-products/internal/repositories"
	"shopstack-products/internal/transformers"
	"shopstack-products/internal/utils"
	"shopstack-products/internal/validators"
	"shopstack-products/pkg/cache"
	"shopstack-products/pkg/logger"
	"shopstack-products/pkg/metrics"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const autocompleteLimit = 10

// CatalogService serves the read side of the catalog. Every listing-style read
// goes through the cache first; the keys it writes are registered in the
// listing key registry so product writes can sweep them all.
type CatalogService struct {
	repo      repositories.ProductRepository
	refs      repositories.ReferenceRepository
	cache     repositories.ProductCache
	catTrans  transformers.CategoryTransformer
	validator validators.ProductValidator
}

func NewCatalogService(
	repo repositories.ProductRepository,
	refs repositories.ReferenceRepository,
	productCache repositories.ProductCache,
	catTrans transformers.CategoryTransformer,
	validator validators.ProductValidator,
) *CatalogService {
	return &CatalogService{
		repo:      repo,
		refs:      refs,
		cache:     productCache,
		catTrans:  catTrans,
		validator: validator,
	}
}

func (s *CatalogService) GetProducts(ctx context.Context, req *models.SearchRequest) (*models.ProductListing, error) {
	ginCtx, ok := ctx.(*gin.Context)
	if !ok {
		ginCtx = &gin.Context{}
	}

	if err := s.validator.ValidateSearch(req); err != nil {
		return nil, errors.NewValidationFailure(err.Error())
	}

	if req.Page < 1 {
		req.Page = utils.DefaultPage
	}
	if req.Limit < 1 || req.Limit > utils.MaxLimit {
		req.Limit = utils.DefaultLimit
	}

	filter, err := filters.BuildProductFilter(ctx, s.refs, req)
	if err != nil {
		return nil, errors.NewStoreFailure("failed to resolve filter references", err)
	}

	cacheKey := cache.ProductListingKey(filters.Canonical(filter), req.Page, req.Limit)
	ginCtx.Set("data_source", "REDIS")

	var listing models.ProductListing
	if hit, err := s.cache.GetListing(ctx, cacheKey, &listing); err == nil && hit {
		metrics.CacheHitsTotal.Inc()
		ginCtx.Set("cache_hit", true)
		return &listing, nil
	}
	metrics.CacheMissesTotal.Inc()
	ginCtx.Set("cache_hit", false)
	ginCtx.Set("data_source", "DATABASE")

	products, total, err := s.repo.Find(ctx, filter, req.Page, req.Limit)
	if err != nil {
		logger.GlobalLogger.Errorf("DB query failed: key=%s, error=%v", cacheKey, err)
		return nil, errors.NewStoreFailure("product listing query failed", err)
	}
	// An empty listing is a miss for the caller and is never cached; the next
	// matching write would otherwise serve a stale empty page.
	if len(products) == 0 {
		return nil, errors.NewNotFound(errors.MsgProductsNotFound)
	}

	listing = models.ProductListing{
		Products:   products,
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: utils.TotalPages(total, req.Limit),
	}
	if err := s.cache.SetListing(ctx, cacheKey, &listing); err != nil {
		logger.GlobalLogger.Warnf("Failed to cache listing: key=%s, error=%v", cacheKey, err)
	}
	return &listing, nil
}

func (s *CatalogService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	ginCtx, ok := ctx.(*gin.Context)
	if !ok {
		ginCtx = &gin.Context{}
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.NewInvalidIdentifier(errors.MsgInvalidID)
	}

	ginCtx.Set("data_source", "REDIS")
	if product, err := s.cache.GetProduct(ctx, id); err == nil && product != nil {
		metrics.CacheHitsTotal.Inc()
		ginCtx.Set("cache_hit", true)
		return product, nil
	}
	metrics.CacheMissesTotal.Inc()
	ginCtx.Set("cache_hit", false)
	ginCtx.Set("data_source", "DATABASE")

	product, err := s.repo.FindByID(ctx, objectID)
	if err != nil {
		logger.GlobalLogger.Errorf("DB query failed: id=%s, error=%v", id, err)
		return nil, errors.NewStoreFailure("product lookup failed", err)
	}
	if product == nil {
		return nil, errors.NewNotFound(errors.MsgProductNotFound)
	}

	if err := s.cache.SetProduct(ctx, id, product); err != nil {
		logger.GlobalLogger.Warnf("Failed to cache product: id=%s, error=%v", id, err)
	}
	return product, nil
}

// GetProductByName is an exact-name lookup used by storefront deep links. It
// is not cached; the name space is unbounded and the by-ID path covers the
// hot reads.
func (s *CatalogService) GetProductByName(ctx context.Context, name string) (*models.Product, error) {
	if name == "" {
		return nil, errors.NewValidationFailure("product name is required")
	}
	product, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, errors.NewStoreFailure("product lookup failed", err)
	}
	if product == nil {
		return nil, errors.NewNotFound(errors.MsgProductNotFound)
	}
	return product, nil
}

func (s *CatalogService) Autocomplete(ctx context.Context, term string) ([]models.ProductSuggestion, error) {
	if term == "" {
		return []models.ProductSuggestion{}, nil
	}
	suggestions, err := s.repo.Autocomplete(ctx, term, autocompleteLimit)
	if err != nil {
		return nil, errors.NewStoreFailure("autocomplete query failed", err)
	}
	return suggestions, nil
}

// GetCategories returns display names for every category, cached under the
// shared listing prefix so product writes sweep it too.
func (s *CatalogService) GetCategories(ctx context.Context) ([]string, error) {
	cacheKey := cache.CategoriesKey()

	var names []string
	if hit, err := s.cache.GetListing(ctx, cacheKey, &names); err == nil && hit {
		metrics.CacheHitsTotal.Inc()
		return names, nil
	}
	metrics.CacheMissesTotal.Inc()

	categories, err := s.refs.ListCategories(ctx)
	if err != nil {
		return nil, errors.NewStoreFailure("category listing query failed", err)
	}
	// Empty listing results are never cached, same as product listings.
	if len(categories) == 0 {
		return nil, errors.NewNotFound(errors.MsgCategoriesNotFound)
	}
	names = make([]string, 0, len(categories))
	for _, category := range categories {
		names = append(names, s.catTrans.DisplayName(category.Slug))
	}

	if err := s.cache.SetListing(ctx, cacheKey, names); err != nil {
		logger.GlobalLogger.Warnf("Failed to cache categories: error=%v", err)
	}
	return names, nil
}

func (s *CatalogService) GetBrands(ctx context.Context) ([]string, error) {
	cacheKey := cache.BrandsKey()

	var names []string
	if hit, err := s.cache.GetListing(ctx, cacheKey, &names); err == nil && hit {
		metrics.CacheHitsTotal.Inc()
		return names, nil
	}
	metrics.CacheMissesTotal.Inc()

	brands, err := s.refs.ListBrands(ctx)
	if err != nil {
		return nil, errors.NewStoreFailure("brand listing query failed", err)
	}
	if len(brands) == 0 {
		return nil, errors.NewNotFound(errors.MsgBrandsNotFound)
	}
	names = make([]string, 0, len(brands))
	for _, brand := range brands {
		names = append(names, brand.Name)
	}

	if err := s.cache.SetListing(ctx, cacheKey, names); err != nil {
		logger.GlobalLogger.Warnf("Failed to cache brands: error=%v", err)
	}
	return names, nil
}

// GetPriceRange returns the min/max price over the filtered catalog slice,
// cached per canonical filter.
func (s *CatalogService) GetPriceRange(ctx context.Context, req *models.SearchRequest) (*models.PriceRange, error) {
	filter, err := filters.BuildPriceRangeFilter(ctx, s.refs, req)
	if err != nil {
		return nil, errors.NewStoreFailure("failed to resolve filter references", err)
	}

	cacheKey := cache.PriceRangeKey(filters.Canonical(filter))

	var priceRange models.PriceRange
	if hit, err := s.cache.GetListing(ctx, cacheKey, &priceRange); err == nil && hit {
		metrics.CacheHitsTotal.Inc()
		return &priceRange, nil
	}
	metrics.CacheMissesTotal.Inc()

	result, err := s.repo.PriceRange(ctx, filter)
	if err != nil {
		return nil, errors.NewStoreFailure("price range query failed", err)
	}
	if result == nil {
		return nil, errors.NewNotFound(errors.MsgProductsNotFound)
	}

	if err := s.cache.SetListing(ctx, cacheKey, result); err != nil {
		logger.GlobalLogger.Warnf("Failed to cache price range: key=%s, error=%v", cacheKey, err)
	}
	return result, nil
}
