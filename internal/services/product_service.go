package services

import (
	"context"

	"shopstack-products/internal/errors"
	"shopstack-products/internal/models"
	"shopstack-products/internal/repositories"
	"shopstack-products/internal/transformers"
	"shopstack-products/internal/validators"
	"shopstack-products/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductService owns the write side of the catalog. Every write, however
// small, invalidates the product's by-ID entry and sweeps the entire listing
// key registry; a stale listing is worse than a cold one.
type ProductService struct {
	repo      repositories.ProductRepository
	refs      repositories.ReferenceRepository
	cache     repositories.ProductCache
	catTrans  transformers.CategoryTransformer
	validator validators.ProductValidator
}

func NewProductService(
	repo repositories.ProductRepository,
	refs repositories.ReferenceRepository,
	productCache repositories.ProductCache,
	catTrans transformers.CategoryTransformer,
	validator validators.ProductValidator,
) *ProductService {
	return &ProductService{
		repo:      repo,
		refs:      refs,
		cache:     productCache,
		catTrans:  catTrans,
		validator: validator,
	}
}

func (s *ProductService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	if err := s.validator.ValidateCreate(req); err != nil {
		return nil, errors.NewValidationFailure(err.Error())
	}

	brand, err := s.refs.ResolveBrand(ctx, req.Brand)
	if err != nil {
		return nil, errors.NewStoreFailure("brand resolution failed", err)
	}
	category, err := s.refs.ResolveCategory(ctx, s.catTrans.Slugify(req.Category))
	if err != nil {
		return nil, errors.NewStoreFailure("category resolution failed", err)
	}

	product := &models.Product{
		Name:        req.Name,
		Brand:       brand.ID,
		Category:    category.ID,
		Description: req.Description,
		Price:       *req.Price,
		Status:      models.StatusActive,
		ImageURL:    req.ImageURL,
		Images:      req.Images,
	}
	if req.Rating != nil {
		product.Rating = *req.Rating
	}
	if req.Quantity != nil {
		product.Quantity = *req.Quantity
	}
	if req.Status != "" {
		product.Status = req.Status
	}

	if err := s.repo.Create(ctx, product); err != nil {
		logger.GlobalLogger.Errorf("Failed to create product: name=%s, error=%v", req.Name, err)
		return nil, errors.NewStoreFailure("product create failed", err)
	}

	product.BrandName = brand.Name
	product.CategorySlug = category.Slug

	s.invalidate(ctx, product.ID.Hex())
	if err := s.cache.SetProduct(ctx, product.ID.Hex(), product); err != nil {
		logger.GlobalLogger.Warnf("Failed to warm product cache: id=%s, error=%v", product.ID.Hex(), err)
	}
	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id string, req *models.UpdateProductRequest) (*models.Product, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.NewInvalidIdentifier(errors.MsgInvalidID)
	}
	if err := s.validator.ValidateUpdate(req); err != nil {
		return nil, errors.NewValidationFailure(err.Error())
	}

	update, err := s.buildUpdate(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(update) == 0 {
		return nil, errors.NewValidationFailure("no fields to update")
	}

	product, err := s.repo.Update(ctx, objectID, update)
	if err != nil {
		logger.GlobalLogger.Errorf("Failed to update product: id=%s, error=%v", id, err)
		return nil, errors.NewStoreFailure("product update failed", err)
	}
	if product == nil {
		return nil, errors.NewNotFound(errors.MsgProductNotFound)
	}

	s.invalidate(ctx, id)
	if err := s.cache.SetProduct(ctx, id, product); err != nil {
		logger.GlobalLogger.Warnf("Failed to warm product cache: id=%s, error=%v", id, err)
	}
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.NewInvalidIdentifier(errors.MsgInvalidID)
	}

	existing, err := s.repo.FindByID(ctx, objectID)
	if err != nil {
		return errors.NewStoreFailure("product lookup failed", err)
	}
	if existing == nil {
		return errors.NewNotFound(errors.MsgProductNotFound)
	}

	if err := s.repo.Delete(ctx, objectID); err != nil {
		logger.GlobalLogger.Errorf("Failed to delete product: id=%s, error=%v", id, err)
		return errors.NewStoreFailure("product delete failed", err)
	}

	s.invalidate(ctx, id)
	return nil
}

func (s *ProductService) buildUpdate(ctx context.Context, req *models.UpdateProductRequest) (bson.M, error) {
	update := bson.M{}
	if req.Name != nil {
		update["name"] = *req.Name
	}
	if req.Brand != nil {
		brand, err := s.refs.ResolveBrand(ctx, *req.Brand)
		if err != nil {
			return nil, errors.NewStoreFailure("brand resolution failed", err)
		}
		update["brand"] = brand.ID
	}
	if req.Category != nil {
		category, err := s.refs.ResolveCategory(ctx, s.catTrans.Slugify(*req.Category))
		if err != nil {
			return nil, errors.NewStoreFailure("category resolution failed", err)
		}
		update["category"] = category.ID
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.Price != nil {
		update["price"] = *req.Price
	}
	if req.Rating != nil {
		update["rating"] = *req.Rating
	}
	if req.Quantity != nil {
		update["quantity"] = *req.Quantity
	}
	if req.Status != nil {
		update["status"] = *req.Status
	}
	if req.ImageURL != nil {
		update["image_url"] = *req.ImageURL
	}
	if req.Images != nil {
		update["images"] = req.Images
	}
	return update, nil
}

// invalidate drops the by-ID entry and sweeps every registered listing key.
// Cache failures are logged, never surfaced; entries expire within the TTL
// regardless.
func (s *ProductService) invalidate(ctx context.Context, id string) {
	if err := s.cache.Invalidate(ctx, []string{id}); err != nil {
		logger.GlobalLogger.Warnf("Cache invalidation failed: id=%s, error=%v", id, err)
	}
}
