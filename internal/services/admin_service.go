package services

import (
	"context"

	"shopstack-products/internal/errors"
	"shopstack-products/internal/filters"
	"shopstack-products/internal/models"
	"shopstack-products/internal/repositories"
	"shopstack-products/internal/utils"
)

// AdminService serves the back-office views. Admin reads bypass the cache on
// purpose: operators tuning stock need to see their own writes immediately.
type AdminService struct {
	repo repositories.ProductRepository
	refs repositories.ReferenceRepository
}

func NewAdminService(
	repo repositories.ProductRepository,
	refs repositories.ReferenceRepository,
) *AdminService {
	return &AdminService{repo: repo, refs: refs}
}

func (s *AdminService) DashboardKPI(ctx context.Context) (*models.DashboardKPI, error) {
	kpi, err := s.repo.DashboardKPI(ctx)
	if err != nil {
		return nil, errors.NewStoreFailure("dashboard aggregation failed", err)
	}
	return kpi, nil
}

// ListProducts is the admin table: summary projections, uncached, empty pages
// allowed.
func (s *AdminService) ListProducts(ctx context.Context, req *models.SearchRequest) (*models.ProductListing, error) {
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

	products, total, err := s.repo.FindSummaries(ctx, filter, req.Page, req.Limit)
	if err != nil {
		return nil, errors.NewStoreFailure("admin listing query failed", err)
	}

	return &models.ProductListing{
		Products:   products,
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: utils.TotalPages(total, req.Limit),
	}, nil
}
