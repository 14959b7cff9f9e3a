package services

import (
	"context"

	"github.com/rs/zerolog"

	"quickbuy/internal/apperr"
	"quickbuy/internal/models"
)

const defaultPageSize = 10

// ProductStore is the catalog the service runs against.
type ProductStore interface {
	List(ctx context.Context, filter models.ProductFilter) ([]models.Product, int, error)
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) (int64, error)
	Update(ctx context.Context, id int64, upd models.ProductUpdate) error
	Delete(ctx context.Context, id int64) error
}

type ProductService struct {
	store  ProductStore
	logger zerolog.Logger
}

func NewProductService(store ProductStore, logger zerolog.Logger) *ProductService {
	return &ProductService{
		store:  store,
		logger: logger,
	}
}

// List runs the filtered catalog query and derives pagination meta from the
// full filtered count, not the returned page.
func (s *ProductService) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, models.PaginationMeta, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = defaultPageSize
	}

	products, total, err := s.store.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error listing products")
		return nil, models.PaginationMeta{}, apperr.Internal("failed to list products", err)
	}

	return products, models.NewPaginationMeta(total, filter.Page, filter.PageSize), nil
}

func (s *ProductService) Get(ctx context.Context, id int64) (*models.Product, error) {
	return s.store.FindByID(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, sellerID int64, input models.ProductInput) (int64, error) {
	if input.Name == "" {
		return 0, apperr.Validation("Product name is required")
	}
	if input.Price < 0 {
		return 0, apperr.Validation("Price cannot be negative")
	}
	if input.Stock < 0 {
		return 0, apperr.Validation("Stock cannot be negative")
	}
	if input.DiscountPercentage < 0 || input.DiscountPercentage > 100 {
		return 0, apperr.Validation("Discount percentage must be between 0 and 100")
	}

	product := &models.Product{
		Name:               input.Name,
		Description:        input.Description,
		Price:              input.Price,
		Category:           input.Category,
		Brand:              input.Brand,
		Image:              input.Image,
		Stock:              input.Stock,
		SellerID:           sellerID,
		DiscountPercentage: input.DiscountPercentage,
		Rating:             0,
	}

	id, err := s.store.Create(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error creating product")
		return 0, apperr.Internal("failed to create product", err)
	}

	s.logger.Info().Int64("product_id", id).Int64("seller_id", sellerID).Msg("Product created")
	return id, nil
}

// Update applies a partial update. Ownership has already been checked by the
// time this runs.
func (s *ProductService) Update(ctx context.Context, id int64, upd models.ProductUpdate) error {
	if upd.Name != nil && *upd.Name == "" {
		return apperr.Validation("Product name cannot be empty")
	}
	if upd.Price != nil && *upd.Price < 0 {
		return apperr.Validation("Price cannot be negative")
	}
	if upd.Stock != nil && *upd.Stock < 0 {
		return apperr.Validation("Stock cannot be negative")
	}
	if upd.DiscountPercentage != nil && (*upd.DiscountPercentage < 0 || *upd.DiscountPercentage > 100) {
		return apperr.Validation("Discount percentage must be between 0 and 100")
	}

	if err := s.store.Update(ctx, id, upd); err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("Error updating product")
		return apperr.Internal("failed to update product", err)
	}
	return nil
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("Error deleting product")
		return apperr.Internal("failed to delete product", err)
	}
	s.logger.Info().Int64("product_id", id).Msg("Product deleted")
	return nil
}
