package application

import (
	"context"
	"fmt"

	"github.com/palletflow/dispatch-service/internal/domain"
	"github.com/palletflow/dispatch-service/pkg/errors"
	"github.com/palletflow/dispatch-service/pkg/logging"
)

// CatalogQueryService exposes read-only lookups of the reference catalog
type CatalogQueryService struct {
	catalog CatalogRepository
	logger  *logging.Logger
}

// NewCatalogQueryService creates a new catalog query service
func NewCatalogQueryService(catalog CatalogRepository, logger *logging.Logger) *CatalogQueryService {
	return &CatalogQueryService{
		catalog: catalog,
		logger:  logger.WithComponent("catalog-service"),
	}
}

// GetProduct returns one product by its identifier
func (s *CatalogQueryService) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.catalog.FindProduct(ctx, productID)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("failed to load product", "product_id", productID)
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		return nil, errors.ErrNotFoundWithID("product", productID)
	}
	return product, nil
}

// ListProducts returns every product in the catalog
func (s *CatalogQueryService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// ListDrivers returns every user with the driver role
func (s *CatalogQueryService) ListDrivers(ctx context.Context) ([]*domain.Driver, error) {
	drivers, err := s.catalog.ListDrivers(ctx)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("failed to list drivers")
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}
	return drivers, nil
}

// ListProductionLines returns every production line
func (s *CatalogQueryService) ListProductionLines(ctx context.Context) ([]*domain.ProductionLine, error) {
	lines, err := s.catalog.ListProductionLines(ctx)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("failed to list production lines")
		return nil, fmt.Errorf("failed to list production lines: %w", err)
	}
	return lines, nil
}

// ListWarehouses returns every warehouse
func (s *CatalogQueryService) ListWarehouses(ctx context.Context) ([]*domain.Warehouse, error) {
	warehouses, err := s.catalog.ListWarehouses(ctx)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("failed to list warehouses")
		return nil, fmt.Errorf("failed to list warehouses: %w", err)
	}
	return warehouses, nil
}

// ListDeliveryPoints returns every delivery point
func (s *CatalogQueryService) ListDeliveryPoints(ctx context.Context) ([]*domain.DeliveryPoint, error) {
	points, err := s.catalog.ListDeliveryPoints(ctx)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("failed to list delivery points")
		return nil, fmt.Errorf("failed to list delivery points: %w", err)
	}
	return points, nil
}

// ListTrucks returns every truck
func (s *CatalogQueryService) ListTrucks(ctx context.Context) ([]*domain.Truck, error) {
	trucks, err := s.catalog.ListTrucks(ctx)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("failed to list trucks")
		return nil, fmt.Errorf("failed to list trucks: %w", err)
	}
	return trucks, nil
}
