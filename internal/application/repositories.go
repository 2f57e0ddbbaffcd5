package application

import (
	"context"

	"github.com/palletflow/dispatch-service/internal/domain"
)

// TaskRepository interface for task persistence
type TaskRepository interface {
	Save(ctx context.Context, task *domain.Task) error
	FindByID(ctx context.Context, taskID string) (*domain.Task, error)
	FindAll(ctx context.Context) ([]*domain.Task, error)
	UpdateStatus(ctx context.Context, taskID string, status domain.TaskStatus) error
	Delete(ctx context.Context, taskID string) error
}

// TruckInventoryRepository interface for truck ledger persistence.
// Load returns (nil, nil) when the truck does not exist.
type TruckInventoryRepository interface {
	Load(ctx context.Context, truckID string) (*domain.TruckInventory, error)
	Save(ctx context.Context, inventory *domain.TruckInventory) error
}

// ProductionSequence issues monotonically increasing production numbers.
// Implementations must make the increment atomic; a degraded implementation
// may fall back to a timestamp-derived value rather than block task creation.
type ProductionSequence interface {
	Next(ctx context.Context) (int64, error)
}

// CatalogRepository resolves referenced entities read-only.
// Every Find method returns (nil, nil) when the entity is absent.
type CatalogRepository interface {
	FindProduct(ctx context.Context, productID string) (*domain.Product, error)
	FindDriver(ctx context.Context, userID string) (*domain.Driver, error)
	FindProductionLine(ctx context.Context, lineID string) (*domain.ProductionLine, error)
	FindWarehouse(ctx context.Context, warehouseID string) (*domain.Warehouse, error)
	FindDeliveryPoint(ctx context.Context, pointID string) (*domain.DeliveryPoint, error)
	FindTruck(ctx context.Context, truckID string) (*domain.Truck, error)

	ListProducts(ctx context.Context) ([]*domain.Product, error)
	ListDrivers(ctx context.Context) ([]*domain.Driver, error)
	ListProductionLines(ctx context.Context) ([]*domain.ProductionLine, error)
	ListWarehouses(ctx context.Context) ([]*domain.Warehouse, error)
	ListDeliveryPoints(ctx context.Context) ([]*domain.DeliveryPoint, error)
	ListTrucks(ctx context.Context) ([]*domain.Truck, error)
}

// EventPublisher publishes domain events to the outside world
type EventPublisher interface {
	Publish(ctx context.Context, events []domain.DomainEvent) error
}
