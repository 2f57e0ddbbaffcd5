package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/palletflow/dispatch-service/internal/domain"
	"github.com/palletflow/dispatch-service/pkg/mongodb"
)

const (
	productsCollection        = "products"
	usersCollection           = "users"
	productionLinesCollection = "productionLines"
	warehousesCollection      = "warehouses"
	deliveryPointsCollection  = "deliveryPoints"
)

const driverRole = "driver"

// CatalogRepository reads reference entities from their collections.
// The catalog is owned by other systems; this repository never writes.
type CatalogRepository struct {
	products        *mongodb.CircuitBreakerCollection
	users           *mongodb.CircuitBreakerCollection
	productionLines *mongodb.CircuitBreakerCollection
	warehouses      *mongodb.CircuitBreakerCollection
	deliveryPoints  *mongodb.CircuitBreakerCollection
	trucks          *mongodb.CircuitBreakerCollection
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(client *mongodb.CircuitBreakerClient) *CatalogRepository {
	return &CatalogRepository{
		products:        client.Collection(productsCollection),
		users:           client.Collection(usersCollection),
		productionLines: client.Collection(productionLinesCollection),
		warehouses:      client.Collection(warehousesCollection),
		deliveryPoints:  client.Collection(deliveryPointsCollection),
		trucks:          client.Collection(trucksCollection),
	}
}

// FindProduct returns one product, or (nil, nil) if absent
func (r *CatalogRepository) FindProduct(ctx context.Context, productID string) (*domain.Product, error) {
	var product domain.Product
	err := r.products.FindOne(ctx, bson.M{"productId": productID}, &product)
	if err != nil {
		if mongodb.IsNoDocuments(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &product, nil
}

// FindDriver returns one user with the driver role, or (nil, nil) if absent
func (r *CatalogRepository) FindDriver(ctx context.Context, userID string) (*domain.Driver, error) {
	var driver domain.Driver
	err := r.users.FindOne(ctx, bson.M{"userId": userID, "role": driverRole}, &driver)
	if err != nil {
		if mongodb.IsNoDocuments(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find driver: %w", err)
	}
	return &driver, nil
}

// FindProductionLine returns one production line, or (nil, nil) if absent
func (r *CatalogRepository) FindProductionLine(ctx context.Context, lineID string) (*domain.ProductionLine, error) {
	var line domain.ProductionLine
	err := r.productionLines.FindOne(ctx, bson.M{"lineId": lineID}, &line)
	if err != nil {
		if mongodb.IsNoDocuments(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find production line: %w", err)
	}
	return &line, nil
}

// FindWarehouse returns one warehouse, or (nil, nil) if absent
func (r *CatalogRepository) FindWarehouse(ctx context.Context, warehouseID string) (*domain.Warehouse, error) {
	var warehouse domain.Warehouse
	err := r.warehouses.FindOne(ctx, bson.M{"warehouseId": warehouseID}, &warehouse)
	if err != nil {
		if mongodb.IsNoDocuments(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find warehouse: %w", err)
	}
	return &warehouse, nil
}

// FindDeliveryPoint returns one delivery point, or (nil, nil) if absent
func (r *CatalogRepository) FindDeliveryPoint(ctx context.Context, pointID string) (*domain.DeliveryPoint, error) {
	var point domain.DeliveryPoint
	err := r.deliveryPoints.FindOne(ctx, bson.M{"pointId": pointID}, &point)
	if err != nil {
		if mongodb.IsNoDocuments(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find delivery point: %w", err)
	}
	return &point, nil
}

// FindTruck returns one truck, or (nil, nil) if absent
func (r *CatalogRepository) FindTruck(ctx context.Context, truckID string) (*domain.Truck, error) {
	var truck domain.Truck
	err := r.trucks.FindOne(ctx, bson.M{"truckId": truckID}, &truck)
	if err != nil {
		if mongodb.IsNoDocuments(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find truck: %w", err)
	}
	return &truck, nil
}

// ListProducts returns every product sorted by name
func (r *CatalogRepository) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	var products []*domain.Product
	if err := r.findAll(ctx, r.products, bson.M{}, &products); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// ListDrivers returns every user with the driver role
func (r *CatalogRepository) ListDrivers(ctx context.Context) ([]*domain.Driver, error) {
	var drivers []*domain.Driver
	if err := r.findAll(ctx, r.users, bson.M{"role": driverRole}, &drivers); err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}
	return drivers, nil
}

// ListProductionLines returns every production line
func (r *CatalogRepository) ListProductionLines(ctx context.Context) ([]*domain.ProductionLine, error) {
	var lines []*domain.ProductionLine
	if err := r.findAll(ctx, r.productionLines, bson.M{}, &lines); err != nil {
		return nil, fmt.Errorf("failed to list production lines: %w", err)
	}
	return lines, nil
}

// ListWarehouses returns every warehouse
func (r *CatalogRepository) ListWarehouses(ctx context.Context) ([]*domain.Warehouse, error) {
	var warehouses []*domain.Warehouse
	if err := r.findAll(ctx, r.warehouses, bson.M{}, &warehouses); err != nil {
		return nil, fmt.Errorf("failed to list warehouses: %w", err)
	}
	return warehouses, nil
}

// ListDeliveryPoints returns every delivery point
func (r *CatalogRepository) ListDeliveryPoints(ctx context.Context) ([]*domain.DeliveryPoint, error) {
	var points []*domain.DeliveryPoint
	if err := r.findAll(ctx, r.deliveryPoints, bson.M{}, &points); err != nil {
		return nil, fmt.Errorf("failed to list delivery points: %w", err)
	}
	return points, nil
}

// ListTrucks returns every truck
func (r *CatalogRepository) ListTrucks(ctx context.Context) ([]*domain.Truck, error) {
	var trucks []*domain.Truck
	if err := r.findAll(ctx, r.trucks, bson.M{}, &trucks); err != nil {
		return nil, fmt.Errorf("failed to list trucks: %w", err)
	}
	return trucks, nil
}

func (r *CatalogRepository) findAll(ctx context.Context, collection *mongodb.CircuitBreakerCollection, filter bson.M, out interface{}) error {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}
