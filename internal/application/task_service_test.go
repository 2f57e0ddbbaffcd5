package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/palletflow/dispatch-service/internal/domain"
	appErrors "github.com/palletflow/dispatch-service/pkg/errors"
	"github.com/palletflow/dispatch-service/pkg/logging"
)

// MockTaskRepository is a map-backed TaskRepository for testing
type MockTaskRepository struct {
	tasks   map[string]*domain.Task
	saveErr error
	findErr error
}

func NewMockTaskRepository() *MockTaskRepository {
	return &MockTaskRepository{tasks: make(map[string]*domain.Task)}
}

func (m *MockTaskRepository) Save(ctx context.Context, task *domain.Task) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.tasks[task.TaskID] = task
	return nil
}

func (m *MockTaskRepository) FindByID(ctx context.Context, taskID string) (*domain.Task, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.tasks[taskID], nil
}

func (m *MockTaskRepository) FindAll(ctx context.Context) ([]*domain.Task, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	result := make([]*domain.Task, 0, len(m.tasks))
	for _, task := range m.tasks {
		result = append(result, task)
	}
	return result, nil
}

func (m *MockTaskRepository) UpdateStatus(ctx context.Context, taskID string, status domain.TaskStatus) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if task, ok := m.tasks[taskID]; ok {
		task.Status = status
	}
	return nil
}

func (m *MockTaskRepository) Delete(ctx context.Context, taskID string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	delete(m.tasks, taskID)
	return nil
}

// MockTruckInventoryRepository is a map-backed ledger store for testing
type MockTruckInventoryRepository struct {
	trucks  map[string]*domain.TruckInventory
	loadErr error
	saveErr error
}

func NewMockTruckInventoryRepository() *MockTruckInventoryRepository {
	return &MockTruckInventoryRepository{trucks: make(map[string]*domain.TruckInventory)}
}

func (m *MockTruckInventoryRepository) Load(ctx context.Context, truckID string) (*domain.TruckInventory, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.trucks[truckID], nil
}

func (m *MockTruckInventoryRepository) Save(ctx context.Context, inv *domain.TruckInventory) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.trucks[inv.TruckID] = inv
	return nil
}

func (m *MockTruckInventoryRepository) AddTruck(truckID string) {
	m.trucks[truckID] = domain.NewTruckInventory(truckID)
}

// MockCatalogRepository resolves entities from in-memory maps
type MockCatalogRepository struct {
	products   map[string]*domain.Product
	drivers    map[string]*domain.Driver
	lines      map[string]*domain.ProductionLine
	warehouses map[string]*domain.Warehouse
	points     map[string]*domain.DeliveryPoint
	trucks     map[string]*domain.Truck
}

func NewMockCatalogRepository() *MockCatalogRepository {
	return &MockCatalogRepository{
		products:   make(map[string]*domain.Product),
		drivers:    make(map[string]*domain.Driver),
		lines:      make(map[string]*domain.ProductionLine),
		warehouses: make(map[string]*domain.Warehouse),
		points:     make(map[string]*domain.DeliveryPoint),
		trucks:     make(map[string]*domain.Truck),
	}
}

func (m *MockCatalogRepository) FindProduct(ctx context.Context, id string) (*domain.Product, error) {
	return m.products[id], nil
}

func (m *MockCatalogRepository) FindDriver(ctx context.Context, id string) (*domain.Driver, error) {
	return m.drivers[id], nil
}

func (m *MockCatalogRepository) FindProductionLine(ctx context.Context, id string) (*domain.ProductionLine, error) {
	return m.lines[id], nil
}

func (m *MockCatalogRepository) FindWarehouse(ctx context.Context, id string) (*domain.Warehouse, error) {
	return m.warehouses[id], nil
}

func (m *MockCatalogRepository) FindDeliveryPoint(ctx context.Context, id string) (*domain.DeliveryPoint, error) {
	return m.points[id], nil
}

func (m *MockCatalogRepository) FindTruck(ctx context.Context, id string) (*domain.Truck, error) {
	return m.trucks[id], nil
}

func (m *MockCatalogRepository) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	result := make([]*domain.Product, 0, len(m.products))
	for _, p := range m.products {
		result = append(result, p)
	}
	return result, nil
}

func (m *MockCatalogRepository) ListDrivers(ctx context.Context) ([]*domain.Driver, error) {
	result := make([]*domain.Driver, 0, len(m.drivers))
	for _, d := range m.drivers {
		result = append(result, d)
	}
	return result, nil
}

func (m *MockCatalogRepository) ListProductionLines(ctx context.Context) ([]*domain.ProductionLine, error) {
	result := make([]*domain.ProductionLine, 0, len(m.lines))
	for _, l := range m.lines {
		result = append(result, l)
	}
	return result, nil
}

func (m *MockCatalogRepository) ListWarehouses(ctx context.Context) ([]*domain.Warehouse, error) {
	result := make([]*domain.Warehouse, 0, len(m.warehouses))
	for _, w := range m.warehouses {
		result = append(result, w)
	}
	return result, nil
}

func (m *MockCatalogRepository) ListDeliveryPoints(ctx context.Context) ([]*domain.DeliveryPoint, error) {
	result := make([]*domain.DeliveryPoint, 0, len(m.points))
	for _, p := range m.points {
		result = append(result, p)
	}
	return result, nil
}

func (m *MockCatalogRepository) ListTrucks(ctx context.Context) ([]*domain.Truck, error) {
	result := make([]*domain.Truck, 0, len(m.trucks))
	for _, t := range m.trucks {
		result = append(result, t)
	}
	return result, nil
}

// stubSequence hands out consecutive production numbers
type stubSequence struct {
	next int64
	err  error
}

func (s *stubSequence) Next(ctx context.Context) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.next++
	return s.next, nil
}

// capturingPublisher records every published event
type capturingPublisher struct {
	events []domain.DomainEvent
}

func (p *capturingPublisher) Publish(ctx context.Context, events []domain.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

type taskServiceFixture struct {
	service   *TaskApplicationService
	tasks     *MockTaskRepository
	trucks    *MockTruckInventoryRepository
	catalog   *MockCatalogRepository
	publisher *capturingPublisher
}

func newTaskServiceFixture() *taskServiceFixture {
	tasks := NewMockTaskRepository()
	trucks := NewMockTruckInventoryRepository()
	catalog := NewMockCatalogRepository()
	publisher := &capturingPublisher{}
	logger := logging.NewLogger(logging.Config{ServiceName: "test"})

	catalog.products["PRD-1"] = &domain.Product{ProductID: "PRD-1", Name: "Frozen Peas", QRCode: "QR-PEAS", ExpiryDays: 90}
	catalog.products["PRD-2"] = &domain.Product{ProductID: "PRD-2", Name: "Ice Cream", QRCode: "QR-ICE"}
	catalog.drivers["USR-1"] = &domain.Driver{UserID: "USR-1", Name: "Pat", Role: "driver"}
	catalog.lines["LINE-1"] = &domain.ProductionLine{LineID: "LINE-1", Name: "Line1", QRCode: "QR-LINE1"}
	catalog.warehouses["WH-1"] = &domain.Warehouse{WarehouseID: "WH-1", Name: "Cold Store", QRCode: "QR-WH1"}
	catalog.points["DP-1"] = &domain.DeliveryPoint{PointID: "DP-1", Name: "Depot North", QRCode: "QR-DP1"}
	catalog.trucks["TRK-1"] = &domain.Truck{TruckID: "TRK-1", Name: "Truck One", Plate: "AB-123", QRCode: "QR-TRK1"}
	trucks.AddTruck("TRK-1")

	ledger := NewInventoryLedgerService(trucks, publisher, logger)
	service := NewTaskApplicationService(tasks, catalog, &stubSequence{next: 100}, ledger, publisher, logger)

	return &taskServiceFixture{
		service:   service,
		tasks:     tasks,
		trucks:    trucks,
		catalog:   catalog,
		publisher: publisher,
	}
}

func TestTaskApplicationService_CreateTask(t *testing.T) {
	t.Run("creates production to warehouse task", func(t *testing.T) {
		f := newTaskServiceFixture()
		ctx := context.Background()

		dto, err := f.service.CreateTask(ctx, CreateTaskCommand{
			ProductID:      "PRD-1",
			AssignedTo:     "USR-1",
			FromType:       "production",
			FromID:         "LINE-1",
			ToType:         "warehouse",
			ToID:           "WH-1",
			PalletQuantity: 3,
		})

		if err != nil {
			t.Fatalf("CreateTask() error = %v", err)
		}
		if dto.TaskType != "productionToWarehouse" {
			t.Errorf("TaskType = %v, want productionToWarehouse", dto.TaskType)
		}
		if dto.Status != "awaiting_pickup" {
			t.Errorf("Status = %v, want awaiting_pickup", dto.Status)
		}
		if dto.ProductionNumber != 101 {
			t.Errorf("ProductionNumber = %v, want 101", dto.ProductionNumber)
		}
		if len(dto.PalletQRCodes) != 3 {
			t.Fatalf("PalletQRCodes length = %v, want 3", len(dto.PalletQRCodes))
		}
		for _, code := range dto.PalletQRCodes {
			if !strings.HasPrefix(code, "QR-PEAS_101_") {
				t.Errorf("pallet code %v missing product and production prefix", code)
			}
		}
		for _, ps := range dto.PalletStatuses {
			if ps.Status != "pending" {
				t.Errorf("pallet %v status = %v, want pending", ps.Code, ps.Status)
			}
		}
		wantExpiry := time.Now().UTC().AddDate(0, 0, 90)
		if diff := dto.ExpirationDate.Sub(wantExpiry); diff > time.Minute || diff < -time.Minute {
			t.Errorf("ExpirationDate = %v, want about %v", dto.ExpirationDate, wantExpiry)
		}
	})

	t.Run("truck destination reserves a batch", func(t *testing.T) {
		f := newTaskServiceFixture()
		ctx := context.Background()

		dto, err := f.service.CreateTask(ctx, CreateTaskCommand{
			ProductID:      "PRD-1",
			AssignedTo:     "USR-1",
			FromType:       "warehouse",
			FromID:         "WH-1",
			ToType:         "truck",
			ToID:           "TRK-1",
			PalletQuantity: 5,
		})

		if err != nil {
			t.Fatalf("CreateTask() error = %v", err)
		}
		if dto.TaskType != "warehouseToTruck" {
			t.Errorf("TaskType = %v, want warehouseToTruck", dto.TaskType)
		}
		if dto.BatchID == "" {
			t.Fatal("BatchID should be set for truck-bound task")
		}

		inv := f.trucks.trucks["TRK-1"]
		product, ok := inv.Products["PRD-1"]
		if !ok {
			t.Fatal("truck inventory missing product entry")
		}
		if product.TotalPallets != 5 {
			t.Errorf("TotalPallets = %v, want 5", product.TotalPallets)
		}
		batch, ok := product.Batches[dto.BatchID]
		if !ok {
			t.Fatalf("batch %v not found on truck", dto.BatchID)
		}
		if batch.TaskID != dto.TaskID {
			t.Errorf("batch TaskID = %v, want %v", batch.TaskID, dto.TaskID)
		}
		if batch.Status != domain.BatchStatusReserved {
			t.Errorf("batch Status = %v, want reserved", batch.Status)
		}
	})

	t.Run("unknown product fails validation", func(t *testing.T) {
		f := newTaskServiceFixture()

		_, err := f.service.CreateTask(context.Background(), CreateTaskCommand{
			ProductID:      "PRD-MISSING",
			AssignedTo:     "USR-1",
			FromType:       "production",
			FromID:         "LINE-1",
			ToType:         "warehouse",
			ToID:           "WH-1",
			PalletQuantity: 1,
		})

		appErr, ok := appErrors.AsAppError(err)
		if !ok {
			t.Fatalf("expected AppError, got %v", err)
		}
		if appErr.Code != appErrors.CodeValidationError {
			t.Errorf("Code = %v, want %v", appErr.Code, appErrors.CodeValidationError)
		}
		if !strings.Contains(appErr.Message, "PRD-MISSING") {
			t.Errorf("message %q should name the missing product", appErr.Message)
		}
	})

	t.Run("missing truck ledger leaves task saved and reports reservation failure", func(t *testing.T) {
		f := newTaskServiceFixture()
		f.catalog.trucks["TRK-2"] = &domain.Truck{TruckID: "TRK-2", Name: "Truck Two", QRCode: "QR-TRK2"}
		// TRK-2 has no ledger document

		_, err := f.service.CreateTask(context.Background(), CreateTaskCommand{
			ProductID:      "PRD-1",
			AssignedTo:     "USR-1",
			FromType:       "warehouse",
			FromID:         "WH-1",
			ToType:         "truck",
			ToID:           "TRK-2",
			PalletQuantity: 2,
		})

		appErr, ok := appErrors.AsAppError(err)
		if !ok {
			t.Fatalf("expected AppError, got %v", err)
		}
		if appErr.Code != appErrors.CodeInventoryNotReserved {
			t.Errorf("Code = %v, want %v", appErr.Code, appErrors.CodeInventoryNotReserved)
		}
		if len(f.tasks.tasks) != 1 {
			t.Errorf("task count = %v, want 1 (task persists despite reservation failure)", len(f.tasks.tasks))
		}
	})

	t.Run("default shelf life applies when product has none", func(t *testing.T) {
		f := newTaskServiceFixture()

		dto, err := f.service.CreateTask(context.Background(), CreateTaskCommand{
			ProductID:      "PRD-2",
			AssignedTo:     "USR-1",
			FromType:       "production",
			FromID:         "LINE-1",
			ToType:         "warehouse",
			ToID:           "WH-1",
			PalletQuantity: 1,
		})

		if err != nil {
			t.Fatalf("CreateTask() error = %v", err)
		}
		wantExpiry := time.Now().UTC().AddDate(0, 0, defaultExpirationDays)
		if diff := dto.ExpirationDate.Sub(wantExpiry); diff > time.Minute || diff < -time.Minute {
			t.Errorf("ExpirationDate = %v, want about %v", dto.ExpirationDate, wantExpiry)
		}
	})
}

func TestTaskApplicationService_UpdateTask(t *testing.T) {
	t.Run("edit mints new codes and leaves truck inventory untouched", func(t *testing.T) {
		f := newTaskServiceFixture()
		ctx := context.Background()

		created, err := f.service.CreateTask(ctx, CreateTaskCommand{
			ProductID:      "PRD-1",
			AssignedTo:     "USR-1",
			FromType:       "warehouse",
			FromID:         "WH-1",
			ToType:         "truck",
			ToID:           "TRK-1",
			PalletQuantity: 4,
		})
		if err != nil {
			t.Fatalf("CreateTask() error = %v", err)
		}

		updated, err := f.service.UpdateTask(ctx, UpdateTaskCommand{
			TaskID:         created.TaskID,
			ProductID:      "PRD-1",
			AssignedTo:     "USR-1",
			FromType:       "warehouse",
			FromID:         "WH-1",
			ToType:         "truck",
			ToID:           "TRK-1",
			PalletQuantity: 2,
		})
		if err != nil {
			t.Fatalf("UpdateTask() error = %v", err)
		}

		if updated.ProductionNumber == created.ProductionNumber {
			t.Error("edit should mint a new production number")
		}
		if updated.Status != "awaiting_pickup" {
			t.Errorf("Status = %v, want awaiting_pickup", updated.Status)
		}
		if len(updated.PalletQRCodes) != 2 {
			t.Errorf("PalletQRCodes length = %v, want 2", len(updated.PalletQRCodes))
		}

		// the batch reserved at creation time stays as it was
		inv := f.trucks.trucks["TRK-1"]
		if inv.Products["PRD-1"].TotalPallets != 4 {
			t.Errorf("truck TotalPallets = %v, want 4 (untouched by edit)", inv.Products["PRD-1"].TotalPallets)
		}
	})

	t.Run("unknown task returns not found", func(t *testing.T) {
		f := newTaskServiceFixture()

		_, err := f.service.UpdateTask(context.Background(), UpdateTaskCommand{
			TaskID:         "no-such-task",
			ProductID:      "PRD-1",
			AssignedTo:     "USR-1",
			FromType:       "production",
			FromID:         "LINE-1",
			ToType:         "warehouse",
			ToID:           "WH-1",
			PalletQuantity: 1,
		})

		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != appErrors.CodeNotFound {
			t.Fatalf("expected not found, got %v", err)
		}
	})
}

func TestTaskApplicationService_ChangeStatus(t *testing.T) {
	t.Run("completing a truck task marks batches loaded", func(t *testing.T) {
		f := newTaskServiceFixture()
		ctx := context.Background()

		created, err := f.service.CreateTask(ctx, CreateTaskCommand{
			ProductID:      "PRD-1",
			AssignedTo:     "USR-1",
			FromType:       "warehouse",
			FromID:         "WH-1",
			ToType:         "truck",
			ToID:           "TRK-1",
			PalletQuantity: 3,
		})
		if err != nil {
			t.Fatalf("CreateTask() error = %v", err)
		}

		dto, err := f.service.ChangeStatus(ctx, ChangeTaskStatusCommand{TaskID: created.TaskID, Status: "completed"})
		if err != nil {
			t.Fatalf("ChangeStatus() error = %v", err)
		}
		if dto.Status != "completed" {
			t.Errorf("Status = %v, want completed", dto.Status)
		}

		batch := f.trucks.trucks["TRK-1"].Products["PRD-1"].Batches[created.BatchID]
		if batch.Status != domain.BatchStatusLoaded {
			t.Errorf("batch Status = %v, want loaded", batch.Status)
		}
	})

	t.Run("surfaces a ledger write failure on completion", func(t *testing.T) {
		f := newTaskServiceFixture()
		ctx := context.Background()

		created, err := f.service.CreateTask(ctx, CreateTaskCommand{
			ProductID:      "PRD-1",
			AssignedTo:     "USR-1",
			FromType:       "warehouse",
			FromID:         "WH-1",
			ToType:         "truck",
			ToID:           "TRK-1",
			PalletQuantity: 3,
		})
		if err != nil {
			t.Fatalf("CreateTask() error = %v", err)
		}

		f.trucks.saveErr = errors.New("connection reset")

		_, err = f.service.ChangeStatus(ctx, ChangeTaskStatusCommand{TaskID: created.TaskID, Status: "completed"})
		appErr, ok := appErrors.AsAppError(err)
		if !ok {
			t.Fatalf("expected AppError, got %v", err)
		}
		if appErr.Code != appErrors.CodeStoreError {
			t.Errorf("Code = %v, want %v", appErr.Code, appErrors.CodeStoreError)
		}

		// the status write lands before the ledger write, so the task
		// itself is completed and the caller can reconcile the batch
		if f.tasks.tasks[created.TaskID].Status != domain.TaskStatusCompleted {
			t.Errorf("task status = %v, want completed", f.tasks.tasks[created.TaskID].Status)
		}
	})

	t.Run("completing a warehouse task does not touch the ledger", func(t *testing.T) {
		f := newTaskServiceFixture()
		ctx := context.Background()

		created, err := f.service.CreateTask(ctx, CreateTaskCommand{
			ProductID:      "PRD-1",
			AssignedTo:     "USR-1",
			FromType:       "production",
			FromID:         "LINE-1",
			ToType:         "warehouse",
			ToID:           "WH-1",
			PalletQuantity: 1,
		})
		if err != nil {
			t.Fatalf("CreateTask() error = %v", err)
		}

		if _, err := f.service.ChangeStatus(ctx, ChangeTaskStatusCommand{TaskID: created.TaskID, Status: "completed"}); err != nil {
			t.Fatalf("ChangeStatus() error = %v", err)
		}

		if len(f.trucks.trucks["TRK-1"].Products) != 0 {
			t.Error("warehouse task completion must not write truck inventory")
		}
	})

	t.Run("any status can follow any other", func(t *testing.T) {
		f := newTaskServiceFixture()
		ctx := context.Background()

		created, err := f.service.CreateTask(ctx, CreateTaskCommand{
			ProductID:      "PRD-1",
			AssignedTo:     "USR-1",
			FromType:       "production",
			FromID:         "LINE-1",
			ToType:         "warehouse",
			ToID:           "WH-1",
			PalletQuantity: 1,
		})
		if err != nil {
			t.Fatalf("CreateTask() error = %v", err)
		}

		for _, status := range []string{"completed", "awaiting_pickup", "in_progress"} {
			if _, err := f.service.ChangeStatus(ctx, ChangeTaskStatusCommand{TaskID: created.TaskID, Status: status}); err != nil {
				t.Fatalf("ChangeStatus(%v) error = %v", status, err)
			}
		}
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		f := newTaskServiceFixture()
		ctx := context.Background()

		created, err := f.service.CreateTask(ctx, CreateTaskCommand{
			ProductID:      "PRD-1",
			AssignedTo:     "USR-1",
			FromType:       "production",
			FromID:         "LINE-1",
			ToType:         "warehouse",
			ToID:           "WH-1",
			PalletQuantity: 1,
		})
		if err != nil {
			t.Fatalf("CreateTask() error = %v", err)
		}

		_, err = f.service.ChangeStatus(ctx, ChangeTaskStatusCommand{TaskID: created.TaskID, Status: "done"})
		if err == nil {
			t.Fatal("ChangeStatus() should reject an unknown status")
		}
	})
}

func TestTaskApplicationService_DeleteTask(t *testing.T) {
	t.Run("delete releases reserved batches before removing the task", func(t *testing.T) {
		f := newTaskServiceFixture()
		ctx := context.Background()

		created, err := f.service.CreateTask(ctx, CreateTaskCommand{
			ProductID:      "PRD-1",
			AssignedTo:     "USR-1",
			FromType:       "warehouse",
			FromID:         "WH-1",
			ToType:         "truck",
			ToID:           "TRK-1",
			PalletQuantity: 6,
		})
		if err != nil {
			t.Fatalf("CreateTask() error = %v", err)
		}

		if err := f.service.DeleteTask(ctx, DeleteTaskCommand{TaskID: created.TaskID}); err != nil {
			t.Fatalf("DeleteTask() error = %v", err)
		}

		if _, ok := f.tasks.tasks[created.TaskID]; ok {
			t.Error("task should be removed")
		}
		if len(f.trucks.trucks["TRK-1"].Products) != 0 {
			t.Error("product entry should be dropped once its only batch is released")
		}
	})

	t.Run("delete aborts when batch release fails", func(t *testing.T) {
		f := newTaskServiceFixture()
		ctx := context.Background()

		created, err := f.service.CreateTask(ctx, CreateTaskCommand{
			ProductID:      "PRD-1",
			AssignedTo:     "USR-1",
			FromType:       "warehouse",
			FromID:         "WH-1",
			ToType:         "truck",
			ToID:           "TRK-1",
			PalletQuantity: 2,
		})
		if err != nil {
			t.Fatalf("CreateTask() error = %v", err)
		}

		f.trucks.loadErr = errors.New("connection reset")

		if err := f.service.DeleteTask(ctx, DeleteTaskCommand{TaskID: created.TaskID}); err == nil {
			t.Fatal("DeleteTask() should fail when batch release fails")
		}
	})

	t.Run("unknown task returns not found", func(t *testing.T) {
		f := newTaskServiceFixture()

		err := f.service.DeleteTask(context.Background(), DeleteTaskCommand{TaskID: "no-such-task"})

		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != appErrors.CodeNotFound {
			t.Fatalf("expected not found, got %v", err)
		}
	})
}

func TestTaskApplicationService_ListTasks(t *testing.T) {
	f := newTaskServiceFixture()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := f.service.CreateTask(ctx, CreateTaskCommand{
			ProductID:      "PRD-1",
			AssignedTo:     "USR-1",
			FromType:       "production",
			FromID:         "LINE-1",
			ToType:         "warehouse",
			ToID:           "WH-1",
			PalletQuantity: 1,
		}); err != nil {
			t.Fatalf("CreateTask() error = %v", err)
		}
	}

	dtos, err := f.service.ListTasks(ctx)
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	if len(dtos) != 3 {
		t.Errorf("ListTasks() length = %v, want 3", len(dtos))
	}
}
