package application

import (
	"context"
	"testing"
	"time"

	"github.com/palletflow/dispatch-service/internal/domain"
	appErrors "github.com/palletflow/dispatch-service/pkg/errors"
	"github.com/palletflow/dispatch-service/pkg/logging"
)

func newLedgerFixture() (*InventoryLedgerService, *MockTruckInventoryRepository, *capturingPublisher) {
	trucks := NewMockTruckInventoryRepository()
	publisher := &capturingPublisher{}
	logger := logging.NewLogger(logging.Config{ServiceName: "test"})
	return NewInventoryLedgerService(trucks, publisher, logger), trucks, publisher
}

func testBatch(taskID string, quantity int) domain.Batch {
	return domain.Batch{
		ExpirationDate:   time.Now().UTC().AddDate(0, 0, 30),
		PalletQuantity:   quantity,
		ProductionNumber: 42,
		TaskID:           taskID,
		Status:           domain.BatchStatusReserved,
	}
}

func TestInventoryLedgerService_AddBatch(t *testing.T) {
	t.Run("reserves batches and keeps totals as the sum of batches", func(t *testing.T) {
		service, trucks, _ := newLedgerFixture()
		trucks.AddTruck("TRK-1")
		ctx := context.Background()

		if _, err := service.AddBatch(ctx, "TRK-1", "PRD-1", testBatch("task-a", 3)); err != nil {
			t.Fatalf("AddBatch() error = %v", err)
		}
		if _, err := service.AddBatch(ctx, "TRK-1", "PRD-1", testBatch("task-b", 4)); err != nil {
			t.Fatalf("AddBatch() error = %v", err)
		}

		product := trucks.trucks["TRK-1"].Products["PRD-1"]
		if len(product.Batches) != 2 {
			t.Errorf("batch count = %v, want 2", len(product.Batches))
		}
		if product.TotalPallets != 7 {
			t.Errorf("TotalPallets = %v, want 7", product.TotalPallets)
		}
	})

	t.Run("unknown truck is rejected", func(t *testing.T) {
		service, _, _ := newLedgerFixture()

		_, err := service.AddBatch(context.Background(), "TRK-GHOST", "PRD-1", testBatch("task-a", 1))

		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != appErrors.CodeNotFound {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("publishes a reservation event", func(t *testing.T) {
		service, trucks, publisher := newLedgerFixture()
		trucks.AddTruck("TRK-1")

		if _, err := service.AddBatch(context.Background(), "TRK-1", "PRD-1", testBatch("task-a", 2)); err != nil {
			t.Fatalf("AddBatch() error = %v", err)
		}

		if len(publisher.events) != 1 {
			t.Fatalf("event count = %v, want 1", len(publisher.events))
		}
		if publisher.events[0].EventType() != "inventory.batch-reserved" {
			t.Errorf("event type = %v, want inventory.batch-reserved", publisher.events[0].EventType())
		}
	})
}

func TestInventoryLedgerService_RemoveBatchesForTask(t *testing.T) {
	t.Run("removes every batch of the task across products", func(t *testing.T) {
		service, trucks, _ := newLedgerFixture()
		trucks.AddTruck("TRK-1")
		ctx := context.Background()

		if _, err := service.AddBatch(ctx, "TRK-1", "PRD-1", testBatch("task-a", 3)); err != nil {
			t.Fatalf("AddBatch() error = %v", err)
		}
		if _, err := service.AddBatch(ctx, "TRK-1", "PRD-2", testBatch("task-a", 2)); err != nil {
			t.Fatalf("AddBatch() error = %v", err)
		}
		if _, err := service.AddBatch(ctx, "TRK-1", "PRD-1", testBatch("task-b", 1)); err != nil {
			t.Fatalf("AddBatch() error = %v", err)
		}

		removed, err := service.RemoveBatchesForTask(ctx, "TRK-1", "task-a")
		if err != nil {
			t.Fatalf("RemoveBatchesForTask() error = %v", err)
		}
		if removed != 2 {
			t.Errorf("removed = %v, want 2", removed)
		}

		inv := trucks.trucks["TRK-1"]
		if _, ok := inv.Products["PRD-2"]; ok {
			t.Error("product entry with no remaining batches should be dropped")
		}
		if inv.Products["PRD-1"].TotalPallets != 1 {
			t.Errorf("TotalPallets = %v, want 1", inv.Products["PRD-1"].TotalPallets)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		service, trucks, _ := newLedgerFixture()
		trucks.AddTruck("TRK-1")
		ctx := context.Background()

		if _, err := service.AddBatch(ctx, "TRK-1", "PRD-1", testBatch("task-a", 3)); err != nil {
			t.Fatalf("AddBatch() error = %v", err)
		}

		if _, err := service.RemoveBatchesForTask(ctx, "TRK-1", "task-a"); err != nil {
			t.Fatalf("RemoveBatchesForTask() error = %v", err)
		}
		removed, err := service.RemoveBatchesForTask(ctx, "TRK-1", "task-a")
		if err != nil {
			t.Fatalf("RemoveBatchesForTask() second call error = %v", err)
		}
		if removed != 0 {
			t.Errorf("second removal removed = %v, want 0", removed)
		}
	})

	t.Run("missing truck is a no-op", func(t *testing.T) {
		service, _, _ := newLedgerFixture()

		removed, err := service.RemoveBatchesForTask(context.Background(), "TRK-GHOST", "task-a")
		if err != nil {
			t.Fatalf("RemoveBatchesForTask() error = %v", err)
		}
		if removed != 0 {
			t.Errorf("removed = %v, want 0", removed)
		}
	})
}

func TestInventoryLedgerService_SetBatchStatusForTask(t *testing.T) {
	t.Run("updates only the task's batches", func(t *testing.T) {
		service, trucks, _ := newLedgerFixture()
		trucks.AddTruck("TRK-1")
		ctx := context.Background()

		if _, err := service.AddBatch(ctx, "TRK-1", "PRD-1", testBatch("task-a", 3)); err != nil {
			t.Fatalf("AddBatch() error = %v", err)
		}
		if _, err := service.AddBatch(ctx, "TRK-1", "PRD-1", testBatch("task-b", 2)); err != nil {
			t.Fatalf("AddBatch() error = %v", err)
		}

		updated, err := service.SetBatchStatusForTask(ctx, "TRK-1", "task-a", domain.BatchStatusLoaded)
		if err != nil {
			t.Fatalf("SetBatchStatusForTask() error = %v", err)
		}
		if updated != 1 {
			t.Errorf("updated = %v, want 1", updated)
		}

		for _, batch := range trucks.trucks["TRK-1"].Products["PRD-1"].Batches {
			want := domain.BatchStatusReserved
			if batch.TaskID == "task-a" {
				want = domain.BatchStatusLoaded
			}
			if batch.Status != want {
				t.Errorf("batch for %v status = %v, want %v", batch.TaskID, batch.Status, want)
			}
		}
	})

	t.Run("rejects an unknown batch status", func(t *testing.T) {
		service, trucks, _ := newLedgerFixture()
		trucks.AddTruck("TRK-1")

		_, err := service.SetBatchStatusForTask(context.Background(), "TRK-1", "task-a", domain.BatchStatus("shipped"))
		if err == nil {
			t.Fatal("SetBatchStatusForTask() should reject an unknown status")
		}
	})

	t.Run("missing truck is a no-op", func(t *testing.T) {
		service, _, _ := newLedgerFixture()

		updated, err := service.SetBatchStatusForTask(context.Background(), "TRK-GHOST", "task-a", domain.BatchStatusLoaded)
		if err != nil {
			t.Fatalf("SetBatchStatusForTask() error = %v", err)
		}
		if updated != 0 {
			t.Errorf("updated = %v, want 0", updated)
		}
	})
}

func TestInventoryLedgerService_TruckLock(t *testing.T) {
	t.Run("keeps one lock per truck", func(t *testing.T) {
		service, trucks, _ := newLedgerFixture()
		trucks.AddTruck("TRK-1")
		ctx := context.Background()

		for i := 0; i < 10; i++ {
			if _, err := service.AddBatch(ctx, "TRK-1", "PRD-1", testBatch("task-a", 1)); err != nil {
				t.Fatalf("AddBatch() error = %v", err)
			}
		}

		if len(service.locks) != 1 {
			t.Errorf("lock map size = %v, want 1", len(service.locks))
		}
		if service.truckLock("TRK-1") != service.truckLock("TRK-1") {
			t.Error("repeated lookups for one truck must return the same lock")
		}
	})
}

func TestInventoryLedgerService_GetTruckInventory(t *testing.T) {
	t.Run("returns a sorted flattened view", func(t *testing.T) {
		service, trucks, _ := newLedgerFixture()
		trucks.AddTruck("TRK-1")
		ctx := context.Background()

		if _, err := service.AddBatch(ctx, "TRK-1", "PRD-2", testBatch("task-a", 2)); err != nil {
			t.Fatalf("AddBatch() error = %v", err)
		}
		if _, err := service.AddBatch(ctx, "TRK-1", "PRD-1", testBatch("task-b", 5)); err != nil {
			t.Fatalf("AddBatch() error = %v", err)
		}

		dto, err := service.GetTruckInventory(ctx, "TRK-1")
		if err != nil {
			t.Fatalf("GetTruckInventory() error = %v", err)
		}
		if dto.TotalPallets != 7 {
			t.Errorf("TotalPallets = %v, want 7", dto.TotalPallets)
		}
		if len(dto.Products) != 2 || dto.Products[0].ProductID != "PRD-1" {
			t.Errorf("products should be sorted by id, got %+v", dto.Products)
		}
	})

	t.Run("unknown truck returns not found", func(t *testing.T) {
		service, _, _ := newLedgerFixture()

		_, err := service.GetTruckInventory(context.Background(), "TRK-GHOST")

		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != appErrors.CodeNotFound {
			t.Fatalf("expected not found, got %v", err)
		}
	})
}
