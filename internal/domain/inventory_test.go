package domain

import (
	"testing"
	"time"
)

func reservedBatch(taskID string, quantity int) Batch {
	return Batch{
		ExpirationDate:   time.Now().UTC().AddDate(0, 0, 30),
		PalletQuantity:   quantity,
		ProductionNumber: 1,
		TaskID:           taskID,
		Status:           BatchStatusReserved,
	}
}

func TestTruckInventory_AddBatch(t *testing.T) {
	t.Run("creates the product entry on first batch", func(t *testing.T) {
		inv := NewTruckInventory("TRK-1")

		batchID := inv.AddBatch("PRD-1", reservedBatch("task-a", 3))

		entry, ok := inv.Products["PRD-1"]
		if !ok {
			t.Fatal("product entry should be created")
		}
		if _, ok := entry.Batches[batchID]; !ok {
			t.Fatalf("batch %v not stored", batchID)
		}
		if entry.TotalPallets != 3 {
			t.Errorf("TotalPallets = %v, want 3", entry.TotalPallets)
		}
	})

	t.Run("total is always the sum of batch quantities", func(t *testing.T) {
		inv := NewTruckInventory("TRK-1")

		inv.AddBatch("PRD-1", reservedBatch("task-a", 3))
		inv.AddBatch("PRD-1", reservedBatch("task-b", 4))
		inv.AddBatch("PRD-1", reservedBatch("task-c", 5))

		entry := inv.Products["PRD-1"]
		sum := 0
		for _, batch := range entry.Batches {
			sum += batch.PalletQuantity
		}
		if entry.TotalPallets != sum || sum != 12 {
			t.Errorf("TotalPallets = %v, batch sum = %v, want 12", entry.TotalPallets, sum)
		}
	})

	t.Run("emits a reservation event", func(t *testing.T) {
		inv := NewTruckInventory("TRK-1")

		batchID := inv.AddBatch("PRD-1", reservedBatch("task-a", 2))

		if len(inv.DomainEvents) != 1 {
			t.Fatalf("event count = %v, want 1", len(inv.DomainEvents))
		}
		event, ok := inv.DomainEvents[0].(*BatchReservedEvent)
		if !ok {
			t.Fatalf("event = %T, want *BatchReservedEvent", inv.DomainEvents[0])
		}
		if event.BatchID != batchID || event.TaskID != "task-a" || event.TruckID != "TRK-1" {
			t.Errorf("event fields = %+v", event)
		}
	})
}

func TestTruckInventory_RemoveBatchesForTask(t *testing.T) {
	t.Run("removes matching batches across products and recomputes totals", func(t *testing.T) {
		inv := NewTruckInventory("TRK-1")
		inv.AddBatch("PRD-1", reservedBatch("task-a", 3))
		inv.AddBatch("PRD-1", reservedBatch("task-b", 2))
		inv.AddBatch("PRD-2", reservedBatch("task-a", 4))
		inv.ClearDomainEvents()

		removed := inv.RemoveBatchesForTask("task-a")

		if removed != 2 {
			t.Errorf("removed = %v, want 2", removed)
		}
		if inv.Products["PRD-1"].TotalPallets != 2 {
			t.Errorf("PRD-1 TotalPallets = %v, want 2", inv.Products["PRD-1"].TotalPallets)
		}
		if _, ok := inv.Products["PRD-2"]; ok {
			t.Error("empty product entry should be dropped")
		}
		if len(inv.DomainEvents) != 1 || inv.DomainEvents[0].EventType() != "inventory.batches-released" {
			t.Errorf("expected a single release event, got %v", inv.DomainEvents)
		}
	})

	t.Run("no matching batches emits nothing", func(t *testing.T) {
		inv := NewTruckInventory("TRK-1")
		inv.AddBatch("PRD-1", reservedBatch("task-a", 3))
		inv.ClearDomainEvents()

		removed := inv.RemoveBatchesForTask("task-z")

		if removed != 0 {
			t.Errorf("removed = %v, want 0", removed)
		}
		if len(inv.DomainEvents) != 0 {
			t.Errorf("no-op removal should not emit events, got %v", inv.DomainEvents)
		}
	})
}

func TestTruckInventory_SetBatchStatusForTask(t *testing.T) {
	t.Run("updates matching batches only", func(t *testing.T) {
		inv := NewTruckInventory("TRK-1")
		inv.AddBatch("PRD-1", reservedBatch("task-a", 3))
		inv.AddBatch("PRD-1", reservedBatch("task-b", 2))
		inv.ClearDomainEvents()

		updated := inv.SetBatchStatusForTask("task-a", BatchStatusLoaded)

		if updated != 1 {
			t.Errorf("updated = %v, want 1", updated)
		}
		for _, batch := range inv.Products["PRD-1"].Batches {
			want := BatchStatusReserved
			if batch.TaskID == "task-a" {
				want = BatchStatusLoaded
			}
			if batch.Status != want {
				t.Errorf("batch for %v status = %v, want %v", batch.TaskID, batch.Status, want)
			}
		}
		if len(inv.DomainEvents) != 1 || inv.DomainEvents[0].EventType() != "inventory.batch-status-changed" {
			t.Errorf("expected a single status change event, got %v", inv.DomainEvents)
		}
	})

	t.Run("quantities are untouched by a status change", func(t *testing.T) {
		inv := NewTruckInventory("TRK-1")
		inv.AddBatch("PRD-1", reservedBatch("task-a", 3))

		inv.SetBatchStatusForTask("task-a", BatchStatusLoaded)

		if inv.Products["PRD-1"].TotalPallets != 3 {
			t.Errorf("TotalPallets = %v, want 3", inv.Products["PRD-1"].TotalPallets)
		}
	})
}
