package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/palletflow/dispatch-service/internal/domain"
	"github.com/palletflow/dispatch-service/pkg/errors"
	"github.com/palletflow/dispatch-service/pkg/logging"
)

// InventoryLedgerService owns all mutations of per-truck inventory.
// Every write is a read-modify-write of the whole truck document, so
// writes to the same truck are serialized through a per-truck lock.
type InventoryLedgerService struct {
	inventories TruckInventoryRepository
	publisher   EventPublisher
	logger      *logging.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewInventoryLedgerService creates a new inventory ledger service
func NewInventoryLedgerService(
	inventories TruckInventoryRepository,
	publisher EventPublisher,
	logger *logging.Logger,
) *InventoryLedgerService {
	return &InventoryLedgerService{
		inventories: inventories,
		publisher:   publisher,
		logger:      logger.WithComponent("inventory-ledger"),
		locks:       make(map[string]*sync.Mutex),
	}
}

// truckLock returns the mutex for one truck, creating it on first use.
// Entries are never pruned; the map holds at most one entry per truck
// in the fleet.
func (s *InventoryLedgerService) truckLock(truckID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[truckID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[truckID] = lock
	}
	return lock
}

// AddBatch reserves a batch of pallets on a truck and returns the new
// batch identifier. The truck must already exist in the ledger.
func (s *InventoryLedgerService) AddBatch(ctx context.Context, truckID, productID string, batch domain.Batch) (string, error) {
	lock := s.truckLock(truckID)
	lock.Lock()
	defer lock.Unlock()

	inv, err := s.inventories.Load(ctx, truckID)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("failed to load truck inventory", "truck_id", truckID)
		return "", fmt.Errorf("failed to load truck inventory: %w", err)
	}
	if inv == nil {
		return "", errors.ErrNotFoundWithID("truck", truckID)
	}

	batchID := inv.AddBatch(productID, batch)

	if err := s.inventories.Save(ctx, inv); err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("failed to save truck inventory",
			"truck_id", truckID, "batch_id", batchID)
		return "", fmt.Errorf("failed to save truck inventory: %w", err)
	}

	s.publishEvents(ctx, inv)

	s.logger.WithContext(ctx).LogBusinessEvent(ctx, logging.BusinessEvent{
		EventType:  "batch_reserved",
		EntityType: "truck_inventory",
		EntityID:   truckID,
		Action:     "add_batch",
		RelatedIDs: map[string]string{"batch_id": batchID, "product_id": productID, "task_id": batch.TaskID},
	})

	return batchID, nil
}

// RemoveBatchesForTask frees every batch a task reserved, on any product
// of the truck. Missing trucks and tasks with no batches are a no-op.
func (s *InventoryLedgerService) RemoveBatchesForTask(ctx context.Context, truckID, taskID string) (int, error) {
	lock := s.truckLock(truckID)
	lock.Lock()
	defer lock.Unlock()

	inv, err := s.inventories.Load(ctx, truckID)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("failed to load truck inventory", "truck_id", truckID)
		return 0, fmt.Errorf("failed to load truck inventory: %w", err)
	}
	if inv == nil {
		return 0, nil
	}

	removed := inv.RemoveBatchesForTask(taskID)
	if removed == 0 {
		return 0, nil
	}

	if err := s.inventories.Save(ctx, inv); err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("failed to save truck inventory",
			"truck_id", truckID, "task_id", taskID)
		return 0, fmt.Errorf("failed to save truck inventory: %w", err)
	}

	s.publishEvents(ctx, inv)

	s.logger.WithContext(ctx).LogBusinessEvent(ctx, logging.BusinessEvent{
		EventType:  "batches_released",
		EntityType: "truck_inventory",
		EntityID:   truckID,
		Action:     "remove_batches",
		RelatedIDs: map[string]string{"task_id": taskID},
	})

	return removed, nil
}

// SetBatchStatusForTask updates the status of every batch a task
// reserved. Missing trucks and tasks with no batches are a no-op.
func (s *InventoryLedgerService) SetBatchStatusForTask(ctx context.Context, truckID, taskID string, status domain.BatchStatus) (int, error) {
	if !status.IsValid() {
		return 0, errors.ErrValidation(fmt.Sprintf("invalid batch status: %s", status))
	}

	lock := s.truckLock(truckID)
	lock.Lock()
	defer lock.Unlock()

	inv, err := s.inventories.Load(ctx, truckID)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("failed to load truck inventory", "truck_id", truckID)
		return 0, fmt.Errorf("failed to load truck inventory: %w", err)
	}
	if inv == nil {
		return 0, nil
	}

	updated := inv.SetBatchStatusForTask(taskID, status)
	if updated == 0 {
		return 0, nil
	}

	if err := s.inventories.Save(ctx, inv); err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("failed to save truck inventory",
			"truck_id", truckID, "task_id", taskID)
		return 0, fmt.Errorf("failed to save truck inventory: %w", err)
	}

	s.publishEvents(ctx, inv)

	return updated, nil
}

// GetTruckInventory returns the current ledger of one truck
func (s *InventoryLedgerService) GetTruckInventory(ctx context.Context, truckID string) (*TruckInventoryDTO, error) {
	inv, err := s.inventories.Load(ctx, truckID)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("failed to load truck inventory", "truck_id", truckID)
		return nil, fmt.Errorf("failed to load truck inventory: %w", err)
	}
	if inv == nil {
		return nil, errors.ErrNotFoundWithID("truck", truckID)
	}
	return ToTruckInventoryDTO(inv), nil
}

func (s *InventoryLedgerService) publishEvents(ctx context.Context, inv *domain.TruckInventory) {
	if s.publisher == nil || len(inv.DomainEvents) == 0 {
		inv.ClearDomainEvents()
		return
	}
	if err := s.publisher.Publish(ctx, inv.DomainEvents); err != nil {
		s.logger.WithContext(ctx).WithError(err).Warn("failed to publish inventory events", "truck_id", inv.TruckID)
	}
	inv.ClearDomainEvents()
}
