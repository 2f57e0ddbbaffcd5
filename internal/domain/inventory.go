package domain

import (
	"fmt"
	"math/rand"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BatchStatus represents the ledger state of an inventory batch
type BatchStatus string

const (
	BatchStatusReserved BatchStatus = "reserved"
	BatchStatusLoaded   BatchStatus = "loaded"
)

// IsValid checks if the batch status is valid
func (s BatchStatus) IsValid() bool {
	switch s {
	case BatchStatusReserved, BatchStatusLoaded:
		return true
	default:
		return false
	}
}

const batchIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewBatchID mints a batch identifier unique within a product's batch mapping
func NewBatchID() string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = batchIDAlphabet[rand.Intn(len(batchIDAlphabet))]
	}
	return fmt.Sprintf("batch_%d_%s", time.Now().UnixMilli(), suffix)
}

// Batch is a reservation or confirmed load of pallets for one product on one truck
type Batch struct {
	ExpirationDate   time.Time   `bson:"expirationDate" json:"expirationDate"`
	PalletQuantity   int         `bson:"palletQuantity" json:"palletQuantity"`
	ProductionNumber int64       `bson:"productionNumber" json:"productionNumber"`
	TaskID           string      `bson:"taskId" json:"taskId"`
	Status           BatchStatus `bson:"status" json:"status"`
}

// ProductInventory holds all batches of one product inside a truck
type ProductInventory struct {
	Batches      map[string]Batch `bson:"batches" json:"batches"`
	TotalPallets int              `bson:"totalPallets" json:"totalPallets"`
}

// TruckInventory is the per-truck ledger of reserved and loaded batches.
// TotalPallets for each product entry always equals the sum of that
// product's batch quantities; a product entry with zero batches is removed.
type TruckInventory struct {
	ID           primitive.ObjectID           `bson:"_id,omitempty"`
	TruckID      string                       `bson:"truckId"`
	Products     map[string]*ProductInventory `bson:"inventory"`
	DomainEvents []DomainEvent                `bson:"-"`
}

// NewTruckInventory creates an empty ledger for a truck
func NewTruckInventory(truckID string) *TruckInventory {
	return &TruckInventory{
		TruckID:      truckID,
		Products:     make(map[string]*ProductInventory),
		DomainEvents: make([]DomainEvent, 0),
	}
}

// AddBatch inserts a new batch for a product and recomputes the product total.
// Returns the generated batch id.
func (inv *TruckInventory) AddBatch(productID string, batch Batch) string {
	if inv.Products == nil {
		inv.Products = make(map[string]*ProductInventory)
	}

	entry, ok := inv.Products[productID]
	if !ok {
		entry = &ProductInventory{
			Batches:      make(map[string]Batch),
			TotalPallets: 0,
		}
		inv.Products[productID] = entry
	}

	batchID := NewBatchID()
	entry.Batches[batchID] = batch
	entry.TotalPallets = sumPallets(entry.Batches)

	inv.AddDomainEvent(&BatchReservedEvent{
		TruckID:          inv.TruckID,
		ProductID:        productID,
		BatchID:          batchID,
		TaskID:           batch.TaskID,
		PalletQuantity:   batch.PalletQuantity,
		ProductionNumber: batch.ProductionNumber,
		ExpirationDate:   batch.ExpirationDate,
		ReservedAt:       time.Now().UTC(),
	})

	return batchID
}

// RemoveBatchesForTask deletes every batch referencing the task, recomputes
// product totals, and drops product entries left with zero batches.
// Returns the number of batches removed; zero means the call was a no-op.
func (inv *TruckInventory) RemoveBatchesForTask(taskID string) int {
	removed := 0

	for productID, entry := range inv.Products {
		for batchID, batch := range entry.Batches {
			if batch.TaskID == taskID {
				delete(entry.Batches, batchID)
				removed++
			}
		}

		entry.TotalPallets = sumPallets(entry.Batches)

		if len(entry.Batches) == 0 {
			delete(inv.Products, productID)
		}
	}

	if removed > 0 {
		inv.AddDomainEvent(&BatchesReleasedEvent{
			TruckID:      inv.TruckID,
			TaskID:       taskID,
			BatchesFreed: removed,
			ReleasedAt:   time.Now().UTC(),
		})
	}

	return removed
}

// SetBatchStatusForTask moves every batch referencing the task to the given
// status. Quantities, totals, and expiration dates are left unchanged.
// Returns the number of batches updated.
func (inv *TruckInventory) SetBatchStatusForTask(taskID string, status BatchStatus) int {
	updated := 0

	for _, entry := range inv.Products {
		for batchID, batch := range entry.Batches {
			if batch.TaskID == taskID {
				batch.Status = status
				entry.Batches[batchID] = batch
				updated++
			}
		}
	}

	if updated > 0 {
		inv.AddDomainEvent(&BatchStatusChangedEvent{
			TruckID:   inv.TruckID,
			TaskID:    taskID,
			NewStatus: string(status),
			ChangedAt: time.Now().UTC(),
		})
	}

	return updated
}

func sumPallets(batches map[string]Batch) int {
	total := 0
	for _, batch := range batches {
		total += batch.PalletQuantity
	}
	return total
}

// AddDomainEvent adds a domain event
func (inv *TruckInventory) AddDomainEvent(event DomainEvent) {
	inv.DomainEvents = append(inv.DomainEvents, event)
}

// ClearDomainEvents clears all domain events
func (inv *TruckInventory) ClearDomainEvents() {
	inv.DomainEvents = make([]DomainEvent, 0)
}

// BatchReservedEvent is emitted when a batch is added to a truck ledger
type BatchReservedEvent struct {
	TruckID          string    `json:"truckId"`
	ProductID        string    `json:"productId"`
	BatchID          string    `json:"batchId"`
	TaskID           string    `json:"taskId"`
	PalletQuantity   int       `json:"palletQuantity"`
	ProductionNumber int64     `json:"productionNumber"`
	ExpirationDate   time.Time `json:"expirationDate"`
	ReservedAt       time.Time `json:"reservedAt"`
}

func (e *BatchReservedEvent) EventType() string     { return "inventory.batch-reserved" }
func (e *BatchReservedEvent) OccurredAt() time.Time { return e.ReservedAt }

// BatchesReleasedEvent is emitted when a task's batches are removed
type BatchesReleasedEvent struct {
	TruckID      string    `json:"truckId"`
	TaskID       string    `json:"taskId"`
	BatchesFreed int       `json:"batchesFreed"`
	ReleasedAt   time.Time `json:"releasedAt"`
}

func (e *BatchesReleasedEvent) EventType() string     { return "inventory.batches-released" }
func (e *BatchesReleasedEvent) OccurredAt() time.Time { return e.ReleasedAt }

// BatchStatusChangedEvent is emitted when a task's batches change status
type BatchStatusChangedEvent struct {
	TruckID   string    `json:"truckId"`
	TaskID    string    `json:"taskId"`
	NewStatus string    `json:"newStatus"`
	ChangedAt time.Time `json:"changedAt"`
}

func (e *BatchStatusChangedEvent) EventType() string     { return "inventory.batch-status-changed" }
func (e *BatchStatusChangedEvent) OccurredAt() time.Time { return e.ChangedAt }
