package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task errors
var (
	ErrInvalidEndpointType = errors.New("invalid endpoint type")
	ErrInvalidTaskStatus   = errors.New("invalid task status")
	ErrInvalidQuantity     = errors.New("pallet quantity must be positive")
)

// EndpointType identifies the kind of entity a task moves goods between
type EndpointType string

const (
	EndpointProduction EndpointType = "production"
	EndpointWarehouse  EndpointType = "warehouse"
	EndpointDelivery   EndpointType = "delivery"
	EndpointTruck      EndpointType = "truck"
)

// IsValid checks if the endpoint type is valid
func (t EndpointType) IsValid() bool {
	switch t {
	case EndpointProduction, EndpointWarehouse, EndpointDelivery, EndpointTruck:
		return true
	default:
		return false
	}
}

// TaskType classifies a movement by its endpoint pair
type TaskType string

const (
	TaskTypeProductionToWarehouse TaskType = "productionToWarehouse"
	TaskTypeProductionToTruck     TaskType = "productionToTruck"
	TaskTypeWarehouseToTruck      TaskType = "warehouseToTruck"
)

// DeriveTaskType maps an endpoint pair to its task type.
// Delivery destinations count as truck movements out of a warehouse.
func DeriveTaskType(fromType, toType EndpointType) TaskType {
	switch toType {
	case EndpointWarehouse:
		if fromType == EndpointProduction {
			return TaskTypeProductionToWarehouse
		}
		return TaskTypeWarehouseToTruck
	case EndpointTruck:
		if fromType == EndpointProduction {
			return TaskTypeProductionToTruck
		}
		return TaskTypeWarehouseToTruck
	default:
		return TaskTypeWarehouseToTruck
	}
}

// TaskStatus represents the lifecycle state of a task
type TaskStatus string

const (
	TaskStatusAwaitingPickup TaskStatus = "awaiting_pickup"
	TaskStatusInProgress     TaskStatus = "in_progress"
	TaskStatusCompleted      TaskStatus = "completed"
)

// IsValid checks if the status is valid
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusAwaitingPickup, TaskStatusInProgress, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// PalletState represents the state of a single pallet within a task
type PalletState string

const (
	PalletStatePending   PalletState = "pending"
	PalletStatePicked    PalletState = "picked"
	PalletStateDelivered PalletState = "delivered"
)

// PalletStatus pairs a pallet code with its current state
type PalletStatus struct {
	Code   string      `bson:"code" json:"code"`
	Status PalletState `bson:"status" json:"status"`
}

// Endpoint describes one side of a movement
type Endpoint struct {
	Type   EndpointType `bson:"type" json:"type"`
	ID     string       `bson:"id" json:"id"`
	Name   string       `bson:"name" json:"name"`
	QRCode string       `bson:"qrCode,omitempty" json:"qrCode,omitempty"`
}

// Task represents a unit of work moving pallets of one product between two endpoints
type Task struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	TaskID           string             `bson:"taskId"`
	TaskType         TaskType           `bson:"taskType"`
	Status           TaskStatus         `bson:"status"`
	ProductID        string             `bson:"productId"`
	ProductName      string             `bson:"productName"`
	ProductQRCode    string             `bson:"productQrCode"`
	ProductionNumber int64              `bson:"productionNumber"`
	From             Endpoint           `bson:"from"`
	To               Endpoint           `bson:"to"`
	AssignedTo       string             `bson:"assignedTo"`
	PalletQuantity   int                `bson:"palletQuantity"`
	PalletQRCodes    []string           `bson:"palletQrCodes"`
	PalletStatuses   []PalletStatus     `bson:"palletStatuses"`
	BatchID          string             `bson:"batchId,omitempty"`
	ExpirationDate   time.Time          `bson:"expirationDate"`
	CreatedAt        time.Time          `bson:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt"`
	DomainEvents     []DomainEvent      `bson:"-"`
}

// NewTask creates a new Task aggregate in awaiting_pickup state
func NewTask(
	taskID string,
	productID, productName, productQRCode string,
	productionNumber int64,
	from, to Endpoint,
	assignedTo string,
	palletQuantity int,
	palletCodes []string,
	expirationDate time.Time,
) (*Task, error) {
	if !from.Type.IsValid() || !to.Type.IsValid() {
		return nil, ErrInvalidEndpointType
	}
	if palletQuantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	now := time.Now().UTC()
	task := &Task{
		TaskID:           taskID,
		TaskType:         DeriveTaskType(from.Type, to.Type),
		Status:           TaskStatusAwaitingPickup,
		ProductID:        productID,
		ProductName:      productName,
		ProductQRCode:    productQRCode,
		ProductionNumber: productionNumber,
		From:             from,
		To:               to,
		AssignedTo:       assignedTo,
		PalletQuantity:   palletQuantity,
		PalletQRCodes:    palletCodes,
		PalletStatuses:   initialPalletStatuses(palletCodes),
		ExpirationDate:   expirationDate,
		CreatedAt:        now,
		UpdatedAt:        now,
		DomainEvents:     make([]DomainEvent, 0),
	}

	task.AddDomainEvent(&TaskCreatedEvent{
		TaskID:           taskID,
		TaskType:         string(task.TaskType),
		ProductID:        productID,
		Quantity:         palletQuantity,
		ProductionNumber: productionNumber,
		From:             from,
		To:               to,
		PalletCodes:      palletCodes,
		CreatedAt:        now,
	})

	return task, nil
}

func initialPalletStatuses(codes []string) []PalletStatus {
	statuses := make([]PalletStatus, len(codes))
	for i, code := range codes {
		statuses[i] = PalletStatus{Code: code, Status: PalletStatePending}
	}
	return statuses
}

// ApplyEdit replaces the task's mutable fields with freshly resolved values.
// A fresh production number and pallet codes are minted for every edit, the
// status returns to awaiting_pickup, and createdAt is refreshed. Truck
// inventory previously reserved for this task is left untouched.
func (t *Task) ApplyEdit(
	productID, productName, productQRCode string,
	productionNumber int64,
	from, to Endpoint,
	assignedTo string,
	palletQuantity int,
	palletCodes []string,
	expirationDate time.Time,
) error {
	if !from.Type.IsValid() || !to.Type.IsValid() {
		return ErrInvalidEndpointType
	}
	if palletQuantity <= 0 {
		return ErrInvalidQuantity
	}

	now := time.Now().UTC()
	t.TaskType = DeriveTaskType(from.Type, to.Type)
	t.Status = TaskStatusAwaitingPickup
	t.ProductID = productID
	t.ProductName = productName
	t.ProductQRCode = productQRCode
	t.ProductionNumber = productionNumber
	t.From = from
	t.To = to
	t.AssignedTo = assignedTo
	t.PalletQuantity = palletQuantity
	t.PalletQRCodes = palletCodes
	t.PalletStatuses = initialPalletStatuses(palletCodes)
	t.ExpirationDate = expirationDate
	t.CreatedAt = now
	t.UpdatedAt = now

	t.AddDomainEvent(&TaskUpdatedEvent{
		TaskID:           t.TaskID,
		TaskType:         string(t.TaskType),
		ProductID:        productID,
		Quantity:         palletQuantity,
		ProductionNumber: productionNumber,
		From:             from,
		To:               to,
		PalletCodes:      palletCodes,
		UpdatedAt:        now,
	})

	return nil
}

// SetStatus moves the task to the given status. Any status may be set from
// any other; there is no forward-only transition rule.
func (t *Task) SetStatus(status TaskStatus) error {
	if !status.IsValid() {
		return ErrInvalidTaskStatus
	}

	oldStatus := t.Status
	t.Status = status
	t.UpdatedAt = time.Now().UTC()

	t.AddDomainEvent(&TaskStatusChangedEvent{
		TaskID:    t.TaskID,
		OldStatus: string(oldStatus),
		NewStatus: string(status),
		ChangedAt: t.UpdatedAt,
	})

	return nil
}

// IsTruckBound reports whether the task's destination is a truck
func (t *Task) IsTruckBound() bool {
	return t.To.Type == EndpointTruck
}

// IsExpired reports whether the task's product has passed its expiration date
func (t *Task) IsExpired(now time.Time) bool {
	return !t.ExpirationDate.IsZero() && now.After(t.ExpirationDate)
}

// IsExpiringSoon reports whether the expiration date falls within the window
func (t *Task) IsExpiringSoon(now time.Time, window time.Duration) bool {
	if t.ExpirationDate.IsZero() || t.IsExpired(now) {
		return false
	}
	return t.ExpirationDate.Sub(now) <= window
}

// AddDomainEvent adds a domain event
func (t *Task) AddDomainEvent(event DomainEvent) {
	t.DomainEvents = append(t.DomainEvents, event)
}

// ClearDomainEvents clears all domain events
func (t *Task) ClearDomainEvents() {
	t.DomainEvents = make([]DomainEvent, 0)
}

// TaskCreatedEvent is emitted when a new task is created
type TaskCreatedEvent struct {
	TaskID           string    `json:"taskId"`
	TaskType         string    `json:"taskType"`
	ProductID        string    `json:"productId"`
	Quantity         int       `json:"quantity"`
	ProductionNumber int64     `json:"productionNumber"`
	From             Endpoint  `json:"from"`
	To               Endpoint  `json:"to"`
	PalletCodes      []string  `json:"palletCodes"`
	CreatedAt        time.Time `json:"createdAt"`
}

func (e *TaskCreatedEvent) EventType() string     { return "task.created" }
func (e *TaskCreatedEvent) OccurredAt() time.Time { return e.CreatedAt }

// TaskUpdatedEvent is emitted when a task is edited
type TaskUpdatedEvent struct {
	TaskID           string    `json:"taskId"`
	TaskType         string    `json:"taskType"`
	ProductID        string    `json:"productId"`
	Quantity         int       `json:"quantity"`
	ProductionNumber int64     `json:"productionNumber"`
	From             Endpoint  `json:"from"`
	To               Endpoint  `json:"to"`
	PalletCodes      []string  `json:"palletCodes"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (e *TaskUpdatedEvent) EventType() string     { return "task.updated" }
func (e *TaskUpdatedEvent) OccurredAt() time.Time { return e.UpdatedAt }

// TaskStatusChangedEvent is emitted when a task changes status
type TaskStatusChangedEvent struct {
	TaskID    string    `json:"taskId"`
	OldStatus string    `json:"oldStatus"`
	NewStatus string    `json:"newStatus"`
	ChangedAt time.Time `json:"changedAt"`
}

func (e *TaskStatusChangedEvent) EventType() string     { return "task.status-changed" }
func (e *TaskStatusChangedEvent) OccurredAt() time.Time { return e.ChangedAt }

// TaskDeletedEvent is emitted when a task is removed
type TaskDeletedEvent struct {
	TaskID    string    `json:"taskId"`
	TruckID   string    `json:"truckId,omitempty"`
	DeletedAt time.Time `json:"deletedAt"`
}

func (e *TaskDeletedEvent) EventType() string     { return "task.deleted" }
func (e *TaskDeletedEvent) OccurredAt() time.Time { return e.DeletedAt }
