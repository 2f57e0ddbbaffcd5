package cloudevents

import (
	"time"
)

// EventType constants for dispatch domain events
const (
	// Task events
	TaskCreated       = "dispatch.task.created"
	TaskUpdated       = "dispatch.task.updated"
	TaskStatusChanged = "dispatch.task.status-changed"
	TaskDeleted       = "dispatch.task.deleted"

	// Inventory events
	BatchReserved      = "dispatch.inventory.batch-reserved"
	BatchesReleased    = "dispatch.inventory.batches-released"
	BatchStatusChanged = "dispatch.inventory.batch-status-changed"
)

// Source constants for event sources
const (
	SourceDispatch = "/palletflow/dispatch-service"
)

// DispatchCloudEvent represents a CloudEvents v1.0 compliant event
type DispatchCloudEvent struct {
	SpecVersion     string      `json:"specversion"`
	Type            string      `json:"type"`
	Source          string      `json:"source"`
	Subject         string      `json:"subject,omitempty"`
	ID              string      `json:"id"`
	Time            time.Time   `json:"time"`
	DataContentType string      `json:"datacontenttype"`
	Data            interface{} `json:"data"`

	// Dispatch-specific extensions
	CorrelationID string `json:"dispatchcorrelationid,omitempty"`
	TaskID        string `json:"dispatchtaskid,omitempty"`
	TruckID       string `json:"dispatchtruckid,omitempty"`
}

// TaskCreatedData represents the data payload for TaskCreated events
type TaskCreatedData struct {
	TaskID           string   `json:"taskId"`
	TaskType         string   `json:"taskType"`
	ProductID        string   `json:"productId"`
	Quantity         int      `json:"quantity"`
	ProductionNumber int64    `json:"productionNumber"`
	FromType         string   `json:"fromType"`
	FromID           string   `json:"fromId"`
	ToType           string   `json:"toType"`
	ToID             string   `json:"toId"`
	BatchID          string   `json:"batchId,omitempty"`
	PalletCodes      []string `json:"palletCodes"`
}

// TaskStatusChangedData represents the data payload for TaskStatusChanged events
type TaskStatusChangedData struct {
	TaskID         string `json:"taskId"`
	PreviousStatus string `json:"previousStatus"`
	NewStatus      string `json:"newStatus"`
}

// TaskDeletedData represents the data payload for TaskDeleted events
type TaskDeletedData struct {
	TaskID  string `json:"taskId"`
	TruckID string `json:"truckId,omitempty"`
}

// BatchReservedData represents the data payload for BatchReserved events
type BatchReservedData struct {
	TruckID          string    `json:"truckId"`
	ProductID        string    `json:"productId"`
	BatchID          string    `json:"batchId"`
	TaskID           string    `json:"taskId"`
	PalletQuantity   int       `json:"palletQuantity"`
	ProductionNumber int64     `json:"productionNumber"`
	ExpirationDate   time.Time `json:"expirationDate"`
}

// BatchesReleasedData represents the data payload for BatchesReleased events
type BatchesReleasedData struct {
	TruckID      string `json:"truckId"`
	TaskID       string `json:"taskId"`
	BatchesFreed int    `json:"batchesFreed"`
}

// BatchStatusChangedData represents the data payload for BatchStatusChanged events
type BatchStatusChangedData struct {
	TruckID   string `json:"truckId"`
	TaskID    string `json:"taskId"`
	NewStatus string `json:"newStatus"`
}
