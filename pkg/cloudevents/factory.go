package cloudevents

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/palletflow/dispatch-service/pkg/logging"
)

// EventFactory creates CloudEvents for dispatch domain events
type EventFactory struct {
	source string
}

// NewEventFactory creates a new EventFactory for a specific source
func NewEventFactory(source string) *EventFactory {
	return &EventFactory{source: source}
}

// CreateEvent creates a new DispatchCloudEvent with the given parameters
func (f *EventFactory) CreateEvent(
	ctx context.Context,
	eventType string,
	subject string,
	data interface{},
) *DispatchCloudEvent {
	event := &DispatchCloudEvent{
		SpecVersion:     "1.0",
		Type:            eventType,
		Source:          f.source,
		Subject:         subject,
		ID:              uuid.New().String(),
		Time:            time.Now().UTC(),
		DataContentType: "application/json",
		Data:            data,
	}

	if correlationID := logging.CorrelationIDFromContext(ctx); correlationID != "" {
		event.CorrelationID = correlationID
	}

	return event
}

// CreateTaskCreatedEvent creates a TaskCreated event
func (f *EventFactory) CreateTaskCreatedEvent(ctx context.Context, data TaskCreatedData) *DispatchCloudEvent {
	event := f.CreateEvent(ctx, TaskCreated, "task/"+data.TaskID, data)
	event.TaskID = data.TaskID
	return event
}

// CreateTaskUpdatedEvent creates a TaskUpdated event
func (f *EventFactory) CreateTaskUpdatedEvent(ctx context.Context, data TaskCreatedData) *DispatchCloudEvent {
	event := f.CreateEvent(ctx, TaskUpdated, "task/"+data.TaskID, data)
	event.TaskID = data.TaskID
	return event
}

// CreateTaskStatusChangedEvent creates a TaskStatusChanged event
func (f *EventFactory) CreateTaskStatusChangedEvent(ctx context.Context, data TaskStatusChangedData) *DispatchCloudEvent {
	event := f.CreateEvent(ctx, TaskStatusChanged, "task/"+data.TaskID, data)
	event.TaskID = data.TaskID
	return event
}

// CreateTaskDeletedEvent creates a TaskDeleted event
func (f *EventFactory) CreateTaskDeletedEvent(ctx context.Context, data TaskDeletedData) *DispatchCloudEvent {
	event := f.CreateEvent(ctx, TaskDeleted, "task/"+data.TaskID, data)
	event.TaskID = data.TaskID
	event.TruckID = data.TruckID
	return event
}

// CreateBatchReservedEvent creates a BatchReserved event
func (f *EventFactory) CreateBatchReservedEvent(ctx context.Context, data BatchReservedData) *DispatchCloudEvent {
	event := f.CreateEvent(ctx, BatchReserved, "truck/"+data.TruckID, data)
	event.TaskID = data.TaskID
	event.TruckID = data.TruckID
	return event
}

// CreateBatchesReleasedEvent creates a BatchesReleased event
func (f *EventFactory) CreateBatchesReleasedEvent(ctx context.Context, data BatchesReleasedData) *DispatchCloudEvent {
	event := f.CreateEvent(ctx, BatchesReleased, "truck/"+data.TruckID, data)
	event.TaskID = data.TaskID
	event.TruckID = data.TruckID
	return event
}

// CreateBatchStatusChangedEvent creates a BatchStatusChanged event
func (f *EventFactory) CreateBatchStatusChangedEvent(ctx context.Context, data BatchStatusChangedData) *DispatchCloudEvent {
	event := f.CreateEvent(ctx, BatchStatusChanged, "truck/"+data.TruckID, data)
	event.TaskID = data.TaskID
	event.TruckID = data.TruckID
	return event
}
