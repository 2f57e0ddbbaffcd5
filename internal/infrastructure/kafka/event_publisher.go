package kafka

import (
	"context"
	"fmt"

	"github.com/palletflow/dispatch-service/internal/domain"
	"github.com/palletflow/dispatch-service/pkg/cloudevents"
	"github.com/palletflow/dispatch-service/pkg/kafka"
	"github.com/palletflow/dispatch-service/pkg/logging"
)

// EventPublisher converts domain events to cloud events and routes them to
// their topics: task lifecycle events go to the tasks topic, ledger events
// to the inventory topic.
type EventPublisher struct {
	producer     *kafka.InstrumentedProducer
	eventFactory *cloudevents.EventFactory
	logger       *logging.Logger
}

// NewEventPublisher creates a new EventPublisher
func NewEventPublisher(
	producer *kafka.InstrumentedProducer,
	eventFactory *cloudevents.EventFactory,
	logger *logging.Logger,
) *EventPublisher {
	return &EventPublisher{
		producer:     producer,
		eventFactory: eventFactory,
		logger:       logger.WithComponent("event-publisher"),
	}
}

// Publish sends every domain event to its topic. Events that fail to publish
// are logged and reported; earlier events in the batch stay published.
func (p *EventPublisher) Publish(ctx context.Context, events []domain.DomainEvent) error {
	for _, event := range events {
		topic, cloudEvent := p.convert(ctx, event)
		if cloudEvent == nil {
			p.logger.WithContext(ctx).Warn("skipping unmapped domain event", "event_type", event.EventType())
			continue
		}

		if err := p.producer.PublishEvent(ctx, topic, cloudEvent); err != nil {
			return fmt.Errorf("failed to publish %s: %w", event.EventType(), err)
		}
	}
	return nil
}

func (p *EventPublisher) convert(ctx context.Context, event domain.DomainEvent) (string, *cloudevents.DispatchCloudEvent) {
	switch e := event.(type) {
	case *domain.TaskCreatedEvent:
		return kafka.Topics.TasksEvents, p.eventFactory.CreateTaskCreatedEvent(ctx, cloudevents.TaskCreatedData{
			TaskID:           e.TaskID,
			TaskType:         e.TaskType,
			ProductID:        e.ProductID,
			Quantity:         e.Quantity,
			ProductionNumber: e.ProductionNumber,
			FromType:         string(e.From.Type),
			FromID:           e.From.ID,
			ToType:           string(e.To.Type),
			ToID:             e.To.ID,
			PalletCodes:      e.PalletCodes,
		})

	case *domain.TaskUpdatedEvent:
		return kafka.Topics.TasksEvents, p.eventFactory.CreateTaskUpdatedEvent(ctx, cloudevents.TaskCreatedData{
			TaskID:           e.TaskID,
			TaskType:         e.TaskType,
			ProductID:        e.ProductID,
			Quantity:         e.Quantity,
			ProductionNumber: e.ProductionNumber,
			FromType:         string(e.From.Type),
			FromID:           e.From.ID,
			ToType:           string(e.To.Type),
			ToID:             e.To.ID,
			PalletCodes:      e.PalletCodes,
		})

	case *domain.TaskStatusChangedEvent:
		return kafka.Topics.TasksEvents, p.eventFactory.CreateTaskStatusChangedEvent(ctx, cloudevents.TaskStatusChangedData{
			TaskID:         e.TaskID,
			PreviousStatus: e.OldStatus,
			NewStatus:      e.NewStatus,
		})

	case *domain.TaskDeletedEvent:
		return kafka.Topics.TasksEvents, p.eventFactory.CreateTaskDeletedEvent(ctx, cloudevents.TaskDeletedData{
			TaskID:  e.TaskID,
			TruckID: e.TruckID,
		})

	case *domain.BatchReservedEvent:
		return kafka.Topics.InventoryEvents, p.eventFactory.CreateBatchReservedEvent(ctx, cloudevents.BatchReservedData{
			TruckID:          e.TruckID,
			ProductID:        e.ProductID,
			BatchID:          e.BatchID,
			TaskID:           e.TaskID,
			PalletQuantity:   e.PalletQuantity,
			ProductionNumber: e.ProductionNumber,
			ExpirationDate:   e.ExpirationDate,
		})

	case *domain.BatchesReleasedEvent:
		return kafka.Topics.InventoryEvents, p.eventFactory.CreateBatchesReleasedEvent(ctx, cloudevents.BatchesReleasedData{
			TruckID:      e.TruckID,
			TaskID:       e.TaskID,
			BatchesFreed: e.BatchesFreed,
		})

	case *domain.BatchStatusChangedEvent:
		return kafka.Topics.InventoryEvents, p.eventFactory.CreateBatchStatusChangedEvent(ctx, cloudevents.BatchStatusChangedData{
			TruckID:   e.TruckID,
			TaskID:    e.TaskID,
			NewStatus: e.NewStatus,
		})

	default:
		return "", nil
	}
}
