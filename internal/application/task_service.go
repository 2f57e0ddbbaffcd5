package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/palletflow/dispatch-service/internal/domain"
	"github.com/palletflow/dispatch-service/pkg/errors"
	"github.com/palletflow/dispatch-service/pkg/logging"
)

// defaultExpirationDays applies when neither the product catalog entry nor
// the request specifies a shelf life.
const defaultExpirationDays = 30

// TaskApplicationService coordinates task lifecycle operations with the
// catalog, the production sequence and the truck inventory ledger.
type TaskApplicationService struct {
	tasks     TaskRepository
	catalog   CatalogRepository
	sequence  ProductionSequence
	ledger    *InventoryLedgerService
	publisher EventPublisher
	logger    *logging.Logger
}

// NewTaskApplicationService creates a new task application service
func NewTaskApplicationService(
	tasks TaskRepository,
	catalog CatalogRepository,
	sequence ProductionSequence,
	ledger *InventoryLedgerService,
	publisher EventPublisher,
	logger *logging.Logger,
) *TaskApplicationService {
	return &TaskApplicationService{
		tasks:     tasks,
		catalog:   catalog,
		sequence:  sequence,
		ledger:    ledger,
		publisher: publisher,
		logger:    logger.WithComponent("task-service"),
	}
}

// CreateTask resolves the referenced catalog entities, mints a production
// number and pallet codes, persists the task and, for truck destinations,
// reserves a batch on the truck ledger.
func (s *TaskApplicationService) CreateTask(ctx context.Context, cmd CreateTaskCommand) (*TaskDTO, error) {
	product, driver, from, to, err := s.resolveReferences(ctx, cmd.ProductID, cmd.AssignedTo, cmd.FromType, cmd.FromID, cmd.ToType, cmd.ToID)
	if err != nil {
		return nil, err
	}

	productionNumber, err := s.sequence.Next(ctx)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("failed to allocate production number")
		return nil, fmt.Errorf("failed to allocate production number: %w", err)
	}

	expirationDate := computeExpirationDate(product.ExpiryDays, cmd.ExpirationDays)

	palletCodes, err := domain.GeneratePalletCodes(product.QRCode, productionNumber, cmd.PalletQuantity, to.Name)
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	taskID := uuid.New().String()
	task, err := domain.NewTask(
		taskID,
		product.ProductID, product.Name, product.QRCode,
		productionNumber,
		from, to,
		driver.UserID,
		cmd.PalletQuantity,
		palletCodes,
		expirationDate,
	)
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := s.tasks.Save(ctx, task); err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("failed to save task", "task_id", taskID)
		return nil, fmt.Errorf("failed to save task: %w", err)
	}

	if task.IsTruckBound() {
		batchID, reserveErr := s.ledger.AddBatch(ctx, to.ID, product.ProductID, domain.Batch{
			ExpirationDate:   expirationDate,
			PalletQuantity:   cmd.PalletQuantity,
			ProductionNumber: productionNumber,
			TaskID:           taskID,
			Status:           domain.BatchStatusReserved,
		})
		if reserveErr != nil {
			s.logger.WithContext(ctx).WithError(reserveErr).Error("task created but inventory not reserved",
				"task_id", taskID, "truck_id", to.ID)
			return nil, errors.ErrInventoryNotReserved(taskID).Wrap(reserveErr)
		}

		task.BatchID = batchID
		if err := s.tasks.Save(ctx, task); err != nil {
			s.logger.WithContext(ctx).WithError(err).Error("failed to record batch id on task",
				"task_id", taskID, "batch_id", batchID)
			return nil, fmt.Errorf("failed to save task: %w", err)
		}
	}

	s.publishEvents(ctx, task)

	s.logger.WithContext(ctx).LogBusinessEvent(ctx, logging.BusinessEvent{
		EventType:  "task_created",
		EntityType: "task",
		EntityID:   taskID,
		Action:     "create",
		RelatedIDs: map[string]string{"product_id": product.ProductID, "assigned_to": driver.UserID},
	})

	return ToTaskDTO(task), nil
}

// UpdateTask rebuilds an existing task from freshly resolved references.
// The edit mints a new production number and pallet codes and resets the
// status; batches reserved under the previous version stay on the truck.
func (s *TaskApplicationService) UpdateTask(ctx context.Context, cmd UpdateTaskCommand) (*TaskDTO, error) {
	task, err := s.loadTask(ctx, cmd.TaskID)
	if err != nil {
		return nil, err
	}

	product, driver, from, to, err := s.resolveReferences(ctx, cmd.ProductID, cmd.AssignedTo, cmd.FromType, cmd.FromID, cmd.ToType, cmd.ToID)
	if err != nil {
		return nil, err
	}

	productionNumber, err := s.sequence.Next(ctx)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("failed to allocate production number")
		return nil, fmt.Errorf("failed to allocate production number: %w", err)
	}

	expirationDate := computeExpirationDate(product.ExpiryDays, cmd.ExpirationDays)

	palletCodes, err := domain.GeneratePalletCodes(product.QRCode, productionNumber, cmd.PalletQuantity, to.Name)
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := task.ApplyEdit(
		product.ProductID, product.Name, product.QRCode,
		productionNumber,
		from, to,
		driver.UserID,
		cmd.PalletQuantity,
		palletCodes,
		expirationDate,
	); err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := s.tasks.Save(ctx, task); err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("failed to save task", "task_id", task.TaskID)
		return nil, fmt.Errorf("failed to save task: %w", err)
	}

	s.publishEvents(ctx, task)

	s.logger.WithContext(ctx).LogBusinessEvent(ctx, logging.BusinessEvent{
		EventType:  "task_updated",
		EntityType: "task",
		EntityID:   task.TaskID,
		Action:     "update",
		RelatedIDs: map[string]string{"product_id": product.ProductID},
	})

	return ToTaskDTO(task), nil
}

// ChangeStatus moves a task to a new lifecycle status. Completing a
// truck-bound task marks its reserved batches as loaded.
func (s *TaskApplicationService) ChangeStatus(ctx context.Context, cmd ChangeTaskStatusCommand) (*TaskDTO, error) {
	task, err := s.loadTask(ctx, cmd.TaskID)
	if err != nil {
		return nil, err
	}

	if err := task.SetStatus(domain.TaskStatus(cmd.Status)); err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := s.tasks.UpdateStatus(ctx, task.TaskID, task.Status); err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("failed to update task status", "task_id", task.TaskID)
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	if task.Status == domain.TaskStatusCompleted && task.IsTruckBound() {
		if _, err := s.ledger.SetBatchStatusForTask(ctx, task.To.ID, task.TaskID, domain.BatchStatusLoaded); err != nil {
			s.logger.WithContext(ctx).WithError(err).Error("failed to mark batches as loaded",
				"task_id", task.TaskID, "truck_id", task.To.ID)
			return nil, errors.ErrStore("mark batches loaded").Wrap(err)
		}
	}

	s.publishEvents(ctx, task)

	return ToTaskDTO(task), nil
}

// DeleteTask releases any batches the task reserved and removes the task.
// Reserved inventory is freed before the task document goes away so a
// failure cannot strand batches that no task references.
func (s *TaskApplicationService) DeleteTask(ctx context.Context, cmd DeleteTaskCommand) error {
	task, err := s.loadTask(ctx, cmd.TaskID)
	if err != nil {
		return err
	}

	truckID := ""
	if task.IsTruckBound() {
		truckID = task.To.ID
		if _, err := s.ledger.RemoveBatchesForTask(ctx, truckID, task.TaskID); err != nil {
			s.logger.WithContext(ctx).WithError(err).Error("failed to release batches before delete",
				"task_id", task.TaskID, "truck_id", truckID)
			return fmt.Errorf("failed to release reserved batches: %w", err)
		}
	}

	if err := s.tasks.Delete(ctx, task.TaskID); err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("failed to delete task", "task_id", task.TaskID)
		return fmt.Errorf("failed to delete task: %w", err)
	}

	if s.publisher != nil {
		event := &domain.TaskDeletedEvent{
			TaskID:    task.TaskID,
			TruckID:   truckID,
			DeletedAt: time.Now().UTC(),
		}
		if err := s.publisher.Publish(ctx, []domain.DomainEvent{event}); err != nil {
			s.logger.WithContext(ctx).WithError(err).Warn("failed to publish task deleted event", "task_id", task.TaskID)
		}
	}

	s.logger.WithContext(ctx).LogBusinessEvent(ctx, logging.BusinessEvent{
		EventType:  "task_deleted",
		EntityType: "task",
		EntityID:   task.TaskID,
		Action:     "delete",
		RelatedIDs: map[string]string{"truck_id": truckID},
	})

	return nil
}

// GetTask returns a single task by its identifier
func (s *TaskApplicationService) GetTask(ctx context.Context, taskID string) (*TaskDTO, error) {
	task, err := s.loadTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return ToTaskDTO(task), nil
}

// ListTasks returns every task
func (s *TaskApplicationService) ListTasks(ctx context.Context) ([]*TaskDTO, error) {
	tasks, err := s.tasks.FindAll(ctx)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("failed to list tasks")
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return ToTaskDTOs(tasks), nil
}

func (s *TaskApplicationService) loadTask(ctx context.Context, taskID string) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("failed to load task", "task_id", taskID)
		return nil, fmt.Errorf("failed to load task: %w", err)
	}
	if task == nil {
		return nil, errors.ErrNotFoundWithID("task", taskID)
	}
	return task, nil
}

func (s *TaskApplicationService) resolveReferences(
	ctx context.Context,
	productID, assignedTo, fromType, fromID, toType, toID string,
) (*domain.Product, *domain.Driver, domain.Endpoint, domain.Endpoint, error) {
	var empty domain.Endpoint

	product, err := s.catalog.FindProduct(ctx, productID)
	if err != nil {
		return nil, nil, empty, empty, fmt.Errorf("failed to resolve product: %w", err)
	}
	if product == nil {
		return nil, nil, empty, empty, errors.ErrValidation(fmt.Sprintf("product %s does not exist", productID))
	}

	driver, err := s.catalog.FindDriver(ctx, assignedTo)
	if err != nil {
		return nil, nil, empty, empty, fmt.Errorf("failed to resolve driver: %w", err)
	}
	if driver == nil {
		return nil, nil, empty, empty, errors.ErrValidation(fmt.Sprintf("driver %s does not exist", assignedTo))
	}

	from, err := s.resolveEndpoint(ctx, domain.EndpointType(fromType), fromID)
	if err != nil {
		return nil, nil, empty, empty, err
	}

	to, err := s.resolveEndpoint(ctx, domain.EndpointType(toType), toID)
	if err != nil {
		return nil, nil, empty, empty, err
	}

	return product, driver, from, to, nil
}

func (s *TaskApplicationService) resolveEndpoint(ctx context.Context, endpointType domain.EndpointType, id string) (domain.Endpoint, error) {
	var empty domain.Endpoint

	switch endpointType {
	case domain.EndpointProduction:
		line, err := s.catalog.FindProductionLine(ctx, id)
		if err != nil {
			return empty, fmt.Errorf("failed to resolve production line: %w", err)
		}
		if line == nil {
			return empty, errors.ErrValidation(fmt.Sprintf("production line %s does not exist", id))
		}
		return domain.Endpoint{Type: endpointType, ID: line.LineID, Name: line.Name, QRCode: line.QRCode}, nil

	case domain.EndpointWarehouse:
		warehouse, err := s.catalog.FindWarehouse(ctx, id)
		if err != nil {
			return empty, fmt.Errorf("failed to resolve warehouse: %w", err)
		}
		if warehouse == nil {
			return empty, errors.ErrValidation(fmt.Sprintf("warehouse %s does not exist", id))
		}
		return domain.Endpoint{Type: endpointType, ID: warehouse.WarehouseID, Name: warehouse.Name, QRCode: warehouse.QRCode}, nil

	case domain.EndpointDelivery:
		point, err := s.catalog.FindDeliveryPoint(ctx, id)
		if err != nil {
			return empty, fmt.Errorf("failed to resolve delivery point: %w", err)
		}
		if point == nil {
			return empty, errors.ErrValidation(fmt.Sprintf("delivery point %s does not exist", id))
		}
		return domain.Endpoint{Type: endpointType, ID: point.PointID, Name: point.Name, QRCode: point.QRCode}, nil

	case domain.EndpointTruck:
		truck, err := s.catalog.FindTruck(ctx, id)
		if err != nil {
			return empty, fmt.Errorf("failed to resolve truck: %w", err)
		}
		if truck == nil {
			return empty, errors.ErrValidation(fmt.Sprintf("truck %s does not exist", id))
		}
		return domain.Endpoint{Type: endpointType, ID: truck.TruckID, Name: truck.Name, QRCode: truck.QRCode}, nil

	default:
		return empty, errors.ErrValidation(fmt.Sprintf("invalid endpoint type: %s", endpointType))
	}
}

func (s *TaskApplicationService) publishEvents(ctx context.Context, task *domain.Task) {
	if s.publisher == nil || len(task.DomainEvents) == 0 {
		task.ClearDomainEvents()
		return
	}
	if err := s.publisher.Publish(ctx, task.DomainEvents); err != nil {
		s.logger.WithContext(ctx).WithError(err).Warn("failed to publish task events", "task_id", task.TaskID)
	}
	task.ClearDomainEvents()
}

func computeExpirationDate(productDays, requestedDays int) time.Time {
	days := defaultExpirationDays
	switch {
	case productDays > 0:
		days = productDays
	case requestedDays > 0:
		days = requestedDays
	}
	return time.Now().UTC().AddDate(0, 0, days)
}
