package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/palletflow/dispatch-service/internal/application"
	"github.com/palletflow/dispatch-service/internal/domain"
	"github.com/palletflow/dispatch-service/pkg/errors"
	"github.com/palletflow/dispatch-service/pkg/logging"
	"github.com/palletflow/dispatch-service/pkg/middleware"
)

// TaskService is the application surface the task handlers depend on
type TaskService interface {
	CreateTask(ctx context.Context, cmd application.CreateTaskCommand) (*application.TaskDTO, error)
	UpdateTask(ctx context.Context, cmd application.UpdateTaskCommand) (*application.TaskDTO, error)
	ChangeStatus(ctx context.Context, cmd application.ChangeTaskStatusCommand) (*application.TaskDTO, error)
	DeleteTask(ctx context.Context, cmd application.DeleteTaskCommand) error
	GetTask(ctx context.Context, taskID string) (*application.TaskDTO, error)
	ListTasks(ctx context.Context) ([]*application.TaskDTO, error)
}

// LedgerService is the truck inventory surface the handlers depend on
type LedgerService interface {
	GetTruckInventory(ctx context.Context, truckID string) (*application.TruckInventoryDTO, error)
}

// TaskHandlers contains handlers for task lifecycle operations
type TaskHandlers struct {
	service  TaskService
	ledger   LedgerService
	logger   *logging.Logger
	business *middleware.BusinessMetrics
}

// NewTaskHandlers creates a new TaskHandlers
func NewTaskHandlers(service TaskService, ledger LedgerService, logger *logging.Logger, business *middleware.BusinessMetrics) *TaskHandlers {
	return &TaskHandlers{
		service:  service,
		ledger:   ledger,
		logger:   logger,
		business: business,
	}
}

// RegisterRoutes registers task and truck inventory routes on the router
func (h *TaskHandlers) RegisterRoutes(router *gin.RouterGroup) {
	tasks := router.Group("/tasks")
	{
		tasks.POST("", h.CreateTask)
		tasks.GET("", h.ListTasks)
		tasks.GET("/:taskId", h.GetTask)
		tasks.PUT("/:taskId", h.UpdateTask)
		tasks.DELETE("/:taskId", h.DeleteTask)
		tasks.PUT("/:taskId/status", h.ChangeStatus)
	}

	trucks := router.Group("/trucks")
	{
		trucks.GET("/:truckId/inventory", h.GetTruckInventory)
	}
}

// CreateTask handles task creation
func (h *TaskHandlers) CreateTask(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var cmd application.CreateTaskCommand
	if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
		responder.RespondWithAppError(appErr)
		return
	}

	middleware.AddSpanAttributes(c, map[string]interface{}{
		"task.product_id": cmd.ProductID,
		"task.to_type":    cmd.ToType,
	})

	task, err := h.service.CreateTask(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	h.business.RecordTaskCreated(task.TaskType)
	if task.BatchID != "" {
		h.business.RecordPalletsReserved(task.PalletQuantity)
	}

	c.JSON(http.StatusCreated, task)
}

// ListTasks handles listing every task
func (h *TaskHandlers) ListTasks(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	tasks, err := h.service.ListTasks(c.Request.Context())
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks, "count": len(tasks)})
}

// GetTask handles getting a task by ID
func (h *TaskHandlers) GetTask(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	taskID := c.Param("taskId")
	middleware.AddSpanAttributes(c, map[string]interface{}{
		"task.id": taskID,
	})

	task, err := h.service.GetTask(c.Request.Context(), taskID)
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, task)
}

// UpdateTask handles a full task edit
func (h *TaskHandlers) UpdateTask(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var cmd application.UpdateTaskCommand
	if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
		responder.RespondWithAppError(appErr)
		return
	}
	cmd.TaskID = c.Param("taskId")

	middleware.AddSpanAttributes(c, map[string]interface{}{
		"task.id": cmd.TaskID,
	})

	task, err := h.service.UpdateTask(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, task)
}

// ChangeStatus handles moving a task to a new lifecycle status
func (h *TaskHandlers) ChangeStatus(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var cmd application.ChangeTaskStatusCommand
	if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
		responder.RespondWithAppError(appErr)
		return
	}
	cmd.TaskID = c.Param("taskId")

	middleware.AddSpanAttributes(c, map[string]interface{}{
		"task.id":     cmd.TaskID,
		"task.status": cmd.Status,
	})

	task, err := h.service.ChangeStatus(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	if task.Status == string(domain.TaskStatusCompleted) {
		h.business.RecordTaskCompleted()
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask handles task deletion
func (h *TaskHandlers) DeleteTask(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	taskID := c.Param("taskId")
	middleware.AddSpanAttributes(c, map[string]interface{}{
		"task.id": taskID,
	})

	if err := h.service.DeleteTask(c.Request.Context(), application.DeleteTaskCommand{TaskID: taskID}); err != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	h.business.RecordTaskDeleted()

	c.JSON(http.StatusOK, gin.H{"taskId": taskID, "deleted": true})
}

// GetTruckInventory handles reading one truck's ledger
func (h *TaskHandlers) GetTruckInventory(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	truckID := c.Param("truckId")
	middleware.AddSpanAttributes(c, map[string]interface{}{
		"truck.id": truckID,
	})

	inventory, err := h.ledger.GetTruckInventory(c.Request.Context(), truckID)
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, inventory)
}
