package domain

import (
	"testing"
	"time"
)

func TestDeriveTaskType(t *testing.T) {
	tests := []struct {
		name string
		from EndpointType
		to   EndpointType
		want TaskType
	}{
		{"production to warehouse", EndpointProduction, EndpointWarehouse, TaskTypeProductionToWarehouse},
		{"production to truck", EndpointProduction, EndpointTruck, TaskTypeProductionToTruck},
		{"warehouse to truck", EndpointWarehouse, EndpointTruck, TaskTypeWarehouseToTruck},
		{"warehouse to warehouse", EndpointWarehouse, EndpointWarehouse, TaskTypeWarehouseToTruck},
		{"production to delivery", EndpointProduction, EndpointDelivery, TaskTypeWarehouseToTruck},
		{"warehouse to delivery", EndpointWarehouse, EndpointDelivery, TaskTypeWarehouseToTruck},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveTaskType(tt.from, tt.to); got != tt.want {
				t.Errorf("DeriveTaskType(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func validTask(t *testing.T) *Task {
	t.Helper()
	codes := []string{"QR-P_1_1_WH_1700000000000_abcd1234", "QR-P_1_2_WH_1700000000000_efgh5678"}
	task, err := NewTask(
		"task-1",
		"PRD-1", "Frozen Peas", "QR-P",
		1,
		Endpoint{Type: EndpointProduction, ID: "LINE-1", Name: "Line1"},
		Endpoint{Type: EndpointWarehouse, ID: "WH-1", Name: "WH"},
		"USR-1",
		2,
		codes,
		time.Now().UTC().AddDate(0, 0, 30),
	)
	if err != nil {
		t.Fatalf("NewTask() error = %v", err)
	}
	return task
}

func TestNewTask(t *testing.T) {
	t.Run("starts awaiting pickup with pending pallets", func(t *testing.T) {
		task := validTask(t)

		if task.Status != TaskStatusAwaitingPickup {
			t.Errorf("Status = %v, want %v", task.Status, TaskStatusAwaitingPickup)
		}
		if task.TaskType != TaskTypeProductionToWarehouse {
			t.Errorf("TaskType = %v, want %v", task.TaskType, TaskTypeProductionToWarehouse)
		}
		if len(task.PalletStatuses) != 2 {
			t.Fatalf("PalletStatuses length = %v, want 2", len(task.PalletStatuses))
		}
		for i, ps := range task.PalletStatuses {
			if ps.Code != task.PalletQRCodes[i] {
				t.Errorf("pallet status %d code = %v, want %v", i, ps.Code, task.PalletQRCodes[i])
			}
			if ps.Status != PalletStatePending {
				t.Errorf("pallet status %d = %v, want pending", i, ps.Status)
			}
		}
		if len(task.DomainEvents) != 1 || task.DomainEvents[0].EventType() != "task.created" {
			t.Errorf("expected a single task.created event, got %v", task.DomainEvents)
		}
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewTask(
			"task-1",
			"PRD-1", "Frozen Peas", "QR-P",
			1,
			Endpoint{Type: EndpointProduction, ID: "LINE-1"},
			Endpoint{Type: EndpointWarehouse, ID: "WH-1"},
			"USR-1",
			0,
			nil,
			time.Time{},
		)
		if err != ErrInvalidQuantity {
			t.Errorf("error = %v, want %v", err, ErrInvalidQuantity)
		}
	})

	t.Run("rejects unknown endpoint type", func(t *testing.T) {
		_, err := NewTask(
			"task-1",
			"PRD-1", "Frozen Peas", "QR-P",
			1,
			Endpoint{Type: EndpointType("dock"), ID: "D-1"},
			Endpoint{Type: EndpointWarehouse, ID: "WH-1"},
			"USR-1",
			1,
			[]string{"code"},
			time.Time{},
		)
		if err != ErrInvalidEndpointType {
			t.Errorf("error = %v, want %v", err, ErrInvalidEndpointType)
		}
	})
}

func TestTask_ApplyEdit(t *testing.T) {
	task := validTask(t)
	task.Status = TaskStatusCompleted
	originalCreatedAt := task.CreatedAt
	task.ClearDomainEvents()

	time.Sleep(2 * time.Millisecond)

	newCodes := []string{"QR-P_2_1_TRK_1700000000001_ijkl9012"}
	err := task.ApplyEdit(
		"PRD-1", "Frozen Peas", "QR-P",
		2,
		Endpoint{Type: EndpointWarehouse, ID: "WH-1", Name: "WH"},
		Endpoint{Type: EndpointTruck, ID: "TRK-1", Name: "Truck"},
		"USR-2",
		1,
		newCodes,
		time.Now().UTC().AddDate(0, 0, 10),
	)
	if err != nil {
		t.Fatalf("ApplyEdit() error = %v", err)
	}

	if task.Status != TaskStatusAwaitingPickup {
		t.Errorf("Status = %v, want awaiting_pickup after edit", task.Status)
	}
	if task.TaskType != TaskTypeWarehouseToTruck {
		t.Errorf("TaskType = %v, want warehouseToTruck", task.TaskType)
	}
	if task.ProductionNumber != 2 {
		t.Errorf("ProductionNumber = %v, want 2", task.ProductionNumber)
	}
	if !task.CreatedAt.After(originalCreatedAt) {
		t.Error("CreatedAt should be refreshed by an edit")
	}
	if len(task.PalletStatuses) != 1 || task.PalletStatuses[0].Status != PalletStatePending {
		t.Errorf("pallet statuses should be rebuilt pending, got %v", task.PalletStatuses)
	}
	if len(task.DomainEvents) != 1 || task.DomainEvents[0].EventType() != "task.updated" {
		t.Errorf("expected a single task.updated event, got %v", task.DomainEvents)
	}
}

func TestTask_SetStatus(t *testing.T) {
	t.Run("allows any transition between known statuses", func(t *testing.T) {
		task := validTask(t)

		for _, status := range []TaskStatus{TaskStatusCompleted, TaskStatusAwaitingPickup, TaskStatusInProgress} {
			if err := task.SetStatus(status); err != nil {
				t.Fatalf("SetStatus(%v) error = %v", status, err)
			}
			if task.Status != status {
				t.Errorf("Status = %v, want %v", task.Status, status)
			}
		}
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		task := validTask(t)

		if err := task.SetStatus(TaskStatus("done")); err != ErrInvalidTaskStatus {
			t.Errorf("error = %v, want %v", err, ErrInvalidTaskStatus)
		}
	})

	t.Run("records old and new status on the event", func(t *testing.T) {
		task := validTask(t)
		task.ClearDomainEvents()

		if err := task.SetStatus(TaskStatusInProgress); err != nil {
			t.Fatalf("SetStatus() error = %v", err)
		}

		event, ok := task.DomainEvents[0].(*TaskStatusChangedEvent)
		if !ok {
			t.Fatalf("event = %T, want *TaskStatusChangedEvent", task.DomainEvents[0])
		}
		if event.OldStatus != "awaiting_pickup" || event.NewStatus != "in_progress" {
			t.Errorf("event statuses = %v -> %v", event.OldStatus, event.NewStatus)
		}
	})
}

func TestTask_Expiry(t *testing.T) {
	task := validTask(t)
	now := time.Now().UTC()

	task.ExpirationDate = now.Add(-time.Hour)
	if !task.IsExpired(now) {
		t.Error("task past its expiration date should be expired")
	}
	if task.IsExpiringSoon(now, 72*time.Hour) {
		t.Error("an already expired task is not expiring soon")
	}

	task.ExpirationDate = now.Add(24 * time.Hour)
	if task.IsExpired(now) {
		t.Error("task before its expiration date should not be expired")
	}
	if !task.IsExpiringSoon(now, 72*time.Hour) {
		t.Error("task expiring within the window should be expiring soon")
	}

	task.ExpirationDate = now.Add(30 * 24 * time.Hour)
	if task.IsExpiringSoon(now, 72*time.Hour) {
		t.Error("task far from expiry should not be expiring soon")
	}
}
