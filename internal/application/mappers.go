package application

import (
	"sort"
	"time"

	"github.com/palletflow/dispatch-service/internal/domain"
)

// expiringSoonWindow is how far ahead of the expiration date a task is
// surfaced as expiring soon.
const expiringSoonWindow = 7 * 24 * time.Hour

// ToTaskDTO converts a task aggregate to its external representation
func ToTaskDTO(task *domain.Task) *TaskDTO {
	now := time.Now().UTC()
	statuses := make([]PalletStatusDTO, 0, len(task.PalletStatuses))
	for _, ps := range task.PalletStatuses {
		statuses = append(statuses, PalletStatusDTO{Code: ps.Code, Status: string(ps.Status)})
	}
	return &TaskDTO{
		TaskID:           task.TaskID,
		TaskType:         string(task.TaskType),
		Status:           string(task.Status),
		ProductID:        task.ProductID,
		ProductName:      task.ProductName,
		ProductQRCode:    task.ProductQRCode,
		ProductionNumber: task.ProductionNumber,
		FromType:         string(task.From.Type),
		FromID:           task.From.ID,
		FromName:         task.From.Name,
		FromQRCode:       task.From.QRCode,
		ToType:           string(task.To.Type),
		ToID:             task.To.ID,
		ToName:           task.To.Name,
		ToQRCode:         task.To.QRCode,
		AssignedTo:       task.AssignedTo,
		PalletQuantity:   task.PalletQuantity,
		PalletQRCodes:    task.PalletQRCodes,
		PalletStatuses:   statuses,
		BatchID:          task.BatchID,
		ExpirationDate:   task.ExpirationDate,
		Expired:          task.IsExpired(now),
		ExpiringSoon:     task.IsExpiringSoon(now, expiringSoonWindow),
		CreatedAt:        task.CreatedAt,
		UpdatedAt:        task.UpdatedAt,
	}
}

// ToTaskDTOs converts a slice of task aggregates
func ToTaskDTOs(tasks []*domain.Task) []*TaskDTO {
	dtos := make([]*TaskDTO, 0, len(tasks))
	for _, task := range tasks {
		dtos = append(dtos, ToTaskDTO(task))
	}
	return dtos
}

// ToTruckInventoryDTO flattens a truck ledger into sorted, stable output
func ToTruckInventoryDTO(inv *domain.TruckInventory) *TruckInventoryDTO {
	dto := &TruckInventoryDTO{
		TruckID:  inv.TruckID,
		Products: make([]ProductInventoryDTO, 0, len(inv.Products)),
	}
	for productID, product := range inv.Products {
		pdto := ProductInventoryDTO{
			ProductID:    productID,
			TotalPallets: product.TotalPallets,
			Batches:      make([]BatchDTO, 0, len(product.Batches)),
		}
		for batchID, batch := range product.Batches {
			pdto.Batches = append(pdto.Batches, BatchDTO{
				BatchID:          batchID,
				TaskID:           batch.TaskID,
				Status:           string(batch.Status),
				PalletQuantity:   batch.PalletQuantity,
				ProductionNumber: batch.ProductionNumber,
				ExpirationDate:   batch.ExpirationDate,
			})
		}
		sort.Slice(pdto.Batches, func(i, j int) bool {
			return pdto.Batches[i].BatchID < pdto.Batches[j].BatchID
		})
		dto.TotalPallets += product.TotalPallets
		dto.Products = append(dto.Products, pdto)
	}
	sort.Slice(dto.Products, func(i, j int) bool {
		return dto.Products[i].ProductID < dto.Products[j].ProductID
	})
	return dto
}
