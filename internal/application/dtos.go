package application

import "time"

// PalletStatusDTO mirrors the per-pallet tracking entry
type PalletStatusDTO struct {
	Code   string `json:"code"`
	Status string `json:"status"`
}

// TaskDTO is the external representation of a movement task
type TaskDTO struct {
	TaskID           string            `json:"taskId"`
	TaskType         string            `json:"taskType"`
	Status           string            `json:"status"`
	ProductID        string            `json:"productId"`
	ProductName      string            `json:"productName"`
	ProductQRCode    string            `json:"productQrCode"`
	ProductionNumber int64             `json:"productionNumber"`
	FromType         string            `json:"fromType"`
	FromID           string            `json:"fromId"`
	FromName         string            `json:"fromName"`
	FromQRCode       string            `json:"fromQrCode"`
	ToType           string            `json:"toType"`
	ToID             string            `json:"toId"`
	ToName           string            `json:"toName"`
	ToQRCode         string            `json:"toQrCode"`
	AssignedTo       string            `json:"assignedTo"`
	PalletQuantity   int               `json:"palletQuantity"`
	PalletQRCodes    []string          `json:"palletQRCodes"`
	PalletStatuses   []PalletStatusDTO `json:"palletStatuses"`
	BatchID          string            `json:"batchId,omitempty"`
	ExpirationDate   time.Time         `json:"expirationDate"`
	Expired          bool              `json:"expired"`
	ExpiringSoon     bool              `json:"expiringSoon"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// BatchDTO is one reserved batch on a truck
type BatchDTO struct {
	BatchID          string    `json:"batchId"`
	TaskID           string    `json:"taskId"`
	Status           string    `json:"status"`
	PalletQuantity   int       `json:"palletQuantity"`
	ProductionNumber int64     `json:"productionNumber"`
	ExpirationDate   time.Time `json:"expirationDate"`
}

// ProductInventoryDTO aggregates the batches of one product on a truck
type ProductInventoryDTO struct {
	ProductID    string     `json:"productId"`
	TotalPallets int        `json:"totalPallets"`
	Batches      []BatchDTO `json:"batches"`
}

// TruckInventoryDTO is the external view of a truck ledger
type TruckInventoryDTO struct {
	TruckID      string                `json:"truckId"`
	Products     []ProductInventoryDTO `json:"products"`
	TotalPallets int                   `json:"totalPallets"`
}
