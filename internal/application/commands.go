package application

// CreateTaskCommand carries the input for creating a movement task
type CreateTaskCommand struct {
	ProductID      string `json:"productId" validate:"required,safe_string"`
	AssignedTo     string `json:"assignedTo" validate:"required,safe_string"`
	FromType       string `json:"fromType" validate:"required,endpoint_type"`
	FromID         string `json:"fromId" validate:"required,safe_string"`
	ToType         string `json:"toType" validate:"required,endpoint_type"`
	ToID           string `json:"toId" validate:"required,safe_string"`
	PalletQuantity int    `json:"palletQuantity" validate:"required,gt=0,lte=1000"`
	ExpirationDays int    `json:"expirationDays" validate:"omitempty,gt=0,lte=3650"`
}

// UpdateTaskCommand carries a full task edit. The referenced task is
// rebuilt from the new references: a fresh production number and pallet
// codes are minted and the status returns to awaiting pickup.
type UpdateTaskCommand struct {
	TaskID         string `json:"-"`
	ProductID      string `json:"productId" validate:"required,safe_string"`
	AssignedTo     string `json:"assignedTo" validate:"required,safe_string"`
	FromType       string `json:"fromType" validate:"required,endpoint_type"`
	FromID         string `json:"fromId" validate:"required,safe_string"`
	ToType         string `json:"toType" validate:"required,endpoint_type"`
	ToID           string `json:"toId" validate:"required,safe_string"`
	PalletQuantity int    `json:"palletQuantity" validate:"required,gt=0,lte=1000"`
	ExpirationDays int    `json:"expirationDays" validate:"omitempty,gt=0,lte=3650"`
}

// ChangeTaskStatusCommand moves a task to a new lifecycle status
type ChangeTaskStatusCommand struct {
	TaskID string `json:"-"`
	Status string `json:"status" validate:"required,task_status"`
}

// DeleteTaskCommand removes a task and releases its reserved inventory
type DeleteTaskCommand struct {
	TaskID string `json:"-"`
}
