package domain

// Product is a catalog item moved by tasks
type Product struct {
	ProductID  string `bson:"productId" json:"productId"`
	Name       string `bson:"name" json:"name"`
	QRCode     string `bson:"qrCode" json:"qrCode"`
	ExpiryDays int    `bson:"expiryDays" json:"expiryDays"`
}

// Driver is a user who can be assigned to movement tasks
type Driver struct {
	UserID string `bson:"userId" json:"userId"`
	Name   string `bson:"name" json:"name"`
	Role   string `bson:"role" json:"role"`
}

// ProductionLine is a source endpoint where product enters the chain
type ProductionLine struct {
	LineID string `bson:"lineId" json:"lineId"`
	Name   string `bson:"name" json:"name"`
	QRCode string `bson:"qrCode" json:"qrCode"`
}

// Warehouse is an intermediate storage endpoint
type Warehouse struct {
	WarehouseID string `bson:"warehouseId" json:"warehouseId"`
	Name        string `bson:"name" json:"name"`
	QRCode      string `bson:"qrCode" json:"qrCode"`
}

// DeliveryPoint is a final destination endpoint
type DeliveryPoint struct {
	PointID string `bson:"pointId" json:"pointId"`
	Name    string `bson:"name" json:"name"`
	QRCode  string `bson:"qrCode" json:"qrCode"`
}

// Truck is a vehicle endpoint carrying its own inventory ledger
type Truck struct {
	TruckID string `bson:"truckId" json:"truckId"`
	Name    string `bson:"name" json:"name"`
	Plate   string `bson:"plate" json:"plate"`
	QRCode  string `bson:"qrCode" json:"qrCode"`
}
