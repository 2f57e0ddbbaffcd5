package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/palletflow/dispatch-service/internal/domain"
	"github.com/palletflow/dispatch-service/pkg/errors"
	"github.com/palletflow/dispatch-service/pkg/logging"
	"github.com/palletflow/dispatch-service/pkg/middleware"
)

// CatalogService is the read-only catalog surface the handlers depend on
type CatalogService interface {
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	ListDrivers(ctx context.Context) ([]*domain.Driver, error)
	ListProductionLines(ctx context.Context) ([]*domain.ProductionLine, error)
	ListWarehouses(ctx context.Context) ([]*domain.Warehouse, error)
	ListDeliveryPoints(ctx context.Context) ([]*domain.DeliveryPoint, error)
	ListTrucks(ctx context.Context) ([]*domain.Truck, error)
}

// CatalogHandlers contains read-only handlers for the reference catalog
type CatalogHandlers struct {
	service CatalogService
	logger  *logging.Logger
}

// NewCatalogHandlers creates a new CatalogHandlers
func NewCatalogHandlers(service CatalogService, logger *logging.Logger) *CatalogHandlers {
	return &CatalogHandlers{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers catalog routes on the router
func (h *CatalogHandlers) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/products", h.ListProducts)
	router.GET("/products/:productId", h.GetProduct)
	router.GET("/drivers", h.ListDrivers)
	router.GET("/production-lines", h.ListProductionLines)
	router.GET("/warehouses", h.ListWarehouses)
	router.GET("/delivery-points", h.ListDeliveryPoints)
	router.GET("/trucks", h.ListTrucks)
}

// GetProduct handles getting one product by ID
func (h *CatalogHandlers) GetProduct(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	productID := c.Param("productId")
	product, err := h.service.GetProduct(c.Request.Context(), productID)
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, product)
}

// ListProducts handles listing the product catalog
func (h *CatalogHandlers) ListProducts(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	products, err := h.service.ListProducts(c.Request.Context())
	if err != nil {
		responder.RespondInternalError(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

// ListDrivers handles listing users with the driver role
func (h *CatalogHandlers) ListDrivers(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	drivers, err := h.service.ListDrivers(c.Request.Context())
	if err != nil {
		responder.RespondInternalError(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"drivers": drivers, "count": len(drivers)})
}

// ListProductionLines handles listing production lines
func (h *CatalogHandlers) ListProductionLines(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	lines, err := h.service.ListProductionLines(c.Request.Context())
	if err != nil {
		responder.RespondInternalError(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"productionLines": lines, "count": len(lines)})
}

// ListWarehouses handles listing warehouses
func (h *CatalogHandlers) ListWarehouses(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	warehouses, err := h.service.ListWarehouses(c.Request.Context())
	if err != nil {
		responder.RespondInternalError(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"warehouses": warehouses, "count": len(warehouses)})
}

// ListDeliveryPoints handles listing delivery points
func (h *CatalogHandlers) ListDeliveryPoints(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	points, err := h.service.ListDeliveryPoints(c.Request.Context())
	if err != nil {
		responder.RespondInternalError(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deliveryPoints": points, "count": len(points)})
}

// ListTrucks handles listing trucks
func (h *CatalogHandlers) ListTrucks(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	trucks, err := h.service.ListTrucks(c.Request.Context())
	if err != nil {
		responder.RespondInternalError(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trucks": trucks, "count": len(trucks)})
}
