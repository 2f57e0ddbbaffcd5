package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/palletflow/dispatch-service/pkg/logging"
	"github.com/palletflow/dispatch-service/pkg/metrics"
	"github.com/palletflow/dispatch-service/pkg/mongodb"
)

const (
	settingsCollection  = "settings"
	productionCounterID = "productionCounter"
)

type productionCounter struct {
	ID                   string `bson:"_id"`
	LastProductionNumber int64  `bson:"lastProductionNumber"`
}

// ProductionSequenceRepository allocates production numbers from an atomic
// counter in the settings collection. When the counter cannot be reached it
// degrades to a timestamp-derived number so task creation is never blocked;
// degraded allocations are logged and counted.
type ProductionSequenceRepository struct {
	collection *mongodb.CircuitBreakerCollection
	logger     *logging.Logger
	metrics    *metrics.Metrics
}

// NewProductionSequenceRepository creates a new ProductionSequenceRepository
func NewProductionSequenceRepository(
	client *mongodb.CircuitBreakerClient,
	logger *logging.Logger,
	m *metrics.Metrics,
) *ProductionSequenceRepository {
	return &ProductionSequenceRepository{
		collection: client.Collection(settingsCollection),
		logger:     logger.WithComponent("production-sequence"),
		metrics:    m,
	}
}

// Next returns the next production number
func (r *ProductionSequenceRepository) Next(ctx context.Context) (int64, error) {
	filter := bson.M{"_id": productionCounterID}
	update := bson.M{"$inc": bson.M{"lastProductionNumber": 1}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter productionCounter
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, &counter, opts); err != nil {
		fallback := time.Now().UnixMilli()
		r.logger.WithContext(ctx).WithError(err).Warn("production counter unavailable, using timestamp fallback",
			"fallback_number", fallback)
		if r.metrics != nil {
			r.metrics.SequenceFallbackTotal.Inc()
		}
		return fallback, nil
	}

	return counter.LastProductionNumber, nil
}
