package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/palletflow/dispatch-service/internal/domain"
	"github.com/palletflow/dispatch-service/pkg/mongodb"
)

const tasksCollection = "tasks"

// TaskRepository persists task aggregates in the tasks collection
type TaskRepository struct {
	collection *mongodb.CircuitBreakerCollection
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(client *mongodb.CircuitBreakerClient) *TaskRepository {
	repo := &TaskRepository{
		collection: client.Collection(tasksCollection),
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *TaskRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "taskId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "assignedTo", Value: 1}}},
		{Keys: bson.D{{Key: "to.id", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}
	_, _ = r.collection.Indexes().CreateMany(ctx, indexes)
}

// Save upserts the task by its taskId. The ObjectID a FindByID may have
// populated is dropped so the update never touches _id.
func (r *TaskRepository) Save(ctx context.Context, task *domain.Task) error {
	task.UpdatedAt = time.Now().UTC()
	task.ID = primitive.NilObjectID

	filter := bson.M{"taskId": task.TaskID}
	update := bson.M{"$set": task}
	opts := options.Update().SetUpsert(true)

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

// FindByID returns the task with the given taskId, or (nil, nil) if absent
func (r *TaskRepository) FindByID(ctx context.Context, taskID string) (*domain.Task, error) {
	var task domain.Task
	err := r.collection.FindOne(ctx, bson.M{"taskId": taskID}, &task)
	if err != nil {
		if mongodb.IsNoDocuments(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// FindAll returns every task, newest first
func (r *TaskRepository) FindAll(ctx context.Context) ([]*domain.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer cursor.Close(ctx)

	var tasks []*domain.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	return tasks, nil
}

// UpdateStatus sets the status of one task in place
func (r *TaskRepository) UpdateStatus(ctx context.Context, taskID string, status domain.TaskStatus) error {
	filter := bson.M{"taskId": taskID}
	update := bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": time.Now().UTC(),
	}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("task %s not found", taskID)
	}
	return nil
}

// Delete removes the task with the given taskId
func (r *TaskRepository) Delete(ctx context.Context, taskID string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"taskId": taskID}); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}
