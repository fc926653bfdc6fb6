package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sunlighthq/tasks-service/internal/entity"
	"github.com/sunlighthq/tasks-service/internal/repository"
	"github.com/sunlighthq/tasks-service/internal/views"
)

// RabbitMQPublisher publishes audit messages for the worker to persist.
type RabbitMQPublisher interface {
	PublishAuditMessage(ctx context.Context, message *entity.AuditMessage) error
}

type TaskService struct {
	taskRepo repository.ITaskRepository
	rabbitMQ RabbitMQPublisher
}

func NewTaskService(taskRepo repository.ITaskRepository, rabbitMQ RabbitMQPublisher) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		rabbitMQ: rabbitMQ,
	}
}

// DashboardStats bundles the aggregate counters with the per-category badge
// counts the sidebar shows.
type DashboardStats struct {
	views.Stats
	Categories map[entity.Category]int `json:"categories"`
}

func (s *TaskService) CreateTask(ctx context.Context, userID string, req *entity.CreateTaskRequest) (*entity.Task, error) {
	// 1. Validate and normalize before the store sees anything
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. Create with the caller as owner
	task, err := s.taskRepo.Create(ctx, userID, req)
	if err != nil {
		return nil, storeErr(err)
	}

	// 3. Audit, fire-and-forget
	s.sendAuditMessage(entity.ActionCreate, userID, task.ID, nil, task, nil)

	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, userID, taskID string) (*entity.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, userID, taskID)
	if err != nil {
		return nil, storeErr(err)
	}
	if task == nil {
		return nil, entity.ErrTaskNotFound
	}
	return task, nil
}

// ListTasks returns the caller's full collection, newest-first. Views and
// search stay client-side; the API contract is always the whole set.
func (s *TaskService) ListTasks(ctx context.Context, userID string) ([]entity.Task, error) {
	tasks, err := s.taskRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	if tasks == nil {
		tasks = []entity.Task{}
	}
	return tasks, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID string, req *entity.UpdateTaskRequest) (*entity.Task, error) {
	// 1. Validate the patch
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. Read the current state for the audit diff; a miss here means absent
	// or not ours, and nothing has been touched yet
	oldTask, err := s.taskRepo.GetByID(ctx, userID, taskID)
	if err != nil {
		return nil, storeErr(err)
	}
	if oldTask == nil {
		return nil, entity.ErrTaskNotFound
	}

	// 3. Apply the patch; the repository re-checks ownership in the same
	// statement, so a concurrent delete just surfaces as NotFound
	updatedTask, err := s.taskRepo.Update(ctx, userID, taskID, req.Updates())
	if err != nil {
		return nil, storeErr(err)
	}
	if updatedTask == nil {
		return nil, entity.ErrTaskNotFound
	}

	// 4. Audit
	s.sendAuditMessage(entity.ActionUpdate, userID, taskID, oldTask, updatedTask, nil)

	return updatedTask, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID string) error {
	// for the audit record; the delete itself re-checks ownership
	oldTask, err := s.taskRepo.GetByID(ctx, userID, taskID)
	if err != nil {
		return storeErr(err)
	}
	if oldTask == nil {
		return entity.ErrTaskNotFound
	}

	deleted, err := s.taskRepo.Delete(ctx, userID, taskID)
	if err != nil {
		return storeErr(err)
	}
	if !deleted {
		return entity.ErrTaskNotFound
	}

	s.sendAuditMessage(entity.ActionDelete, userID, taskID, oldTask, nil, nil)

	return nil
}

// DashboardStats computes the dashboard aggregates from the caller's
// collection at the given reference time.
func (s *TaskService) DashboardStats(ctx context.Context, userID string, now time.Time) (*DashboardStats, error) {
	tasks, err := s.taskRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}

	return &DashboardStats{
		Stats:      views.ComputeStats(tasks, now),
		Categories: views.CountByCategory(tasks),
	}, nil
}

func (s *TaskService) sendAuditMessage(
	action entity.ActionType,
	userID string,
	taskID string,
	oldTask *entity.Task,
	newTask *entity.Task,
	_ map[string]interface{},
) {
	auditMsg := &entity.AuditMessage{
		Action:    action,
		UserID:    userID,
		EntityID:  taskID,
		OldValues: taskValues(oldTask),
		NewValues: taskValues(newTask),
		Timestamp: time.Now(),
	}

	if action == entity.ActionUpdate && oldTask != nil && newTask != nil {
		auditMsg.Changes = diffTasks(oldTask, newTask)
	}

	// async send; a lost audit message never fails the user's request
	go func() {
		if err := s.rabbitMQ.PublishAuditMessage(context.Background(), auditMsg); err != nil {
			log.Printf("❌ failed to publish audit message for task %s: %v", taskID, err)
		}
	}()
}

func taskValues(t *entity.Task) map[string]any {
	if t == nil {
		return nil
	}
	return map[string]any{
		"text":        t.Text,
		"completed":   t.Completed,
		"priority":    t.Priority,
		"due_date":    t.DueDate,
		"category":    t.Category,
		"description": t.Description,
		"owner_id":    t.OwnerID,
	}
}

func diffTasks(oldTask, newTask *entity.Task) map[string]any {
	changes := make(map[string]any)

	if oldTask.Text != newTask.Text {
		changes["text"] = map[string]any{"old": oldTask.Text, "new": newTask.Text}
	}
	if oldTask.Completed != newTask.Completed {
		changes["completed"] = map[string]any{"old": oldTask.Completed, "new": newTask.Completed}
	}
	if oldTask.Priority != newTask.Priority {
		changes["priority"] = map[string]any{"old": oldTask.Priority, "new": newTask.Priority}
	}
	if oldTask.Category != newTask.Category {
		changes["category"] = map[string]any{"old": oldTask.Category, "new": newTask.Category}
	}
	if !equalTimePtr(oldTask.DueDate, newTask.DueDate) {
		changes["due_date"] = map[string]any{"old": oldTask.DueDate, "new": newTask.DueDate}
	}
	if !equalStringPtr(oldTask.Description, newTask.Description) {
		changes["description"] = map[string]any{"old": oldTask.Description, "new": newTask.Description}
	}

	return changes
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// storeErr folds persistence failures into the StoreUnavailable bucket; they
// are surfaced to the caller, never retried here.
func storeErr(err error) error {
	return fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, err)
}
