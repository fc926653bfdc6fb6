package repository

import (
	"context"
	"time"

	"github.com/sunlighthq/tasks-service/internal/entity"
)

// ITaskRepository is the ownership-scoped task store. Every operation takes
// the owner id as an explicit parameter; there is no way to reach a task
// without naming whose it is.
type ITaskRepository interface {
	Create(ctx context.Context, ownerID string, req *entity.CreateTaskRequest) (*entity.Task, error)
	GetByID(ctx context.Context, ownerID, taskID string) (*entity.Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Task, error)
	Update(ctx context.Context, ownerID, taskID string, updates map[string]interface{}) (*entity.Task, error)
	Delete(ctx context.Context, ownerID, taskID string) (bool, error)
}

type IUserRepository interface {
	Create(ctx context.Context, name, email, passwordHash string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	TouchLastLogin(ctx context.Context, id string) error
}

type IRefreshTokenRepository interface {
	Save(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error
	GetByHash(ctx context.Context, tokenHash string) (*RefreshToken, error)
	Revoke(ctx context.Context, tokenHash string) error
	RevokeAll(ctx context.Context, userID string) error
}

type ITaskAuditRepository interface {
	Create(ctx context.Context, audit *entity.TaskAudit) error
	ListByTask(ctx context.Context, taskID string) ([]entity.TaskAudit, error)
}
