package ports

import (
	"context"

	"taskdeck/internal/core/domain"
)

// RemoteStore is the opaque hosted backend: authenticated CRUD over the
// task, project and attachment collections plus session state and binary
// object storage with public URL issuance.
type RemoteStore interface {
	// ListTasks returns the owner's tasks ordered by creation time descending.
	ListTasks(ctx context.Context, userID string) ([]domain.Task, error)
	InsertTask(ctx context.Context, userID string, input domain.CreateTaskInput) (domain.Task, error)
	UpdateTask(ctx context.Context, id string, input domain.UpdateTaskInput) error
	DeleteTask(ctx context.Context, id string) error

	ListProjects(ctx context.Context, userID string) ([]domain.Project, error)
	InsertProject(ctx context.Context, userID, name, color string) (domain.Project, error)
	DeleteProject(ctx context.Context, id string) error

	// ListAttachments returns all of the owner's attachments ordered by
	// creation time ascending, for grouping by task during a load.
	ListAttachments(ctx context.Context, userID string) (map[string][]domain.Attachment, error)
	InsertAttachment(ctx context.Context, taskID, userID string, att domain.Attachment) error
	DeleteAttachment(ctx context.Context, id string) error

	// UploadObject stores a blob under path and returns its public URL.
	UploadObject(ctx context.Context, path string, file domain.FileUpload) (string, error)
	DeleteObject(ctx context.Context, path string) error

	SignIn(ctx context.Context, email, password string) (*domain.Session, error)
	Session(ctx context.Context) (*domain.Session, error)
	SignOut(ctx context.Context) error
}

// LocalStore persists task/project collections to device storage so the
// last synced state survives restarts. Project task counts are recomputed
// on every save.
type LocalStore interface {
	ReplaceAll(ctx context.Context, tasks []domain.Task, projects []domain.Project) error
	Load(ctx context.Context) ([]domain.Task, []domain.Project, error)
	Close() error
}
