package ports

import (
	"context"

	"taskdeck/internal/core/domain"
)

// SyncEngine owns the local task/project collections and reconciles them
// with the remote store. Local optimistic changes are visible before any
// network call is issued; failures roll back to the pre-mutation snapshot.
type SyncEngine interface {
	Load(ctx context.Context) error
	Tasks() []domain.Task
	Projects() []domain.Project
	CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error)
	UpdateTask(ctx context.Context, id string, input domain.UpdateTaskInput) error
	DeleteTask(ctx context.Context, id string) error
	CreateProject(ctx context.Context, name, color string) (domain.Project, error)
	DeleteProject(ctx context.Context, id string) error
	Clear()
}

// AttachmentManager handles blob upload, metadata persistence, URL
// de-duplication and two-phase deletion.
type AttachmentManager interface {
	Upload(ctx context.Context, file domain.FileUpload, userID string) (domain.Attachment, error)
	UploadAll(ctx context.Context, taskID, userID string, files []domain.FileUpload) ([]domain.Attachment, error)
	Delete(ctx context.Context, taskID, attachmentID, url string) error
}

// Alerter drives the single shared looping alert. Start is idempotent while
// the loop is already playing.
type Alerter interface {
	Start()
	Stop()
}

// Notifier issues a best-effort system notification. Implementations must
// swallow permission failures.
type Notifier interface {
	Notify(title, body string)
}

// SessionManager exposes the session lifecycle to front ends.
type SessionManager interface {
	SignIn(ctx context.Context, email, password string) (*domain.Session, error)
	SignOut(ctx context.Context) error
	Session() *domain.Session
	State() domain.SessionState
}

// ReminderController is the front-end surface of the reminder engine.
type ReminderController interface {
	Active() []string
	HasActive() bool
	StopAll()
}

// AssistantGateway relays chat messages and executes confirmed actions.
type AssistantGateway interface {
	Send(ctx context.Context, message string, history []domain.AssistantMessage) (domain.AssistantResponse, error)
	Execute(ctx context.Context, resp domain.AssistantResponse) error
}

// Assistant is the natural-language collaborator contract.
type Assistant interface {
	Send(ctx context.Context, message string, history []domain.AssistantMessage, projects []domain.Project) (domain.AssistantResponse, error)
}
