package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"taskdeck/internal/core/domain"
	"taskdeck/internal/core/ports"
)

// fakeStore is an in-memory RemoteStore with per-method error injection.
type fakeStore struct {
	mu          sync.Mutex
	tasks       []domain.Task
	projects    []domain.Project
	attachments map[string][]domain.Attachment
	objects     map[string][]byte
	session     *domain.Session
	nextID      int

	// Error injection
	ListTasksErr        error
	ListProjectsErr     error
	ListAttachmentsErr  error
	InsertTaskErr       error
	UpdateTaskErr       error
	DeleteTaskErr       error
	InsertProjectErr    error
	DeleteProjectErr    error
	InsertAttachmentErr error
	DeleteAttachmentErr error
	UploadObjectErr     error
	DeleteObjectErr     error
	SessionErr          error
	SignOutErr          error

	// NextTaskID forces the id assigned to the next inserted task.
	NextTaskID string

	InsertedTasks       []domain.CreateTaskInput
	DeletedTasks        []string
	DeletedProjects     []string
	InsertedAttachments []domain.Attachment
	DeletedAttachments  []string
	DeletedObjects      []string
}

var _ ports.RemoteStore = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		attachments: make(map[string][]domain.Attachment),
		objects:     make(map[string][]byte),
		session:     &domain.Session{UserID: "user-1", Email: "user@example.com", AccessToken: "token"},
	}
}

func (f *fakeStore) ListTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

func (f *fakeStore) InsertTask(ctx context.Context, userID string, input domain.CreateTaskInput) (domain.Task, error) {
	if f.InsertTaskErr != nil {
		return domain.Task{}, f.InsertTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.InsertedTasks = append(f.InsertedTasks, input)
	id := f.NextTaskID
	if id == "" {
		f.nextID++
		id = fmt.Sprintf("srv-%d", f.nextID)
	}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	task := domain.Task{
		ID:          id,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		ProjectID:   input.ProjectID,
		DueDate:     input.DueDate,
		Reminder:    input.Reminder,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.tasks = append([]domain.Task{task}, f.tasks...)
	return task, nil
}

func (f *fakeStore) UpdateTask(ctx context.Context, id string, input domain.UpdateTaskInput) error {
	return f.UpdateTaskErr
}

func (f *fakeStore) DeleteTask(ctx context.Context, id string) error {
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeletedTasks = append(f.DeletedTasks, id)
	return nil
}

func (f *fakeStore) ListProjects(ctx context.Context, userID string) ([]domain.Project, error) {
	if f.ListProjectsErr != nil {
		return nil, f.ListProjectsErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Project, len(f.projects))
	copy(out, f.projects)
	return out, nil
}

func (f *fakeStore) InsertProject(ctx context.Context, userID, name, color string) (domain.Project, error) {
	if f.InsertProjectErr != nil {
		return domain.Project{}, f.InsertProjectErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	project := domain.Project{ID: fmt.Sprintf("proj-%d", f.nextID), Name: name, Color: color}
	f.projects = append(f.projects, project)
	return project, nil
}

func (f *fakeStore) DeleteProject(ctx context.Context, id string) error {
	if f.DeleteProjectErr != nil {
		return f.DeleteProjectErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeletedProjects = append(f.DeletedProjects, id)
	return nil
}

func (f *fakeStore) ListAttachments(ctx context.Context, userID string) (map[string][]domain.Attachment, error) {
	if f.ListAttachmentsErr != nil {
		return nil, f.ListAttachmentsErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string][]domain.Attachment, len(f.attachments))
	for taskID, atts := range f.attachments {
		copied := make([]domain.Attachment, len(atts))
		copy(copied, atts)
		out[taskID] = copied
	}
	return out, nil
}

func (f *fakeStore) InsertAttachment(ctx context.Context, taskID, userID string, att domain.Attachment) error {
	if f.InsertAttachmentErr != nil {
		return f.InsertAttachmentErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.InsertedAttachments = append(f.InsertedAttachments, att)
	f.attachments[taskID] = append(f.attachments[taskID], att)
	return nil
}

func (f *fakeStore) DeleteAttachment(ctx context.Context, id string) error {
	if f.DeleteAttachmentErr != nil {
		return f.DeleteAttachmentErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeletedAttachments = append(f.DeletedAttachments, id)
	return nil
}

func (f *fakeStore) UploadObject(ctx context.Context, path string, file domain.FileUpload) (string, error) {
	if f.UploadObjectErr != nil {
		return "", f.UploadObjectErr
	}
	data := []byte{}
	if file.Content != nil {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, file.Content)
		data = buf.Bytes()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[path] = data
	return "https://store.example.com/storage/v1/object/public/task-attachments/" + path, nil
}

func (f *fakeStore) DeleteObject(ctx context.Context, path string) error {
	if f.DeleteObjectErr != nil {
		return f.DeleteObjectErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeletedObjects = append(f.DeletedObjects, path)
	delete(f.objects, path)
	return nil
}

func (f *fakeStore) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.session = &domain.Session{UserID: "user-1", Email: email, AccessToken: "token"}
	return f.session, nil
}

func (f *fakeStore) Session(ctx context.Context) (*domain.Session, error) {
	if f.SessionErr != nil {
		return nil, f.SessionErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session, nil
}

func (f *fakeStore) SignOut(ctx context.Context) error {
	if f.SignOutErr != nil {
		return f.SignOutErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.session = nil
	return nil
}

// fakeLocal is an in-memory LocalStore snapshot.
type fakeLocal struct {
	mu       sync.Mutex
	tasks    []domain.Task
	projects []domain.Project

	ReplaceAllErr error
	LoadErr       error
}

var _ ports.LocalStore = (*fakeLocal)(nil)

func (f *fakeLocal) ReplaceAll(ctx context.Context, tasks []domain.Task, projects []domain.Project) error {
	if f.ReplaceAllErr != nil {
		return f.ReplaceAllErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = cloneTasks(tasks)
	f.projects = append([]domain.Project(nil), projects...)
	return nil
}

func (f *fakeLocal) Load(ctx context.Context) ([]domain.Task, []domain.Project, error) {
	if f.LoadErr != nil {
		return nil, nil, f.LoadErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return cloneTasks(f.tasks), append([]domain.Project(nil), f.projects...), nil
}

func (f *fakeLocal) Close() error { return nil }
