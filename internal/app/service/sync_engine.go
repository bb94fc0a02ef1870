package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"taskdeck/internal/core/domain"
	"taskdeck/internal/core/ports"
)

// SyncEngine is the canonical synchronization layer between local UI state
// and the remote store. It owns the in-memory task/project collections,
// applies mutations optimistically, and rolls back to a pre-mutation
// snapshot when the remote call fails.
//
// Rollback is collection-wide: a concurrent optimistic edit applied between
// snapshot and failure is discarded with it. Last write wins on the local
// copy until then.
type SyncEngine struct {
	store ports.RemoteStore
	local ports.LocalStore
	now   func() time.Time

	mu       sync.Mutex
	session  *domain.Session
	tasks    []domain.Task
	projects []domain.Project
}

func NewSyncEngine(store ports.RemoteStore, local ports.LocalStore) *SyncEngine {
	return &SyncEngine{
		store: store,
		local: local,
		now:   time.Now,
	}
}

var _ ports.SyncEngine = (*SyncEngine)(nil)

// SetSession installs the authenticated session the engine operates under.
// A nil session leaves the engine unable to load or mutate remotely.
func (e *SyncEngine) SetSession(s *domain.Session) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session = s
}

func (e *SyncEngine) userID() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return "", domain.ErrNotAuthenticated
	}
	return e.session.UserID, nil
}

// Load replaces both collections wholesale with the remote state, newest
// first, attachments grouped per task. On failure the prior local state is
// retained and a LoadError is returned.
func (e *SyncEngine) Load(ctx context.Context) error {
	userID, err := e.userID()
	if err != nil {
		return &domain.LoadError{Err: err}
	}

	tasks, err := e.store.ListTasks(ctx, userID)
	if err != nil {
		return &domain.LoadError{Err: err}
	}
	projects, err := e.store.ListProjects(ctx, userID)
	if err != nil {
		return &domain.LoadError{Err: err}
	}
	attachments, err := e.store.ListAttachments(ctx, userID)
	if err != nil {
		return &domain.LoadError{Err: err}
	}

	for i := range tasks {
		tasks[i].Attachments = attachments[tasks[i].ID]
	}

	e.mu.Lock()
	e.tasks = tasks
	e.projects = projects
	e.recomputeTaskCounts()
	e.mu.Unlock()

	e.persistLocal(ctx)
	return nil
}

// Restore hydrates the collections from the local snapshot store, making the
// last synced state available before the remote store has answered. A later
// successful Load replaces it wholesale.
func (e *SyncEngine) Restore(ctx context.Context) error {
	if e.local == nil {
		return nil
	}
	tasks, projects, err := e.local.Load(ctx)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.tasks = tasks
	e.projects = projects
	e.recomputeTaskCounts()
	e.mu.Unlock()
	return nil
}

// Tasks returns a snapshot of the task collection, newest first.
func (e *SyncEngine) Tasks() []domain.Task {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneTasks(e.tasks)
}

// Projects returns a snapshot of the project collection.
func (e *SyncEngine) Projects() []domain.Project {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]domain.Project, len(e.projects))
	copy(out, e.projects)
	return out
}

// CreateTask prepends an optimistic task under a temporary id, then issues
// the remote insert. On success the temp entry is spliced out for the
// server-assigned entity; on failure it is removed entirely.
func (e *SyncEngine) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	userID, err := e.userID()
	if err != nil {
		return domain.Task{}, &domain.MutationError{Op: "create task", Err: err}
	}
	if input.Reminder != nil && input.DueDate == nil {
		return domain.Task{}, &domain.MutationError{Op: "create task", Err: domain.ErrReminderWithoutDue}
	}

	now := e.now()
	optimistic := domain.Task{
		ID:          fmt.Sprintf("%s%d", domain.TempIDPrefix, now.UnixNano()),
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

	e.mu.Lock()
	e.tasks = append([]domain.Task{optimistic}, e.tasks...)
	e.recomputeTaskCounts()
	e.mu.Unlock()
	e.persistLocal(ctx)

	created, err := e.store.InsertTask(ctx, userID, input)
	if err != nil {
		e.mu.Lock()
		e.tasks = removeTask(e.tasks, optimistic.ID)
		e.recomputeTaskCounts()
		e.mu.Unlock()
		e.persistLocal(ctx)
		return domain.Task{}, &domain.MutationError{Op: "create task", Err: err}
	}

	e.mu.Lock()
	for i := range e.tasks {
		if e.tasks[i].ID == optimistic.ID {
			e.tasks[i] = created
			break
		}
	}
	e.mu.Unlock()
	e.persistLocal(ctx)
	return created, nil
}

// UpdateTask merges the provided fields into the matching task immediately,
// then issues the remote update. On failure the entire pre-mutation
// collection snapshot is restored.
func (e *SyncEngine) UpdateTask(ctx context.Context, id string, input domain.UpdateTaskInput) error {
	if _, err := e.userID(); err != nil {
		return &domain.MutationError{Op: "update task", ID: id, Err: err}
	}

	e.mu.Lock()
	idx := indexOfTask(e.tasks, id)
	if idx < 0 {
		e.mu.Unlock()
		return domain.ErrTaskNotFound
	}
	snapshot := cloneTasks(e.tasks)
	applyTaskUpdate(&e.tasks[idx], input, e.now())
	e.recomputeTaskCounts()
	e.mu.Unlock()
	e.persistLocal(ctx)

	if err := e.store.UpdateTask(ctx, id, input); err != nil {
		e.mu.Lock()
		e.tasks = snapshot
		e.recomputeTaskCounts()
		e.mu.Unlock()
		e.persistLocal(ctx)
		return &domain.MutationError{Op: "update task", ID: id, Err: err}
	}
	return nil
}

// DeleteTask removes the task immediately and restores the snapshot if the
// remote delete fails.
func (e *SyncEngine) DeleteTask(ctx context.Context, id string) error {
	if _, err := e.userID(); err != nil {
		return &domain.MutationError{Op: "delete task", ID: id, Err: err}
	}

	e.mu.Lock()
	if indexOfTask(e.tasks, id) < 0 {
		e.mu.Unlock()
		return domain.ErrTaskNotFound
	}
	snapshot := cloneTasks(e.tasks)
	e.tasks = removeTask(e.tasks, id)
	e.recomputeTaskCounts()
	e.mu.Unlock()
	e.persistLocal(ctx)

	if err := e.store.DeleteTask(ctx, id); err != nil {
		e.mu.Lock()
		e.tasks = snapshot
		e.recomputeTaskCounts()
		e.mu.Unlock()
		e.persistLocal(ctx)
		return &domain.MutationError{Op: "delete task", ID: id, Err: err}
	}
	return nil
}

// CreateProject is remote-first: the project only appears locally after the
// insert succeeds.
func (e *SyncEngine) CreateProject(ctx context.Context, name, color string) (domain.Project, error) {
	userID, err := e.userID()
	if err != nil {
		return domain.Project{}, &domain.MutationError{Op: "create project", Err: err}
	}

	created, err := e.store.InsertProject(ctx, userID, name, color)
	if err != nil {
		return domain.Project{}, &domain.MutationError{Op: "create project", Err: err}
	}
	created.TaskCount = 0

	e.mu.Lock()
	e.projects = append(e.projects, created)
	e.mu.Unlock()
	e.persistLocal(ctx)
	return created, nil
}

// DeleteProject rejects reserved projects before any network call. Tasks
// referencing the deleted project are not deleted; a follow-up pass clears
// their reference, moving them back to the personal bucket.
func (e *SyncEngine) DeleteProject(ctx context.Context, id string) error {
	if domain.IsReservedProject(id) {
		return domain.ErrProtectedProject
	}

	if _, err := e.userID(); err != nil {
		return &domain.MutationError{Op: "delete project", ID: id, Err: err}
	}

	e.mu.Lock()
	found := false
	for _, p := range e.projects {
		if p.ID == id {
			found = true
			break
		}
	}
	e.mu.Unlock()
	if !found {
		return domain.ErrProjectNotFound
	}

	if err := e.store.DeleteProject(ctx, id); err != nil {
		return &domain.MutationError{Op: "delete project", ID: id, Err: err}
	}

	e.mu.Lock()
	kept := e.projects[:0]
	for _, p := range e.projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	e.projects = kept
	for i := range e.tasks {
		if e.tasks[i].ProjectID == id {
			e.tasks[i].ProjectID = ""
		}
	}
	e.recomputeTaskCounts()
	e.mu.Unlock()
	e.persistLocal(ctx)
	return nil
}

// Clear drops both collections, discarding any pending optimistic state.
// Used on sign-out.
func (e *SyncEngine) Clear() {
	e.mu.Lock()
	e.tasks = nil
	e.projects = nil
	e.session = nil
	e.mu.Unlock()
	e.persistLocal(context.Background())
}

// TaskAttachments returns the current attachment list of a task.
func (e *SyncEngine) TaskAttachments(taskID string) ([]domain.Attachment, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	idx := indexOfTask(e.tasks, taskID)
	if idx < 0 {
		return nil, domain.ErrTaskNotFound
	}
	out := make([]domain.Attachment, len(e.tasks[idx].Attachments))
	copy(out, e.tasks[idx].Attachments)
	return out, nil
}

// AddAttachments appends attachments to a task, skipping any whose URL is
// already present.
func (e *SyncEngine) AddAttachments(ctx context.Context, taskID string, atts []domain.Attachment) error {
	e.mu.Lock()
	idx := indexOfTask(e.tasks, taskID)
	if idx < 0 {
		e.mu.Unlock()
		return domain.ErrTaskNotFound
	}
	existing := make(map[string]struct{}, len(e.tasks[idx].Attachments))
	for _, a := range e.tasks[idx].Attachments {
		existing[a.URL] = struct{}{}
	}
	for _, a := range atts {
		if _, ok := existing[a.URL]; ok {
			continue
		}
		existing[a.URL] = struct{}{}
		e.tasks[idx].Attachments = append(e.tasks[idx].Attachments, a)
	}
	e.mu.Unlock()
	e.persistLocal(ctx)
	return nil
}

// RemoveAttachment drops an attachment from a task's local list.
func (e *SyncEngine) RemoveAttachment(ctx context.Context, taskID, attachmentID string) error {
	e.mu.Lock()
	idx := indexOfTask(e.tasks, taskID)
	if idx < 0 {
		e.mu.Unlock()
		return domain.ErrTaskNotFound
	}
	kept := e.tasks[idx].Attachments[:0]
	for _, a := range e.tasks[idx].Attachments {
		if a.ID != attachmentID {
			kept = append(kept, a)
		}
	}
	e.tasks[idx].Attachments = kept
	e.mu.Unlock()
	e.persistLocal(ctx)
	return nil
}

// recomputeTaskCounts refreshes the derived per-project counters from the
// task collection. Caller holds the lock.
func (e *SyncEngine) recomputeTaskCounts() {
	counts := make(map[string]int, len(e.projects))
	for _, t := range e.tasks {
		if t.ProjectID != "" {
			counts[t.ProjectID]++
		}
	}
	for i := range e.projects {
		e.projects[i].TaskCount = counts[e.projects[i].ID]
	}
}

// persistLocal mirrors the current collections into the local snapshot
// store. Persistence failures never surface to callers.
func (e *SyncEngine) persistLocal(ctx context.Context) {
	if e.local == nil {
		return
	}
	e.mu.Lock()
	tasks := cloneTasks(e.tasks)
	projects := make([]domain.Project, len(e.projects))
	copy(projects, e.projects)
	e.mu.Unlock()

	if err := e.local.ReplaceAll(ctx, tasks, projects); err != nil {
		zap.L().Warn("failed to persist local snapshot", zap.Error(err))
	}
}

func applyTaskUpdate(t *domain.Task, input domain.UpdateTaskInput, now time.Time) {
	if input.Title != nil {
		t.Title = *input.Title
	}
	if input.Description != nil {
		t.Description = *input.Description
	}
	if input.Status != nil {
		t.Status = *input.Status
	}
	if input.Priority != nil {
		t.Priority = *input.Priority
	}
	if input.ProjectIDSet {
		if input.ProjectID != nil {
			t.ProjectID = *input.ProjectID
		} else {
			t.ProjectID = ""
		}
	}
	if input.DueDateSet {
		t.DueDate = input.DueDate
	}
	if input.ReminderSet {
		t.Reminder = input.Reminder
	}
	t.UpdatedAt = now
}

func indexOfTask(tasks []domain.Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func removeTask(tasks []domain.Task, id string) []domain.Task {
	kept := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	return kept
}

func cloneTasks(tasks []domain.Task) []domain.Task {
	out := make([]domain.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}
