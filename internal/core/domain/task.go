package domain

import (
	"fmt"
	"strings"
	"time"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "inprogress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// TempIDPrefix marks locally generated task ids awaiting server assignment.
const TempIDPrefix = "temp-"

type Task struct {
	ID          string
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	ProjectID   string
	DueDate     *time.Time
	Reminder    *time.Time
	Attachments []Attachment
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsTemp reports whether the task still carries a locally generated id.
func (t Task) IsTemp() bool {
	return strings.HasPrefix(t.ID, TempIDPrefix)
}

// Clone returns a deep copy, including the attachment list.
func (t Task) Clone() Task {
	out := t
	if t.Attachments != nil {
		out.Attachments = make([]Attachment, len(t.Attachments))
		copy(out.Attachments, t.Attachments)
	}
	return out
}

// NextStatus cycles todo -> inprogress -> completed -> cancelled -> todo.
func NextStatus(s TaskStatus) TaskStatus {
	switch s {
	case TaskStatusTodo:
		return TaskStatusInProgress
	case TaskStatusInProgress:
		return TaskStatusCompleted
	case TaskStatusCompleted:
		return TaskStatusCancelled
	default:
		return TaskStatusTodo
	}
}

func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

func ValidTaskPriority(p TaskPriority) bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

type CreateTaskInput struct {
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	ProjectID   string
	DueDate     *time.Time
	Reminder    *time.Time
}

// UpdateTaskInput carries a partial update. Nullable fields pair a pointer
// with a Set flag so "clear" and "leave untouched" stay distinguishable.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Status       *TaskStatus
	Priority     *TaskPriority
	ProjectID    *string
	ProjectIDSet bool
	DueDate      *time.Time
	DueDateSet   bool
	Reminder     *time.Time
	ReminderSet  bool
}

// CombineReminder builds an absolute reminder timestamp from a due date and a
// wall-clock time of day in the due date's location. A reminder is only
// meaningful with a due date context; callers must reject the combination
// otherwise. If the due date is edited later the reminder stays as computed
// here.
func CombineReminder(dueDate time.Time, timeOfDay string) (time.Time, error) {
	parsed, err := time.Parse("15:04", timeOfDay)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid reminder time %q: %w", timeOfDay, err)
	}
	return time.Date(
		dueDate.Year(), dueDate.Month(), dueDate.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0,
		dueDate.Location(),
	), nil
}
