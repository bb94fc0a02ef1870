package domain

import (
	"errors"
	"fmt"
)

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrProtectedProject   = errors.New("protected project")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrReminderWithoutDue = errors.New("reminder requires a due date")
)

// LoadError wraps a failed full reload; prior local state is retained.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string { return fmt.Sprintf("load failed: %v", e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

// MutationError wraps a failed create/update/delete after the optimistic
// local change has been rolled back.
type MutationError struct {
	Op  string
	ID  string
	Err error
}

func (e *MutationError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Op, e.ID, e.Err)
}

func (e *MutationError) Unwrap() error { return e.Err }

// UploadError wraps a failed blob transfer; no metadata was recorded.
type UploadError struct {
	Name string
	Err  error
}

func (e *UploadError) Error() string { return fmt.Sprintf("upload %s failed: %v", e.Name, e.Err) }
func (e *UploadError) Unwrap() error { return e.Err }

// AttachmentDeleteError reports a failed two-phase attachment delete.
// MetadataDeleted distinguishes an orphaned blob (acceptable) from an
// orphaned metadata record (not acceptable, nothing was removed locally).
type AttachmentDeleteError struct {
	ID              string
	MetadataDeleted bool
	Err             error
}

func (e *AttachmentDeleteError) Error() string {
	phase := "metadata"
	if e.MetadataDeleted {
		phase = "blob"
	}
	return fmt.Sprintf("delete attachment %s: %s phase failed: %v", e.ID, phase, e.Err)
}

func (e *AttachmentDeleteError) Unwrap() error { return e.Err }
