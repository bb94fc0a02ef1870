package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"taskdeck/internal/adapter/http/dto"
	"taskdeck/internal/core/domain"
)

var ErrInvalidTaskPayload = errors.New("invalid task payload")

// BuildCreateTaskInput validates a create request. A reminder is a
// time-of-day that only makes sense combined with a due date.
func BuildCreateTaskInput(req dto.CreateTaskRequest) (domain.CreateTaskInput, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	input := domain.CreateTaskInput{
		Title:    title,
		Status:   domain.TaskStatusTodo,
		Priority: domain.TaskPriorityMedium,
	}
	if req.Description != nil {
		input.Description = *req.Description
	}
	if req.Status != nil {
		input.Status = domain.TaskStatus(*req.Status)
	}
	if req.Priority != nil {
		input.Priority = domain.TaskPriority(*req.Priority)
	}
	if req.ProjectID != nil {
		input.ProjectID = *req.ProjectID
	}

	if req.DueDate != nil {
		dueDate, err := time.ParseInLocation("2006-01-02", *req.DueDate, time.Local)
		if err != nil {
			return domain.CreateTaskInput{}, ErrInvalidTaskPayload
		}
		input.DueDate = &dueDate

		if req.Reminder != nil {
			reminder, err := domain.CombineReminder(dueDate, *req.Reminder)
			if err != nil {
				return domain.CreateTaskInput{}, ErrInvalidTaskPayload
			}
			input.Reminder = &reminder
		}
	} else if req.Reminder != nil {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	return input, nil
}

// BuildUpdateTaskInput turns a partial update request into engine input.
// The raw message map distinguishes an absent field from an explicit null:
// null clears a nullable field, absence leaves it untouched.
func BuildUpdateTaskInput(req dto.UpdateTaskRequest, raw map[string]json.RawMessage) (domain.UpdateTaskInput, error) {
	if !hasTaskUpdateFields(raw) {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}

	var input domain.UpdateTaskInput

	if hasJSONField(raw, "title") {
		if req.Title == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		value := strings.TrimSpace(*req.Title)
		if value == "" {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		input.Title = &value
	}

	if hasJSONField(raw, "description") {
		if isJSONNull(raw["description"]) {
			empty := ""
			input.Description = &empty
		} else if req.Description == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		} else {
			input.Description = req.Description
		}
	}

	if hasJSONField(raw, "status") {
		if req.Status == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		value := domain.TaskStatus(*req.Status)
		input.Status = &value
	}

	if hasJSONField(raw, "priority") {
		if req.Priority == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		value := domain.TaskPriority(*req.Priority)
		input.Priority = &value
	}

	if hasJSONField(raw, "project_id") {
		input.ProjectIDSet = true
		if !isJSONNull(raw["project_id"]) {
			if req.ProjectID == nil {
				return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
			}
			input.ProjectID = req.ProjectID
		}
	}

	var dueDate *time.Time
	if hasJSONField(raw, "due_date") {
		input.DueDateSet = true
		if !isJSONNull(raw["due_date"]) {
			if req.DueDate == nil {
				return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
			}
			parsed, err := time.ParseInLocation("2006-01-02", *req.DueDate, time.Local)
			if err != nil {
				return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
			}
			dueDate = &parsed
			input.DueDate = dueDate
		}
	}

	if hasJSONField(raw, "reminder") {
		input.ReminderSet = true
		if !isJSONNull(raw["reminder"]) {
			if req.Reminder == nil || dueDate == nil {
				// A reminder edit needs the due date in the same request
				// to anchor the time of day.
				return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
			}
			reminder, err := domain.CombineReminder(*dueDate, *req.Reminder)
			if err != nil {
				return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
			}
			input.Reminder = &reminder
		}
	}

	return input, nil
}

func hasTaskUpdateFields(raw map[string]json.RawMessage) bool {
	return hasJSONField(raw, "title") ||
		hasJSONField(raw, "description") ||
		hasJSONField(raw, "status") ||
		hasJSONField(raw, "priority") ||
		hasJSONField(raw, "project_id") ||
		hasJSONField(raw, "due_date") ||
		hasJSONField(raw, "reminder")
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
