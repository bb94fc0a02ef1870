package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"taskdeck/internal/core/domain"
)

type taskRow struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	ProjectID   *string `json:"project_id"`
	DueDate     *string `json:"due_date"`
	Reminder    *string `json:"reminder"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func (c *Client) ListTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	query := "select=*&user_id=eq." + url.QueryEscape(userID) + "&order=created_at.desc"
	var rows []taskRow
	if err := c.doJSON(ctx, http.MethodGet, c.tableURL("tasks", query), nil, &rows); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		task, err := mapTaskRowToDomainTask(row)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (c *Client) InsertTask(ctx context.Context, userID string, input domain.CreateTaskInput) (domain.Task, error) {
	payload := map[string]interface{}{
		"user_id":  userID,
		"title":    input.Title,
		"status":   string(input.Status),
		"priority": string(input.Priority),
	}
	if input.Description != "" {
		payload["description"] = input.Description
	}
	if input.ProjectID != "" {
		payload["project_id"] = input.ProjectID
	}
	if input.DueDate != nil {
		payload["due_date"] = input.DueDate.Format("2006-01-02")
	}
	if input.Reminder != nil {
		payload["reminder"] = input.Reminder.Format(time.RFC3339)
	}

	var rows []taskRow
	if err := c.doJSON(ctx, http.MethodPost, c.tableURL("tasks", ""), []interface{}{payload}, &rows); err != nil {
		return domain.Task{}, err
	}
	if len(rows) == 0 {
		return domain.Task{}, fmt.Errorf("insert task: empty representation")
	}
	return mapTaskRowToDomainTask(rows[0])
}

func (c *Client) UpdateTask(ctx context.Context, id string, input domain.UpdateTaskInput) error {
	payload := map[string]interface{}{}
	if input.Title != nil {
		payload["title"] = *input.Title
	}
	if input.Description != nil {
		payload["description"] = *input.Description
	}
	if input.Status != nil {
		payload["status"] = string(*input.Status)
	}
	if input.Priority != nil {
		payload["priority"] = string(*input.Priority)
	}
	if input.ProjectIDSet {
		if input.ProjectID != nil && *input.ProjectID != "" {
			payload["project_id"] = *input.ProjectID
		} else {
			payload["project_id"] = nil
		}
	}
	if input.DueDateSet {
		if input.DueDate != nil {
			payload["due_date"] = input.DueDate.Format("2006-01-02")
		} else {
			payload["due_date"] = nil
		}
	}
	if input.ReminderSet {
		if input.Reminder != nil {
			payload["reminder"] = input.Reminder.Format(time.RFC3339)
		} else {
			payload["reminder"] = nil
		}
	}
	if len(payload) == 0 {
		return nil
	}

	query := "id=eq." + url.QueryEscape(id)
	return c.doJSON(ctx, http.MethodPatch, c.tableURL("tasks", query), payload, nil)
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	query := "id=eq." + url.QueryEscape(id)
	return c.doJSON(ctx, http.MethodDelete, c.tableURL("tasks", query), nil, nil)
}

func mapTaskRowToDomainTask(row taskRow) (domain.Task, error) {
	createdAt, err := time.Parse(time.RFC3339, row.CreatedAt)
	if err != nil {
		return domain.Task{}, fmt.Errorf("task %s: bad created_at: %w", row.ID, err)
	}
	updatedAt, err := time.Parse(time.RFC3339, row.UpdatedAt)
	if err != nil {
		return domain.Task{}, fmt.Errorf("task %s: bad updated_at: %w", row.ID, err)
	}

	task := domain.Task{
		ID:        row.ID,
		Title:     row.Title,
		Status:    domain.TaskStatus(row.Status),
		Priority:  domain.TaskPriority(row.Priority),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}

	if row.Description != nil {
		task.Description = *row.Description
	}
	if row.ProjectID != nil {
		task.ProjectID = *row.ProjectID
	}
	if row.DueDate != nil {
		due, err := parseDate(*row.DueDate)
		if err != nil {
			return domain.Task{}, fmt.Errorf("task %s: bad due_date: %w", row.ID, err)
		}
		task.DueDate = &due
	}
	if row.Reminder != nil {
		reminder, err := time.Parse(time.RFC3339, *row.Reminder)
		if err != nil {
			return domain.Task{}, fmt.Errorf("task %s: bad reminder: %w", row.ID, err)
		}
		task.Reminder = &reminder
	}
	return task, nil
}

// parseDate accepts both bare dates and full timestamps.
func parseDate(value string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", value, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
