package mapper

import (
	"time"

	"taskdeck/internal/adapter/http/dto"
	"taskdeck/internal/core/domain"
)

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		ProjectID:   task.ProjectID,
		CreatedAt:   task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   task.UpdatedAt.Format(time.RFC3339),
	}

	if task.DueDate != nil {
		value := task.DueDate.Format("2006-01-02")
		item.DueDate = &value
	}

	if task.Reminder != nil {
		value := task.Reminder.Format(time.RFC3339)
		item.Reminder = &value
	}

	if len(task.Attachments) > 0 {
		item.Attachments = ToAttachmentItems(task.Attachments)
	}

	return item
}

func ToAttachmentItems(attachments []domain.Attachment) []dto.AttachmentItem {
	items := make([]dto.AttachmentItem, 0, len(attachments))
	for _, a := range attachments {
		items = append(items, dto.AttachmentItem{
			ID:   a.ID,
			Name: a.Name,
			Type: a.Type,
			URL:  a.URL,
			Size: a.Size,
		})
	}
	return items
}
