package dto

type AttachmentItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

type TaskItem struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Status      string           `json:"status"`
	Priority    string           `json:"priority"`
	ProjectID   string           `json:"project_id"`
	DueDate     *string          `json:"due_date,omitempty"`
	Reminder    *string          `json:"reminder,omitempty"`
	Attachments []AttachmentItem `json:"attachments,omitempty"`
	CreatedAt   string           `json:"created_at"`
	UpdatedAt   string           `json:"updated_at"`
}

type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description *string `json:"description" binding:"omitempty,max=65535"`
	Status      *string `json:"status" binding:"omitempty,oneof=todo inprogress completed cancelled"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=low medium high"`
	ProjectID   *string `json:"project_id" binding:"omitempty,max=255"`
	DueDate     *string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	// Reminder is a wall-clock time of day (HH:MM) combined with due_date.
	Reminder *string `json:"reminder" binding:"omitempty,datetime=15:04"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=255"`
	Description *string `json:"description" binding:"omitempty,max=65535"`
	Status      *string `json:"status" binding:"omitempty,oneof=todo inprogress completed cancelled"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=low medium high"`
	ProjectID   *string `json:"project_id" binding:"omitempty,max=255"`
	DueDate     *string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Reminder    *string `json:"reminder" binding:"omitempty,datetime=15:04"`
}
