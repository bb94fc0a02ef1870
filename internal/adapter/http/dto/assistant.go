package dto

type AssistantMessageItem struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required"`
}

type AssistantChatRequest struct {
	Message string                 `json:"message" binding:"required"`
	History []AssistantMessageItem `json:"history" binding:"omitempty,dive"`
}

// AssistantResponseItem mirrors the tagged union: action selects which of
// the payload fields is present.
type AssistantResponseItem struct {
	Action              string                `json:"action"`
	ConfirmationNeeded  bool                  `json:"confirmation_needed"`
	ConfirmationMessage string                `json:"confirmation_message,omitempty"`
	CreateTask          *AssistantTaskPayload `json:"create_task,omitempty"`
	CreateProject       *CreateProjectRequest `json:"create_project,omitempty"`
	AskProject          *AssistantAskPayload  `json:"ask_project,omitempty"`
	GeneratedContent    *AssistantContent     `json:"generated_content,omitempty"`
	RewrittenText       string                `json:"rewritten_text,omitempty"`
	Message             string                `json:"message,omitempty"`
}

type AssistantTaskPayload struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority,omitempty"`
	Status      string `json:"status,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
	Reminder    string `json:"reminder,omitempty"`
	ProjectID   string `json:"project_id,omitempty"`
}

type AssistantAskPayload struct {
	Message     string                `json:"message"`
	PendingTask *AssistantTaskPayload `json:"pending_task,omitempty"`
}

type AssistantContent struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// AssistantExecuteRequest carries a confirmed actionable response back for
// execution.
type AssistantExecuteRequest struct {
	Action        string                `json:"action" binding:"required,oneof=create_task create_project"`
	CreateTask    *AssistantTaskPayload `json:"create_task" binding:"omitempty"`
	CreateProject *CreateProjectRequest `json:"create_project" binding:"omitempty"`
}
