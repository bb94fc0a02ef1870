package domain

// Assistant action kinds. Responses from the assistant collaborator arrive as
// a loosely typed action+data payload and are decoded into exactly one of the
// variants below, with chat as the fallback for anything unparseable.
type AssistantAction string

const (
	ActionCreateTask      AssistantAction = "create_task"
	ActionCreateProject   AssistantAction = "create_project"
	ActionAskProject      AssistantAction = "ask_project"
	ActionGenerateContent AssistantAction = "generate_content"
	ActionChangeTone      AssistantAction = "change_tone"
	ActionImprove         AssistantAction = "improve"
	ActionShorten         AssistantAction = "shorten"
	ActionLengthen        AssistantAction = "lengthen"
	ActionChat            AssistantAction = "chat"
)

type AssistantMessage struct {
	Role    string
	Content string
}

// AssistantResponse is the tagged union. Exactly one payload field matching
// Action is populated.
type AssistantResponse struct {
	Action              AssistantAction
	ConfirmationNeeded  bool
	ConfirmationMessage string
	CreateTask          *CreateTaskAction
	CreateProject       *CreateProjectAction
	AskProject          *AskProjectAction
	GenerateContent     *GenerateContentAction
	Rewrite             *RewriteTextAction
	Chat                *ChatAction
}

type CreateTaskAction struct {
	Title       string
	Description string
	Priority    TaskPriority
	Status      TaskStatus
	DueDate     string // YYYY-MM-DD, optional
	Reminder    string // HH:MM, optional, combined with DueDate
	ProjectID   string
}

type CreateProjectAction struct {
	Name  string
	Color string
}

type AskProjectAction struct {
	Message     string
	PendingTask *CreateTaskAction
}

type GenerateContentAction struct {
	Title       string
	Description string
}

// RewriteTextAction covers the tone-change family: change_tone, improve,
// shorten, lengthen.
type RewriteTextAction struct {
	Text string
}

type ChatAction struct {
	Message string
}
