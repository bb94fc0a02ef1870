package assistant

import (
	"encoding/json"
	"strings"

	"taskdeck/internal/core/domain"
)

type envelope struct {
	Action              string          `json:"action"`
	Data                json.RawMessage `json:"data"`
	ConfirmationNeeded  bool            `json:"confirmationNeeded"`
	ConfirmationMessage string          `json:"confirmationMessage"`
}

type createTaskData struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	DueDate     string `json:"dueDate"`
	Reminder    string `json:"reminder"`
	ProjectID   string `json:"projectId"`
}

type createProjectData struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type askProjectData struct {
	Message     string          `json:"message"`
	PendingTask *createTaskData `json:"pendingTask"`
}

type generateContentData struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type rewriteData struct {
	Text string `json:"text"`
}

type chatData struct {
	Message string `json:"message"`
}

// ParseResponse decodes the assistant payload into the tagged union. Any
// shape that cannot be parsed degrades to a chat variant carrying the raw
// text, so a malformed model answer never becomes an error for the user.
func ParseResponse(raw []byte) domain.AssistantResponse {
	text := stripCodeFences(string(raw))

	var env envelope
	if err := json.Unmarshal([]byte(text), &env); err != nil || env.Action == "" {
		return chatFallback(text)
	}

	resp := domain.AssistantResponse{
		Action:              domain.AssistantAction(env.Action),
		ConfirmationNeeded:  env.ConfirmationNeeded,
		ConfirmationMessage: env.ConfirmationMessage,
	}

	switch resp.Action {
	case domain.ActionCreateTask:
		var data createTaskData
		if err := json.Unmarshal(env.Data, &data); err != nil || data.Title == "" {
			return chatFallback(text)
		}
		resp.CreateTask = taskAction(data)
	case domain.ActionCreateProject:
		var data createProjectData
		if err := json.Unmarshal(env.Data, &data); err != nil || data.Name == "" {
			return chatFallback(text)
		}
		resp.CreateProject = &domain.CreateProjectAction{Name: data.Name, Color: data.Color}
	case domain.ActionAskProject:
		var data askProjectData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return chatFallback(text)
		}
		ask := &domain.AskProjectAction{Message: data.Message}
		if data.PendingTask != nil {
			ask.PendingTask = taskAction(*data.PendingTask)
		}
		resp.AskProject = ask
	case domain.ActionGenerateContent:
		var data generateContentData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return chatFallback(text)
		}
		resp.GenerateContent = &domain.GenerateContentAction{Title: data.Title, Description: data.Description}
	case domain.ActionChangeTone, domain.ActionImprove, domain.ActionShorten, domain.ActionLengthen:
		var data rewriteData
		if err := json.Unmarshal(env.Data, &data); err != nil || data.Text == "" {
			return chatFallback(text)
		}
		resp.Rewrite = &domain.RewriteTextAction{Text: data.Text}
	case domain.ActionChat:
		var data chatData
		if err := json.Unmarshal(env.Data, &data); err != nil || data.Message == "" {
			return chatFallback(text)
		}
		resp.Chat = &domain.ChatAction{Message: data.Message}
	default:
		return chatFallback(text)
	}
	return resp
}

func taskAction(data createTaskData) *domain.CreateTaskAction {
	return &domain.CreateTaskAction{
		Title:       data.Title,
		Description: data.Description,
		Priority:    domain.TaskPriority(data.Priority),
		Status:      domain.TaskStatus(data.Status),
		DueDate:     data.DueDate,
		Reminder:    data.Reminder,
		ProjectID:   data.ProjectID,
	}
}

func chatFallback(text string) domain.AssistantResponse {
	return domain.AssistantResponse{
		Action: domain.ActionChat,
		Chat:   &domain.ChatAction{Message: text},
	}
}

// stripCodeFences removes a surrounding markdown code block, which the
// assistant emits despite being told not to.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
