package mapper

import (
	"taskdeck/internal/adapter/http/dto"
	"taskdeck/internal/core/domain"
)

func ToAssistantResponseItem(resp domain.AssistantResponse) dto.AssistantResponseItem {
	item := dto.AssistantResponseItem{
		Action:              string(resp.Action),
		ConfirmationNeeded:  resp.ConfirmationNeeded,
		ConfirmationMessage: resp.ConfirmationMessage,
	}

	if resp.CreateTask != nil {
		item.CreateTask = toAssistantTaskPayload(*resp.CreateTask)
	}
	if resp.CreateProject != nil {
		item.CreateProject = &dto.CreateProjectRequest{
			Name:  resp.CreateProject.Name,
			Color: resp.CreateProject.Color,
		}
	}
	if resp.AskProject != nil {
		ask := &dto.AssistantAskPayload{Message: resp.AskProject.Message}
		if resp.AskProject.PendingTask != nil {
			ask.PendingTask = toAssistantTaskPayload(*resp.AskProject.PendingTask)
		}
		item.AskProject = ask
	}
	if resp.GenerateContent != nil {
		item.GeneratedContent = &dto.AssistantContent{
			Title:       resp.GenerateContent.Title,
			Description: resp.GenerateContent.Description,
		}
	}
	if resp.Rewrite != nil {
		item.RewrittenText = resp.Rewrite.Text
	}
	if resp.Chat != nil {
		item.Message = resp.Chat.Message
	}
	return item
}

func toAssistantTaskPayload(action domain.CreateTaskAction) *dto.AssistantTaskPayload {
	return &dto.AssistantTaskPayload{
		Title:       action.Title,
		Description: action.Description,
		Priority:    string(action.Priority),
		Status:      string(action.Status),
		DueDate:     action.DueDate,
		Reminder:    action.Reminder,
		ProjectID:   action.ProjectID,
	}
}

// ToAssistantResponse rebuilds a domain response from a confirmed execute
// request.
func ToAssistantResponse(req dto.AssistantExecuteRequest) domain.AssistantResponse {
	resp := domain.AssistantResponse{Action: domain.AssistantAction(req.Action)}
	if req.CreateTask != nil {
		resp.CreateTask = &domain.CreateTaskAction{
			Title:       req.CreateTask.Title,
			Description: req.CreateTask.Description,
			Priority:    domain.TaskPriority(req.CreateTask.Priority),
			Status:      domain.TaskStatus(req.CreateTask.Status),
			DueDate:     req.CreateTask.DueDate,
			Reminder:    req.CreateTask.Reminder,
			ProjectID:   req.CreateTask.ProjectID,
		}
	}
	if req.CreateProject != nil {
		resp.CreateProject = &domain.CreateProjectAction{
			Name:  req.CreateProject.Name,
			Color: req.CreateProject.Color,
		}
	}
	return resp
}
