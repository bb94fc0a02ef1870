package service

import (
	"context"
	"fmt"
	"time"

	"taskdeck/internal/core/domain"
	"taskdeck/internal/core/ports"
)

// AssistantExecutor forwards a user message to the assistant collaborator
// and, for confirmed actionable responses, executes create_task and
// create_project against the sync engine. Everything else passes through to
// the caller untouched.
type AssistantExecutor struct {
	assistant ports.Assistant
	engine    *SyncEngine
}

func NewAssistantExecutor(assistant ports.Assistant, engine *SyncEngine) *AssistantExecutor {
	return &AssistantExecutor{assistant: assistant, engine: engine}
}

var _ ports.AssistantGateway = (*AssistantExecutor)(nil)

// Send relays the message together with the conversation history and the
// current project list.
func (x *AssistantExecutor) Send(ctx context.Context, message string, history []domain.AssistantMessage) (domain.AssistantResponse, error) {
	return x.assistant.Send(ctx, message, history, x.engine.Projects())
}

// Execute applies a confirmed actionable response. Non-actionable kinds are
// a no-op.
func (x *AssistantExecutor) Execute(ctx context.Context, resp domain.AssistantResponse) error {
	switch resp.Action {
	case domain.ActionCreateTask:
		if resp.CreateTask == nil {
			return fmt.Errorf("create_task response without payload")
		}
		_, err := x.engine.CreateTask(ctx, BuildAssistantTask(*resp.CreateTask))
		return err
	case domain.ActionCreateProject:
		if resp.CreateProject == nil {
			return fmt.Errorf("create_project response without payload")
		}
		_, err := x.engine.CreateProject(ctx, resp.CreateProject.Name, resp.CreateProject.Color)
		return err
	default:
		return nil
	}
}

// BuildAssistantTask converts an assistant create_task payload into engine
// input, combining the HH:MM reminder with the due date when both are given.
func BuildAssistantTask(action domain.CreateTaskAction) domain.CreateTaskInput {
	input := domain.CreateTaskInput{
		Title:       action.Title,
		Description: action.Description,
		Status:      action.Status,
		Priority:    action.Priority,
		ProjectID:   action.ProjectID,
	}
	if !domain.ValidTaskStatus(input.Status) {
		input.Status = domain.TaskStatusTodo
	}
	if !domain.ValidTaskPriority(input.Priority) {
		input.Priority = domain.TaskPriorityMedium
	}
	if action.DueDate != "" {
		if due, err := time.ParseInLocation("2006-01-02", action.DueDate, time.Local); err == nil {
			input.DueDate = &due
			if action.Reminder != "" {
				if reminder, err := domain.CombineReminder(due, action.Reminder); err == nil {
					input.Reminder = &reminder
				}
			}
		}
	}
	return input
}
