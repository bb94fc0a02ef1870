package mapper

import (
	"taskdeck/internal/adapter/http/dto"
	"taskdeck/internal/core/domain"
)

func ToProjectItems(projects []domain.Project) []dto.ProjectItem {
	items := make([]dto.ProjectItem, 0, len(projects))
	for _, project := range projects {
		items = append(items, ToProjectItem(project))
	}
	return items
}

func ToProjectItem(project domain.Project) dto.ProjectItem {
	return dto.ProjectItem{
		ID:        project.ID,
		Name:      project.Name,
		Color:     project.Color,
		TaskCount: project.TaskCount,
	}
}
