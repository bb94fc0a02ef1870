package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"taskdeck/internal/core/domain"
)

type projectRow struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	TaskCount *int   `json:"task_count"`
}

func (c *Client) ListProjects(ctx context.Context, userID string) ([]domain.Project, error) {
	query := "select=*&user_id=eq." + url.QueryEscape(userID) + "&order=created_at.desc"
	var rows []projectRow
	if err := c.doJSON(ctx, http.MethodGet, c.tableURL("projects", query), nil, &rows); err != nil {
		return nil, err
	}

	projects := make([]domain.Project, 0, len(rows))
	for _, row := range rows {
		projects = append(projects, mapProjectRowToDomainProject(row))
	}
	return projects, nil
}

func (c *Client) InsertProject(ctx context.Context, userID, name, color string) (domain.Project, error) {
	payload := map[string]interface{}{
		"user_id": userID,
		"name":    name,
		"color":   color,
	}

	var rows []projectRow
	if err := c.doJSON(ctx, http.MethodPost, c.tableURL("projects", ""), []interface{}{payload}, &rows); err != nil {
		return domain.Project{}, err
	}
	if len(rows) == 0 {
		return domain.Project{}, fmt.Errorf("insert project: empty representation")
	}
	return mapProjectRowToDomainProject(rows[0]), nil
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	query := "id=eq." + url.QueryEscape(id)
	return c.doJSON(ctx, http.MethodDelete, c.tableURL("projects", query), nil, nil)
}

func mapProjectRowToDomainProject(row projectRow) domain.Project {
	project := domain.Project{
		ID:    row.ID,
		Name:  row.Name,
		Color: row.Color,
	}
	if row.TaskCount != nil {
		project.TaskCount = *row.TaskCount
	}
	return project
}
