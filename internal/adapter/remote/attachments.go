package remote

import (
	"context"
	"net/http"
	"net/url"

	"taskdeck/internal/core/domain"
)

type attachmentRow struct {
	ID     string `json:"id"`
	TaskID string `json:"task_id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	URL    string `json:"url"`
	Size   int64  `json:"size"`
}

// ListAttachments returns the owner's attachments grouped by task id, in
// upload order.
func (c *Client) ListAttachments(ctx context.Context, userID string) (map[string][]domain.Attachment, error) {
	query := "select=*&user_id=eq." + url.QueryEscape(userID) + "&order=created_at.asc"
	var rows []attachmentRow
	if err := c.doJSON(ctx, http.MethodGet, c.tableURL("attachments", query), nil, &rows); err != nil {
		return nil, err
	}

	byTask := make(map[string][]domain.Attachment, len(rows))
	for _, row := range rows {
		byTask[row.TaskID] = append(byTask[row.TaskID], domain.Attachment{
			ID:   row.ID,
			Name: row.Name,
			Type: row.Type,
			URL:  row.URL,
			Size: row.Size,
		})
	}
	return byTask, nil
}

func (c *Client) InsertAttachment(ctx context.Context, taskID, userID string, att domain.Attachment) error {
	payload := map[string]interface{}{
		"id":      att.ID,
		"task_id": taskID,
		"user_id": userID,
		"name":    att.Name,
		"type":    att.Type,
		"url":     att.URL,
		"size":    att.Size,
	}
	return c.doJSON(ctx, http.MethodPost, c.tableURL("attachments", ""), []interface{}{payload}, nil)
}

func (c *Client) DeleteAttachment(ctx context.Context, id string) error {
	query := "id=eq." + url.QueryEscape(id)
	return c.doJSON(ctx, http.MethodDelete, c.tableURL("attachments", query), nil, nil)
}
