package remote

import (
	"context"
	"fmt"
	"net/http"

	"taskdeck/internal/core/domain"
)

// UploadObject streams the blob to the bucket and returns the publicly
// resolvable URL of the stored object.
func (c *Client) UploadObject(ctx context.Context, path string, file domain.FileUpload) (string, error) {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, path)

	req, err := c.newRequest(ctx, http.MethodPost, url, file.Content)
	if err != nil {
		return "", err
	}
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	if file.Size > 0 {
		req.ContentLength = file.Size
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer closeBody(resp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", statusError(http.MethodPost, url, resp)
	}
	return c.PublicURL(path), nil
}

func (c *Client) DeleteObject(ctx context.Context, path string) error {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, path)

	req, err := c.newRequest(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer closeBody(resp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(http.MethodDelete, url, resp)
	}
	return nil
}

// PublicURL returns the public address of an object path in the bucket.
func (c *Client) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, path)
}
