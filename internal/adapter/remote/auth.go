package remote

import (
	"context"
	"fmt"
	"net/http"

	"taskdeck/internal/core/domain"
)

type tokenResponse struct {
	AccessToken string   `json:"access_token"`
	User        userBody `json:"user"`
}

type userBody struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SignIn exchanges credentials for a session and installs its access token
// on the client.
func (c *Client) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	url := fmt.Sprintf("%s/auth/v1/token?grant_type=password", c.baseURL)
	payload := map[string]string{"email": email, "password": password}

	var body tokenResponse
	if err := c.doJSON(ctx, http.MethodPost, url, payload, &body); err != nil {
		return nil, err
	}
	if body.AccessToken == "" {
		return nil, fmt.Errorf("sign in: no access token returned")
	}

	c.SetAccessToken(body.AccessToken)
	return &domain.Session{
		UserID:      body.User.ID,
		Email:       body.User.Email,
		AccessToken: body.AccessToken,
	}, nil
}

// Session returns the current session, or nil when unauthenticated.
func (c *Client) Session(ctx context.Context) (*domain.Session, error) {
	token := c.accessToken()
	if token == "" {
		return nil, nil
	}

	url := fmt.Sprintf("%s/auth/v1/user", c.baseURL)
	req, err := c.newRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(http.MethodGet, url, resp)
	}

	var user userBody
	if err := decodeJSON(resp, &user); err != nil {
		return nil, err
	}
	return &domain.Session{UserID: user.ID, Email: user.Email, AccessToken: token}, nil
}

// SignOut invalidates the remote session and drops the stored token even if
// the remote call fails.
func (c *Client) SignOut(ctx context.Context) error {
	url := fmt.Sprintf("%s/auth/v1/logout", c.baseURL)

	req, err := c.newRequest(ctx, http.MethodPost, url, nil)
	if err != nil {
		c.SetAccessToken("")
		return err
	}
	resp, err := c.httpClient.Do(req)
	c.SetAccessToken("")
	if err != nil {
		return err
	}
	defer closeBody(resp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(http.MethodPost, url, resp)
	}
	return nil
}
