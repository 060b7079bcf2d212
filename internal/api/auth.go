package api

import "context"

// tokenResponse is the credential exchange envelope.
type tokenResponse struct {
	Token string `json:"token"`
}

// ObtainToken exchanges a username and password for an opaque bearer
// credential. The call itself is unauthenticated.
func (c *Client) ObtainToken(ctx context.Context, username, password string) (string, error) {
	payload := map[string]string{"username": username, "password": password}
	var resp tokenResponse
	if err := c.postJSON(ctx, "/auth/token/", payload, false, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Me returns the identity behind the current credential.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.getJSON(ctx, "/auth/me/", nil, true, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
