package api

import "context"

// AuthRequest holds credentials for token authentication.
type AuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is the payload from POST /auth/token.
type AuthResponse struct {
	Token string `json:"token"`
}

// Authenticate exchanges credentials for a bearer token and stores it on the
// client for subsequent requests. The token lives only for this process.
func (c *Client) Authenticate(ctx context.Context, username, password string) error {
	var resp AuthResponse
	req := AuthRequest{Username: username, Password: password}
	if _, err := c.Do(ctx, "POST", "/auth/token", req, &resp); err != nil {
		return err
	}
	c.SetToken(resp.Token)
	return nil
}
