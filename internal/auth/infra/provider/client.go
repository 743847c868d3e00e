package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/agrimap/market/internal/auth/app"
)

// Client talks to the external identity provider that issued the oauth
// session. The provider vouches for an email; everything else about the
// account lives locally.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type sessionDataResponse struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (c *Client) Resolve(ctx context.Context, providerSessionID string) (app.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return app.Identity{}, err
	}
	req.Header.Set("X-Session-ID", providerSessionID)

	resp, err := c.http.Do(req)
	if err != nil {
		return app.Identity{}, fmt.Errorf("identity provider: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return app.Identity{}, app.ErrUnauthenticated
	default:
		return app.Identity{}, fmt.Errorf("identity provider: unexpected status %d", resp.StatusCode)
	}

	var body sessionDataResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return app.Identity{}, fmt.Errorf("identity provider: decode: %w", err)
	}

	return app.Identity{
		Email:   body.Email,
		Name:    body.Name,
		Picture: body.Picture,
	}, nil
}
