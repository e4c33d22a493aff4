// Package api is a thin HTTP client for the authgate server endpoints.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/authgate/internal/common"
)

const requestTimeout = 10 * time.Second

type Client struct {
	baseURL string
	hc      *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: requestTimeout},
	}
}

// User mirrors the register response body. Password holds the server-side
// hash, never the plaintext that was sent.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type Joke struct {
	ID   string `json:"id"`
	Joke string `json:"joke"`
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// apiError turns a non-success response into an error carrying the server's
// message verbatim.
func apiError(resp *http.Response) error {
	var m messageResponse
	if err := json.NewDecoder(resp.Body).Decode(&m); err == nil && m.Message != "" {
		return errors.New(m.Message)
	}
	return fmt.Errorf("unexpected status: %s", resp.Status)
}

func (c *Client) postJSON(ctx context.Context, path string, body any) (*http.Response, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.hc.Do(req)
}

// Register creates an account and returns the stored record.
func (c *Client) Register(ctx context.Context, username, password string) (*User, error) {
	resp, err := c.postJSON(ctx, "/api/auth/register", credentials{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, apiError(resp)
	}

	user := &User{}
	if err := json.NewDecoder(resp.Body).Decode(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates and returns the server greeting and the access token.
func (c *Client) Login(ctx context.Context, username, password string) (string, string, error) {
	resp, err := c.postJSON(ctx, "/api/auth/login", credentials{Username: username, Password: password})
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", apiError(resp)
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return "", "", err
	}
	return lr.Message, lr.Token, nil
}

// Jokes fetches the protected resource using the given access token.
func (c *Client) Jokes(ctx context.Context, token string) ([]Joke, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/jokes", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(common.AccessTokenHeaderName, token)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var jokes []Joke
	if err := json.NewDecoder(resp.Body).Decode(&jokes); err != nil {
		return nil, err
	}
	return jokes, nil
}
