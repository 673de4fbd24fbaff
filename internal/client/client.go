// Package client implements the Go client for the task manager API:
// a thin JSON/HTTP wrapper (Client) and a session state machine
// (SessionManager) that owns the bearer token and the resolved user.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var ErrUnauthorized = errors.New("unauthorized")

// APIError is any non-401 failure response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: %d %s", e.Status, e.Message)
}

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AuthResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	resp := new(AuthResponse)
	err := c.do(ctx, http.MethodPost, "/users", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, resp)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	resp := new(AuthResponse)
	err := c.do(ctx, http.MethodPost, "/users/login", "", map[string]string{
		"email":    email,
		"password": password,
	}, resp)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) GetMe(ctx context.Context, token string) (*User, error) {
	user := new(User)
	err := c.do(ctx, http.MethodGet, "/users/me", token, nil, user)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (c *Client) GetTasks(ctx context.Context, token string) ([]Task, error) {
	var tasks []Task
	err := c.do(ctx, http.MethodGet, "/tasks", token, nil, &tasks)
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, token, text string) (*Task, error) {
	task := new(Task)
	err := c.do(ctx, http.MethodPost, "/tasks", token, map[string]string{
		"text": text,
	}, task)
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (c *Client) UpdateTask(ctx context.Context, token, taskID, text string) (*Task, error) {
	task := new(Task)
	err := c.do(ctx, http.MethodPut, "/tasks/"+taskID, token, map[string]string{
		"text": text,
	}, task)
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (c *Client) DeleteTask(ctx context.Context, token, taskID string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+taskID, token, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode >= 400 {
		var apiErr struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &APIError{Status: resp.StatusCode, Message: apiErr.Message}
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		err = json.NewDecoder(resp.Body).Decode(out)
		if err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
