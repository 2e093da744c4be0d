// Package client is a typed Go client for the TaskHive HTTP API, plus the
// board page loading and authentication state logic a front end builds on it.
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
	"sync"
	"time"

	"github.com/yukikurage/taskhive/internal/dto"
	"github.com/yukikurage/taskhive/internal/models"
)

// Error is a non-2xx API response.
type Error struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("taskhive: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// StatusCode returns the HTTP status of an API error, or 0 for other errors.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// Client calls the API with the bearer token it currently holds.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// New creates a client for the API rooted at baseURL, e.g.
// "http://localhost:5000/api". A nil httpClient uses http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// SetToken replaces the bearer token sent with every request. "" sends none.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("taskhive: failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("taskhive: failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("taskhive: request to %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("taskhive: failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		if jsonErr := json.Unmarshal(respBody, apiErr); jsonErr != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(respBody))
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("taskhive: failed to parse response from %s %s: %w", method, path, err)
	}
	return nil
}

type messageResponse struct {
	Message string `json:"message"`
}

// Auth

// Register creates an account. The returned token is not installed on c.
func (c *Client) Register(ctx context.Context, name, email, password string) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a token. The token is not installed on c.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Profile returns the user the current token belongs to.
func (c *Client) Profile(ctx context.Context) (*dto.UserDTO, error) {
	var out dto.UserDTO
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health

func (c *Client) Health(ctx context.Context) (string, error) {
	var out messageResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Boards

// BoardInput is the body of board create and update calls. Nil fields are
// omitted so updates stay partial.
type BoardInput struct {
	Title           *string        `json:"title,omitempty"`
	Description     *string        `json:"description,omitempty"`
	BackgroundColor *string        `json:"backgroundColor,omitempty"`
	IsPrivate       *bool          `json:"isPrivate,omitempty"`
	Members         *[]MemberInput `json:"members,omitempty"`
}

// MemberInput is one entry of a board membership update
type MemberInput struct {
	User uint64           `json:"user"`
	Role models.BoardRole `json:"role,omitempty"`
}

func (c *Client) ListBoards(ctx context.Context) ([]dto.BoardDTO, error) {
	var out []dto.BoardDTO
	if err := c.do(ctx, http.MethodGet, "/boards", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetBoard(ctx context.Context, id uint64) (*dto.BoardDTO, error) {
	var out dto.BoardDTO
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/boards/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateBoard(ctx context.Context, input BoardInput) (*dto.BoardDTO, error) {
	var out dto.BoardDTO
	if err := c.do(ctx, http.MethodPost, "/boards", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateBoard(ctx context.Context, id uint64, input BoardInput) (*dto.BoardDTO, error) {
	var out dto.BoardDTO
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/boards/%d", id), input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteBoard(ctx context.Context, id uint64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/boards/%d", id), nil, nil)
}

// Tasks

// CreateTaskInput is the body of a task create call
type CreateTaskInput struct {
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Board       uint64              `json:"board"`
	Column      string              `json:"column"`
	DueDate     *time.Time          `json:"dueDate,omitempty"`
	Priority    models.TaskPriority `json:"priority,omitempty"`
}

// UpdateTaskInput is a partial task update. Set ClearDueDate to send an
// explicit null dueDate.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Column       *string
	Position     *float64
	Priority     *models.TaskPriority
	DueDate      *time.Time
	ClearDueDate bool
	AssignedTo   *[]uint64
}

func (in UpdateTaskInput) body() map[string]interface{} {
	body := make(map[string]interface{})
	if in.Title != nil {
		body["title"] = *in.Title
	}
	if in.Description != nil {
		body["description"] = *in.Description
	}
	if in.Column != nil {
		body["column"] = *in.Column
	}
	if in.Position != nil {
		body["position"] = *in.Position
	}
	if in.Priority != nil {
		body["priority"] = *in.Priority
	}
	if in.ClearDueDate {
		body["dueDate"] = nil
	} else if in.DueDate != nil {
		body["dueDate"] = *in.DueDate
	}
	if in.AssignedTo != nil {
		body["assignedTo"] = *in.AssignedTo
	}
	return body
}

func (c *Client) ListTasks(ctx context.Context, boardID uint64) ([]dto.TaskDTO, error) {
	var out []dto.TaskDTO
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tasks/board/%d", boardID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateTask(ctx context.Context, input CreateTaskInput) (*dto.TaskDTO, error) {
	var out dto.TaskDTO
	if err := c.do(ctx, http.MethodPost, "/tasks", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTask(ctx context.Context, id uint64, input UpdateTaskInput) (*dto.TaskDTO, error) {
	var out dto.TaskDTO
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", id), input.body(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTask(ctx context.Context, id uint64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil)
}

func (c *Client) MoveTask(ctx context.Context, id uint64, column string, position float64) (*dto.TaskDTO, error) {
	var out dto.TaskDTO
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d/move", id), map[string]interface{}{
		"column":   column,
		"position": position,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SuggestTasks asks the server to draft tasks from text. Drafts are not saved.
func (c *Client) SuggestTasks(ctx context.Context, boardID uint64, text string) ([]dto.TaskDraftDTO, error) {
	var out struct {
		Tasks []dto.TaskDraftDTO `json:"tasks"`
	}
	err := c.do(ctx, http.MethodPost, "/tasks/suggest", map[string]interface{}{
		"board": boardID,
		"text":  text,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Tasks, nil
}

// Comments

func (c *Client) ListComments(ctx context.Context, taskID uint64) ([]dto.CommentDTO, error) {
	var out []dto.CommentDTO
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/comments/task/%d", taskID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateComment posts a comment, or a reply when parentID is non-nil.
func (c *Client) CreateComment(ctx context.Context, taskID uint64, content string, parentID *uint64) (*dto.CommentDTO, error) {
	var out dto.CommentDTO
	err := c.do(ctx, http.MethodPost, "/comments", map[string]interface{}{
		"content":       content,
		"task":          taskID,
		"parentComment": parentID,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateComment(ctx context.Context, id uint64, content string) (*dto.CommentDTO, error) {
	var out dto.CommentDTO
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/comments/%d", id), map[string]string{"content": content}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteComment(ctx context.Context, id uint64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/comments/%d", id), nil, nil)
}
