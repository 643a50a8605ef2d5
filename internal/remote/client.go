// Package remote is the HTTP client for the authoritative nutrition
// service. It is the only place that knows the wire contract; everything
// above it works with model types and the error taxonomy in errors.go.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Snape93/nutrition-sub006/internal/model"
)

const (
	defaultTimeout = 8 * time.Second
	retryBackoff   = 300 * time.Millisecond
)

// Client talks to the remote service. Reads (GET) are retried once after a
// short backoff since they are idempotent; writes get a single attempt to
// avoid duplicate side effects on the remote.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: defaultTimeout}
}

func (c *Client) baseURL() string {
	return strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func serverMessage(body []byte) string {
	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}
	return ""
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, payload, out any) error {
	u := c.baseURL() + path
	if c.APIKey != "" {
		if query == nil {
			query = url.Values{}
		}
		query.Set("api_key", c.APIKey)
	}
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body []byte
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%s: marshal payload: %w", op, err)
		}
		body = encoded
	}

	attempts := 1
	if method == http.MethodGet {
		attempts = 2
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(retryBackoff):
			case <-ctx.Done():
				return transportError(op, ctx.Err())
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, u, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("%s: create request: %w", op, err)
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient().Do(req)
		if err != nil {
			lastErr = transportError(op, err)
			if ctx.Err() != nil {
				return lastErr
			}
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = transportError(op, err)
			continue
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return statusError(op, resp.StatusCode, serverMessage(respBody))
		}
		if out != nil && len(respBody) > 0 {
			if err := json.Unmarshal(respBody, out); err != nil {
				return fmt.Errorf("%s: decode response: %w", op, err)
			}
		}
		return nil
	}
	return lastErr
}

// Session is the result of a successful login or registration.
type Session struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

func (c *Client) Login(ctx context.Context, username, password string) (Session, error) {
	var s Session
	err := c.do(ctx, "login", http.MethodPost, "/login", nil,
		map[string]string{"username": username, "password": password}, &s)
	return s, err
}

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Register(ctx context.Context, in RegisterInput) (Session, error) {
	var s Session
	err := c.do(ctx, "register", http.MethodPost, "/register", nil, in, &s)
	return s, err
}

func (c *Client) GetUser(ctx context.Context, id string) (model.UserProfile, error) {
	var p model.UserProfile
	err := c.do(ctx, "get user", http.MethodGet, "/user/"+url.PathEscape(id), nil, nil, &p)
	return p, err
}

func (c *Client) UpdateUser(ctx context.Context, id string, patch model.ProfilePatch) error {
	return c.do(ctx, "update user", http.MethodPut, "/user/"+url.PathEscape(id), nil, patch, nil)
}

// CredentialsPatch carries identity-sensitive changes. These always go
// through the synchronous path in the repository.
type CredentialsPatch struct {
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

func (c *Client) UpdateCredentials(ctx context.Context, id string, patch CredentialsPatch) error {
	return c.do(ctx, "update credentials", http.MethodPut, "/user/"+url.PathEscape(id), nil, patch, nil)
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, "delete user", http.MethodDelete, "/user/"+url.PathEscape(id), nil, nil, nil)
}

func logPath(kind model.LogKind) string {
	return "/log/" + string(kind)
}

func (c *Client) PostLog(ctx context.Context, entry model.LogEntry) error {
	return c.do(ctx, "post "+string(entry.Kind)+" log", http.MethodPost, logPath(entry.Kind), nil, entry, nil)
}

func (c *Client) GetLogs(ctx context.Context, kind model.LogKind, userID string, from, to time.Time) ([]model.LogEntry, error) {
	query := url.Values{}
	query.Set("user_id", userID)
	query.Set("from", from.Format(time.RFC3339))
	query.Set("to", to.Format(time.RFC3339))

	entries := make([]model.LogEntry, 0)
	if err := c.do(ctx, "get "+string(kind)+" logs", http.MethodGet, logPath(kind), query, nil, &entries); err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Kind = kind
	}
	return entries, nil
}

func (c *Client) SearchFoods(ctx context.Context, q string) ([]model.FoodItem, error) {
	query := url.Values{}
	query.Set("q", q)
	items := make([]model.FoodItem, 0)
	err := c.do(ctx, "search foods", http.MethodGet, "/foods/search", query, nil, &items)
	return items, err
}

func (c *Client) RecommendFoods(ctx context.Context, calorieBudget float64) ([]model.FoodItem, error) {
	query := url.Values{}
	query.Set("calories", fmt.Sprintf("%g", calorieBudget))
	items := make([]model.FoodItem, 0)
	err := c.do(ctx, "recommend foods", http.MethodGet, "/foods/recommend", query, nil, &items)
	return items, err
}

func (c *Client) FoodInfo(ctx context.Context, id string) (model.FoodItem, error) {
	query := url.Values{}
	query.Set("id", id)
	var item model.FoodItem
	err := c.do(ctx, "food info", http.MethodGet, "/foods/info", query, nil, &item)
	return item, err
}

// DailyGoalInput is the payload for the server-side goal computation.
// Activity levels and goals use the underscored spellings everywhere.
type DailyGoalInput struct {
	Age           int                 `json:"age"`
	Sex           model.Sex           `json:"sex"`
	WeightKg      float64             `json:"weight"`
	HeightCm      float64             `json:"height"`
	ActivityLevel model.ActivityLevel `json:"activity_level"`
	Goal          model.GoalType      `json:"goal"`
}

type dailyGoalResponse struct {
	DailyCalorieGoal float64 `json:"daily_calorie_goal"`
}

// CalculateDailyGoal asks the remote to compute the daily calorie goal.
// This is the primary path; the metrics engine is the local fallback and
// must agree on formula semantics.
func (c *Client) CalculateDailyGoal(ctx context.Context, in DailyGoalInput) (float64, error) {
	var out dailyGoalResponse
	if err := c.do(ctx, "calculate daily goal", http.MethodPost, "/calculate/daily_goal", nil, in, &out); err != nil {
		return 0, err
	}
	return out.DailyCalorieGoal, nil
}
