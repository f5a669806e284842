package mattermost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	apiPrefix      = "/api/v4"
	requestTimeout = 10 * time.Second

	// tokenHeader is the response header carrying the session token
	// issued on login.
	tokenHeader = "Token"
)

// RESTClient is the net/http implementation of Client.
//
// URL and token are guarded by a mutex: the REPL mutates them while the
// background connectivity watcher issues requests on its own goroutine.
type RESTClient struct {
	httpClient *http.Client

	mu        sync.RWMutex
	baseURL   string
	authToken string
}

func NewRESTClient() *RESTClient {
	return &RESTClient{httpClient: &http.Client{Timeout: requestTimeout}}
}

func (c *RESTClient) SetURL(u string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = strings.TrimRight(u, "/")
}

func (c *RESTClient) URL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

func (c *RESTClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.authToken = token
}

func (c *RESTClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.authToken
}

// send issues one API request and returns the raw response. Non-2xx
// responses are decoded into *AppError. The caller owns the body on success.
func (c *RESTClient) send(ctx context.Context, method string, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	c.mu.RLock()
	baseURL, authToken := c.baseURL, c.authToken
	c.mu.RUnlock()

	req, err := http.NewRequestWithContext(ctx, method, baseURL+apiPrefix+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		defer resp.Body.Close()

		appErr := &AppError{StatusCode: resp.StatusCode}
		if derr := json.NewDecoder(resp.Body).Decode(appErr); derr != nil || (appErr.ID == "" && appErr.Message == "") {
			appErr.Message = resp.Status
		}
		return nil, appErr
	}

	return resp, nil
}

// do runs a request and decodes the JSON response into out (out may be nil
// for endpoints whose response body is irrelevant).
func (c *RESTClient) do(ctx context.Context, method string, path string, body any, out any) error {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *RESTClient) Ping(ctx context.Context) error {
	var status struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/system/ping", nil, &status); err != nil {
		return err
	}
	if status.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (c *RESTClient) Login(ctx context.Context, loginID string, password string) (*User, error) {
	body := map[string]string{"login_id": loginID, "password": password}

	resp, err := c.send(ctx, http.MethodPost, "/users/login", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.SetToken(resp.Header.Get(tokenHeader))
	return &user, nil
}

func (c *RESTClient) GetMe(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *RESTClient) SendPasswordResetEmail(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/users/password/reset/send", map[string]string{"email": email}, nil)
}

func (c *RESTClient) SearchUsers(ctx context.Context, search *UserSearch) ([]*User, error) {
	var users []*User
	if err := c.do(ctx, http.MethodPost, "/users/search", search, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *RESTClient) GetProfiles(ctx context.Context, page int, perPage int) ([]*User, error) {
	var users []*User
	path := fmt.Sprintf("/users?page=%d&per_page=%d", page, perPage)
	if err := c.do(ctx, http.MethodGet, path, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *RESTClient) GetProfilesByIds(ctx context.Context, ids []string) ([]*User, error) {
	var users []*User
	if err := c.do(ctx, http.MethodPost, "/users/ids", ids, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *RESTClient) GetUser(ctx context.Context, userID string) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(userID), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *RESTClient) GetTeams(ctx context.Context, page int, perPage int) ([]*Team, error) {
	var teams []*Team
	path := fmt.Sprintf("/teams?page=%d&per_page=%d", page, perPage)
	if err := c.do(ctx, http.MethodGet, path, nil, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

func (c *RESTClient) GetRolesByNames(ctx context.Context, names []string) ([]*Role, error) {
	var roles []*Role
	if err := c.do(ctx, http.MethodPost, "/roles/names", names, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

func (c *RESTClient) UpdateUserActive(ctx context.Context, userID string, active bool) error {
	body := map[string]bool{"active": active}
	return c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(userID)+"/active", body, nil)
}
