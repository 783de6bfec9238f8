package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mindarch/mindarch/internal/plan"
)

// ErrUnauthorized is returned when the backend rejects the session token,
// or when no token is set on an authenticated call.
var ErrUnauthorized = errors.New("unauthorized")

// Session is the credential returned by SignUp and LogIn.
type Session struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Remote talks to the mindarch backend over HTTP. It implements Store for
// the per-user plan, plus the auth operations, plus server-side generation.
type Remote struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewRemote(baseURL, token string) *Remote {
	return &Remote{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 180 * time.Second},
	}
}

// SetToken replaces the session token used for authenticated calls.
func (r *Remote) SetToken(token string) {
	r.token = token
}

// errorEnvelope is the backend's error body shape.
type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

// apiError turns a non-2xx response into an error. 401 maps to
// ErrUnauthorized so callers can prompt for a new login.
func apiError(resp *http.Response, body []byte) error {
	var envelope errorEnvelope
	message := http.StatusText(resp.StatusCode)
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		message = envelope.Error.Message
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: %s", ErrUnauthorized, message)
	}
	return fmt.Errorf("server returned %d: %s", resp.StatusCode, message)
}

// do sends a JSON request and returns the response body. A nil in decodes
// into an empty body; authed adds the bearer token.
func (r *Remote) do(ctx context.Context, method, path string, in any, authed bool) (*http.Response, []byte, error) {
	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reqBody)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if authed {
		if r.token == "" {
			return nil, nil, ErrUnauthorized
		}
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp, body, nil
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignUp creates an account and returns a fresh session.
func (r *Remote) SignUp(ctx context.Context, username, password string) (*Session, error) {
	return r.authenticate(ctx, "/api/auth/signup", username, password)
}

// LogIn verifies credentials and returns a fresh session.
func (r *Remote) LogIn(ctx context.Context, username, password string) (*Session, error) {
	return r.authenticate(ctx, "/api/auth/login", username, password)
}

func (r *Remote) authenticate(ctx context.Context, path, username, password string) (*Session, error) {
	resp, body, err := r.do(ctx, http.MethodPost, path, credentials{Username: username, Password: password}, false)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, apiError(resp, body)
	}

	var session Session
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("failed to parse session response: %w", err)
	}
	r.token = session.Token
	return &session, nil
}

// LogOut tells the backend the session is done. The token is cleared locally
// regardless of the outcome.
func (r *Remote) LogOut(ctx context.Context) error {
	resp, body, err := r.do(ctx, http.MethodPost, "/api/auth/logout", nil, true)
	r.token = ""
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return apiError(resp, body)
	}
	return nil
}

// CheckSession validates the current token and returns the account username.
func (r *Remote) CheckSession(ctx context.Context) (string, error) {
	resp, body, err := r.do(ctx, http.MethodGet, "/api/auth/session", nil, true)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", apiError(resp, body)
	}

	var out struct {
		Username string `json:"username"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("failed to parse session response: %w", err)
	}
	return out.Username, nil
}

// Load fetches the account's saved plan.
func (r *Remote) Load(ctx context.Context) (*plan.StudyPlan, error) {
	resp, body, err := r.do(ctx, http.MethodGet, "/api/plan", nil, true)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNoPlan
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp, body)
	}

	var p plan.StudyPlan
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("failed to parse plan response: %w", err)
	}
	return &p, nil
}

// Save upserts the account's plan.
func (r *Remote) Save(ctx context.Context, p *plan.StudyPlan) error {
	resp, body, err := r.do(ctx, http.MethodPut, "/api/plan", p, true)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return apiError(resp, body)
	}
	return nil
}

// Delete removes the account's plan. Deleting an absent plan succeeds.
func (r *Remote) Delete(ctx context.Context) error {
	resp, body, err := r.do(ctx, http.MethodDelete, "/api/plan", nil, true)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return apiError(resp, body)
	}
	return nil
}

// Generate asks the backend to run the generation call on the user's
// behalf, so API keys stay server-side.
func (r *Remote) Generate(ctx context.Context, params plan.GenerationParams) (*plan.GeneratedSchedule, error) {
	resp, body, err := r.do(ctx, http.MethodPost, "/api/generate", params, true)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp, body)
	}

	var schedule plan.GeneratedSchedule
	if err := json.Unmarshal(body, &schedule); err != nil {
		return nil, fmt.Errorf("failed to parse schedule response: %w", err)
	}
	if err := schedule.Validate(); err != nil {
		return nil, fmt.Errorf("invalid schedule from server: %w", err)
	}
	return &schedule, nil
}
