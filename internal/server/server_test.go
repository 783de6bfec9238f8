package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mindarch/mindarch/internal/ai"
	"github.com/mindarch/mindarch/internal/logger"
	"github.com/mindarch/mindarch/internal/plan"
)

type stubGenerator struct {
	schedule *plan.GeneratedSchedule
	err      error
}

func (s stubGenerator) Generate(_ context.Context, _ plan.GenerationParams) (*plan.GeneratedSchedule, error) {
	return s.schedule, s.err
}

func newTestServer(t *testing.T, generator ai.Generator) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := OpenDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	return New(db, logger.NewNop(), "test-secret", generator)
}

func doJSON(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func signUp(t *testing.T, s *Server, username string) string {
	t.Helper()
	w := doJSON(t, s, http.MethodPost, "/api/auth/signup", "", credentialsRequest{
		Username: username,
		Password: "correct-horse",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("signup status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp sessionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse signup response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("signup returned empty token")
	}
	return resp.Token
}

func TestSignUpAndLogIn(t *testing.T) {
	s := newTestServer(t, nil)

	signUp(t, s, "ada")

	// Duplicate username is rejected.
	w := doJSON(t, s, http.MethodPost, "/api/auth/signup", "", credentialsRequest{
		Username: "ada", Password: "correct-horse",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate signup status = %d", w.Code)
	}

	// Log in with the right password.
	w = doJSON(t, s, http.MethodPost, "/api/auth/login", "", credentialsRequest{
		Username: "ada", Password: "correct-horse",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp sessionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Username != "ada" || resp.Token == "" {
		t.Errorf("login response = %+v", resp)
	}

	// Wrong password is unauthorized.
	w = doJSON(t, s, http.MethodPost, "/api/auth/login", "", credentialsRequest{
		Username: "ada", Password: "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad password status = %d", w.Code)
	}

	// Unknown user looks the same as a wrong password.
	w = doJSON(t, s, http.MethodPost, "/api/auth/login", "", credentialsRequest{
		Username: "nobody", Password: "correct-horse",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unknown user status = %d", w.Code)
	}
}

func TestSignUpValidation(t *testing.T) {
	s := newTestServer(t, nil)

	w := doJSON(t, s, http.MethodPost, "/api/auth/signup", "", credentialsRequest{
		Username: "", Password: "correct-horse",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty username status = %d", w.Code)
	}

	w = doJSON(t, s, http.MethodPost, "/api/auth/signup", "", credentialsRequest{
		Username: "ada", Password: "short",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("short password status = %d", w.Code)
	}
}

func TestSessionEndpoint(t *testing.T) {
	s := newTestServer(t, nil)
	token := signUp(t, s, "ada")

	w := doJSON(t, s, http.MethodGet, "/api/auth/session", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("session status = %d", w.Code)
	}
	var resp struct {
		Username string `json:"username"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Username != "ada" {
		t.Errorf("username = %s", resp.Username)
	}

	// No token.
	if w := doJSON(t, s, http.MethodGet, "/api/auth/session", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("missing token status = %d", w.Code)
	}
	// Garbage token.
	if w := doJSON(t, s, http.MethodGet, "/api/auth/session", "not-a-jwt", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("bad token status = %d", w.Code)
	}
}

func testPlan(subject string) *plan.StudyPlan {
	return &plan.StudyPlan{
		ID:        "abc123def",
		Subject:   subject,
		Goal:      "Pass",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-01",
		Days: []plan.StudyDay{
			{DayNumber: 1, Date: "2024-01-01", Theme: "Basics", Tasks: []plan.StudyTask{
				{ID: "t1", Title: "Read", EstimatedMinutes: 60},
			}},
		},
		TotalTasks: 1,
	}
}

func TestPlanLifecycle(t *testing.T) {
	s := newTestServer(t, nil)
	token := signUp(t, s, "ada")

	// Nothing saved yet.
	if w := doJSON(t, s, http.MethodGet, "/api/plan", token, nil); w.Code != http.StatusNotFound {
		t.Errorf("get before save status = %d", w.Code)
	}

	// Save, then read back.
	if w := doJSON(t, s, http.MethodPut, "/api/plan", token, testPlan("Algebra")); w.Code != http.StatusOK {
		t.Fatalf("put status = %d, body = %s", w.Code, w.Body.String())
	}
	w := doJSON(t, s, http.MethodGet, "/api/plan", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	var got plan.StudyPlan
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Subject != "Algebra" || got.TotalTasks != 1 {
		t.Errorf("got plan = %+v", got)
	}

	// Second save replaces, not duplicates.
	if w := doJSON(t, s, http.MethodPut, "/api/plan", token, testPlan("Chemistry")); w.Code != http.StatusOK {
		t.Fatalf("second put status = %d, body = %s", w.Code, w.Body.String())
	}
	w = doJSON(t, s, http.MethodGet, "/api/plan", token, nil)
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Subject != "Chemistry" {
		t.Errorf("subject after replace = %s", got.Subject)
	}

	// Delete is idempotent.
	if w := doJSON(t, s, http.MethodDelete, "/api/plan", token, nil); w.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", w.Code)
	}
	if w := doJSON(t, s, http.MethodDelete, "/api/plan", token, nil); w.Code != http.StatusNoContent {
		t.Errorf("second delete status = %d", w.Code)
	}
	if w := doJSON(t, s, http.MethodGet, "/api/plan", token, nil); w.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d", w.Code)
	}
}

func TestPlanIsolationBetweenUsers(t *testing.T) {
	s := newTestServer(t, nil)
	adaToken := signUp(t, s, "ada")
	graceToken := signUp(t, s, "grace")

	if w := doJSON(t, s, http.MethodPut, "/api/plan", adaToken, testPlan("Algebra")); w.Code != http.StatusOK {
		t.Fatal("ada put failed")
	}
	if w := doJSON(t, s, http.MethodGet, "/api/plan", graceToken, nil); w.Code != http.StatusNotFound {
		t.Errorf("grace sees ada's plan: status = %d", w.Code)
	}
}

func validParams() plan.GenerationParams {
	return plan.GenerationParams{
		Subject:      "Algebra",
		Goal:         "Pass",
		StartDate:    "2024-01-01",
		EndDate:      "2024-01-03",
		DailyMinutes: 60,
		Difficulty:   plan.DifficultyIntermediate,
	}
}

func TestGenerateEndpoint(t *testing.T) {
	schedule := &plan.GeneratedSchedule{
		Overview: "Short ramp.",
		Schedule: []plan.GeneratedDay{
			{DayOffset: 0, Theme: "Basics", Tasks: []plan.GeneratedTask{{Title: "Read", Minutes: 60}}},
		},
	}
	s := newTestServer(t, stubGenerator{schedule: schedule})
	token := signUp(t, s, "ada")

	w := doJSON(t, s, http.MethodPost, "/api/generate", token, validParams())
	if w.Code != http.StatusOK {
		t.Fatalf("generate status = %d, body = %s", w.Code, w.Body.String())
	}
	var got plan.GeneratedSchedule
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Schedule) != 1 || got.Schedule[0].Theme != "Basics" {
		t.Errorf("schedule = %+v", got)
	}
}

func TestGenerateEndpointRejectsBadParams(t *testing.T) {
	s := newTestServer(t, stubGenerator{})
	token := signUp(t, s, "ada")

	params := validParams()
	params.EndDate = "2023-12-31"
	if w := doJSON(t, s, http.MethodPost, "/api/generate", token, params); w.Code != http.StatusBadRequest {
		t.Errorf("bad params status = %d", w.Code)
	}
}

func TestGenerateEndpointUpstreamFailure(t *testing.T) {
	s := newTestServer(t, stubGenerator{err: fmt.Errorf("parse: %w", ai.ErrMalformedResponse)})
	token := signUp(t, s, "ada")

	if w := doJSON(t, s, http.MethodPost, "/api/generate", token, validParams()); w.Code != http.StatusBadGateway {
		t.Errorf("upstream failure status = %d", w.Code)
	}
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, nil)
	if w := doJSON(t, s, http.MethodGet, "/healthz", "", nil); w.Code != http.StatusOK {
		t.Errorf("healthz status = %d", w.Code)
	}
}
