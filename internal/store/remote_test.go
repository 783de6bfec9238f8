package store

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mindarch/mindarch/internal/plan"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{"message": message, "code": code},
	})
}

func TestRemote_LogIn(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var creds credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if creds.Username != "ada" || creds.Password != "hunter2" {
			writeAPIError(w, http.StatusUnauthorized, "invalid credentials", "unauthorized")
			return
		}
		writeJSON(w, http.StatusOK, Session{Token: "tok-1", Username: "ada"})
	}))
	defer server.Close()

	remote := NewRemote(server.URL, "")
	session, err := remote.LogIn(context.Background(), "ada", "hunter2")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if session.Token != "tok-1" || session.Username != "ada" {
		t.Errorf("session = %+v", session)
	}
	if remote.token != "tok-1" {
		t.Error("token not retained for later calls")
	}
}

func TestRemote_LogInRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, http.StatusUnauthorized, "invalid credentials", "unauthorized")
	}))
	defer server.Close()

	remote := NewRemote(server.URL, "")
	_, err := remote.LogIn(context.Background(), "ada", "wrong")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if !strings.Contains(err.Error(), "invalid credentials") {
		t.Errorf("server message lost: %v", err)
	}
}

func TestRemote_AuthedWithoutToken(t *testing.T) {
	remote := NewRemote("http://unused.invalid", "")
	if _, err := remote.Load(context.Background()); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestRemote_PlanRoundTrip(t *testing.T) {
	var stored *plan.StudyPlan
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			writeAPIError(w, http.StatusUnauthorized, "missing token", "unauthorized")
			return
		}
		if r.URL.Path != "/api/plan" {
			t.Errorf("path = %s", r.URL.Path)
		}
		switch r.Method {
		case http.MethodPut:
			var p plan.StudyPlan
			if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
				writeAPIError(w, http.StatusBadRequest, "bad plan", "invalid")
				return
			}
			stored = &p
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		case http.MethodGet:
			if stored == nil {
				writeAPIError(w, http.StatusNotFound, "no plan", "not_found")
				return
			}
			writeJSON(w, http.StatusOK, stored)
		case http.MethodDelete:
			stored = nil
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer server.Close()

	remote := NewRemote(server.URL, "tok-1")
	ctx := context.Background()

	if _, err := remote.Load(ctx); !errors.Is(err, ErrNoPlan) {
		t.Fatalf("expected ErrNoPlan before save, got %v", err)
	}

	if err := remote.Save(ctx, samplePlan()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := remote.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Subject != "Algebra" || loaded.TotalTasks != 2 {
		t.Errorf("loaded = %+v", loaded)
	}

	if err := remote.Delete(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := remote.Load(ctx); !errors.Is(err, ErrNoPlan) {
		t.Fatalf("expected ErrNoPlan after delete, got %v", err)
	}
}

func TestRemote_ExpiredToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, http.StatusUnauthorized, "token expired", "unauthorized")
	}))
	defer server.Close()

	remote := NewRemote(server.URL, "stale")
	if _, err := remote.Load(context.Background()); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestRemote_CheckSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/session" || r.Method != http.MethodGet {
			t.Errorf("unexpected call: %s %s", r.Method, r.URL.Path)
		}
		writeJSON(w, http.StatusOK, map[string]string{"username": "ada"})
	}))
	defer server.Close()

	remote := NewRemote(server.URL, "tok-1")
	username, err := remote.CheckSession(context.Background())
	if err != nil {
		t.Fatalf("check session failed: %v", err)
	}
	if username != "ada" {
		t.Errorf("username = %s", username)
	}
}

func TestRemote_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var params plan.GenerationParams
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			t.Errorf("bad params: %v", err)
		}
		writeJSON(w, http.StatusOK, plan.GeneratedSchedule{
			Overview: "Two day ramp.",
			Schedule: []plan.GeneratedDay{
				{DayOffset: 0, Theme: "Basics", Tasks: []plan.GeneratedTask{{Title: "Read", Minutes: 60}}},
				{DayOffset: 1, Theme: "Practice", Tasks: []plan.GeneratedTask{{Title: "Drill", Minutes: 60}}},
			},
		})
	}))
	defer server.Close()

	remote := NewRemote(server.URL, "tok-1")
	schedule, err := remote.Generate(context.Background(), plan.GenerationParams{
		Subject:      "Algebra",
		Goal:         "Pass",
		StartDate:    "2024-01-01",
		EndDate:      "2024-01-02",
		DailyMinutes: 60,
		Difficulty:   plan.DifficultyBeginner,
	})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(schedule.Schedule) != 2 {
		t.Errorf("schedule length = %d", len(schedule.Schedule))
	}
}
