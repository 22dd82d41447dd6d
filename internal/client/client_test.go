package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoginExchangesFormCredentialsAndFetchesProfile(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			if got := r.Header.Get("Content-Type"); got != "application/x-www-form-urlencoded" {
				t.Errorf("expected form content type, got %q", got)
			}
			if err := r.ParseForm(); err != nil {
				t.Errorf("parse form: %v", err)
			}
			if r.PostForm.Get("username") != "nina@example.com" {
				t.Errorf("expected username field to carry the email, got %q", r.PostForm.Get("username"))
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token": "token-123", "token_type": "bearer"}`))
		case "/api/auth/me":
			if got := r.Header.Get("Authorization"); got != "Bearer token-123" {
				t.Errorf("expected bearer header, got %q", got)
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id": "1", "name": "Nina", "email": "nina@example.com", "age_range": "50-55"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	api := New(server.URL)
	session, err := api.Login(context.Background(), "nina@example.com", "StrongPass1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if session.Token != "token-123" {
		t.Fatalf("unexpected token %q", session.Token)
	}
	if session.User.AgeRange != "50-55" {
		t.Fatalf("expected translated profile, got %+v", session.User)
	}
}

func TestUpsertLogSendsWirePayload(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/logs/" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "42",
			"date": "2026-08-20",
			"symptoms": [{"name": "Fatigue", "severity": 2}],
			"overall_notes": "tired"
		}`))
	}))
	defer server.Close()

	api := New(server.URL)
	api.SetToken("token-123")

	entry, err := api.UpsertLog(context.Background(), LogInput{
		Date:     "2026-08-20",
		Symptoms: []SymptomRating{{Name: "Fatigue", Severity: 2}},
		Notes:    "tired",
	})
	if err != nil {
		t.Fatalf("upsert log: %v", err)
	}
	if entry.ID != "42" || entry.Notes != "tired" {
		t.Fatalf("unexpected entry %+v", entry)
	}
}

func TestErrorResponsesCarryServerDetail(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "date must be YYYY-MM-DD"}`))
	}))
	defer server.Close()

	api := New(server.URL)
	_, err := api.UpsertLog(context.Background(), LogInput{Date: "bad"})
	if err == nil {
		t.Fatal("expected an error")
	}

	apiErr := &APIError{}
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.Message != "date must be YYYY-MM-DD" {
		t.Fatalf("unexpected APIError %+v", apiErr)
	}
}

func TestUnauthorizedMapsToSentinel(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "could not validate credentials"}`))
	}))
	defer server.Close()

	api := New(server.URL)
	_, err := api.FetchProfile(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
