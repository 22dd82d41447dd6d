package api

import (
	"net/http"
	"testing"
)

func TestSignupReturnsTokenAndProfile(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)

	request := jsonRequest(t, http.MethodPost, "/api/auth/signup", map[string]any{
		"email":            "nina@example.com",
		"name":             "Nina",
		"password":         "StrongPass1",
		"age_range":        "50-55",
		"menstrual_status": "postmenopausal",
		"primary_symptoms": []string{"Night Sweats", "Brain Fog"},
	}, "")

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("signup request failed: %v", err)
	}
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", response.StatusCode)
	}

	payload := struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		User        struct {
			Email               string   `json:"email"`
			Name                string   `json:"name"`
			PrimarySymptoms     []string `json:"primary_symptoms"`
			OnboardingCompleted bool     `json:"onboarding_completed"`
		} `json:"user"`
	}{}
	decodeJSONBody(t, response, &payload)

	if payload.AccessToken == "" {
		t.Fatal("expected a non-empty access token")
	}
	if payload.TokenType != "bearer" {
		t.Fatalf("expected token type bearer, got %q", payload.TokenType)
	}
	if payload.User.Email != "nina@example.com" {
		t.Fatalf("unexpected email %q", payload.User.Email)
	}
	if len(payload.User.PrimarySymptoms) != 2 {
		t.Fatalf("expected 2 primary symptoms, got %d", len(payload.User.PrimarySymptoms))
	}
	if payload.User.OnboardingCompleted {
		t.Fatal("expected onboarding to start incomplete")
	}
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	signupTestUser(t, app, "dup@example.com")

	request := jsonRequest(t, http.MethodPost, "/api/auth/signup", map[string]any{
		"email":    "Dup@Example.com",
		"name":     "Second",
		"password": "StrongPass1",
	}, "")

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("signup request failed: %v", err)
	}
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400 for duplicate email, got %d", response.StatusCode)
	}
}

func TestSignupValidation(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)

	cases := []struct {
		name    string
		payload map[string]any
	}{
		{"bad email", map[string]any{"email": "not-an-email", "name": "A", "password": "StrongPass1"}},
		{"short password", map[string]any{"email": "a@example.com", "name": "A", "password": "short"}},
		{"missing name", map[string]any{"email": "a@example.com", "name": "  ", "password": "StrongPass1"}},
		{"too many symptoms", map[string]any{
			"email": "a@example.com", "name": "A", "password": "StrongPass1",
			"primary_symptoms": []string{"a", "b", "c", "d"},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/signup", tc.payload, ""), -1)
			if err != nil {
				t.Fatalf("signup request failed: %v", err)
			}
			if response.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", response.StatusCode)
			}
		})
	}
}

func TestLoginWithFormCredentials(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	signupTestUser(t, app, "login@example.com")

	response := loginTestUser(t, app, "login@example.com", "StrongPass1")
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}

	payload := struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}{}
	decodeJSONBody(t, response, &payload)
	if payload.AccessToken == "" || payload.TokenType != "bearer" {
		t.Fatalf("unexpected login payload: %+v", payload)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	signupTestUser(t, app, "wrongpass@example.com")

	response := loginTestUser(t, app, "wrongpass@example.com", "not-the-password")
	defer response.Body.Close()
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", response.StatusCode)
	}
}

func TestMeRequiresToken(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)

	response, err := app.Test(jsonRequest(t, http.MethodGet, "/api/auth/me", nil, ""), -1)
	if err != nil {
		t.Fatalf("me request failed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", response.StatusCode)
	}
}

func TestUpdateMeAppliesPartialChanges(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	token := signupTestUser(t, app, "partial@example.com")

	response, err := app.Test(jsonRequest(t, http.MethodPut, "/api/auth/me", map[string]any{
		"name":                 "Renamed",
		"onboarding_completed": true,
	}, token), -1)
	if err != nil {
		t.Fatalf("update request failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}

	payload := struct {
		Name                string   `json:"name"`
		AgeRange            string   `json:"age_range"`
		PrimarySymptoms     []string `json:"primary_symptoms"`
		OnboardingCompleted bool     `json:"onboarding_completed"`
	}{}
	decodeJSONBody(t, response, &payload)

	if payload.Name != "Renamed" {
		t.Fatalf("expected updated name, got %q", payload.Name)
	}
	if !payload.OnboardingCompleted {
		t.Fatal("expected onboarding_completed to be true")
	}
	if payload.AgeRange != "45-50" {
		t.Fatalf("expected untouched age range, got %q", payload.AgeRange)
	}
	if len(payload.PrimarySymptoms) != 1 {
		t.Fatalf("expected untouched primary symptoms, got %v", payload.PrimarySymptoms)
	}
}

func TestUpdateMeRejectsEmptyPayload(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	token := signupTestUser(t, app, "empty-update@example.com")

	response, err := app.Test(jsonRequest(t, http.MethodPut, "/api/auth/me", map[string]any{}, token), -1)
	if err != nil {
		t.Fatalf("update request failed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", response.StatusCode)
	}
}
