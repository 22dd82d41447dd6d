package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultRequestTimeout = 15 * time.Second

// APIError carries the server's detail message for a non-success status.
type APIError struct {
	StatusCode int
	Message    string
}

func (err *APIError) Error() string {
	if err.Message != "" {
		return fmt.Sprintf("api error %d: %s", err.StatusCode, err.Message)
	}
	return fmt.Sprintf("api error %d", err.StatusCode)
}

var ErrUnauthorized = errors.New("unauthorized")

// Client is a thin REST consumer of the backend API. It holds the bearer
// token for the session; SetToken swaps it on login and logout.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}
}

func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) do(ctx context.Context, method string, path string, payload any, target any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		request.Header.Set("Authorization", "Bearer "+c.token)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode >= 400 {
		return decodeAPIError(response)
	}
	if target == nil || response.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(response *http.Response) error {
	detail := struct {
		Error string `json:"error"`
	}{}
	_ = json.NewDecoder(response.Body).Decode(&detail)

	if response.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: %s", ErrUnauthorized, detail.Error)
	}
	return &APIError{StatusCode: response.StatusCode, Message: detail.Error}
}

type SignupInput struct {
	Email           string
	Name            string
	Password        string
	AgeRange        string
	MenstrualStatus string
	PrimarySymptoms []string
}

type sessionWire struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	User        userWire `json:"user"`
}

// Signup registers a new account and returns the fresh session.
func (c *Client) Signup(ctx context.Context, input SignupInput) (Session, error) {
	payload := struct {
		Email           string   `json:"email"`
		Name            string   `json:"name"`
		Password        string   `json:"password"`
		AgeRange        string   `json:"age_range"`
		MenstrualStatus string   `json:"menstrual_status"`
		PrimarySymptoms []string `json:"primary_symptoms"`
	}{
		Email:           input.Email,
		Name:            input.Name,
		Password:        input.Password,
		AgeRange:        input.AgeRange,
		MenstrualStatus: input.MenstrualStatus,
		PrimarySymptoms: input.PrimarySymptoms,
	}

	wire := sessionWire{}
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", payload, &wire); err != nil {
		return Session{}, err
	}
	return Session{Token: wire.AccessToken, User: userFromWire(wire.User)}, nil
}

// Login exchanges form-encoded credentials for a bearer token, then fetches
// the profile so callers get a complete session in one call.
func (c *Client) Login(ctx context.Context, email string, password string) (Session, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return Session{}, err
	}
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return Session{}, err
	}
	defer response.Body.Close()

	if response.StatusCode >= 400 {
		return Session{}, decodeAPIError(response)
	}

	token := struct {
		AccessToken string `json:"access_token"`
	}{}
	if err := json.NewDecoder(response.Body).Decode(&token); err != nil {
		return Session{}, fmt.Errorf("decode response: %w", err)
	}

	previous := c.token
	c.token = token.AccessToken
	user, err := c.FetchProfile(ctx)
	if err != nil {
		c.token = previous
		return Session{}, err
	}
	return Session{Token: token.AccessToken, User: user}, nil
}

func (c *Client) FetchProfile(ctx context.Context) (UserProfile, error) {
	wire := userWire{}
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &wire); err != nil {
		return UserProfile{}, err
	}
	return userFromWire(wire), nil
}

func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (UserProfile, error) {
	wire := userWire{}
	if err := c.do(ctx, http.MethodPut, "/api/auth/me", profileUpdateToWire(update), &wire); err != nil {
		return UserProfile{}, err
	}
	return userFromWire(wire), nil
}

func (c *Client) ListLogs(ctx context.Context) ([]LogEntry, error) {
	wires := []logWire{}
	if err := c.do(ctx, http.MethodGet, "/api/logs/", nil, &wires); err != nil {
		return nil, err
	}
	entries := make([]LogEntry, 0, len(wires))
	for _, wire := range wires {
		entries = append(entries, logFromWire(wire))
	}
	return entries, nil
}

// UpsertLog saves one day's log; the server replaces any existing entry for
// the same date.
func (c *Client) UpsertLog(ctx context.Context, input LogInput) (LogEntry, error) {
	wire := logWire{}
	if err := c.do(ctx, http.MethodPost, "/api/logs/", logInputToWire(input), &wire); err != nil {
		return LogEntry{}, err
	}
	return logFromWire(wire), nil
}

func (c *Client) DeleteLog(ctx context.Context, date string) error {
	return c.do(ctx, http.MethodDelete, "/api/logs/"+url.PathEscape(date), nil, nil)
}

func (c *Client) ListArticles(ctx context.Context, category string, limit int, skip int) ([]Article, error) {
	query := url.Values{}
	if category != "" {
		query.Set("category", category)
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if skip > 0 {
		query.Set("skip", strconv.Itoa(skip))
	}

	path := "/api/articles/"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	wires := []articleWire{}
	if err := c.do(ctx, http.MethodGet, path, nil, &wires); err != nil {
		return nil, err
	}
	articles := make([]Article, 0, len(wires))
	for _, wire := range wires {
		articles = append(articles, articleFromWire(wire))
	}
	return articles, nil
}

func (c *Client) RefreshArticles(ctx context.Context) (int, error) {
	result := struct {
		NewArticlesCount int `json:"new_articles_count"`
	}{}
	if err := c.do(ctx, http.MethodPost, "/api/articles/refresh", nil, &result); err != nil {
		return 0, err
	}
	return result.NewArticlesCount, nil
}

func (c *Client) CalendarStatus(ctx context.Context) (GoogleCalendarState, error) {
	wire := calendarStatusWire{}
	if err := c.do(ctx, http.MethodGet, "/api/google-calendar/status", nil, &wire); err != nil {
		return GoogleCalendarState{}, err
	}
	return calendarStateFromWire(wire), nil
}

// InitiateCalendarAuth starts the OAuth handshake; the caller opens the
// returned consent URL and later passes the code plus state to
// CompleteCalendarAuth.
func (c *Client) InitiateCalendarAuth(ctx context.Context) (authURL string, state string, err error) {
	result := struct {
		AuthorizationURL string `json:"authorization_url"`
		State            string `json:"state"`
	}{}
	if err := c.do(ctx, http.MethodPost, "/api/google-calendar/auth/initiate", nil, &result); err != nil {
		return "", "", err
	}
	return result.AuthorizationURL, result.State, nil
}

func (c *Client) CompleteCalendarAuth(ctx context.Context, code string, state string) (GoogleCalendarState, error) {
	payload := struct {
		Code  string `json:"code"`
		State string `json:"state"`
	}{Code: code, State: state}

	result := struct {
		Connected  bool   `json:"connected"`
		Email      string `json:"email"`
		CalendarID string `json:"calendar_id"`
	}{}
	if err := c.do(ctx, http.MethodPost, "/api/google-calendar/auth/callback", payload, &result); err != nil {
		return GoogleCalendarState{}, err
	}
	return GoogleCalendarState{
		Connected:  result.Connected,
		Email:      result.Email,
		CalendarID: result.CalendarID,
		AutoSync:   true,
	}, nil
}

func (c *Client) DisconnectCalendar(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/google-calendar/disconnect", nil, nil)
}

func (c *Client) SetCalendarSync(ctx context.Context, enabled bool) error {
	payload := struct {
		Enabled bool `json:"is_enabled"`
	}{Enabled: enabled}
	return c.do(ctx, http.MethodPost, "/api/google-calendar/settings", payload, nil)
}

// SyncLog pushes one saved log to Google Calendar and returns the event id.
func (c *Client) SyncLog(ctx context.Context, logID string) (string, error) {
	payload := struct {
		LogID string `json:"log_id"`
	}{LogID: logID}

	result := struct {
		EventID string `json:"event_id"`
	}{}
	if err := c.do(ctx, http.MethodPost, "/api/google-calendar/sync", payload, &result); err != nil {
		return "", err
	}
	return result.EventID, nil
}

func (c *Client) SyncAllLogs(ctx context.Context) (synced int, failed int, err error) {
	result := struct {
		SyncedCount int `json:"synced_count"`
		FailedCount int `json:"failed_count"`
	}{}
	if err := c.do(ctx, http.MethodPost, "/api/google-calendar/sync-all", nil, &result); err != nil {
		return 0, 0, err
	}
	return result.SyncedCount, result.FailedCount, nil
}

func (c *Client) UnsyncLog(ctx context.Context, logID string) error {
	return c.do(ctx, http.MethodDelete, "/api/google-calendar/sync/"+url.PathEscape(logID), nil, nil)
}

func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	payload := struct {
		Message string `json:"message"`
	}{Message: message}

	result := struct {
		Response string `json:"response"`
	}{}
	if err := c.do(ctx, http.MethodPost, "/api/chat/", payload, &result); err != nil {
		return "", err
	}
	return result.Response, nil
}
