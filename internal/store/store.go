// Package store is the application state container: it owns the session,
// the in-memory symptom logs, article bookmarks and Google Calendar state,
// applies optimistic updates against the backend, and persists the session
// subset to durable local storage.
package store

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"sync"

	"github.com/aletheia-health/aletheia/internal/client"
	"github.com/aletheia-health/aletheia/internal/localstore"
	"github.com/google/uuid"
)

// Durable storage keys. Logs are intentionally not persisted; they are
// re-fetched from the backend on every session restore.
const (
	keyToken          = "aletheia_token"
	keyUser           = "aletheia_user"
	keyBookmarks      = "aletheia_bookmarks"
	keyGoogleCalendar = "aletheia_google_calendar"
)

const tempIDPrefix = "temp-"

// Backend is the slice of the REST client the store drives itself.
// *client.Client satisfies it.
type Backend interface {
	SetToken(token string)
	ListLogs(ctx context.Context) ([]client.LogEntry, error)
	UpdateProfile(ctx context.Context, update client.ProfileUpdate) (client.UserProfile, error)
	UpsertLog(ctx context.Context, input client.LogInput) (client.LogEntry, error)
}

var _ Backend = (*client.Client)(nil)

// LogPatch is a partial log change. Merged fields are re-submitted as a full
// upsert: the backend has no field-level patch path for logs.
type LogPatch struct {
	Date     *string
	Symptoms *[]client.SymptomRating
	Notes    *string
}

// Store is safe for concurrent use. Network calls run outside the lock, so
// two overlapping mutations for the same date are not serialized: the later
// server response wins regardless of optimistic-update order.
type Store struct {
	mu      sync.Mutex
	backend Backend
	local   *localstore.Store

	token     string
	user      *client.UserProfile
	logs      []client.LogEntry
	bookmarks map[string]struct{}
	calendar  client.GoogleCalendarState
	loading   bool
}

func New(backend Backend, local *localstore.Store) *Store {
	return &Store{
		backend:   backend,
		local:     local,
		bookmarks: map[string]struct{}{},
	}
}

// Hydrate restores the persisted session, bookmarks and calendar preference,
// then fetches the authoritative log set from the backend. Consumers must
// not treat authentication state as final until IsLoading reports false.
func (store *Store) Hydrate(ctx context.Context) error {
	store.mu.Lock()
	store.loading = true

	token, hasToken := store.local.Get(keyToken)
	rawUser, hasUser := store.local.Get(keyUser)

	if rawBookmarks, found := store.local.Get(keyBookmarks); found {
		ids := []string{}
		if err := json.Unmarshal([]byte(rawBookmarks), &ids); err != nil {
			log.Printf("store: discarding unreadable bookmarks: %v", err)
		}
		store.bookmarks = map[string]struct{}{}
		for _, id := range ids {
			store.bookmarks[id] = struct{}{}
		}
	}

	if rawCalendar, found := store.local.Get(keyGoogleCalendar); found {
		calendar := client.GoogleCalendarState{}
		if err := json.Unmarshal([]byte(rawCalendar), &calendar); err != nil {
			log.Printf("store: discarding unreadable calendar state: %v", err)
		} else {
			store.calendar = calendar
		}
	}

	authenticated := false
	if hasToken && hasUser {
		user := client.UserProfile{}
		if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
			log.Printf("store: discarding unreadable persisted user: %v", err)
		} else {
			store.token = token
			store.user = &user
			store.backend.SetToken(token)
			authenticated = true
		}
	}
	store.mu.Unlock()

	var fetchErr error
	if authenticated {
		entries, err := store.backend.ListLogs(ctx)
		store.mu.Lock()
		if err != nil {
			log.Printf("store: fetching logs on restore failed: %v", err)
			fetchErr = err
		} else if store.token == token {
			store.logs = entries
			sortLogs(store.logs)
		}
		store.mu.Unlock()
	}

	store.mu.Lock()
	store.loading = false
	store.mu.Unlock()
	return fetchErr
}

func (store *Store) IsLoading() bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.loading
}

func (store *Store) IsAuthenticated() bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.token != "" && store.user != nil
}

func (store *Store) Token() string {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.token
}

func (store *Store) CurrentUser() (client.UserProfile, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.user == nil {
		return client.UserProfile{}, false
	}
	return *store.user, true
}

// Logs returns a copy, newest date first.
func (store *Store) Logs() []client.LogEntry {
	store.mu.Lock()
	defer store.mu.Unlock()

	logs := make([]client.LogEntry, len(store.logs))
	copy(logs, store.logs)
	return logs
}

// Login installs a session obtained externally; no network call happens
// here. Calendar-connection hints on the profile seed the calendar state.
func (store *Store) Login(token string, user client.UserProfile) {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.token = token
	store.user = &user
	store.backend.SetToken(token)

	if user.CalendarConnected {
		store.calendar = client.GoogleCalendarState{
			Connected:  true,
			Email:      user.CalendarEmail,
			CalendarID: user.CalendarID,
			AutoSync:   user.CalendarSyncEnabled,
		}
		store.persistCalendar()
	}
	store.persistSession()
}

// Logout clears the session, logs and bookmarks from memory and durable
// storage. The bearer token is not invalidated server-side; it simply ages
// out. The calendar preference survives for the next login.
func (store *Store) Logout() {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.token = ""
	store.user = nil
	store.logs = nil
	store.bookmarks = map[string]struct{}{}
	store.backend.SetToken("")

	for _, key := range []string{keyToken, keyUser, keyBookmarks} {
		if err := store.local.Delete(key); err != nil {
			log.Printf("store: clearing %s failed: %v", key, err)
		}
	}
}

// UpdateProfile applies the partial update optimistically, then reconciles
// with the server's authoritative profile. On failure the optimistic value
// stays in place (no rollback) and is returned alongside the error.
func (store *Store) UpdateProfile(ctx context.Context, update client.ProfileUpdate) (client.UserProfile, error) {
	store.mu.Lock()
	if store.user == nil {
		store.mu.Unlock()
		return client.UserProfile{}, ErrNotAuthenticated
	}

	applyProfileUpdate(store.user, update)
	optimistic := *store.user
	store.persistSession()
	store.mu.Unlock()

	updated, err := store.backend.UpdateProfile(ctx, update)
	if err != nil {
		log.Printf("store: profile update failed, keeping optimistic value: %v", err)
		return optimistic, err
	}

	store.mu.Lock()
	if store.user != nil {
		store.user = &updated
		store.persistSession()
	}
	store.mu.Unlock()
	return updated, nil
}

// CompleteOnboarding is UpdateProfile with the onboarding flag forced true,
// whatever the caller passed.
func (store *Store) CompleteOnboarding(ctx context.Context, update client.ProfileUpdate) (client.UserProfile, error) {
	completed := true
	update.OnboardingCompleted = &completed
	return store.UpdateProfile(ctx, update)
}

// AddLog optimistically inserts the entry under a temporary id, removing any
// in-memory log for the same date, then upserts it on the backend. On
// success the returned id is the server-assigned one. On failure the
// optimistic entry stays in place and an empty id is returned.
func (store *Store) AddLog(ctx context.Context, input client.LogInput) (string, error) {
	tempID := tempIDPrefix + uuid.NewString()

	store.mu.Lock()
	if store.user == nil {
		store.mu.Unlock()
		return "", ErrNotAuthenticated
	}
	store.removeLogByDate(input.Date)
	store.logs = append(store.logs, client.LogEntry{
		ID:       tempID,
		Date:     input.Date,
		Symptoms: input.Symptoms,
		Notes:    input.Notes,
	})
	sortLogs(store.logs)
	store.mu.Unlock()

	saved, err := store.backend.UpsertLog(ctx, input)
	if err != nil {
		log.Printf("store: saving log for %s failed, keeping optimistic entry: %v", input.Date, err)
		return "", err
	}

	store.mu.Lock()
	store.replaceLog(tempID, saved)
	store.mu.Unlock()
	return saved.ID, nil
}

// UpdateLog merges the patch into the log with the given id and re-submits
// the whole merged entry to the upsert-by-date endpoint: semantically a full
// overwrite of that date, not a field-level patch.
func (store *Store) UpdateLog(ctx context.Context, id string, patch LogPatch) (string, error) {
	store.mu.Lock()
	index := store.indexOfLog(id)
	if index < 0 {
		store.mu.Unlock()
		return "", ErrLogNotFound
	}

	entry := store.logs[index]
	if patch.Date != nil && *patch.Date != entry.Date {
		// The merged entry takes over the new date; any log already
		// occupying it is displaced so each date keeps a single entry.
		store.removeLogByDate(*patch.Date)
		entry.Date = *patch.Date
	}
	if patch.Symptoms != nil {
		entry.Symptoms = *patch.Symptoms
	}
	if patch.Notes != nil {
		entry.Notes = *patch.Notes
	}
	store.logs[store.indexOfLog(id)] = entry
	merged := client.LogInput{Date: entry.Date, Symptoms: entry.Symptoms, Notes: entry.Notes}
	sortLogs(store.logs)
	store.mu.Unlock()

	saved, err := store.backend.UpsertLog(ctx, merged)
	if err != nil {
		log.Printf("store: updating log %s failed, keeping optimistic entry: %v", id, err)
		return "", err
	}

	store.mu.Lock()
	store.replaceLog(id, saved)
	store.mu.Unlock()
	return saved.ID, nil
}

func (store *Store) GetLogByDate(date string) (client.LogEntry, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, entry := range store.logs {
		if entry.Date == date {
			return entry, true
		}
	}
	return client.LogEntry{}, false
}

// ToggleBookmark flips membership for the article id and reports the new
// state. Pure local: bookmarks never touch the backend.
func (store *Store) ToggleBookmark(articleID string) bool {
	store.mu.Lock()
	defer store.mu.Unlock()

	_, bookmarked := store.bookmarks[articleID]
	if bookmarked {
		delete(store.bookmarks, articleID)
	} else {
		store.bookmarks[articleID] = struct{}{}
	}
	store.persistBookmarks()
	return !bookmarked
}

func (store *Store) IsBookmarked(articleID string) bool {
	store.mu.Lock()
	defer store.mu.Unlock()

	_, bookmarked := store.bookmarks[articleID]
	return bookmarked
}

// Bookmarks returns the bookmarked article ids in sorted order.
func (store *Store) Bookmarks() []string {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.bookmarkList()
}

func (store *Store) GoogleCalendar() client.GoogleCalendarState {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.calendar
}

// SetGoogleCalendarConnected records the outcome of a connect or disconnect
// performed by page-level code; the store itself makes no calendar calls.
func (store *Store) SetGoogleCalendarConnected(connected bool, email string, calendarID string) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if !connected {
		store.calendar = client.GoogleCalendarState{}
	} else {
		store.calendar.Connected = true
		store.calendar.Email = email
		store.calendar.CalendarID = calendarID
	}
	store.persistCalendar()
}

func (store *Store) SetGoogleCalendarAutoSync(enabled bool) {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.calendar.AutoSync = enabled
	store.persistCalendar()
}

func (store *Store) MarkLogAsSynced(id string, eventID string) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if index := store.indexOfLog(id); index >= 0 {
		store.logs[index].SyncedToCalendar = true
		store.logs[index].CalendarEventID = eventID
	}
}

func (store *Store) MarkLogAsUnsynced(id string) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if index := store.indexOfLog(id); index >= 0 {
		store.logs[index].SyncedToCalendar = false
		store.logs[index].CalendarEventID = ""
	}
}

// Internal helpers. All of these expect the mutex to be held.

func (store *Store) indexOfLog(id string) int {
	for index, entry := range store.logs {
		if entry.ID == id {
			return index
		}
	}
	return -1
}

func (store *Store) removeLogByDate(date string) {
	kept := store.logs[:0]
	for _, entry := range store.logs {
		if entry.Date != date {
			kept = append(kept, entry)
		}
	}
	store.logs = kept
}

// replaceLog reconciles a server response into the log set: by the
// optimistic id if that entry still exists, otherwise by date. Any other
// entry for the saved date is dropped so the date stays unique.
func (store *Store) replaceLog(optimisticID string, saved client.LogEntry) {
	kept := store.logs[:0]
	replaced := false
	for _, entry := range store.logs {
		switch {
		case entry.ID == optimisticID:
			kept = append(kept, saved)
			replaced = true
		case entry.Date == saved.Date:
			// displaced by the saved entry
		default:
			kept = append(kept, entry)
		}
	}
	if !replaced {
		kept = append(kept, saved)
	}
	store.logs = kept
	sortLogs(store.logs)
}

func (store *Store) bookmarkList() []string {
	ids := make([]string, 0, len(store.bookmarks))
	for id := range store.bookmarks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (store *Store) persistSession() {
	if store.token == "" || store.user == nil {
		return
	}
	if err := store.local.Set(keyToken, store.token); err != nil {
		log.Printf("store: persisting token failed: %v", err)
	}
	encoded, err := json.Marshal(store.user)
	if err != nil {
		log.Printf("store: encoding user failed: %v", err)
		return
	}
	if err := store.local.Set(keyUser, string(encoded)); err != nil {
		log.Printf("store: persisting user failed: %v", err)
	}
}

func (store *Store) persistBookmarks() {
	encoded, err := json.Marshal(store.bookmarkList())
	if err != nil {
		log.Printf("store: encoding bookmarks failed: %v", err)
		return
	}
	if err := store.local.Set(keyBookmarks, string(encoded)); err != nil {
		log.Printf("store: persisting bookmarks failed: %v", err)
	}
}

func (store *Store) persistCalendar() {
	encoded, err := json.Marshal(store.calendar)
	if err != nil {
		log.Printf("store: encoding calendar state failed: %v", err)
		return
	}
	if err := store.local.Set(keyGoogleCalendar, string(encoded)); err != nil {
		log.Printf("store: persisting calendar state failed: %v", err)
	}
}

func applyProfileUpdate(user *client.UserProfile, update client.ProfileUpdate) {
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.AgeRange != nil {
		user.AgeRange = *update.AgeRange
	}
	if update.MenstrualStatus != nil {
		user.MenstrualStatus = *update.MenstrualStatus
	}
	if update.PrimarySymptoms != nil {
		user.PrimarySymptoms = *update.PrimarySymptoms
	}
	if update.OnboardingCompleted != nil {
		user.OnboardingCompleted = *update.OnboardingCompleted
	}
}

func sortLogs(entries []client.LogEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
}
