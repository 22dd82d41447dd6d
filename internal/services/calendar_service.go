package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aletheia-health/aletheia/internal/models"
	"github.com/aletheia-health/aletheia/internal/security"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
	goauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

const (
	healthCalendarName    = "Aletheia Health"
	healthCalendarSummary = "Symptom logs from the Aletheia health tracking app"
	logIDProperty         = "aletheia_log_id"
)

var (
	ErrNoRefreshToken      = errors.New("google did not grant a refresh token")
	ErrCalendarUnavailable = errors.New("google calendar request failed")
)

// CalendarService owns the Google OAuth handshake and event synchronization.
// Refresh tokens pass through the TokenCipher on their way to the database and
// are decrypted only for the lifetime of a single API call.
type CalendarService struct {
	oauth  *oauth2.Config
	cipher *security.TokenCipher
}

func NewCalendarService(clientID string, clientSecret string, redirectURI string, cipher *security.TokenCipher) *CalendarService {
	return &CalendarService{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Endpoint:     google.Endpoint,
			Scopes:       []string{calendar.CalendarScope, goauth2.UserinfoEmailScope},
		},
		cipher: cipher,
	}
}

// AuthCodeURL builds the consent-screen URL. Offline access and forced consent
// are required so Google returns a refresh token on every connect.
func (service *CalendarService) AuthCodeURL(state string) string {
	return service.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

type CalendarConnection struct {
	EncryptedRefreshToken string
	AccountEmail          string
	CalendarID            string
}

// Connect exchanges the OAuth code, resolves the account email, and ensures
// the dedicated health calendar exists.
func (service *CalendarService) Connect(ctx context.Context, code string) (CalendarConnection, error) {
	token, err := service.oauth.Exchange(ctx, code)
	if err != nil {
		return CalendarConnection{}, fmt.Errorf("exchange authorization code: %w", err)
	}
	if token.RefreshToken == "" {
		return CalendarConnection{}, ErrNoRefreshToken
	}

	tokenSource := service.oauth.TokenSource(ctx, token)

	userinfoService, err := goauth2.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return CalendarConnection{}, fmt.Errorf("init userinfo client: %w", err)
	}
	userinfo, err := userinfoService.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return CalendarConnection{}, fmt.Errorf("%w: fetch account email: %v", ErrCalendarUnavailable, err)
	}

	calendarService, err := calendar.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return CalendarConnection{}, fmt.Errorf("init calendar client: %w", err)
	}
	calendarID, err := ensureHealthCalendar(ctx, calendarService)
	if err != nil {
		return CalendarConnection{}, err
	}

	encrypted, err := service.cipher.Encrypt(token.RefreshToken)
	if err != nil {
		return CalendarConnection{}, fmt.Errorf("encrypt refresh token: %w", err)
	}

	return CalendarConnection{
		EncryptedRefreshToken: encrypted,
		AccountEmail:          userinfo.Email,
		CalendarID:            calendarID,
	}, nil
}

func (service *CalendarService) client(ctx context.Context, encryptedRefreshToken string) (*calendar.Service, error) {
	refreshToken, err := service.cipher.Decrypt(encryptedRefreshToken)
	if err != nil {
		return nil, err
	}
	tokenSource := service.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	return calendar.NewService(ctx, option.WithTokenSource(tokenSource))
}

// SyncLog creates or updates the calendar event for one symptom log and
// returns the event id. An existing event is located first by the stored
// event id, then by the private log-id property.
func (service *CalendarService) SyncLog(ctx context.Context, encryptedRefreshToken string, calendarID string, entry models.SymptomLog) (string, error) {
	client, err := service.client(ctx, encryptedRefreshToken)
	if err != nil {
		return "", err
	}

	event, err := BuildLogEvent(entry)
	if err != nil {
		return "", err
	}

	eventID := entry.CalendarEventID
	if eventID == "" {
		eventID, err = findEventByLogID(ctx, client, calendarID, entry.ID)
		if err != nil {
			return "", err
		}
	}

	if eventID != "" {
		updated, err := client.Events.Update(calendarID, eventID, event).Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("%w: update event: %v", ErrCalendarUnavailable, err)
		}
		return updated.Id, nil
	}

	created, err := client.Events.Insert(calendarID, event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("%w: insert event: %v", ErrCalendarUnavailable, err)
	}
	return created.Id, nil
}

// DeleteEvent removes the calendar event backing a log.
func (service *CalendarService) DeleteEvent(ctx context.Context, encryptedRefreshToken string, calendarID string, eventID string) error {
	client, err := service.client(ctx, encryptedRefreshToken)
	if err != nil {
		return err
	}
	if err := client.Events.Delete(calendarID, eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%w: delete event: %v", ErrCalendarUnavailable, err)
	}
	return nil
}

func ensureHealthCalendar(ctx context.Context, client *calendar.Service) (string, error) {
	list, err := client.CalendarList.List().Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("%w: list calendars: %v", ErrCalendarUnavailable, err)
	}
	for _, item := range list.Items {
		if item.Summary == healthCalendarName {
			return item.Id, nil
		}
	}

	created, err := client.Calendars.Insert(&calendar.Calendar{
		Summary:     healthCalendarName,
		Description: healthCalendarSummary,
		TimeZone:    "UTC",
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("%w: create calendar: %v", ErrCalendarUnavailable, err)
	}
	return created.Id, nil
}

func findEventByLogID(ctx context.Context, client *calendar.Service, calendarID string, logID uint) (string, error) {
	property := fmt.Sprintf("%s=%s", logIDProperty, strconv.FormatUint(uint64(logID), 10))
	events, err := client.Events.List(calendarID).
		PrivateExtendedProperty(property).
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("%w: search events: %v", ErrCalendarUnavailable, err)
	}
	if len(events.Items) == 0 {
		return "", nil
	}
	return events.Items[0].Id, nil
}
