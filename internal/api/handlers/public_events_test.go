package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gatherly/server/internal/api/middleware"
	"github.com/gatherly/server/internal/domain/attendees"
	"github.com/gatherly/server/internal/domain/events"
	"github.com/gatherly/server/internal/domain/organizations"
	"github.com/gatherly/server/internal/domain/registration"
	"github.com/stretchr/testify/require"
)

type stubOrgRepo struct {
	bySlug map[string]*organizations.Organization
}

func (s stubOrgRepo) GetBySlug(_ context.Context, slug string) (*organizations.Organization, error) {
	if org, ok := s.bySlug[slug]; ok {
		return org, nil
	}
	return nil, organizations.ErrNotFound
}

func (s stubOrgRepo) GetByULID(context.Context, string) (*organizations.Organization, error) {
	return nil, organizations.ErrNotFound
}

func (s stubOrgRepo) Create(context.Context, organizations.CreateParams) (*organizations.Organization, error) {
	return nil, nil
}

type stubAttendeesRepo struct {
	created []attendees.Attendee
	count   int
}

func (s *stubAttendeesRepo) ListByOrg(context.Context, string) ([]attendees.Attendee, error) {
	return s.created, nil
}

func (s *stubAttendeesRepo) CreateForEvent(_ context.Context, eventULID string, params attendees.CreateParams) (*attendees.Attendee, error) {
	attendee := attendees.Attendee{
		ULID:      "01HYX3KQW7ERTV9XNBM2P8QJZD",
		Name:      params.Name,
		Email:     params.Email,
		Phone:     params.Phone,
		EventULID: eventULID,
	}
	s.created = append(s.created, attendee)
	return &attendee, nil
}

func (s *stubAttendeesRepo) CountForEvent(context.Context, string) (int, error) {
	return s.count, nil
}

func publicServer(t *testing.T, eventsRepo events.Repository, attendeesRepo attendees.Repository, capacity registration.CapacityPolicy) *httptest.Server {
	t.Helper()

	orgRepo := stubOrgRepo{bySlug: map[string]*organizations.Organization{
		"acme-events": {ULID: orgA, Slug: "acme-events", Name: "Acme Events"},
	}}

	svc := registration.NewService(eventsRepo, attendeesRepo, capacity)
	handler := NewPublicEventsHandler(svc, "test")
	withTenant := middleware.ResolveTenant(organizations.NewService(orgRepo), "test")

	mux := http.NewServeMux()
	mux.Handle("GET /{org}/events", withTenant(http.HandlerFunc(handler.ListUpcoming)))
	mux.Handle("POST /{org}/register", withTenant(http.HandlerFunc(handler.Register)))
	mux.Handle("/", NotFound("test"))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestPublicListUpcomingFiltersPastEvents(t *testing.T) {
	repo := newStubEventsRepo()
	repo.add(&events.Event{ULID: eventULID, Title: "Future Meetup", OrgULID: orgA, Date: time.Now().Add(48 * time.Hour), MaxAttendees: 100})
	repo.add(&events.Event{ULID: "01HYX3KQW7ERTV9XNBM2P8QJZG", Title: "Past Meetup", OrgULID: orgA, Date: time.Now().Add(-48 * time.Hour), MaxAttendees: 100})

	server := publicServer(t, repo, &stubAttendeesRepo{}, registration.Unlimited())

	resp, err := http.Get(server.URL + "/acme-events/events")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var items []EventResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 1)
	require.Equal(t, "Future Meetup", items[0].Title)
}

func TestPublicListUnknownTenant(t *testing.T) {
	server := publicServer(t, newStubEventsRepo(), &stubAttendeesRepo{}, registration.Unlimited())

	resp, err := http.Get(server.URL + "/ghost-org/events")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "Organization not found.", body["message"])
}

func TestUnmatchedRouteIsJSONNotFound(t *testing.T) {
	server := publicServer(t, newStubEventsRepo(), &stubAttendeesRepo{}, registration.Unlimited())

	resp, err := http.Get(server.URL + "/nowhere")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "Not found.", body["message"])

	// A known path shape with the wrong method falls through to the same
	// JSON fallback.
	resp, err = http.Post(server.URL+"/acme-events/events", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	body = nil
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "Not found.", body["message"])
}

func TestPublicRegister(t *testing.T) {
	repo := newStubEventsRepo()
	repo.add(&events.Event{ULID: eventULID, Title: "Tech Meetup", OrgULID: orgA, Date: time.Now().Add(24 * time.Hour), MaxAttendees: 100})
	attendeesRepo := &stubAttendeesRepo{}

	server := publicServer(t, repo, attendeesRepo, registration.Unlimited())

	resp := postJSON(t, server.URL+"/acme-events/register", map[string]string{
		"event_id": eventULID,
		"name":     "John Doe",
		"email":    "john@example.com",
		"phone":    "555-0100",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body RegisterResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "Registered successfully.", body.Message)
	require.Equal(t, eventULID, body.Attendee.EventID)
	require.Len(t, attendeesRepo.created, 1)
}

func TestPublicRegisterValidation(t *testing.T) {
	server := publicServer(t, newStubEventsRepo(), &stubAttendeesRepo{}, registration.Unlimited())

	resp := postJSON(t, server.URL+"/acme-events/register", map[string]string{
		"email": "not-an-email",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Contains(t, body.Errors, "event_id")
	require.Contains(t, body.Errors, "name")
	require.Contains(t, body.Errors, "email")
	require.Contains(t, body.Errors, "phone")
}

func TestPublicRegisterForeignEventIsNotFound(t *testing.T) {
	repo := newStubEventsRepo()
	// Event exists but belongs to a different organization than the slug.
	repo.add(&events.Event{ULID: eventULID, Title: "Tech Meetup", OrgULID: orgB, Date: time.Now().Add(24 * time.Hour), MaxAttendees: 100})
	attendeesRepo := &stubAttendeesRepo{}

	server := publicServer(t, repo, attendeesRepo, registration.Unlimited())

	resp := postJSON(t, server.URL+"/acme-events/register", map[string]string{
		"event_id": eventULID,
		"name":     "John Doe",
		"email":    "john@example.com",
		"phone":    "555-0100",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "Event not found.", body["message"])
	// No registration row is written for a foreign event.
	require.Empty(t, attendeesRepo.created)
}

func TestPublicRegisterFullEvent(t *testing.T) {
	repo := newStubEventsRepo()
	repo.add(&events.Event{ULID: eventULID, Title: "Tech Meetup", OrgULID: orgA, Date: time.Now().Add(24 * time.Hour), MaxAttendees: 2})
	attendeesRepo := &stubAttendeesRepo{count: 2}

	server := publicServer(t, repo, attendeesRepo, registration.EnforceCapacity(attendeesRepo))

	resp := postJSON(t, server.URL+"/acme-events/register", map[string]string{
		"event_id": eventULID,
		"name":     "John Doe",
		"email":    "john@example.com",
		"phone":    "555-0100",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "Event is full.", body["message"])
	require.Empty(t, attendeesRepo.created)
}
