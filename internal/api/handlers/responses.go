package handlers

import (
	"time"

	"github.com/gatherly/server/internal/domain/admins"
	"github.com/gatherly/server/internal/domain/attendees"
	"github.com/gatherly/server/internal/domain/events"
)

// EventResponse is the public JSON shape of an event. The id is the ULID;
// internal row ids never leave the storage layer.
type EventResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Venue        string    `json:"venue"`
	Date         time.Time `json:"date"`
	Price        float64   `json:"price"`
	MaxAttendees int       `json:"max_attendees"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toEventResponse(event *events.Event) EventResponse {
	return EventResponse{
		ID:           event.ULID,
		Title:        event.Title,
		Description:  event.Description,
		Venue:        event.Venue,
		Date:         event.Date,
		Price:        event.Price,
		MaxAttendees: event.MaxAttendees,
		CreatedAt:    event.CreatedAt,
		UpdatedAt:    event.UpdatedAt,
	}
}

func toEventResponses(items []events.Event) []EventResponse {
	out := make([]EventResponse, 0, len(items))
	for i := range items {
		out = append(out, toEventResponse(&items[i]))
	}
	return out
}

// AdminResponse never carries the password hash.
type AdminResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toAdminResponse(admin *admins.Admin) AdminResponse {
	return AdminResponse{
		ID:        admin.ULID,
		Name:      admin.Name,
		Email:     admin.Email,
		CreatedAt: admin.CreatedAt,
		UpdatedAt: admin.UpdatedAt,
	}
}

func toAdminResponses(items []admins.Admin) []AdminResponse {
	out := make([]AdminResponse, 0, len(items))
	for i := range items {
		out = append(out, toAdminResponse(&items[i]))
	}
	return out
}

type AttendeeResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	EventID   string    `json:"event_id"`
	CreatedAt time.Time `json:"created_at"`
}

func toAttendeeResponse(attendee *attendees.Attendee) AttendeeResponse {
	return AttendeeResponse{
		ID:        attendee.ULID,
		Name:      attendee.Name,
		Email:     attendee.Email,
		Phone:     attendee.Phone,
		EventID:   attendee.EventULID,
		CreatedAt: attendee.CreatedAt,
	}
}

func toAttendeeResponses(items []attendees.Attendee) []AttendeeResponse {
	out := make([]AttendeeResponse, 0, len(items))
	for i := range items {
		out = append(out, toAttendeeResponse(&items[i]))
	}
	return out
}
