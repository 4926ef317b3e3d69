package registration

import (
	"context"
	"errors"

	"github.com/gatherly/server/internal/domain/events"
)

var ErrEventFull = errors.New("event is full")

// CapacityPolicy decides whether an event can accept one more attendee.
type CapacityPolicy interface {
	Check(ctx context.Context, event *events.Event) error
}

// Unlimited admits every registration regardless of max_attendees. This
// matches the historical behavior where the limit was advertised but not
// enforced at registration time.
func Unlimited() CapacityPolicy {
	return unlimitedPolicy{}
}

type unlimitedPolicy struct{}

func (unlimitedPolicy) Check(context.Context, *events.Event) error { return nil }

// AttendeeCounter reports the current number of registrations for an event.
type AttendeeCounter interface {
	CountForEvent(ctx context.Context, eventULID string) (int, error)
}

// EnforceCapacity rejects registrations once the attendee count reaches
// the event's max_attendees. The count and insert are not atomic, so a
// burst of concurrent registrations can still slightly overshoot.
func EnforceCapacity(counter AttendeeCounter) CapacityPolicy {
	return capacityPolicy{counter: counter}
}

type capacityPolicy struct {
	counter AttendeeCounter
}

func (p capacityPolicy) Check(ctx context.Context, event *events.Event) error {
	count, err := p.counter.CountForEvent(ctx, event.ULID)
	if err != nil {
		return err
	}
	if count >= event.MaxAttendees {
		return ErrEventFull
	}
	return nil
}
