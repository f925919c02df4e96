package domain

import (
	"testing"
)

// recorder collects the notifications it receives.
type recorder struct {
	got []Notification
}

func (r *recorder) Update(n Notification) { r.got = append(r.got, n) }

// panicker always panics in Update.
type panicker struct{}

func (panicker) Update(Notification) { panic("subscriber blew up") }

func TestAttachIsIdempotent(t *testing.T) {
	trip := newTestTrip(t, 10)
	rec := &recorder{}

	trip.Attach(rec)
	trip.Attach(rec)
	trip.NotifyObservers(Notification{Kind: NotifyPlatformChanged, Message: "x"})

	if len(rec.got) != 1 {
		t.Errorf("observer attached twice received %d notifications, want 1", len(rec.got))
	}
}

func TestNotifyObserversOrderAndDetach(t *testing.T) {
	trip := newTestTrip(t, 10)
	first := &recorder{}
	second := &recorder{}
	third := &recorder{}

	trip.Attach(first)
	trip.Attach(second)
	trip.Attach(third)
	trip.Detach(second)

	trip.NotifyObservers(Notification{Kind: NotifyCancelled, Message: "gone"})

	if len(first.got) != 1 || len(third.got) != 1 {
		t.Error("remaining observers should each receive the notification")
	}
	if len(second.got) != 0 {
		t.Error("detached observer should not receive notifications")
	}
}

func TestNotifyObserversSurvivesPanickingObserver(t *testing.T) {
	trip := newTestTrip(t, 10)
	after := &recorder{}

	trip.Attach(panicker{})
	trip.Attach(after)

	trip.NotifyObservers(Notification{Kind: NotifyDelayChanged, Message: "late"})

	if len(after.got) != 1 {
		t.Errorf("observer after the panicking one received %d notifications, want 1", len(after.got))
	}
}
