package domain

import "log"

// NotificationKind classifies a trip-state change announcement.
type NotificationKind string

const (
	NotifyDelayChanged       NotificationKind = "delay_changed"
	NotifyPlatformChanged    NotificationKind = "platform_changed"
	NotifyCancelled          NotificationKind = "cancelled"
	NotifyDepartureChanged   NotificationKind = "departure_changed"
	NotifyPromotionAnnounced NotificationKind = "promotion_announced"
)

// Notification is an immutable description of a change interested parties
// should hear about.
type Notification struct {
	Kind    NotificationKind
	Message string
}

// Observer receives notifications from a trip it is attached to.
type Observer interface {
	Update(n Notification)
}

// notifyOne delivers a single notification under a recover guard so that one
// misbehaving observer cannot abort the fan-out to the rest.
func notifyOne(o Observer, n Notification) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Observer panicked during %s notification: %v", n.Kind, r)
		}
	}()
	o.Update(n)
}
