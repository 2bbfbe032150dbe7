package dbus

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

// Notification service names.
const (
	NotificationsBusName   = "org.freedesktop.Notifications"
	NotificationsPath      = "/org/freedesktop/Notifications"
	NotificationsInterface = "org.freedesktop.Notifications"
)

// Urgency levels understood by org.freedesktop.Notifications.
const (
	UrgencyLow      byte = 0
	UrgencyNormal   byte = 1
	UrgencyCritical byte = 2
)

// Notification is a desktop notification sent by the shell itself.
type Notification struct {
	AppName       string
	AppIcon       string
	Summary       string
	Body          string
	Urgency       byte
	ExpireTimeout int32 // milliseconds; -1 lets the server decide
}

// hints builds the a{sv} hints argument for Notify.
func (n Notification) hints() map[string]dbus.Variant {
	return map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(n.Urgency),
		"transient":     dbus.MakeVariant(true),
		"desktop-entry": dbus.MakeVariant(n.AppName),
	}
}

// Notify sends n to whatever notification daemon owns the well-known name
// and returns the id it assigned.
func Notify(conn *dbus.Conn, n Notification) (uint32, error) {
	if conn == nil {
		var err error
		conn, err = dbus.SessionBus()
		if err != nil {
			return 0, fmt.Errorf("failed to connect to session bus: %w", err)
		}
	}

	obj := conn.Object(NotificationsBusName, NotificationsPath)
	call := obj.Call(NotificationsInterface+".Notify", 0,
		n.AppName,
		uint32(0), // replaces_id
		n.AppIcon,
		n.Summary,
		n.Body,
		[]string{}, // actions
		n.hints(),
		n.ExpireTimeout,
	)
	if call.Err != nil {
		return 0, fmt.Errorf("failed to send notification: %w", call.Err)
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("failed to read notification id: %w", err)
	}
	return id, nil
}
