package dbus

import (
	"fmt"
	"strings"

	"github.com/godbus/dbus/v5"
)

// Portal names.
const (
	PortalBusName        = "org.freedesktop.portal.Desktop"
	PortalPath           = "/org/freedesktop/portal/desktop"
	ShortcutsInterface   = "org.freedesktop.portal.GlobalShortcuts"
	RequestInterface     = "org.freedesktop.portal.Request"
	requestPathPrefix    = "/org/freedesktop/portal/desktop/request/"
	activatedSignalName  = ShortcutsInterface + ".Activated"
	responseSignalMember = "Response"
)

// ResponseCode is the first argument of org.freedesktop.portal.Request.Response.
type ResponseCode uint32

const (
	// ResponseSuccess indicates the request was carried out.
	ResponseSuccess ResponseCode = 0
	// ResponseCancelled indicates the user cancelled the interaction.
	ResponseCancelled ResponseCode = 1
	// ResponseOther indicates the request ended some other way.
	ResponseOther ResponseCode = 2
)

// String returns the string representation of the response code.
func (r ResponseCode) String() string {
	switch r {
	case ResponseSuccess:
		return "success"
	case ResponseCancelled:
		return "cancelled"
	case ResponseOther:
		return "other"
	default:
		return "unknown"
	}
}

// Shortcut is one entry of the a(sa{sv}) argument to BindShortcuts.
type Shortcut struct {
	ID      string
	Options map[string]dbus.Variant
}

// NewShortcut creates a Shortcut with a description.
func NewShortcut(id, description string) Shortcut {
	return Shortcut{
		ID: id,
		Options: map[string]dbus.Variant{
			"description": dbus.MakeVariant(description),
		},
	}
}

// PortalError reports a portal request that did not succeed.
type PortalError struct {
	Method   string
	Response ResponseCode
	Cause    error
}

func (e *PortalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("portal %s failed: %v", e.Method, e.Cause)
	}
	return fmt.Sprintf("portal %s failed: response %s", e.Method, e.Response)
}

func (e *PortalError) Unwrap() error {
	return e.Cause
}

// senderToken converts a unique bus name such as ":1.42" into the form used
// in portal request paths ("1_42").
func senderToken(uniqueName string) string {
	return strings.ReplaceAll(strings.TrimPrefix(uniqueName, ":"), ".", "_")
}

// requestPath returns the object path of the Request created for token.
func requestPath(uniqueName, token string) dbus.ObjectPath {
	return dbus.ObjectPath(requestPathPrefix + senderToken(uniqueName) + "/" + token)
}

// parseResponse decodes a Request.Response signal body.
func parseResponse(sig *dbus.Signal) (ResponseCode, map[string]dbus.Variant, bool) {
	if len(sig.Body) < 2 {
		return 0, nil, false
	}
	code, ok := sig.Body[0].(uint32)
	if !ok {
		return 0, nil, false
	}
	results, ok := sig.Body[1].(map[string]dbus.Variant)
	if !ok {
		return 0, nil, false
	}
	return ResponseCode(code), results, true
}

// parseActivated decodes a GlobalShortcuts.Activated signal body and returns
// the shortcut id when it belongs to session.
func parseActivated(sig *dbus.Signal, session dbus.ObjectPath) (string, bool) {
	if sig.Name != activatedSignalName || len(sig.Body) < 2 {
		return "", false
	}
	handle, ok := sig.Body[0].(dbus.ObjectPath)
	if !ok || handle != session {
		return "", false
	}
	id, ok := sig.Body[1].(string)
	return id, ok
}

// sessionHandle extracts the session handle from a CreateSession response.
// Portals report it as a string, some older versions as an object path.
func sessionHandle(results map[string]dbus.Variant) (dbus.ObjectPath, bool) {
	v, ok := results["session_handle"]
	if !ok {
		return "", false
	}
	switch h := v.Value().(type) {
	case string:
		return dbus.ObjectPath(h), h != ""
	case dbus.ObjectPath:
		return h, h != ""
	default:
		return "", false
	}
}
