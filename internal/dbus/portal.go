package dbus

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/wayshell/internal/session"
)

// DefaultRequestTimeout bounds each portal request. BindShortcuts may show a
// dialog to the user, so this is generous.
const DefaultRequestTimeout = 2 * time.Minute

// ShortcutSource registers one global shortcut with the portal and reports
// its activations. It implements session.Producer.
type ShortcutSource struct {
	shortcut Shortcut
	timeout  time.Duration
	logger   *slog.Logger
}

// NewShortcutSource creates a source for the shortcut id.
func NewShortcutSource(id, description string, logger *slog.Logger) *ShortcutSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &ShortcutSource{
		shortcut: NewShortcut(id, description),
		timeout:  DefaultRequestTimeout,
		logger:   logger,
	}
}

// Name implements session.Producer.
func (s *ShortcutSource) Name() string { return "portal" }

// Run creates a portal session, binds the shortcut and emits a
// ShortcutActivated event for every activation until ctx is cancelled.
func (s *ShortcutSource) Run(ctx context.Context, emit func(session.Event)) error {
	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	// The session bus connection is shared and must stay open.

	signals := make(chan *dbus.Signal, 16)
	conn.Signal(signals)
	defer conn.RemoveSignal(signals)

	activated := []dbus.MatchOption{
		dbus.WithMatchInterface(ShortcutsInterface),
		dbus.WithMatchMember("Activated"),
	}
	if err := conn.AddMatchSignal(activated...); err != nil {
		return fmt.Errorf("failed to subscribe to shortcut activations: %w", err)
	}
	defer func() { _ = conn.RemoveMatchSignal(activated...) }()

	portal := conn.Object(PortalBusName, PortalPath)

	handle, err := s.createSession(ctx, conn, portal, signals)
	if err != nil {
		return err
	}
	defer s.closeSession(conn, handle)

	if err := s.bindShortcuts(ctx, conn, portal, handle, signals); err != nil {
		return err
	}
	s.logger.Info("global shortcut bound", "id", s.shortcut.ID, "session", handle)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sig, ok := <-signals:
			if !ok {
				return errors.New("session bus connection closed")
			}
			if id, ok := parseActivated(sig, handle); ok {
				s.logger.Debug("shortcut activated", "id", id)
				emit(session.ShortcutActivated{Name: id})
			}
		}
	}
}

func (s *ShortcutSource) createSession(ctx context.Context, conn *dbus.Conn, portal dbus.BusObject, signals <-chan *dbus.Signal) (dbus.ObjectPath, error) {
	sessionToken, err := newToken()
	if err != nil {
		return "", err
	}

	results, err := s.request(ctx, conn, portal, "CreateSession", signals, func(token string) []any {
		return []any{map[string]dbus.Variant{
			"handle_token":         dbus.MakeVariant(token),
			"session_handle_token": dbus.MakeVariant(sessionToken),
		}}
	})
	if err != nil {
		return "", err
	}

	handle, ok := sessionHandle(results)
	if !ok {
		return "", &PortalError{Method: "CreateSession", Cause: errors.New("response has no session_handle")}
	}
	return handle, nil
}

func (s *ShortcutSource) bindShortcuts(ctx context.Context, conn *dbus.Conn, portal dbus.BusObject, handle dbus.ObjectPath, signals <-chan *dbus.Signal) error {
	_, err := s.request(ctx, conn, portal, "BindShortcuts", signals, func(token string) []any {
		return []any{
			handle,
			[]Shortcut{s.shortcut},
			"", // parent window
			map[string]dbus.Variant{"handle_token": dbus.MakeVariant(token)},
		}
	})
	return err
}

// request calls a portal method and waits for the matching Response signal.
func (s *ShortcutSource) request(ctx context.Context, conn *dbus.Conn, portal dbus.BusObject, method string, signals <-chan *dbus.Signal, args func(token string) []any) (map[string]dbus.Variant, error) {
	names := conn.Names()
	if len(names) == 0 {
		return nil, &PortalError{Method: method, Cause: errors.New("connection has no unique name")}
	}

	token, err := newToken()
	if err != nil {
		return nil, err
	}
	expected := requestPath(names[0], token)

	response := []dbus.MatchOption{
		dbus.WithMatchObjectPath(expected),
		dbus.WithMatchInterface(RequestInterface),
		dbus.WithMatchMember(responseSignalMember),
	}
	if err := conn.AddMatchSignal(response...); err != nil {
		return nil, &PortalError{Method: method, Cause: err}
	}
	defer func() { _ = conn.RemoveMatchSignal(response...) }()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	call := portal.CallWithContext(ctx, ShortcutsInterface+"."+method, 0, args(token)...)
	if call.Err != nil {
		return nil, &PortalError{Method: method, Cause: call.Err}
	}
	var returned dbus.ObjectPath
	if err := call.Store(&returned); err != nil {
		return nil, &PortalError{Method: method, Cause: err}
	}

	for {
		select {
		case <-ctx.Done():
			return nil, &PortalError{Method: method, Cause: ctx.Err()}
		case sig, ok := <-signals:
			if !ok {
				return nil, &PortalError{Method: method, Cause: errors.New("session bus connection closed")}
			}
			if sig.Name != RequestInterface+"."+responseSignalMember {
				continue
			}
			if sig.Path != expected && sig.Path != returned {
				continue
			}
			code, results, ok := parseResponse(sig)
			if !ok {
				return nil, &PortalError{Method: method, Cause: errors.New("malformed Response signal")}
			}
			if code != ResponseSuccess {
				return nil, &PortalError{Method: method, Response: code}
			}
			return results, nil
		}
	}
}

func (s *ShortcutSource) closeSession(conn *dbus.Conn, handle dbus.ObjectPath) {
	call := conn.Object(PortalBusName, handle).Call("org.freedesktop.portal.Session.Close", 0)
	if call.Err != nil {
		s.logger.Debug("failed to close portal session", "session", handle, "error", call.Err)
	}
}

// newToken returns a handle token that is valid as an object path element.
func newToken() (string, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return "", fmt.Errorf("failed to generate ULID: %w", err)
	}
	return "wayshell_" + strings.ToLower(id.String()), nil
}
