package dbus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"

	"github.com/jmylchreest/wayshell/internal/session"
)

const (
	// ControlInterface is the control interface name.
	ControlInterface = "io.github.jmylchreest.Wayshell"
	// ControlPath is the control object path.
	ControlPath = "/io/github/jmylchreest/Wayshell"
	// ControlBusName is the bus name claimed by the daemon.
	ControlBusName = "io.github.jmylchreest.Wayshell"
)

// ControlServer exports the launcher control object. It implements
// session.Producer: incoming method calls become ControlCommand events.
type ControlServer struct {
	conn   *dbus.Conn
	logger *slog.Logger

	mu      sync.RWMutex
	emit    func(session.Event)
	running bool
}

// NewControlServer creates a new ControlServer.
func NewControlServer(logger *slog.Logger) *ControlServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ControlServer{logger: logger}
}

// Name implements session.Producer.
func (s *ControlServer) Name() string { return "control" }

// Run exports the object and serves calls until ctx is cancelled.
func (s *ControlServer) Run(ctx context.Context, emit func(session.Event)) error {
	s.mu.Lock()
	s.emit = emit
	s.mu.Unlock()

	if err := s.Start(); err != nil {
		return err
	}
	defer func() {
		if err := s.Stop(); err != nil {
			s.logger.Warn("failed to stop control server", "error", err)
		}
	}()

	<-ctx.Done()
	return ctx.Err()
}

// busExporter is the part of *dbus.Conn used to publish the control object.
type busExporter interface {
	Export(v interface{}, path dbus.ObjectPath, iface string) error
	RequestName(name string, flags dbus.RequestNameFlags) (dbus.RequestNameReply, error)
}

// Start connects to the session bus and exports the control object.
func (s *ControlServer) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server already running")
	}
	s.mu.Unlock()

	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	if err := s.register(conn); err != nil {
		return err
	}

	s.mu.Lock()
	s.conn = conn
	s.running = true
	s.mu.Unlock()

	s.logger.Info("D-Bus control server started", "interface", ControlInterface, "path", ControlPath)
	return nil
}

// register exports the control object and claims the bus name. On failure
// nothing stays exported on the shared connection.
func (s *ControlServer) register(conn busExporter) (err error) {
	defer func() {
		if err != nil {
			unexport(conn)
		}
	}()

	if err := conn.Export(s, ControlPath, ControlInterface); err != nil {
		return fmt.Errorf("failed to export object: %w", err)
	}

	node := &introspect.Node{
		Name: ControlPath,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name:    ControlInterface,
				Methods: controlMethods(),
				Signals: controlSignals(),
			},
		},
	}
	if err := conn.Export(introspect.NewIntrospectable(node), ControlPath,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("failed to export introspectable: %w", err)
	}

	reply, err := conn.RequestName(ControlBusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("failed to request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("bus name %s already taken; is wayshelld already running?", ControlBusName)
	}
	return nil
}

func unexport(conn busExporter) {
	_ = conn.Export(nil, ControlPath, ControlInterface)
	_ = conn.Export(nil, ControlPath, "org.freedesktop.DBus.Introspectable")
}

// Stop unexports the object and releases the bus name.
func (s *ControlServer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	if s.conn != nil {
		unexport(s.conn)
		if _, err := s.conn.ReleaseName(ControlBusName); err != nil {
			s.logger.Warn("failed to release bus name", "error", err)
		}
		// Don't close the connection as it's shared (SessionBus)
	}

	s.logger.Info("D-Bus control server stopped")
	return nil
}

func (s *ControlServer) dispatch(op session.ControlOp) *dbus.Error {
	s.mu.RLock()
	emit := s.emit
	s.mu.RUnlock()

	s.logger.Debug("control call", "op", op)
	if emit == nil {
		return dbus.MakeFailedError(fmt.Errorf("launcher is not ready"))
	}
	emit(session.ControlCommand{Op: op})
	return nil
}

// Toggle opens the launcher if closed, otherwise closes it.
// D-Bus method: Toggle() -> nothing
func (s *ControlServer) Toggle() *dbus.Error {
	return s.dispatch(session.ControlToggle)
}

// Open opens the launcher.
// D-Bus method: Open() -> nothing
func (s *ControlServer) Open() *dbus.Error {
	return s.dispatch(session.ControlOpen)
}

// Close closes the launcher.
// D-Bus method: Close() -> nothing
func (s *ControlServer) Close() *dbus.Error {
	return s.dispatch(session.ControlClose)
}

func controlMethods() []introspect.Method {
	return []introspect.Method{
		{Name: "Toggle"},
		{Name: "Open"},
		{Name: "Close"},
	}
}

func controlSignals() []introspect.Signal {
	return []introspect.Signal{
		{
			Name: "VisibilityChanged",
			Args: []introspect.Arg{
				{Name: "visible", Type: "b"},
			},
		},
	}
}
