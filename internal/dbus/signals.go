package dbus

import (
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/wayshell/internal/session"
)

// EmitVisibilityChanged emits the VisibilityChanged signal after the launcher
// surface is created or destroyed.
func (s *ControlServer) EmitVisibilityChanged(visible bool) error {
	s.mu.RLock()
	running := s.running
	s.mu.RUnlock()

	if !running || s.conn == nil {
		return fmt.Errorf("not connected to D-Bus")
	}

	err := s.conn.Emit(ControlPath, ControlInterface+".VisibilityChanged", visible)
	if err != nil {
		return fmt.Errorf("failed to emit VisibilityChanged signal: %w", err)
	}

	s.logger.Debug("emitted VisibilityChanged signal", "visible", visible)
	return nil
}

var controlMethodNames = map[session.ControlOp]string{
	session.ControlToggle: "Toggle",
	session.ControlOpen:   "Open",
	session.ControlClose:  "Close",
}

// CallControl invokes a control method on a running daemon.
func CallControl(op string) error {
	parsed, err := session.ParseControlOp(op)
	if err != nil {
		return err
	}
	method := controlMethodNames[parsed]

	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}

	obj := conn.Object(ControlBusName, ControlPath)
	if call := obj.Call(ControlInterface+"."+method, 0); call.Err != nil {
		return fmt.Errorf("failed to call %s (is wayshelld running?): %w", method, call.Err)
	}
	return nil
}
