package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/wayshell/internal/dbus"
	"github.com/jmylchreest/wayshell/internal/session"
)

func newControlCmd(op session.ControlOp, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(op),
		Short: short,
		Long: short + `.

Calls the running wayshelld over the session bus. Bind this to a key in your
compositor when the global shortcuts portal is unavailable, e.g. in Hyprland:

  bind = SUPER, space, exec, wayshell toggle`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dbus.CallControl(string(op))
		},
	}
}

func init() {
	rootCmd.AddCommand(newControlCmd(session.ControlToggle, "Toggle the launcher overlay"))
	rootCmd.AddCommand(newControlCmd(session.ControlOpen, "Open the launcher overlay"))
	rootCmd.AddCommand(newControlCmd(session.ControlClose, "Close the launcher overlay"))
}
