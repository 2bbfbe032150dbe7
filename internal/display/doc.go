// Package display is the GTK4 host for the session core. It turns session
// requests into layer-shell windows (the status bar and the launcher
// overlay) and reports widget input back as session events. All methods
// must be called on the GTK main thread.
package display
