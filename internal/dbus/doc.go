// Package dbus connects wayshell to the session bus.
//
// It provides two event producers: a client for the xdg-desktop-portal
// GlobalShortcuts interface, which reports the launcher shortcut, and the
// io.github.jmylchreest.Wayshell control object, which lets other processes
// open, close or toggle the launcher. Notify sends the shell's own desktop
// notifications to whichever notification daemon is running.
package dbus
