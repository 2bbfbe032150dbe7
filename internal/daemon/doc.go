// Package daemon wires the session core to its collaborators in wayshelld.
// It executes router requests against the display host, the compositor and
// the spawner, reloads configuration on change, and reports failures as
// desktop notifications.
package daemon
