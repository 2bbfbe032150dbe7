// Package theme resolves and hot-reloads the CSS used by the wayshell bar
// and launcher overlay. User themes in ~/.config/wayshell/themes/ override
// the bundled ones, which are embedded in the binary.
package theme
