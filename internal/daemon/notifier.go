package daemon

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jmylchreest/wayshell/internal/config"
	"github.com/jmylchreest/wayshell/internal/dbus"
	"github.com/jmylchreest/wayshell/internal/session"
)

// NotificationLevel indicates the severity of an internal notification.
type NotificationLevel int

const (
	// NotificationLevelInfo is for informational messages (low urgency).
	NotificationLevelInfo NotificationLevel = iota
	// NotificationLevelWarning is for warning messages (normal urgency).
	NotificationLevelWarning
	// NotificationLevelError is for error messages (critical urgency).
	NotificationLevelError
)

// DefaultNotifyInterval is the minimum time between two notifications
// with the same key.
const DefaultNotifyInterval = config.DefaultNotifyEvery

// Notifier tells the user about wayshell's own events through the desktop
// notification daemon. Repeats of the same key are rate limited.
type Notifier struct {
	mu     sync.Mutex
	logger *slog.Logger

	send func(dbus.Notification) error

	lastNotifyTime map[string]time.Time
	minInterval    time.Duration
	now            func() time.Time

	enabled bool
}

// NewNotifier creates a Notifier that sends over the session bus.
func NewNotifier(logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		logger: logger,
		send: func(n dbus.Notification) error {
			_, err := dbus.Notify(nil, n)
			return err
		},
		lastNotifyTime: make(map[string]time.Time),
		minInterval:    DefaultNotifyInterval,
		now:            time.Now,
		enabled:        true,
	}
}

// SetEnabled enables or disables notifications.
func (n *Notifier) SetEnabled(enabled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enabled = enabled
}

// SetMinInterval sets the minimum interval between notifications with the
// same key.
func (n *Notifier) SetMinInterval(interval time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.minInterval = interval
}

// Configure applies the [notifications] config section.
func (n *Notifier) Configure(cfg config.NotificationsConfig) {
	n.SetEnabled(cfg.Enabled)
	n.SetMinInterval(cfg.MinInterval.Duration())
}

// Notify sends a notification unless one with the same key was sent within
// the minimum interval. Send failures are logged; there is nobody else to
// tell.
func (n *Notifier) Notify(key, summary, body string, level NotificationLevel) {
	n.mu.Lock()
	if !n.enabled || n.send == nil {
		n.mu.Unlock()
		return
	}
	now := n.now()
	if last, ok := n.lastNotifyTime[key]; ok && now.Sub(last) < n.minInterval {
		n.mu.Unlock()
		n.logger.Debug("internal notification rate-limited", "key", key)
		return
	}
	n.lastNotifyTime[key] = now
	send := n.send
	n.mu.Unlock()

	notification := dbus.Notification{
		AppName:       "wayshell",
		Summary:       summary,
		Body:          body,
		ExpireTimeout: 5000,
	}
	switch level {
	case NotificationLevelInfo:
		notification.Urgency = dbus.UrgencyLow
		notification.AppIcon = "dialog-information"
	case NotificationLevelWarning:
		notification.Urgency = dbus.UrgencyNormal
		notification.AppIcon = "dialog-warning"
	default:
		notification.Urgency = dbus.UrgencyCritical
		notification.AppIcon = "dialog-error"
	}

	if err := send(notification); err != nil {
		n.logger.Debug("failed to send internal notification", "key", key, "error", err)
	}
}

// NotifyConfigReloaded reports a successful config reload.
func (n *Notifier) NotifyConfigReloaded() {
	n.Notify("config-reload", "Configuration Reloaded",
		"wayshell configuration has been reloaded.", NotificationLevelInfo)
}

// NotifyConfigError reports a config file that failed to load.
func (n *Notifier) NotifyConfigError(err error) {
	n.Notify("config-error", "Configuration Error",
		"Keeping the previous configuration: "+err.Error(), NotificationLevelWarning)
}

// NotifyThemeError reports a theme that failed to load.
func (n *Notifier) NotifyThemeError(err error) {
	n.Notify("theme-error", "Theme Error",
		"Failed to load theme: "+err.Error(), NotificationLevelWarning)
}

// NotifyLaunchError reports a command that could not be started.
func (n *Notifier) NotifyLaunchError(command string, err error) {
	n.Notify("launch:"+command, "Launch Failed",
		command+": "+err.Error(), NotificationLevelError)
}

// NotifyProducerStopped reports an event source that stopped early, such as
// a lost compositor socket.
func (n *Notifier) NotifyProducerStopped(name string, err error) {
	body := name + " stopped"
	if err != nil {
		body += ": " + err.Error()
	}
	n.Notify("producer:"+name, "Event Source Stopped", body, NotificationLevelWarning)
}

// notifyingProducer reports an unexpected stop of the wrapped producer.
type notifyingProducer struct {
	session.Producer
	notifier *Notifier
}

// WithStopNotification wraps p so that returning with an error other than
// cancellation raises a desktop notification.
func WithStopNotification(p session.Producer, n *Notifier) session.Producer {
	return &notifyingProducer{Producer: p, notifier: n}
}

func (p *notifyingProducer) Run(ctx context.Context, emit func(session.Event)) error {
	err := p.Producer.Run(ctx, emit)
	if ctx.Err() == nil && !errors.Is(err, context.Canceled) {
		p.notifier.NotifyProducerStopped(p.Name(), err)
	}
	return err
}
