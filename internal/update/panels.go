package update

import (
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/sandeepkv93/taskpager/internal/scheduler"
	"github.com/sandeepkv93/taskpager/internal/views"
)

const (
	toastKind        = "toast"
	maxNotifications = 40
	visibleToasts    = 3
)

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.commandInput.Value())
}

// ActiveToasts returns the notifications still on screen, oldest first.
func (m Model) ActiveToasts() []Notification {
	out := make([]Notification, 0, len(m.toasts))
	for _, n := range m.Notifications {
		if slices.Contains(m.toasts, n.ID) {
			out = append(out, n)
		}
	}
	return out
}

func (m Model) renderNotificationsView() string {
	active := m.ActiveToasts()
	if len(active) > visibleToasts {
		active = active[len(active)-visibleToasts:]
	}
	items := make([]views.NotificationData, 0, len(active))
	for _, n := range active {
		items = append(items, views.NotificationData{Level: n.Level, Title: n.Title, Body: n.Body})
	}
	return views.RenderNotifications(items)
}

// notify records a notification and shows it as a toast until its TTL passes.
func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	m.toastSeq++
	n := Notification{
		ID:    fmt.Sprintf("toast-%d", m.toastSeq),
		Title: title,
		Body:  body,
		Level: level,
		At:    m.now().UTC(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > maxNotifications {
		m.Notifications = m.Notifications[len(m.Notifications)-maxNotifications:]
	}
	m.toasts = append(m.toasts, n.ID)
	if len(m.toasts) > maxNotifications {
		m.toasts = m.toasts[len(m.toasts)-maxNotifications:]
	}

	if m.DesktopEnabled && m.notifier != nil {
		if err := m.notifier.Send(n); err != nil {
			m.logger.Debug("desktop notification failed", zap.Error(err))
		}
	}
	if m.Scheduler != nil && m.toastTTL > 0 {
		ev := scheduler.Event{Key: n.ID, Kind: toastKind, At: n.At.Add(m.toastTTL)}
		if err := m.Scheduler.Schedule(ev); err != nil {
			m.logger.Warn("toast expiry not scheduled", zap.String("toast", n.ID), zap.Error(err))
		}
	}
}

func (m *Model) expireToast(id string) {
	m.toasts = slices.DeleteFunc(m.toasts, func(t string) bool { return t == id })
}

// DismissToasts hides every active toast and cancels their pending expiry.
func (m *Model) DismissToasts() {
	if m.Scheduler != nil {
		for _, id := range m.toasts {
			m.Scheduler.Cancel(id)
		}
	}
	m.toasts = nil
}
