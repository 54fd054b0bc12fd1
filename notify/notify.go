// Package notify delivers desktop notifications.
package notify

import "github.com/gen2brain/beeep"

// Notifier sends a desktop notification. Best-effort: callers discard errors
// on the hook path.
type Notifier interface {
	Send(title, body string) error
}

// Desktop sends notifications through the platform's notification service.
type Desktop struct {
	Icon string
}

// NewDesktop returns a Desktop notifier announcing itself as Claude Code.
func NewDesktop(icon string) Desktop {
	beeep.AppName = "Claude Code"
	return Desktop{Icon: icon}
}

// Send shows a notification with the given title and body.
func (d Desktop) Send(title, body string) error {
	return beeep.Notify(title, body, d.Icon)
}
