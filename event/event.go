// Package event parses hook input and maps events to notification actions.
package event

import (
	"encoding/json"
	"io"
)

// HookInput is the JSON object Claude Code delivers on stdin, one per
// hook invocation.
type HookInput struct {
	HookEventName    string `json:"hook_event_name"`
	SessionID        string `json:"session_id"`
	Source           string `json:"source"`
	NotificationType string `json:"notification_type"`
}

// ParseInput reads one hook event from r. Parsing never fails: malformed or
// empty input yields the defaults, with the event name falling back to
// "unknown" so unmapped events still dispatch.
func ParseInput(r io.Reader) HookInput {
	var input HookInput
	if data, err := io.ReadAll(r); err == nil {
		json.Unmarshal(data, &input)
	}
	if input.HookEventName == "" {
		input.HookEventName = "unknown"
	}
	return input
}

// Action is the result of mapping a hook event: which sound category to draw
// from, the fallback notification text used when the theme manifest has no
// override, and whether to suppress the desktop notification.
type Action struct {
	Category   string
	Title      string
	Body       string
	SkipNotify bool

	// SessionStartSource carries the raw SessionStart source
	// ("startup", "resume", ...) for the startup coordinator.
	// Empty for all other events.
	SessionStartSource string
}

// entry is one row of the static mapping tables.
type entry struct {
	category string
	title    string
	body     string
}

var eventTable = map[string]entry{
	"PermissionRequest": {"permission", "Potřebuju povolení", "Something need doing?"},
	"Stop":              {"complete", "Hotovo", "Okie dokie."},
}

var notificationTable = map[string]entry{
	"permission_prompt":  {"permission", "Chtěl bych trochu pozornosti", "Hmm?"},
	"idle_prompt":        {"annoyed", "Čekám na tebe", "Nudím se, pojď makat."},
	"auth_success":       {"acknowledge", "Přihlášení úspěšné", "Be happy to."},
	"elicitation_dialog": {"permission", "Mám otázku", "What you want?"},
}

var notificationDefault = entry{"greeting", "Chtěl bych trochu pozornosti", "Yes?"}

var unknownEvent = entry{"resource_limit", "Neznámá událost", "Why not?"}

// Map translates a hook event into an Action. Total and pure: every input
// yields a result, unknown events included.
func Map(input HookInput) Action {
	switch input.HookEventName {
	case "SessionStart":
		source := input.Source
		if source == "" {
			source = "unknown"
		}
		action := Action{SkipNotify: true, SessionStartSource: source}
		if source == "startup" || source == "resume" {
			action.Category = "greeting"
		}
		return action
	case "PermissionRequest":
		// Claude's own permission dialog is already on screen; play the
		// sound but keep the desktop quiet.
		return actionFrom(eventTable["PermissionRequest"], true)
	case "Notification":
		e, ok := notificationTable[input.NotificationType]
		if !ok {
			e = notificationDefault
		}
		return actionFrom(e, false)
	default:
		e, ok := eventTable[input.HookEventName]
		if !ok {
			e = unknownEvent
		}
		return actionFrom(e, false)
	}
}

func actionFrom(e entry, skipNotify bool) Action {
	return Action{
		Category:   e.category,
		Title:      e.title,
		Body:       e.body,
		SkipNotify: skipNotify,
	}
}
