package cmd

import (
	"os"

	"ringring/dispatch"
	"ringring/event"
	"ringring/logging"
)

// HookCmd handles one hook event delivered as JSON on stdin.
// It always exits successfully: a hook integration must never block or fail
// Claude Code's own event flow.
type HookCmd struct{}

// Run executes the hook dispatch
func (h *HookCmd) Run() error {
	defer func() {
		if r := recover(); r != nil {
			logging.Logger.Error("Hook dispatch panicked", "panic", r)
		}
	}()

	input := event.ParseInput(os.Stdin)
	logging.Logger.Info("=== HOOK TRIGGERED ===",
		"event", input.HookEventName,
		"session_id", input.SessionID,
		"source", input.Source,
		"notification_type", input.NotificationType,
		"pid", os.Getpid(),
		"ppid", os.Getppid())

	if err := dispatch.NewDispatcher().Handle(input); err != nil {
		logging.Logger.Error("Hook dispatch failed", "error", err)
	}
	return nil
}
