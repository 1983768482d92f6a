package tui

import "github.com/rs/zerolog"

// Options configures TUI startup behavior.
type Options struct {
	// Generator produces plans from prompts. Required.
	Generator PlanGenerator

	// Logger receives request lifecycle events. File-backed; stdout is owned
	// by Bubble Tea.
	Logger zerolog.Logger
}
