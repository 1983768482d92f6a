// Package msgs defines shared message types exchanged between TUI views.
package msgs

// SubmitPromptMsg is sent when the user submits the feature prompt.
type SubmitPromptMsg struct {
	Text string
}

// ToggleTaskMsg is sent exactly once per toggle gesture on a task.
type ToggleTaskMsg struct {
	ID int
}

// SnippetCopiedMsg reports the outcome of a copy-to-clipboard gesture.
type SnippetCopiedMsg struct {
	ID  int
	Err error
}
