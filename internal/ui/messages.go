package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"cityform/internal/form"
)

// SuggestionSelectedMsg is sent once per commit, by Enter on a highlighted
// suggestion or a click on one. The owner stores Value and feeds it back
// through Autocomplete.SetValue.
type SuggestionSelectedMsg struct {
	Value string
}

// FormSubmittedMsg is sent after a valid record was handed to the submitter.
type FormSubmittedMsg struct {
	Record form.Record
}

// debounceElapsedMsg fires when a debounce period ends. Only the tick whose
// token matches the latest token starts a search.
type debounceElapsedMsg struct {
	token int
	query string
}

// suggestionsMsg carries the outcome of one search request.
type suggestionsMsg struct {
	query string
	names []string
	err   error
}

type toastExpiredMsg struct {
	seq int
}

// Scheduler delivers msg after d. Scheduling never cancels anything itself;
// callers tag their messages and ignore the ones that went stale.
type Scheduler func(d time.Duration, msg tea.Msg) tea.Cmd

func tickScheduler(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}
