package ui

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// fakeSearcher answers from a fixed table and records every query.
type fakeSearcher struct {
	mu        sync.Mutex
	queries   []string
	deadlines []bool
	results   map[string][]string
	err       error
}

func (f *fakeSearcher) Search(ctx context.Context, query string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	_, hasDeadline := ctx.Deadline()
	f.deadlines = append(f.deadlines, hasDeadline)
	if f.err != nil {
		return nil, f.err
	}
	return f.results[query], nil
}

func (f *fakeSearcher) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

// manualClock captures scheduled messages so tests decide when, and
// whether, each one fires.
type manualClock struct {
	durations []time.Duration
	pending   []tea.Msg
}

func (c *manualClock) schedule(d time.Duration, msg tea.Msg) tea.Cmd {
	c.durations = append(c.durations, d)
	c.pending = append(c.pending, msg)
	return nil
}

func (c *manualClock) last() tea.Msg {
	if len(c.pending) == 0 {
		return nil
	}
	return c.pending[len(c.pending)-1]
}

// immediateScheduler delivers every scheduled message without waiting.
func immediateScheduler(_ time.Duration, msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// runCmd executes cmd, flattening batches. Spinner ticks are dropped since
// resending them would sleep.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	var out []tea.Msg
	switch msg := cmd().(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			out = append(out, runCmd(c)...)
		}
	case spinner.TickMsg:
	default:
		out = append(out, msg)
	}
	return out
}

// spinnerTicks executes cmd and counts the spinner ticks it starts. Other
// messages are discarded.
func spinnerTicks(cmd tea.Cmd) int {
	if cmd == nil {
		return 0
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		n := 0
		for _, c := range msg {
			n += spinnerTicks(c)
		}
		return n
	case spinner.TickMsg:
		return 1
	}
	return 0
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestAutocomplete(s *fakeSearcher, clock *manualClock) Autocomplete {
	a := NewAutocomplete(s).
		WithPlaceholder(cityHint).
		WithScheduler(clock.schedule).
		WithCursorBlink(false)
	a.Focus()
	return a
}

func typeInto(a Autocomplete, text string) Autocomplete {
	for _, r := range text {
		a, _ = a.Update(keyRunes(string(r)))
	}
	return a
}

// settle fires the latest debounce tick and feeds the search outcome back.
func settle(a Autocomplete, clock *manualClock) Autocomplete {
	var cmd tea.Cmd
	a, cmd = a.Update(clock.last())
	for _, msg := range runCmd(cmd) {
		a, _ = a.Update(msg)
	}
	return a
}

// drive runs cmd against the app until no messages remain.
func drive(m *App, cmd tea.Cmd) {
	queue := runCmd(cmd)
	for i := 0; len(queue) > 0 && i < 100; i++ {
		msg := queue[0]
		queue = queue[1:]
		if _, ok := msg.(tea.QuitMsg); ok {
			continue
		}
		_, next := m.Update(msg)
		queue = append(queue, runCmd(next)...)
	}
}

func press(m *App, msg tea.KeyMsg) {
	_, cmd := m.Update(msg)
	drive(m, cmd)
}

func typeApp(m *App, text string) {
	for _, r := range text {
		press(m, keyRunes(string(r)))
	}
}
