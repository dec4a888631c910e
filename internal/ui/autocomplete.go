package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"cityform/internal/geocode"
)

// AutocompleteState is the position of the field in the suggestion flow.
type AutocompleteState int

const (
	// AutocompleteIdle - nothing pending, list closed.
	AutocompleteIdle AutocompleteState = iota
	// AutocompleteEditing - query changed, debounce running.
	AutocompleteEditing
	// AutocompleteSearching - debounce fired, a request is in flight.
	AutocompleteSearching
	// AutocompleteShowing - suggestions are visible.
	AutocompleteShowing
	// AutocompleteDismissed - list closed by Esc or an outside press, query kept.
	AutocompleteDismissed
)

func (s AutocompleteState) String() string {
	switch s {
	case AutocompleteIdle:
		return "idle"
	case AutocompleteEditing:
		return "editing"
	case AutocompleteSearching:
		return "searching"
	case AutocompleteShowing:
		return "showing-suggestions"
	case AutocompleteDismissed:
		return "dismissed"
	default:
		return "unknown"
	}
}

const (
	// DefaultDebounce is the quiet period before a search is issued.
	DefaultDebounce = 300 * time.Millisecond
	// MaxSuggestions caps the visible list.
	MaxSuggestions = 5

	// border, padding, prompt and the trailing cursor cell
	inputChrome = 7
)

var errNoSearcher = errors.New("no searcher configured")

// Autocomplete is a city input that looks up suggestions as the user types.
//
// The owner holds the committed value and passes it in with SetValue. The
// field only owns the in-progress query, the suggestion list and the
// selection index. A commit is reported with SuggestionSelectedMsg.
type Autocomplete struct {
	Placeholder string
	Width       int
	Debounce    time.Duration

	searcher geocode.Searcher
	schedule Scheduler
	log      *zap.Logger
	keys     KeyMap

	input       textinput.Model
	spinner     spinner.Model
	state       AutocompleteState
	value       string // controlled value from the owner
	editing     bool   // true while the input shows a query rather than value
	suggestions []string
	selected    int // -1 means nothing highlighted
	token       int // latest debounce generation
	inFlight    int
	spinning    bool // a spinner tick chain is alive
	focused     bool
}

// NewAutocomplete creates a field that queries searcher.
func NewAutocomplete(searcher geocode.Searcher) Autocomplete {
	ti := textinput.New()
	ti.CharLimit = 120
	ti.Prompt = "> "

	a := Autocomplete{
		Placeholder: "",
		Width:       40,
		Debounce:    DefaultDebounce,
		searcher:    searcher,
		schedule:    tickScheduler,
		log:         zap.NewNop(),
		keys:        DefaultKeyMap(),
		input:       ti,
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
		state:       AutocompleteIdle,
		selected:    -1,
	}
	a.input.Width = a.Width - inputChrome
	return a
}

// WithPlaceholder sets the placeholder text.
func (a Autocomplete) WithPlaceholder(s string) Autocomplete {
	a.Placeholder = s
	a.input.Placeholder = s
	return a
}

// WithWidth sets the display width including the border.
func (a Autocomplete) WithWidth(w int) Autocomplete {
	a.Width = w
	a.input.Width = w - inputChrome
	return a
}

// WithDebounce sets the quiet period before a search.
func (a Autocomplete) WithDebounce(d time.Duration) Autocomplete {
	if d > 0 {
		a.Debounce = d
	}
	return a
}

// WithScheduler replaces the timer used for debouncing.
func (a Autocomplete) WithScheduler(s Scheduler) Autocomplete {
	if s != nil {
		a.schedule = s
	}
	return a
}

// WithLogger sets the sink for search failures.
func (a Autocomplete) WithLogger(l *zap.Logger) Autocomplete {
	if l != nil {
		a.log = l
	}
	return a
}

// WithCursorBlink toggles the blinking cursor.
func (a Autocomplete) WithCursorBlink(blink bool) Autocomplete {
	if blink {
		a.input.Cursor.SetMode(cursor.CursorBlink)
	} else {
		a.input.Cursor.SetMode(cursor.CursorStatic)
	}
	return a
}

// Init implements tea.Model.
func (a Autocomplete) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a Autocomplete) Update(msg tea.Msg) (Autocomplete, tea.Cmd) {
	switch msg := msg.(type) {
	case debounceElapsedMsg:
		return a.handleDebounce(msg)
	case suggestionsMsg:
		return a.handleSuggestions(msg), nil
	case spinner.TickMsg:
		if a.inFlight == 0 {
			a.spinning = false
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	case tea.KeyMsg:
		if !a.focused {
			return a, nil
		}
		return a.handleKey(msg)
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// handleKey consumes the navigation keys while suggestions are listed and
// passes everything else to the text input.
func (a Autocomplete) handleKey(msg tea.KeyMsg) (Autocomplete, tea.Cmd) {
	if len(a.suggestions) > 0 {
		switch {
		case key.Matches(msg, a.keys.Down):
			if a.selected < len(a.suggestions)-1 {
				a.selected++
			}
			return a, nil
		case key.Matches(msg, a.keys.Up):
			if a.selected > 0 {
				a.selected--
			}
			return a, nil
		case key.Matches(msg, a.keys.Enter):
			if a.selected >= 0 {
				return a.commit(a.suggestions[a.selected])
			}
			return a, nil
		case key.Matches(msg, a.keys.Escape):
			a.Dismiss()
			return a, nil
		}
	}

	before := a.input.Value()
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	if after := a.input.Value(); after != before {
		debounce := a.queryChanged(after)
		return a, tea.Batch(cmd, debounce)
	}
	return a, cmd
}

// queryChanged applies one edit: selection resets, and either the list is
// cleared (empty query) or a fresh debounce replaces any unfired one.
func (a *Autocomplete) queryChanged(query string) tea.Cmd {
	a.editing = true
	a.selected = -1
	a.token++
	if query == "" {
		a.suggestions = nil
		a.state = AutocompleteIdle
		return nil
	}
	a.state = AutocompleteEditing
	return a.schedule(a.Debounce, debounceElapsedMsg{token: a.token, query: query})
}

func (a Autocomplete) handleDebounce(msg debounceElapsedMsg) (Autocomplete, tea.Cmd) {
	if msg.token != a.token {
		return a, nil
	}
	a.state = AutocompleteSearching
	a.inFlight++
	cmds := []tea.Cmd{a.searchCmd(msg.query)}
	if !a.spinning {
		a.spinning = true
		cmds = append(cmds, a.spinner.Tick)
	}
	return a, tea.Batch(cmds...)
}

// searchCmd carries no deadline: a throttled searcher may hold the call
// until its slot comes up, and bounds the round trip itself.
func (a Autocomplete) searchCmd(query string) tea.Cmd {
	searcher := a.searcher
	return func() tea.Msg {
		if searcher == nil {
			return suggestionsMsg{query: query, err: errNoSearcher}
		}
		names, err := searcher.Search(context.Background(), query)
		return suggestionsMsg{query: query, names: names, err: err}
	}
}

// handleSuggestions replaces the list with a search outcome. Responses are
// not matched to the query that produced them: the last one to arrive wins.
func (a Autocomplete) handleSuggestions(msg suggestionsMsg) Autocomplete {
	if a.inFlight > 0 {
		a.inFlight--
	}
	a.selected = -1

	switch {
	case msg.err != nil:
		a.log.Warn("city search failed", zap.String("query", msg.query), zap.Error(msg.err))
		a.suggestions = nil
	case a.Query() == "" || !a.focused:
		a.suggestions = nil
	default:
		names := msg.names
		if len(names) > MaxSuggestions {
			names = names[:MaxSuggestions]
		}
		a.suggestions = append([]string(nil), names...)
	}

	switch {
	case len(a.suggestions) > 0:
		a.state = AutocompleteShowing
	case a.inFlight > 0:
		a.state = AutocompleteSearching
	default:
		a.state = AutocompleteIdle
	}
	return a
}

// commit ends the interaction with value and reports it upward.
func (a Autocomplete) commit(value string) (Autocomplete, tea.Cmd) {
	a.suggestions = nil
	a.selected = -1
	a.editing = false
	a.token++
	a.state = AutocompleteIdle
	a.input.SetValue(value)
	a.input.CursorEnd()
	return a, func() tea.Msg {
		return SuggestionSelectedMsg{Value: value}
	}
}

// SelectAt commits the suggestion at index i, as a click on that row does.
func (a Autocomplete) SelectAt(i int) (Autocomplete, tea.Cmd) {
	if i < 0 || i >= len(a.suggestions) {
		return a, nil
	}
	return a.commit(a.suggestions[i])
}

// Dismiss closes the list without touching the query or the value.
func (a *Autocomplete) Dismiss() {
	hadList := len(a.suggestions) > 0
	a.suggestions = nil
	a.selected = -1
	if hadList {
		a.state = AutocompleteDismissed
	}
}

// SetValue feeds the owner's committed value in. It is displayed unless a
// query edit is in progress.
func (a *Autocomplete) SetValue(v string) {
	a.value = v
	if !a.editing {
		a.input.SetValue(v)
		a.input.CursorEnd()
	}
}

// Value returns the owner's committed value.
func (a Autocomplete) Value() string {
	return a.value
}

// Query returns the in-progress query, or "" when no edit is in progress.
func (a Autocomplete) Query() string {
	if !a.editing {
		return ""
	}
	return a.input.Value()
}

// InputValue returns the text currently shown in the input.
func (a Autocomplete) InputValue() string {
	return a.input.Value()
}

// Focus focuses the field and returns the cursor command.
func (a *Autocomplete) Focus() tea.Cmd {
	a.focused = true
	return a.input.Focus()
}

// Blur removes focus. Leaving the field cancels the pending debounce and
// closes the list, like a press outside it.
func (a *Autocomplete) Blur() {
	a.focused = false
	a.input.Blur()
	a.token++
	if a.state == AutocompleteEditing {
		a.state = AutocompleteIdle
	}
	a.Dismiss()
}

// Focused returns whether the field is focused.
func (a Autocomplete) Focused() bool {
	return a.focused
}

// HasSuggestions returns whether the list is open.
func (a Autocomplete) HasSuggestions() bool {
	return len(a.suggestions) > 0
}

// Suggestions returns a copy of the current list.
func (a Autocomplete) Suggestions() []string {
	return append([]string(nil), a.suggestions...)
}

// SelectedIndex returns the highlighted row, -1 when none.
func (a Autocomplete) SelectedIndex() int {
	return a.selected
}

// Loading reports whether a search is in flight.
func (a Autocomplete) Loading() bool {
	return a.inFlight > 0
}

// State returns the current state.
func (a Autocomplete) State() AutocompleteState {
	return a.state
}
