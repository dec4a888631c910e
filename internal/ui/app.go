package ui

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	apperrors "cityform/internal/errors"
	"cityform/internal/form"
	"cityform/internal/geocode"
)

const (
	defaultWidth  = 60
	minFieldWidth = 24
	toastDuration = 3 * time.Second
	cityHint      = "Type a city name..."
)

type focusField int

const (
	focusName focusField = iota
	focusEmail
	focusCity
	focusSubmit
	focusCount
)

// Config configures the form application.
type Config struct {
	Searcher     geocode.Searcher
	Submit       form.SubmitFunc
	Debounce     time.Duration
	OutputFormat string
	CursorBlink  bool
	Version      string // Version string to display in header

	// Scheduler and Clipboard default to tea.Tick and the system clipboard.
	Scheduler Scheduler
	Clipboard func(string) error
	Logger    *zap.Logger
}

// App implements the Bubble Tea model for the city form.
type App struct {
	keys KeyMap
	help help.Model

	name  textinput.Model
	email textinput.Model
	city  Autocomplete
	focus focusField

	record     form.Record
	errors     form.FieldErrors
	submitted  *form.Record
	ackVisible bool
	onSubmit   form.SubmitFunc

	outputFormat   string
	renderMarkdown func(string) string
	schedule       Scheduler
	copyFn         func(string) error
	log            *zap.Logger
	version        string

	toast    string
	toastSeq int

	width  int
	height int
}

// NewApp builds the form. A searcher is required; everything else has a
// default.
func NewApp(cfg Config) (*App, error) {
	if cfg.Searcher == nil {
		return nil, apperrors.New(apperrors.CodeConfigurationError, "city searcher is required", nil)
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	schedule := cfg.Scheduler
	if schedule == nil {
		schedule = tickScheduler
	}
	copyFn := cfg.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	submit := cfg.Submit
	if submit == nil {
		submit = form.LogSubmitter(log)
	}

	m := &App{
		keys:         DefaultKeyMap(),
		help:         help.New(),
		name:         newTextField("Jane Doe", cfg.CursorBlink),
		email:        newTextField("jane@example.com", cfg.CursorBlink),
		onSubmit:     submit,
		outputFormat: cfg.OutputFormat,
		schedule:     schedule,
		copyFn:       copyFn,
		log:          log,
		version:      cfg.Version,
		width:        defaultWidth,
	}
	m.city = NewAutocomplete(cfg.Searcher).
		WithPlaceholder(cityHint).
		WithDebounce(cfg.Debounce).
		WithScheduler(schedule).
		WithLogger(log).
		WithCursorBlink(cfg.CursorBlink)
	m.resize(defaultWidth, 0)
	m.name.Focus()
	return m, nil
}

func newTextField(placeholder string, blink bool) textinput.Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = placeholder
	ti.CharLimit = 120
	if blink {
		ti.Cursor.SetMode(cursor.CursorBlink)
	} else {
		ti.Cursor.SetMode(cursor.CursorStatic)
	}
	return ti
}

func (m *App) Init() tea.Cmd {
	if m.name.Cursor.Mode() == cursor.CursorBlink {
		return textinput.Blink
	}
	return nil
}

func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || tea.MouseEvent(msg).IsWheel() {
			return m, nil
		}
		return m, m.handlePress(msg.X, msg.Y)

	case SuggestionSelectedMsg:
		m.record.City = msg.Value
		m.city.SetValue(msg.Value)
		return m, nil

	case FormSubmittedMsg:
		m.log.Debug("submission acknowledged", zap.String("city", msg.Record.City))
		return m, nil

	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil

	case debounceElapsedMsg, suggestionsMsg, spinner.TickMsg:
		var cmd tea.Cmd
		m.city, cmd = m.city.Update(msg)
		return m, cmd
	}

	return m, m.updateFocused(msg)
}

func (m *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// An open suggestion list owns the navigation keys.
	if m.focus == focusCity && m.city.HasSuggestions() && m.isListKey(msg) {
		var cmd tea.Cmd
		m.city, cmd = m.city.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		return m, m.submit()
	case key.Matches(msg, m.keys.Copy):
		return m, m.copyRecord()
	case key.Matches(msg, m.keys.Next), key.Matches(msg, m.keys.Down):
		return m, m.setFocus((m.focus + 1) % focusCount)
	case key.Matches(msg, m.keys.Prev), key.Matches(msg, m.keys.Up):
		return m, m.setFocus((m.focus + focusCount - 1) % focusCount)
	case key.Matches(msg, m.keys.Enter):
		if m.focus == focusSubmit {
			return m, m.submit()
		}
		return m, m.setFocus(m.focus + 1)
	}

	return m, m.updateFocused(msg)
}

func (m *App) isListKey(msg tea.KeyMsg) bool {
	return key.Matches(msg, m.keys.Up) ||
		key.Matches(msg, m.keys.Down) ||
		key.Matches(msg, m.keys.Enter) ||
		key.Matches(msg, m.keys.Escape)
}

// updateFocused hands msg to the focused input and binds name and email
// straight into the record.
func (m *App) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case focusName:
		m.name, cmd = m.name.Update(msg)
		m.record.Name = m.name.Value()
	case focusEmail:
		m.email, cmd = m.email.Update(msg)
		m.record.Email = m.email.Value()
	case focusCity:
		m.city, cmd = m.city.Update(msg)
	}
	return cmd
}

func (m *App) setFocus(f focusField) tea.Cmd {
	if f == m.focus {
		return nil
	}
	switch m.focus {
	case focusName:
		m.name.Blur()
	case focusEmail:
		m.email.Blur()
	case focusCity:
		m.city.Blur()
	}
	m.focus = f
	switch f {
	case focusName:
		return m.name.Focus()
	case focusEmail:
		return m.email.Focus()
	case focusCity:
		return m.city.Focus()
	}
	return nil
}

// handlePress routes a pointer press. Any press outside the city input and
// its list closes the list.
func (m *App) handlePress(x, y int) tea.Cmd {
	reg, row := m.layout().hitTest(x, y)
	if reg != regionCity && reg != regionDropdown {
		m.city.Dismiss()
	}

	switch reg {
	case regionDropdown:
		if row < 0 {
			return nil
		}
		var cmd tea.Cmd
		m.city, cmd = m.city.SelectAt(row)
		return cmd
	case regionName:
		return m.setFocus(focusName)
	case regionEmail:
		return m.setFocus(focusEmail)
	case regionCity:
		return m.setFocus(focusCity)
	case regionSubmit:
		return tea.Batch(m.setFocus(focusSubmit), m.submit())
	}
	return nil
}

// submit validates the record. Errors replace the previous set and stop the
// submission; a valid record goes to the submitter exactly once.
func (m *App) submit() tea.Cmd {
	m.errors = form.Validate(m.record)
	if len(m.errors) > 0 {
		m.ackVisible = false
		m.log.Debug("submission rejected", zap.Int("errors", len(m.errors)))
		return nil
	}

	rec := m.record
	m.submitted = &rec
	m.ackVisible = true
	m.onSubmit(rec)
	return func() tea.Msg {
		return FormSubmittedMsg{Record: rec}
	}
}

func (m *App) copyRecord() tea.Cmd {
	if m.submitted == nil {
		return m.showToast("Nothing submitted yet.")
	}
	data, err := json.Marshal(m.submitted)
	if err != nil {
		return m.showToast(fmt.Sprintf("Copy failed: %v", err))
	}
	if err := m.copyFn(string(data)); err != nil {
		m.log.Warn("clipboard write failed", zap.Error(err))
		return m.showToast(fmt.Sprintf("Copy failed: %v", err))
	}
	return m.showToast("Copied record to clipboard.")
}

func (m *App) showToast(text string) tea.Cmd {
	m.toastSeq++
	m.toast = text
	return m.schedule(toastDuration, toastExpiredMsg{seq: m.toastSeq})
}

func (m *App) resize(width, height int) {
	if width <= 0 {
		width = defaultWidth
	}
	m.width = width
	m.height = height
	m.help.Width = width

	fw := m.fieldWidth()
	m.name.Width = fw - inputChrome
	m.email.Width = fw - inputChrome
	m.city = m.city.WithWidth(fw)
	m.renderMarkdown = buildMarkdownRenderer(m.outputFormat, fw)
}

func (m *App) fieldWidth() int {
	w := m.width - 2
	if w > defaultWidth {
		w = defaultWidth
	}
	if w < minFieldWidth {
		w = minFieldWidth
	}
	return w
}

// LastSubmitted returns the most recent valid record.
func (m *App) LastSubmitted() (form.Record, bool) {
	if m.submitted == nil {
		return form.Record{}, false
	}
	return *m.submitted, true
}

// Record returns the record as currently bound to the inputs.
func (m *App) Record() form.Record {
	return m.record
}

// FieldErrors returns the errors from the latest submission attempt.
func (m *App) FieldErrors() form.FieldErrors {
	return m.errors
}

// City exposes the autocomplete field.
func (m *App) City() Autocomplete {
	return m.city
}
