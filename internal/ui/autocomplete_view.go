package ui

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const suggestionPrefix = "▸ "

// InputView renders the bordered text input.
func (a Autocomplete) InputView(invalid bool) string {
	style := styleInput()
	switch {
	case invalid:
		style = styleInputInvalid()
	case a.focused:
		style = styleInputFocused()
	}
	return style.Width(a.Width - 2).Render(a.input.View())
}

// DropdownView renders the suggestion list, or "" when it is closed.
// Each row is one line so row i sits at offset i+1 inside the border.
func (a Autocomplete) DropdownView() string {
	if len(a.suggestions) == 0 {
		return ""
	}
	inner := a.Width - 2
	if inner < len(suggestionPrefix)+1 {
		inner = len(suggestionPrefix) + 1
	}
	textWidth := inner - lipgloss.Width(suggestionPrefix)

	var pattern *regexp.Regexp
	if q := a.Query(); q != "" {
		pattern = queryPattern(q)
	}

	rows := make([]string, 0, len(a.suggestions))
	for i, name := range a.suggestions {
		row := styleSuggestion()
		prefix := "  "
		if i == a.selected {
			row = styleSuggestionSelected()
			prefix = suggestionPrefix
		}
		text := truncateCell(name, textWidth)
		line := row.Render(prefix) + renderSegments(highlightWith(pattern, text), row, styleMatch(row))
		if pad := inner - lipgloss.Width(line); pad > 0 {
			line += row.Render(strings.Repeat(" ", pad))
		}
		rows = append(rows, line)
	}
	return styleDropdown().Render(strings.Join(rows, "\n"))
}

// LoadingView renders the pending-search indicator, or "" when idle.
func (a Autocomplete) LoadingView() string {
	if a.inFlight == 0 {
		return ""
	}
	return styleLoading().Render(a.spinner.View() + " Searching...")
}

// View implements tea.Model. The form composes the parts itself so the
// dropdown can float over the content below the input.
func (a Autocomplete) View() string {
	parts := []string{a.InputView(false)}
	if loading := a.LoadingView(); loading != "" {
		parts = append(parts, loading)
	}
	if dropdown := a.DropdownView(); dropdown != "" {
		parts = append(parts, dropdown)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
