package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

const footerText = "© 2025 cityform"

func (m *App) View() string {
	f := m.layout()
	canvas := NewCanvas(f.width, f.height)
	canvas.DrawStringAt(0, 0, f.body)
	if f.dropdown != "" {
		canvas.overlayAt(f.dropdown, f.regions[regionDropdown])
	}
	if m.toast != "" {
		canvas.bottomRightOverlay(styleToast().Render(m.toast), 1)
	}
	return canvas.Render()
}

func (m *App) renderHeader() string {
	title := styleHeader().Render("City form")
	if m.version == "" {
		return title
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, " ", styleFooter().Render(m.version))
}

func (m *App) textInputView(ti textinput.Model, focused, invalid bool) string {
	style := styleInput()
	switch {
	case invalid:
		style = styleInputInvalid()
	case focused:
		style = styleInputFocused()
	}
	return style.Width(m.fieldWidth() - 2).Render(ti.View())
}

func (m *App) renderSubmitButton() string {
	if m.focus == focusSubmit {
		return styleButtonFocused().Render("Submit")
	}
	return styleButton().Render("Submit")
}

func (m *App) renderAck() string {
	if m.submitted == nil {
		return ""
	}
	rec := m.submitted
	md := fmt.Sprintf("**Form submitted!**\n\n- Name: %s\n- Email: %s\n- City: %s\n",
		rec.Name, rec.Email, rec.City)
	return m.renderMarkdown(md)
}
