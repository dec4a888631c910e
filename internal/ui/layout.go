package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cityform/internal/form"
)

type region int

const (
	regionNone region = iota
	regionName
	regionEmail
	regionCity
	regionDropdown
	regionSubmit
)

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return r.w > 0 && r.h > 0 &&
		x >= r.x && x < r.x+r.w &&
		y >= r.y && y < r.y+r.h
}

func (r rect) bottom() int { return r.y + r.h }

// frame is one laid-out screen. View paints it and hit testing reads its
// regions, so what the user clicks is exactly what was drawn.
type frame struct {
	body     string
	dropdown string
	width    int
	height   int
	regions  map[region]rect
}

type frameBuilder struct {
	blocks []string
	y      int
	width  int
}

func (b *frameBuilder) add(block string) rect {
	r := rect{x: 0, y: b.y, w: lipgloss.Width(block), h: lipgloss.Height(block)}
	b.blocks = append(b.blocks, block)
	b.y += r.h
	if r.w > b.width {
		b.width = r.w
	}
	return r
}

func (b *frameBuilder) addIf(block string) {
	if block != "" {
		b.add(block)
	}
}

// layout renders every section top to bottom and records where each
// interactive element landed.
func (m *App) layout() frame {
	b := &frameBuilder{}
	regions := make(map[region]rect, 5)
	errWidth := m.fieldWidth()

	fieldError := func(field string) string {
		msg, ok := m.errors[field]
		if !ok {
			return ""
		}
		return styleFieldError().Render(wrapText(msg, errWidth))
	}

	b.add(m.renderHeader())
	b.add("")

	b.add(styleLabel().Render("Name"))
	regions[regionName] = b.add(m.textInputView(m.name, m.focus == focusName, m.errors.Has(form.FieldName)))
	b.addIf(fieldError(form.FieldName))

	b.add(styleLabel().Render("Email"))
	regions[regionEmail] = b.add(m.textInputView(m.email, m.focus == focusEmail, m.errors.Has(form.FieldEmail)))
	b.addIf(fieldError(form.FieldEmail))

	b.add(styleLabel().Render("City"))
	cityRect := b.add(m.city.InputView(m.errors.Has(form.FieldCity)))
	regions[regionCity] = cityRect
	b.addIf(m.city.LoadingView())
	b.addIf(fieldError(form.FieldCity))

	b.add("")
	regions[regionSubmit] = b.add(m.renderSubmitButton())

	if m.ackVisible {
		b.add("")
		b.add(m.renderAck())
	}

	b.add("")
	b.add(m.help.View(m.keys))
	b.add(styleFooter().Render(footerText))

	f := frame{
		body:    strings.Join(b.blocks, "\n"),
		width:   b.width,
		height:  b.y,
		regions: regions,
	}

	if dd := m.city.DropdownView(); dd != "" {
		at := rect{x: cityRect.x, y: cityRect.bottom(), w: lipgloss.Width(dd), h: lipgloss.Height(dd)}
		f.dropdown = dd
		f.regions[regionDropdown] = at
		if at.x+at.w > f.width {
			f.width = at.x + at.w
		}
		if at.bottom() > f.height {
			f.height = at.bottom()
		}
	}

	if m.width > f.width {
		f.width = m.width
	}
	if m.height > f.height {
		f.height = m.height
	}
	return f
}

// hitTest returns the topmost region under x,y. For the dropdown it also
// returns the suggestion row, -1 on the border.
func (f frame) hitTest(x, y int) (region, int) {
	if r, ok := f.regions[regionDropdown]; ok && r.contains(x, y) {
		row := y - r.y - 1
		if row < 0 || row >= r.h-2 {
			row = -1
		}
		return regionDropdown, row
	}
	for _, reg := range []region{regionName, regionEmail, regionCity, regionSubmit} {
		if r, ok := f.regions[reg]; ok && r.contains(x, y) {
			return reg, -1
		}
	}
	return regionNone, -1
}
