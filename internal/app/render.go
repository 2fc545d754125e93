package app

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keyroute/internal/input/chord"
	"github.com/dshills/keyroute/internal/input/shortcut"
)

const sidebarWidth = 24

var (
	styleDefault  = tcell.StyleDefault
	styleDim      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleSelected = tcell.StyleDefault.Reverse(true)
	styleTitle    = tcell.StyleDefault.Bold(true)
	styleStatus   = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
)

func (app *Application) render() {
	if app.surface == nil {
		return
	}
	app.surface.Clear()
	defer app.surface.Show()

	if app.width <= 0 || app.height < 4 {
		return
	}

	app.drawTabs()

	x := 0
	if app.state.Sidebar {
		app.drawSessions()
		x = sidebarWidth + 1
	}
	app.drawTranscript(x)
	app.drawComposer(x)
	app.drawStatus()

	if app.state.Overlay != OverlayNone {
		app.drawOverlay()
	}
}

func (app *Application) drawTabs() {
	x := 0
	for i, name := range app.state.Tabs {
		style := styleDim
		if i == app.state.Tab {
			style = styleSelected
		}
		x = app.surface.DrawText(x, 0, " "+name+" ", style)
		x++
	}
}

func (app *Application) drawSessions() {
	for i, name := range app.state.Sessions {
		y := i + 2
		if y >= app.height-2 {
			break
		}
		style := styleDefault
		if i == app.state.Selected && app.focus == sessionList {
			style = styleSelected
		}
		marker := "  "
		if i == app.state.Active {
			marker = "* "
		}
		app.surface.DrawText(0, y, marker+name, style)
	}
}

func (app *Application) drawTranscript(x int) {
	rows := app.height - 5
	lines := app.state.Transcript
	end := len(lines) - app.state.Scroll
	if end < 0 {
		end = 0
	}
	start := end - rows
	if start < 0 {
		start = 0
	}
	for i, line := range lines[start:end] {
		app.surface.DrawText(x, i+2, line, styleDefault)
	}
}

func (app *Application) drawComposer(x int) {
	style := styleDim
	if app.focus == composer {
		style = styleDefault
	}
	app.surface.DrawText(x, app.height-2, "> "+string(app.state.Composer), style)
}

func (app *Application) drawStatus() {
	help := app.label(shortcut.IDGlobalHelp)
	line := fmt.Sprintf(" %s | %s | %s for help", app.state.Status, app.platform, help)
	if app.last.Handled {
		line += " | last: " + app.last.ID
	}
	pad := app.width - len([]rune(line))
	if pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	app.surface.DrawText(0, app.height-1, line, styleStatus)
}

func (app *Application) drawOverlay() {
	lines := app.overlayLines()
	y := 2
	app.surface.DrawText(2, y, "[ "+app.state.Overlay+" ]", styleTitle)
	for _, line := range lines {
		y++
		if y >= app.height-2 {
			break
		}
		app.surface.DrawText(2, y, line, styleDefault)
	}
}

// overlayLines lists the overlay body.
func (app *Application) overlayLines() []string {
	switch app.state.Overlay {
	case OverlayHelp:
		defs := app.catalog.All()
		lines := make([]string, 0, len(defs))
		for _, d := range defs {
			lines = append(lines, fmt.Sprintf("%-18s %s", shortcut.FormatLabel(d, app.platform), d.Description))
		}
		return lines
	case OverlayPalette:
		var lines []string
		for _, d := range app.catalog.InScope(shortcut.ScopeWorkspace) {
			lines = append(lines, d.Description+"  "+shortcut.FormatLabel(d, app.platform))
		}
		return lines
	case OverlaySettings:
		entries := app.registry.Entries()
		lines := []string{
			"platform: " + app.platform.String(),
			"catalog:  " + app.catalog.Source(),
			fmt.Sprintf("shortcuts: %d registered", len(entries)),
		}
		for _, e := range entries {
			lines = append(lines, fmt.Sprintf("  %-18s %s", chord.FormatLabel(e.Chord, app.platform), e.Registration.ID))
		}
		return lines
	}
	return nil
}

// label returns the display label of a catalog shortcut, or "" if the
// catalog does not define it.
func (app *Application) label(id string) string {
	d, err := app.catalog.Get(id)
	if err != nil {
		return ""
	}
	return shortcut.FormatLabel(d, app.platform)
}
