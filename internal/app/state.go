package app

import "github.com/dshills/keyroute/internal/input/key"

// Overlay names.
const (
	OverlayNone     = ""
	OverlayHelp     = "help"
	OverlayPalette  = "palette"
	OverlaySettings = "settings"
)

// State is the demo workspace the shortcuts act on.
type State struct {
	Sessions []string
	Selected int
	Active   int

	Tabs []string
	Tab  int

	Transcript []string
	Scroll     int
	Composer   []rune

	Sidebar bool
	Overlay string

	// Running is set while a response is streaming.
	Running bool
	// Pending is set while a request awaits approval.
	Pending bool

	// Status is the last action taken.
	Status string
	Quit   bool
}

func newState() State {
	return State{
		Sessions: []string{"session 1"},
		Tabs:     []string{"chat", "files", "log"},
		Sidebar:  true,
		Status:   "ready",
	}
}

var (
	sessionList = &key.Widget{Name: "sessions", Kind: key.RoleList}
	composer    = &key.Widget{Name: "composer", Kind: key.RoleTextInput}
)
