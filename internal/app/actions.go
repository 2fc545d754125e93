package app

import (
	"fmt"

	"github.com/dshills/keyroute/internal/input/key"
	"github.com/dshills/keyroute/internal/input/keymap"
	"github.com/dshills/keyroute/internal/input/shortcut"
)

// action is the built-in behavior bound to a catalog id.
type action struct {
	run  func() keymap.Result
	opts []keymap.BindOption
}

func (app *Application) actions() map[string]action {
	overlayOpen := func() bool { return app.state.Overlay != OverlayNone }
	overlayClosed := func() bool { return app.state.Overlay == OverlayNone }
	onList := func(*key.Event) bool { return app.focus == sessionList }

	return map[string]action{
		shortcut.IDOverlayClose: {
			run:  app.closeOverlay,
			opts: []keymap.BindOption{keymap.EnabledWhen(overlayOpen)},
		},
		shortcut.IDOverlayConfirm: {
			run:  app.confirmOverlay,
			opts: []keymap.BindOption{keymap.EnabledWhen(overlayOpen)},
		},
		shortcut.IDConversationCancel: {
			run:  app.cancelResponse,
			opts: []keymap.BindOption{keymap.EnabledWhen(func() bool { return app.state.Running })},
		},
		shortcut.IDConversationApprove: {
			run:  func() keymap.Result { return app.resolvePending("approved") },
			opts: []keymap.BindOption{keymap.EnabledWhen(func() bool { return app.state.Pending })},
		},
		shortcut.IDConversationDeny: {
			run:  func() keymap.Result { return app.resolvePending("denied") },
			opts: []keymap.BindOption{keymap.EnabledWhen(func() bool { return app.state.Pending })},
		},
		shortcut.IDConversationFocusComposer: {
			run:  app.focusComposer,
			opts: []keymap.BindOption{keymap.EnabledWhen(overlayClosed)},
		},
		shortcut.IDConversationScrollUp:   {run: func() keymap.Result { return app.scroll(-1) }},
		shortcut.IDConversationScrollDown: {run: func() keymap.Result { return app.scroll(1) }},
		shortcut.IDWorkspaceCommandPalette: {
			run: func() keymap.Result { return app.openOverlay(OverlayPalette) },
		},
		shortcut.IDWorkspaceToggleSidebar: {run: app.toggleSidebar},
		shortcut.IDWorkspaceNextTab:       {run: func() keymap.Result { return app.cycleTab(1) }},
		shortcut.IDWorkspacePreviousTab:   {run: func() keymap.Result { return app.cycleTab(-1) }},
		shortcut.IDWorkspaceNewSession:    {run: app.newSession},
		shortcut.IDGlobalHelp: {
			run: func() keymap.Result { return app.openOverlay(OverlayHelp) },
		},
		shortcut.IDGlobalSettings: {
			run: func() keymap.Result { return app.openOverlay(OverlaySettings) },
		},
		shortcut.IDGlobalQuit: {run: app.quit},
		shortcut.IDListUp: {
			run:  func() keymap.Result { return app.moveSelection(-1) },
			opts: []keymap.BindOption{keymap.When(onList), keymap.EnabledWhen(overlayClosed)},
		},
		shortcut.IDListDown: {
			run:  func() keymap.Result { return app.moveSelection(1) },
			opts: []keymap.BindOption{keymap.When(onList), keymap.EnabledWhen(overlayClosed)},
		},
		shortcut.IDListSelect: {
			run:  app.openSelected,
			opts: []keymap.BindOption{keymap.When(onList), keymap.EnabledWhen(overlayClosed)},
		},
	}
}

// bindCatalog replaces the built-in registrations with ones for cat.
// Catalog entries without a built-in action are left unbound; scripts may
// bind them.
func (app *Application) bindCatalog(cat *shortcut.Catalog) {
	app.unbindAll()
	app.catalog = cat

	if err := cat.Validate(app.platform); err != nil {
		app.logger.Warn("catalog %s: %v", cat.Source(), err)
	}

	actions := app.actions()
	for _, def := range cat.All() {
		act, ok := actions[def.ID]
		if !ok {
			app.logger.Debug("no built-in action for %s", def.ID)
			continue
		}
		run := act.run
		handler := func(*key.Event) keymap.Result { return run() }
		app.unbind = append(app.unbind, app.registry.Bind(def, handler, act.opts...))
	}
	app.logger.Info("bound %d shortcuts from %s", len(app.unbind), cat.Source())
}

func (app *Application) unbindAll() {
	for _, u := range app.unbind {
		u()
	}
	app.unbind = nil
}

func (app *Application) openOverlay(name string) keymap.Result {
	app.state.Overlay = name
	app.state.Status = "opened " + name
	return keymap.Handled
}

func (app *Application) closeOverlay() keymap.Result {
	app.state.Status = "closed " + app.state.Overlay
	app.state.Overlay = OverlayNone
	return keymap.Handled
}

func (app *Application) confirmOverlay() keymap.Result {
	app.state.Status = "confirmed " + app.state.Overlay
	app.state.Overlay = OverlayNone
	return keymap.Handled
}

func (app *Application) cancelResponse() keymap.Result {
	app.state.Running = false
	app.state.Pending = false
	app.state.Transcript = append(app.state.Transcript, "(response stopped)")
	app.state.Status = "response stopped"
	return keymap.Handled
}

func (app *Application) resolvePending(verdict string) keymap.Result {
	app.state.Pending = false
	app.state.Running = false
	app.state.Transcript = append(app.state.Transcript, "(request "+verdict+")")
	app.state.Status = "request " + verdict
	return keymap.Handled
}

func (app *Application) focusComposer() keymap.Result {
	app.focus = composer
	app.state.Status = "composer focused"
	return keymap.Handled
}

func (app *Application) scroll(delta int) keymap.Result {
	n := app.state.Scroll + delta
	if n < 0 {
		n = 0
	}
	if limit := len(app.state.Transcript); n > limit {
		n = limit
	}
	app.state.Scroll = n
	return keymap.Handled
}

func (app *Application) toggleSidebar() keymap.Result {
	app.state.Sidebar = !app.state.Sidebar
	if app.state.Sidebar {
		app.state.Status = "sidebar shown"
	} else {
		app.state.Status = "sidebar hidden"
	}
	return keymap.Handled
}

func (app *Application) cycleTab(delta int) keymap.Result {
	n := len(app.state.Tabs)
	app.state.Tab = ((app.state.Tab+delta)%n + n) % n
	app.state.Status = "tab " + app.state.Tabs[app.state.Tab]
	return keymap.Handled
}

func (app *Application) newSession() keymap.Result {
	name := fmt.Sprintf("session %d", len(app.state.Sessions)+1)
	app.state.Sessions = append(app.state.Sessions, name)
	app.state.Selected = len(app.state.Sessions) - 1
	app.state.Active = app.state.Selected
	app.state.Transcript = nil
	app.state.Scroll = 0
	app.state.Status = "started " + name
	return keymap.Handled
}

func (app *Application) quit() keymap.Result {
	app.state.Quit = true
	app.state.Status = "quitting"
	return keymap.Handled
}

// moveSelection declines at the ends of the list so the key falls through.
func (app *Application) moveSelection(delta int) keymap.Result {
	n := app.state.Selected + delta
	if n < 0 || n >= len(app.state.Sessions) {
		return keymap.Declined
	}
	app.state.Selected = n
	return keymap.Handled
}

func (app *Application) openSelected() keymap.Result {
	app.state.Active = app.state.Selected
	app.state.Status = "opened " + app.state.Sessions[app.state.Active]
	app.focus = composer
	return keymap.Handled
}
