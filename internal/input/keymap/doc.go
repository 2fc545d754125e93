// Package keymap is the live registry of shortcut handlers.
//
// Each registration pairs a shortcut definition with a handler and the
// runtime predicates that decide whether it may fire. Registrations are
// indexed by their parsed chord so the dispatcher can fetch the candidates
// for a key press without scanning the whole registry.
//
// # Precedence
//
// When several registrations share a chord, the one with the higher
// resolved priority wins. The resolved priority is the definition's
// explicit override, or else the base priority of its scope. Ties go to
// the most recent registration.
//
// # Usage
//
//	reg := keymap.NewRegistry(keymap.WithPlatform(platform.Current()))
//
//	unregister := reg.Bind(catalog.MustGet(shortcut.IDOverlayClose),
//	    func(ev *key.Event) keymap.Result {
//	        closeOverlay()
//	        return keymap.Handled
//	    },
//	    keymap.When(func(*key.Event) bool { return overlayOpen() }),
//	)
//	defer unregister()
//
// Unregister is idempotent and safe to call from inside a handler.
package keymap
