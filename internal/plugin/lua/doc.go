// Package lua runs shortcut handlers written in Lua.
//
// Scripts run in a sandboxed gopher-lua state with only the base, table,
// string and math libraries. The global keyroute table exposes:
//
//	keyroute.register{chord = "Ctrl+K", scope = "workspace", id = "my.palette",
//	                  allow_in_input = true, allow_repeat = false, priority = 350,
//	                  keep_default = false, propagate = false,
//	                  when = function(ev) return not ev.editable end}, fn  -> handle
//	keyroute.bind("overlay.close", fn)                                   -> handle
//	keyroute.unregister(handle)                                          -> bool
//	keyroute.registered(handle)                                          -> bool
//	keyroute.label("overlay.close")                                      -> string
//	keyroute.platform                                                    -- "mac", "windows" or "linux"
//
// Handlers receive an event table with the fields key, ctrl, meta, alt,
// shift, repeat, role and editable. Returning false declines the event;
// any other return value, including none, handles it.
//
// bind and label look identifiers up in the catalog given to Install, or
// the one passed to the latest SetCatalog.
//
// A Lua error raised inside a handler or a when predicate is not
// swallowed: the Go handler panics with a *ScriptError.
package lua
