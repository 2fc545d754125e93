// Package dispatcher arbitrates physical key-down events against the live
// shortcut registry and invokes at most one handler per event.
//
// # Algorithm
//
// For each event:
//
//  1. Fast exit: an empty registry does nothing.
//  2. Repeat gate: a key-repeat event is dropped outright unless some
//     registration with the event's chord allows repeats.
//  3. Candidate filter: registrations with an equal chord that allow the
//     event's repeat state, allow the focused target if it is editable, and
//     whose When and Enabled predicates pass.
//  4. Ranking: resolved priority descending, then registration order
//     descending (most recent wins a tie).
//  5. Sequential invocation: handlers run in rank order until one does not
//     return keymap.Declined. The winner's event has its default action
//     suppressed and its propagation stopped unless the registration set
//     KeepDefault or Propagate.
//
// The candidate list is a snapshot taken before the first handler runs, so
// handlers may register or unregister shortcuts freely.
//
// A panicking handler is not recovered. The panic unwinds through Dispatch
// and no lower-ranked candidate runs.
//
// # Usage
//
//	reg := keymap.NewRegistry()
//	d := dispatcher.New(reg, dispatcher.DefaultConfig().WithMetrics())
//
//	for ev := range events {
//	    out := d.Dispatch(ev)
//	    if ev.DefaultPrevented() { ... }
//	}
package dispatcher
