// Package telemetry reports crashes to Sentry.
//
// All functions are safe no-ops until Init succeeds with telemetry enabled.
package telemetry

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	gosentry "github.com/getsentry/sentry-go"
	"github.com/google/uuid"

	"github.com/dshills/keyroute/internal/dispatcher"
	"github.com/dshills/keyroute/internal/input/key"
)

// FlushTimeout bounds how long Flush waits for buffered events.
const FlushTimeout = 2 * time.Second

// Options configures Init.
type Options struct {
	Enabled     bool
	DSN         string
	Release     string
	Environment string

	// BeforeSend inspects or drops events before they are sent.
	BeforeSend func(*gosentry.Event, *gosentry.EventHint) *gosentry.Event
}

var (
	mu        sync.RWMutex
	enabled   bool
	sessionID string
)

// Init initializes the Sentry SDK. With Enabled unset or an empty DSN it
// leaves telemetry disabled and returns nil.
func Init(opts Options) error {
	mu.Lock()
	defer mu.Unlock()

	if !opts.Enabled || opts.DSN == "" {
		enabled = false
		return nil
	}

	err := gosentry.Init(gosentry.ClientOptions{
		Dsn:              opts.DSN,
		Release:          "keyroute@" + opts.Release,
		Environment:      opts.Environment,
		AttachStacktrace: true,
		SampleRate:       1.0,
		BeforeSend:       opts.BeforeSend,
	})
	if err != nil {
		return fmt.Errorf("telemetry init: %w", err)
	}

	sessionID = uuid.NewString()
	gosentry.ConfigureScope(func(scope *gosentry.Scope) {
		scope.SetTag("os", runtime.GOOS)
		scope.SetTag("arch", runtime.GOARCH)
		scope.SetTag("go_version", runtime.Version())
		scope.SetTag("session", sessionID)
	})

	enabled = true
	return nil
}

// IsEnabled reports whether telemetry is active.
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SessionID returns the per-process session tag, or "" when disabled.
func SessionID() string {
	mu.RLock()
	defer mu.RUnlock()
	if !enabled {
		return ""
	}
	return sessionID
}

// Flush waits for buffered events to be sent.
func Flush() {
	if !IsEnabled() {
		return
	}
	gosentry.Flush(FlushTimeout)
}

// RecoverPanic captures a panic to Sentry, flushes, then re-panics.
// Usage: defer telemetry.RecoverPanic()
func RecoverPanic() {
	if !IsEnabled() {
		return
	}
	if r := recover(); r != nil {
		hub := gosentry.CurrentHub().Clone()
		hub.ConfigureScope(func(scope *gosentry.Scope) {
			var sid interface{ ShortcutID() string }
			if err, ok := r.(error); ok && errors.As(err, &sid) {
				scope.SetTag("shortcut", sid.ShortcutID())
			}
		})
		hub.Recover(r)
		gosentry.Flush(FlushTimeout)
		panic(r)
	}
}

// SetPlatform tags events with the resolved shortcut platform.
func SetPlatform(name string) {
	if !IsEnabled() {
		return
	}
	gosentry.ConfigureScope(func(scope *gosentry.Scope) {
		scope.SetTag("platform", name)
	})
}

// ObserveDispatch records a dispatch decision as a breadcrumb. It has the
// shape of a dispatcher.Observer.
func ObserveDispatch(ev *key.Event, out dispatcher.Outcome) {
	if !IsEnabled() {
		return
	}
	msg := fmt.Sprintf("%s: no handler", ev)
	switch {
	case out.RepeatDropped:
		msg = fmt.Sprintf("%s: repeat dropped", ev)
	case out.Handled:
		msg = fmt.Sprintf("%s: %s", ev, out.ID)
	}
	gosentry.AddBreadcrumb(&gosentry.Breadcrumb{
		Level:    gosentry.LevelInfo,
		Category: "dispatch",
		Message:  msg,
		Data: map[string]interface{}{
			"candidates": out.Candidates,
			"declined":   out.Declined,
		},
	})
}
