// Package platform resolves the host platform family used to interpret
// platform-ambiguous modifier aliases and to format shortcut labels.
package platform

import (
	"os"
	"runtime"
	"strings"
	"sync"
)

// EnvVar overrides detection when set to a recognizable platform name.
const EnvVar = "KEYROUTE_PLATFORM"

// Platform is a host platform family.
type Platform uint8

const (
	// Linux is the fallback family; unknown hosts resolve here.
	Linux Platform = iota
	// Mac is macOS (and the Apple mobile family).
	Mac
	// Windows is Microsoft Windows.
	Windows
)

// String returns the lower-case family name.
func (p Platform) String() string {
	switch p {
	case Mac:
		return "mac"
	case Windows:
		return "windows"
	default:
		return "linux"
	}
}

// IsMac reports whether p is the mac family.
func (p Platform) IsMac() bool {
	return p == Mac
}

// Parse maps a single host hint to a platform family. It accepts family
// names ("mac", "windows"), GOOS values ("darwin") and navigator-style
// strings ("MacIntel", "Win32", "Linux x86_64").
func Parse(hint string) (Platform, bool) {
	h := strings.ToLower(strings.TrimSpace(hint))
	if h == "" {
		return Linux, false
	}
	switch {
	case strings.HasPrefix(h, "mac"), strings.Contains(h, "darwin"),
		strings.HasPrefix(h, "iphone"), strings.HasPrefix(h, "ipad"), h == "ios":
		return Mac, true
	case strings.HasPrefix(h, "win"):
		return Windows, true
	case strings.Contains(h, "linux"), strings.Contains(h, "bsd"),
		strings.Contains(h, "x11"), h == "android", h == "solaris":
		return Linux, true
	}
	return Linux, false
}

// Detect returns the family named by the first recognizable hint.
// Hints are consulted in order; empty or unknown hints are skipped.
// With no usable hint the result is Linux.
func Detect(hints ...string) Platform {
	for _, h := range hints {
		if p, ok := Parse(h); ok {
			return p
		}
	}
	return Linux
}

var current = sync.OnceValue(func() Platform {
	return Detect(os.Getenv(EnvVar), runtime.GOOS)
})

// Current returns the platform of the running process. The result is
// computed once and cached for the process lifetime.
func Current() Platform {
	return current()
}
