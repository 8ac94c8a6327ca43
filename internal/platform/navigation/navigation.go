// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package navigation is the front-end's router surface: the one place that
decides where the operator is sent next.

Producers (the route guard, the transport's 401 handler) call
[Navigator.NavigateTo]. Consumers differ per shell:

  - Web shell: [History] records the pending destination and the [Follow]
    middleware redirects the browser on its next request.
  - CLI: [Func] prints a hint telling the operator to sign in again.
*/
package navigation

import (
	"net/url"
	"strings"
	"sync"

	"github.com/taibuivan/hortus/internal/platform/constants"
)

// Options refine a navigation.
type Options struct {
	// PreserveOrigin is the location to return to after the detour (usually
	// after a successful login). Empty means nothing to return to.
	PreserveOrigin string
}

// Navigator moves the operator to another front-end location.
type Navigator interface {
	NavigateTo(path string, options Options)
}

// Func adapts a plain function to [Navigator].
type Func func(path string, options Options)

// NavigateTo implements [Navigator].
func (fn Func) NavigateTo(path string, options Options) { fn(path, options) }

// Target is a resolved navigation destination.
type Target struct {
	Path string
	From string
}

// URL renders the target with the origin carried in the "from" query parameter.
func (target Target) URL() string {
	if target.From == "" || target.From == target.Path {
		return target.Path
	}
	return target.Path + "?" + url.Values{constants.QueryFrom: {target.From}}.Encode()
}

// SafeReturn validates a "from" location before redirecting to it after
// login. Only local absolute paths are accepted; anything else, including the
// login page itself, falls back to the home page.
func SafeReturn(from string) string {
	if from == "" || !strings.HasPrefix(from, "/") || strings.HasPrefix(from, "//") || strings.HasPrefix(from, "/\\") {
		return constants.PathHome
	}
	parsed, err := url.Parse(from)
	if err != nil || parsed.Scheme != "" || parsed.Host != "" {
		return constants.PathHome
	}
	if parsed.Path == constants.PathLogin || parsed.Path == constants.PathRegister {
		return constants.PathHome
	}
	return from
}

// # Pending Navigation

// History holds at most one pending navigation for the web shell.
//
// # Concurrency
//
// Safe for concurrent use: API calls from several page requests may hit a
// 401 at the same time. The last writer wins, which is fine because every
// 401 points at the login page.
type History struct {
	mu      sync.Mutex
	pending *Target
}

// NewHistory creates an empty [History].
func NewHistory() *History {
	return &History{}
}

// NavigateTo implements [Navigator] by recording the destination.
// A navigation issued from the destination itself is dropped: the
// operator is already there.
func (history *History) NavigateTo(path string, options Options) {
	if origin, err := url.Parse(options.PreserveOrigin); err == nil && origin.Path == path {
		return
	}

	history.mu.Lock()
	defer history.mu.Unlock()
	history.pending = &Target{Path: path, From: options.PreserveOrigin}
}

// Take returns and clears the pending navigation.
func (history *History) Take() (Target, bool) {
	history.mu.Lock()
	defer history.mu.Unlock()

	if history.pending == nil {
		return Target{}, false
	}
	target := *history.pending
	history.pending = nil
	return target, true
}

// Pending reports the pending navigation without consuming it.
func (history *History) Pending() (Target, bool) {
	history.mu.Lock()
	defer history.mu.Unlock()

	if history.pending == nil {
		return Target{}, false
	}
	return *history.pending, true
}
