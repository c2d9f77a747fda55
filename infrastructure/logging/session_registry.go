package logging

import (
	"sync"

	"fortivpn/domain/fortinet"
)

// sessionRegistry is a process-scoped, single-session handle. It
// exists because some platform adapters (a wintun-style log callback)
// are invoked by the OS/driver with no context pointer of their own,
// so there is nowhere else to stash "the current session" for that
// callback to reach (spec.md §9 "Global logger callback").
var sessionRegistry struct {
	mu      sync.Mutex
	current *fortinet.Session
}

// SetActiveSession registers the single in-flight session, or clears
// it when passed nil. A second registration while one is already
// active is rejected: this module supports exactly one VPN connection
// per process.
func SetActiveSession(s *fortinet.Session) error {
	sessionRegistry.mu.Lock()
	defer sessionRegistry.mu.Unlock()

	if s != nil && sessionRegistry.current != nil {
		return fortinet.NewProtocolError("a session is already active in this process")
	}
	sessionRegistry.current = s
	return nil
}

// ActiveSession returns the registered session, or nil if none.
func ActiveSession() *fortinet.Session {
	sessionRegistry.mu.Lock()
	defer sessionRegistry.mu.Unlock()
	return sessionRegistry.current
}
