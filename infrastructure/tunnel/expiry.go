package tunnel

import (
	"time"

	"fortivpn/domain/network"
)

// ExpiryMonitor tracks the two advisory absolute deadlines spec.md
// §5 names (auth expiration, idle timeout) using the same Deadline
// type the teacher uses for connection-level timeouts.
type ExpiryMonitor struct {
	auth network.Deadline
	idle network.Deadline
}

// NewExpiryMonitor builds a monitor from unix-second timestamps. A
// zero timestamp means "no deadline" for that dimension.
func NewExpiryMonitor(authExpiration, idleTimeout int64) (*ExpiryMonitor, error) {
	m := &ExpiryMonitor{}

	if authExpiration != 0 {
		d, err := network.DeadlineFromTime(time.Unix(authExpiration, 0))
		if err != nil {
			return nil, err
		}
		m.auth = d
	}
	if idleTimeout != 0 {
		d, err := network.DeadlineFromTime(time.Unix(idleTimeout, 0))
		if err != nil {
			return nil, err
		}
		m.idle = d
	}
	return m, nil
}

// Check reports a network.ErrTimeout if either deadline has passed as
// of now. The caller (the event loop) is expected to observe this and
// disconnect; it is advisory, not enforced internally (spec.md §5).
func (m *ExpiryMonitor) Check(now time.Time) error {
	if !m.auth.ExpiresAt().IsZero() && now.After(m.auth.ExpiresAt()) {
		return network.NewErrTimeout(errAuthExpired{})
	}
	if !m.idle.ExpiresAt().IsZero() && now.After(m.idle.ExpiresAt()) {
		return network.NewErrTimeout(errIdleExpired{})
	}
	return nil
}

type errAuthExpired struct{}

func (errAuthExpired) Error() string { return "fortinet: auth expiration reached" }

type errIdleExpired struct{}

func (errIdleExpired) Error() string { return "fortinet: idle timeout reached" }
