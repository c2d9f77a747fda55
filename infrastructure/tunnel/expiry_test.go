package tunnel

import (
	"testing"
	"time"

	"fortivpn/domain/network"
)

func TestExpiryMonitor_NoDeadlinesNeverExpires(t *testing.T) {
	m, err := NewExpiryMonitor(0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Check(time.Now().Add(1000 * time.Hour)); err != nil {
		t.Fatalf("expected no expiry, got %v", err)
	}
}

func TestExpiryMonitor_AuthExpirationReached(t *testing.T) {
	future := time.Now().Add(time.Hour).Unix()
	m, err := NewExpiryMonitor(future, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = m.Check(time.Now().Add(2 * time.Hour))
	if err == nil {
		t.Fatal("expected timeout error")
	}
	var te *network.ErrTimeout
	if !asErrTimeout(err, &te) {
		t.Fatalf("expected *network.ErrTimeout, got %T", err)
	}
	if !te.Timeout() {
		t.Fatal("expected Timeout() true")
	}
}

func asErrTimeout(err error, target **network.ErrTimeout) bool {
	if e, ok := err.(*network.ErrTimeout); ok {
		*target = e
		return true
	}
	return false
}

func TestExpiryMonitor_RejectsPastDeadlineAtConstruction(t *testing.T) {
	past := time.Now().Add(-time.Hour).Unix()
	if _, err := NewExpiryMonitor(past, 0); err == nil {
		t.Fatal("expected error constructing a monitor with a past auth expiration")
	}
}
