package tunnel

import (
	"context"
	"testing"
	"time"
)

func TestDPDTicker_ZeroIntervalDisabled(t *testing.T) {
	ticker := NewDPDTicker(0, func(context.Context) error {
		t.Fatal("probe must not fire when interval is zero")
		return nil
	})
	if err := ticker.Run(context.Background()); err != nil {
		t.Fatalf("expected immediate return, got %v", err)
	}
}

func TestDPDTicker_FiresProbeUntilCancelled(t *testing.T) {
	hits := 0
	ticker := &DPDTicker{interval: time.Millisecond, probe: func(context.Context) error {
		hits++
		return nil
	}}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := ticker.Run(ctx); err == nil {
		t.Fatal("expected context deadline error")
	}
	if hits == 0 {
		t.Fatal("expected at least one probe to fire")
	}
}

func TestDPDTicker_StopsOnProbeError(t *testing.T) {
	boom := errShortCircuit{}
	ticker := &DPDTicker{interval: time.Millisecond, probe: func(context.Context) error { return boom }}
	if err := ticker.Run(context.Background()); err != boom {
		t.Fatalf("expected probe error propagated, got %v", err)
	}
}

type errShortCircuit struct{}

func (errShortCircuit) Error() string { return "boom" }
