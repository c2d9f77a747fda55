package tunnel

import (
	"context"
	"time"
)

// DPDTicker drives a periodic liveness probe at the negotiated DPD
// interval, reimplemented against time.Ticker rather than copying any
// particular collaborator's event-loop plumbing (SPEC_FULL.md §2's
// "DPD / keepalive ticker" component).
type DPDTicker struct {
	interval time.Duration
	probe    func(ctx context.Context) error
}

// NewDPDTicker builds a ticker for the given interval in seconds (the
// unit spec.md §4.2 parses dtls-config@heartbeat-interval in). A
// non-positive interval disables the ticker: Run returns immediately.
func NewDPDTicker(intervalSeconds int64, probe func(ctx context.Context) error) *DPDTicker {
	return &DPDTicker{interval: time.Duration(intervalSeconds) * time.Second, probe: probe}
}

// Run blocks, firing probe on every tick, until ctx is cancelled or
// probe returns a non-nil error.
func (d *DPDTicker) Run(ctx context.Context) error {
	if d.interval <= 0 {
		return nil
	}

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := d.probe(ctx); err != nil {
				return err
			}
		}
	}
}
