package tunnel

import (
	"context"

	"fortivpn/application"
)

// Teardown implements spec.md §4.6: close the HTTPS transport, then
// best-effort issue GET remote/logout on a freshly dialed connection
// (the teardown request must not reuse the closing transport). Any
// logout failure is logged, never returned, since shutdown must not
// block on it.
func Teardown(ctx context.Context, tr application.Transport, freshHTTP func() (application.HTTPClient, error), logger application.Logger) {
	if err := tr.CloseHTTPS(); err != nil {
		logger.Printf("teardown: close https: %v", err)
	}

	client, err := freshHTTP()
	if err != nil {
		logger.Printf("teardown: logout request skipped, could not open connection: %v", err)
		return
	}
	if _, _, err := client.Request(ctx, "GET", "remote/logout", "", nil); err != nil {
		logger.Printf("teardown: logout request failed: %v", err)
	}
}
