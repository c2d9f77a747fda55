package application

import "context"

// Encapsulation names the link encapsulation a PPP session is started
// with. The core only ever uses EncapsulationFortinet; the type exists
// so the PPP port's shape doesn't secretly assume a single caller.
type Encapsulation int

const (
	EncapsulationFortinet Encapsulation = iota
)

// PPP is the out-of-scope PPP collaborator (spec.md §1, §6): the core
// hands it framing decisions and encapsulated bytes, never parses LCP
// itself.
type PPP interface {
	New(encap Encapsulation, ipv4, ipv6 bool) error
	Reset() error

	// StartTCP begins the PPP main loop over the already-open TLS
	// connection. Per spec.md §4.4 step 5 and §9, the first bytes read
	// after the tunnel GET may be an HTTP error response rather than a
	// PPP frame; Tunnel Bringup applies LooksLikeHTTPResponse to them
	// and returns a ProtocolError before StartTCP is called, so StartTCP
	// is only reached when no HTTP response was seen.
	StartTCP(ctx context.Context) error
}

// LooksLikeHTTPResponse is the sniffing predicate called out in
// spec.md §9: "Silent HTTP response on tunnel upgrade". The tunnel
// GET normally gets no response at all; if the first bytes the PPP
// loop reads start with "HTTP/", the upgrade failed and the server is
// instead returning a login/error page.
func LooksLikeHTTPResponse(firstBytes []byte) bool {
	const prefix = "HTTP/"
	if len(firstBytes) < len(prefix) {
		return false
	}
	return string(firstBytes[:len(prefix)]) == prefix
}
