package application

import "context"

// Transport is the out-of-scope TLS/DTLS transport collaborator
// (spec.md §1, §6): record-layer encrypt/decrypt and socket lifecycle
// live entirely outside the core.
type Transport interface {
	OpenHTTPS(ctx context.Context) error
	SSLWrite(b []byte) (int, error)

	// SSLRead reads whatever bytes are available on the already-open
	// TLS connection into buf. Tunnel Bringup uses it once, right after
	// writing the tunnel-upgrade GET, to sniff for the HTTP error
	// response spec.md §9 describes ("Silent HTTP response on tunnel
	// upgrade") before handing the connection to PPP.
	SSLRead(ctx context.Context, buf []byte) (int, error)
	CloseHTTPS() error

	// OpenDTLS lazily opens the UDP side-channel the first time the
	// core needs to send the clthello frame (spec.md §1: "a
	// lazily-opened UDP side-channel").
	OpenDTLS(ctx context.Context) error
	DTLSWrite(b []byte) (int, error)

	// DTLSRead reads one inbound datagram on the DTLS channel, used to
	// receive the svrhello frame the DTLS Hello Matcher validates
	// (spec.md §4.5).
	DTLSRead(ctx context.Context, buf []byte) (int, error)
	CloseDTLS() error
}
