// Package tunnel implements Tunnel Bringup and Teardown (spec.md §4.4,
// §4.6): the sequence that turns an authenticated session (an
// SVPNCOOKIE) into a running PPP-over-TLS link with an optional DTLS
// side-channel.
package tunnel

import (
	"context"
	"fmt"
	"time"

	"fortivpn/application"
	"fortivpn/domain/fortinet"
	"fortivpn/infrastructure/configxml"
	"fortivpn/infrastructure/dtls"
)

const tlsConnectReqTemplate = "GET /remote/sslvpn-tunnel HTTP/1.1\r\n" +
	"Host: %s\r\n" +
	"User-Agent: Mozilla/5.0 SV1\r\n" +
	"Cookie: SVPNCOOKIE=%s\r\n" +
	"Connection: Keep-Alive\r\n" +
	"\r\n"

// svrhelloBufSize comfortably bounds the svrhello frame (26-byte
// prefix + 2-byte length + a few status bytes).
const svrhelloBufSize = 64

// Bringup sequences the collaborators named in spec.md §4.4: it does
// not itself speak HTTP or PPP, it only orders calls into the ports.
type Bringup struct {
	http application.HTTPClient
	ppp  application.PPP
	tr   application.Transport
}

func NewBringup(http application.HTTPClient, ppp application.PPP, tr application.Transport) *Bringup {
	return &Bringup{http: http, ppp: ppp, tr: tr}
}

// Run executes the one-time sequence (config fetch, PPP/DTLS request
// construction, PPP init, HTTPS open+write, PPP main loop start) and
// populates sess with the parsed config and cached connect requests.
func (b *Bringup) Run(ctx context.Context, sess *fortinet.Session) error {
	status, body, err := b.http.Request(ctx, "GET", "remote/fortisslvpn_xml", "", nil)
	if err != nil {
		return fortinet.NewTransportError(err)
	}
	if status != 200 {
		return fortinet.ErrInvalidCookie
	}

	cfg, err := configxml.Parse(body)
	if err != nil {
		return err
	}
	sess.Config = cfg

	// IPConfig's timers are durations parsed off the wire; the session
	// carries absolute deadlines (domain/fortinet.Session's doc
	// comment), so the conversion happens exactly once, here.
	now := time.Now()
	if cfg.AuthExpiration > 0 {
		sess.AuthExpiration = now.Add(time.Duration(cfg.AuthExpiration) * time.Second).Unix()
	}
	if cfg.IdleTimeout > 0 {
		sess.IdleTimeout = now.Add(time.Duration(cfg.IdleTimeout) * time.Second).Unix()
	}
	sess.DPD = cfg.DPD

	// spec.md §4.2: sslvpn-tunnel@dtls transitions DTLS to Secret, but
	// only out of NoSecret — a session already Disabled or further
	// along stays where it is.
	if cfg.DTLSEnabled && sess.DTLS == fortinet.DTLSNoSecret {
		sess.DTLS = fortinet.DTLSSecret
	}

	sess.TLSConnectReq = []byte(fmt.Sprintf(tlsConnectReqTemplate, sess.Host, sess.SVPNCookie))
	sess.DTLSClientHello = dtls.ClientHelloPayload(sess.SVPNCookie)

	if err := b.ppp.New(application.EncapsulationFortinet, cfg.IPv4Addr.IsValid(), cfg.IPv6Addr.IsValid()); err != nil {
		return fortinet.NewTransportError(err)
	}

	return b.startLink(ctx, sess)
}

// Reconnect implements spec.md §4.4's reconnect policy: it never
// refetches the config or rebuilds the cached connect requests, it
// only resets PPP and replays them.
func (b *Bringup) Reconnect(ctx context.Context, sess *fortinet.Session) error {
	if err := b.ppp.Reset(); err != nil {
		return fortinet.NewTransportError(err)
	}
	return b.startLink(ctx, sess)
}

func (b *Bringup) startLink(ctx context.Context, sess *fortinet.Session) error {
	if err := b.tr.OpenHTTPS(ctx); err != nil {
		return fortinet.NewTransportError(err)
	}
	if _, err := b.tr.SSLWrite(sess.TLSConnectReq); err != nil {
		return fortinet.NewTransportError(err)
	}

	// No HTTP response is expected here; only on failure does the
	// server reply with one (spec.md §4.4 step 5, §9). Sniff the first
	// bytes off the wire before handing the connection to PPP, so a
	// login error surfaces as a ProtocolError instead of being fed to
	// PPP framing.
	peek := make([]byte, 5)
	if n, err := b.tr.SSLRead(ctx, peek); err == nil && application.LooksLikeHTTPResponse(peek[:n]) {
		return fortinet.NewProtocolError("tunnel upgrade failed: server returned an HTTP response")
	}

	if err := b.ppp.StartTCP(ctx); err != nil {
		return err
	}

	if sess.DTLS == fortinet.DTLSSecret {
		b.negotiateDTLS(ctx, sess)
	}

	return nil
}

// negotiateDTLS drives the DTLS side-channel from Secret to Connected
// to Established/Disabled (spec.md §3, §4.4 step 3, §4.5). Failures at
// any step degrade silently to TLS-only rather than aborting Bringup
// (spec.md §7: "DTLS validation failure degrades silently to
// TLS-only").
func (b *Bringup) negotiateDTLS(ctx context.Context, sess *fortinet.Session) {
	if err := b.tr.OpenDTLS(ctx); err != nil {
		sess.DTLS = fortinet.DTLSDisabled
		return
	}
	if _, err := b.tr.DTLSWrite(sess.DTLSClientHello); err != nil {
		sess.DTLS = fortinet.DTLSDisabled
		return
	}
	sess.DTLS = fortinet.DTLSConnected

	buf := make([]byte, svrhelloBufSize)
	n, err := b.tr.DTLSRead(ctx, buf)
	if err != nil || n == 0 {
		// A dropped "ok" packet is recoverable later via a PPP frame on
		// the DTLS channel (spec.md §4.5's resilience note): stay
		// Connected rather than disabling DTLS on a missed first read.
		return
	}

	// A frame that is not a svrhello leaves DTLS Connected; a svrhello
	// with any status other than "ok" (including an unrecognized one,
	// reported with an error) disables DTLS.
	matched, established, _ := dtls.MatchSvrHello(buf[:n])
	if !matched {
		return
	}
	if established {
		sess.DTLS = fortinet.DTLSEstablished
	} else {
		sess.DTLS = fortinet.DTLSDisabled
	}
}
