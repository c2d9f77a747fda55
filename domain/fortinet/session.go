package fortinet

import "net/http"

// DTLSState enumerates the lifecycle of the UDP side-channel, mirroring
// spec.md §3 exactly. Zero value is NoSecret.
type DTLSState int

const (
	DTLSNoSecret DTLSState = iota
	DTLSSecret
	DTLSConnected
	DTLSEstablished
	DTLSDisabled
)

func (s DTLSState) String() string {
	switch s {
	case DTLSNoSecret:
		return "no-secret"
	case DTLSSecret:
		return "secret"
	case DTLSConnected:
		return "connected"
	case DTLSEstablished:
		return "established"
	case DTLSDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// Session is the singleton connection context: one per VPN connection,
// created on connect and destroyed on disconnect (spec.md §3).
type Session struct {
	Host string
	Port int

	Jar        http.CookieJar
	URLPath    string
	SVPNCookie string

	DTLS DTLSState

	// TLSConnectReq and DTLSClientHello are cached across reconnects
	// (spec.md §9 "Cached connect requests"): reconfiguration
	// invalidates the cookie, so these immutable buffers, once built,
	// must survive a PPP reset.
	TLSConnectReq   []byte
	DTLSClientHello []byte

	Config *IPConfig

	AuthExpiration int64 // unix seconds, advisory
	IdleTimeout    int64 // unix seconds, advisory
	DPD            int64 // seconds between DPD probes

	Inbound  *SecurityAssociation
	Outbound *SecurityAssociation
}

// NewSession creates an empty session context for host:port.
func NewSession(host string, port int, jar http.CookieJar) *Session {
	return &Session{
		Host: host,
		Port: port,
		Jar:  jar,
		DTLS: DTLSNoSecret,
	}
}

// CookieValid reports whether an SVPNCOOKIE has been negotiated.
func (s *Session) CookieValid() bool {
	return s.SVPNCookie != ""
}
