// Package noop provides placeholder implementations of the
// out-of-scope transport collaborators (application.PPP,
// application.Transport): full LCP/IPCP negotiation and TLS/DTLS
// record-layer I/O are explicitly out of scope (spec.md §1), but the
// core still needs a named collaborator to sequence Tunnel Bringup
// against end to end.
package noop

import (
	"context"
	"errors"

	"fortivpn/application"
)

// ErrNotImplemented marks a call into a collaborator this module does
// not implement.
var ErrNotImplemented = errors.New("fortinet: transport collaborator not implemented in this build")

// PPP is a no-op application.PPP: New/Reset succeed so Tunnel Bringup
// can be exercised up to the point a real link is needed, StartTCP
// fails with ErrNotImplemented since no actual PPP state machine runs.
type PPP struct{}

func NewPPP() application.PPP { return &PPP{} }

func (PPP) New(application.Encapsulation, bool, bool) error { return nil }
func (PPP) Reset() error                                    { return nil }
func (PPP) StartTCP(context.Context) error                  { return ErrNotImplemented }

// Transport is a no-op application.Transport: opening succeeds so
// callers can exercise the sequencing around it, writes/closes are
// inert.
type Transport struct{}

func NewTransport() application.Transport { return &Transport{} }

func (Transport) OpenHTTPS(context.Context) error { return nil }
func (Transport) SSLWrite(b []byte) (int, error)  { return len(b), nil }

// SSLRead reports no bytes available rather than failing: there is no
// real socket behind this collaborator, so there is nothing to sniff
// for an HTTP error response, and the caller must treat that as "not
// an HTTP response" rather than a transport failure.
func (Transport) SSLRead(context.Context, []byte) (int, error) { return 0, nil }
func (Transport) CloseHTTPS() error                             { return nil }
func (Transport) OpenDTLS(context.Context) error                { return nil }
func (Transport) DTLSWrite(b []byte) (int, error)               { return len(b), nil }

// DTLSRead reports no datagram available; callers fall back to the
// resilience path spec.md §4.5 describes (a subsequent PPP frame is
// also acceptable evidence of DTLS success).
func (Transport) DTLSRead(context.Context, []byte) (int, error) { return 0, nil }
func (Transport) CloseDTLS() error                              { return nil }
