package application

import "fortivpn/domain/fortinet"

// EspCryptographyService is the ESP Crypto Engine's contract (spec.md §4.1).
// Encrypt consumes a packet holding cleartext payload and frames it into
// an on-wire ESP datagram in place, bound to the given outbound SA.
// Decrypt authenticates and replay-checks an inbound datagram in place,
// bound to the given inbound SA; pkt.Len on entry is the ciphertext
// payload length with the ESP header already stripped by the caller.
type EspCryptographyService interface {
	Encrypt(sa *fortinet.SecurityAssociation, pkt *fortinet.Packet) (wireLen int, err error)
	Decrypt(sa *fortinet.SecurityAssociation, pkt *fortinet.Packet) error
	Destroy()
}
