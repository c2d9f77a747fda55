// Package dtls implements the DTLS Hello Matcher (spec.md §4.5): it
// recognizes the svrhello handshake frame the gateway sends on the
// first inbound DTLS datagram and decides whether DTLS came up.
package dtls

import (
	"bytes"
	"encoding/binary"

	"fortivpn/domain/fortinet"
)

// svrhelloPrefix is "GFtype\0svrhello\0handshake", a C string literal
// whose sizeof (26, including the compiler-appended NUL) sets the wire
// length arithmetic below; see original_source/fortinet.c.
var svrhelloPrefix = []byte("GFtype\x00svrhello\x00handshake\x00")

const svrhelloSizeof = len("GFtype\x00svrhello\x00handshake") + 1 // 26

// ClientHelloPayload builds the clthello frame spec.md §4.4 step 3
// describes: be16(length) || "GFtype\0clthello\0SVPNCOOKIE\0" || cookie || \0.
func ClientHelloPayload(cookie string) []byte {
	prefix := []byte("GFtype\x00clthello\x00SVPNCOOKIE\x00")
	length := 2 + len(prefix) + len(cookie) + 1

	buf := make([]byte, 0, length)
	lenField := make([]byte, 2)
	binary.BigEndian.PutUint16(lenField, uint16(length))
	buf = append(buf, lenField...)
	buf = append(buf, prefix...)
	buf = append(buf, cookie...)
	buf = append(buf, 0)
	return buf
}

// MatchSvrHello validates an inbound DTLS datagram against the
// svrhello frame format and reports whether DTLS succeeded.
//
// On a malformed or non-matching frame, ok=false and err is nil: the
// caller is expected to treat this as "not a svrhello frame" rather
// than a hard protocol error (spec.md §4.5's resilience note — a
// dropped "ok" packet is recoverable via a subsequent PPP frame, so a
// mismatch here must not be fatal by itself).
func MatchSvrHello(buf []byte) (ok bool, established bool, err error) {
	if len(buf) < 2 {
		return false, false, nil
	}
	declared := binary.BigEndian.Uint16(buf[:2])
	if int(declared) != len(buf) {
		return false, false, nil
	}
	if len(buf) < svrhelloSizeof+2 {
		return false, false, nil
	}
	if !bytes.Equal(buf[2:2+svrhelloSizeof], svrhelloPrefix) {
		return false, false, nil
	}

	status := buf[2+svrhelloSizeof : len(buf)]
	switch {
	case bytes.Equal(status, []byte("ok\x00")), bytes.Equal(status, []byte("ok")):
		return true, true, nil
	case bytes.HasPrefix(status, []byte("fail")):
		return true, false, nil
	default:
		return true, false, fortinet.NewProtocolError("unrecognized svrhello status")
	}
}
