package dtls

import (
	"encoding/binary"
	"testing"
)

func frame(status string) []byte {
	prefix := []byte("GFtype\x00svrhello\x00handshake\x00")
	statusBytes := append([]byte(status), 0)
	length := 2 + len(prefix) + len(statusBytes)
	buf := make([]byte, 2, length)
	binary.BigEndian.PutUint16(buf, uint16(length))
	buf = append(buf, prefix...)
	buf = append(buf, statusBytes...)
	return buf
}

func TestMatchSvrHello_Ok(t *testing.T) {
	ok, established, err := MatchSvrHello(frame("ok"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || !established {
		t.Fatalf("expected ok+established, got ok=%v established=%v", ok, established)
	}
}

func TestMatchSvrHello_Fail(t *testing.T) {
	ok, established, err := MatchSvrHello(frame("fail"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || established {
		t.Fatalf("expected ok=true established=false for fail status, got ok=%v established=%v", ok, established)
	}
}

func TestMatchSvrHello_BadLengthField(t *testing.T) {
	f := frame("ok")
	binary.BigEndian.PutUint16(f[:2], uint16(len(f)+5))
	ok, _, err := MatchSvrHello(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected mismatch on declared length")
	}
}

func TestMatchSvrHello_TooShort(t *testing.T) {
	ok, _, err := MatchSvrHello([]byte{0, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected too-short frame to not match")
	}
}

func TestMatchSvrHello_WrongPrefix(t *testing.T) {
	f := frame("ok")
	f[10] ^= 0xFF
	ok, _, err := MatchSvrHello(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected prefix mismatch to not match")
	}
}

func TestMatchSvrHello_UnrecognizedStatus(t *testing.T) {
	ok, established, err := MatchSvrHello(frame("weird"))
	if err == nil {
		t.Fatal("expected protocol error for unrecognized status")
	}
	if !ok || established {
		t.Fatalf("expected ok=true established=false alongside the error, got ok=%v established=%v", ok, established)
	}
}

func TestClientHelloPayload_LengthField(t *testing.T) {
	buf := ClientHelloPayload("SVPNCOOKIE123")
	declared := binary.BigEndian.Uint16(buf[:2])
	if int(declared) != len(buf) {
		t.Fatalf("declared length %d does not match actual %d", declared, len(buf))
	}
	if buf[len(buf)-1] != 0 {
		t.Fatal("expected trailing NUL byte")
	}
}
