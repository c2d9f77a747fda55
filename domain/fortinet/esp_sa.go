package fortinet

// EspAlgorithm identifies the negotiated ESP cipher/HMAC combination.
// The Fortinet gateway only ever offers AES-CBC with a 16-byte block,
// paired with a 12-byte-truncated MD5 or SHA-1 HMAC.
type EspAlgorithm struct {
	CipherKeyBits int // 128 or 256
	HMACIsSHA1    bool
}

// SecurityAssociation holds one direction's ESP state. An outbound SA's
// Seq is a monotonically increasing counter; an inbound SA's Window is
// the anti-replay bitmap. Exactly one of the two is meaningful per SA,
// but both fields exist so the same struct can model either direction.
type SecurityAssociation struct {
	SPI uint32

	// Seq is the last sequence number sent (outbound). Inbound SAs leave
	// it at zero; their accepted sequence numbers are tracked in Window.
	Seq uint32

	// IV is the next IV to place on the wire. For an outbound SA this
	// is updated after every encrypt by the IV-chaining invariant
	// (ESP Crypto Engine, step 6). Inbound SAs don't use this field;
	// each inbound packet supplies its own IV.
	IV [EspIVSize]byte

	EncKey  []byte
	HMACKey []byte
	Algo    EspAlgorithm

	// Window is the inbound anti-replay state. Nil for outbound SAs.
	Window *ReplayWindow
}

// NewOutboundSA constructs an outbound SA with the given SPI, keys, and
// initial IV (provisioned by the out-of-scope key-derivation collaborator).
func NewOutboundSA(spi uint32, encKey, hmacKey []byte, algo EspAlgorithm, initialIV [EspIVSize]byte) *SecurityAssociation {
	return &SecurityAssociation{
		SPI:     spi,
		IV:      initialIV,
		EncKey:  encKey,
		HMACKey: hmacKey,
		Algo:    algo,
	}
}

// NewInboundSA constructs an inbound SA with a fresh anti-replay window.
func NewInboundSA(spi uint32, encKey, hmacKey []byte, algo EspAlgorithm) *SecurityAssociation {
	return &SecurityAssociation{
		SPI:     spi,
		EncKey:  encKey,
		HMACKey: hmacKey,
		Algo:    algo,
		Window:  &ReplayWindow{},
	}
}

// NextSeq increments and returns the outbound sequence number to stamp
// on the next packet. Returns CryptoError instead of wrapping: the spec
// requires the outbound sequence never wrap without a rekey.
func (sa *SecurityAssociation) NextSeq() (uint32, error) {
	if sa.Seq == 0xFFFFFFFF {
		return 0, NewCryptoError(errSeqWouldWrap)
	}
	sa.Seq++
	return sa.Seq, nil
}
