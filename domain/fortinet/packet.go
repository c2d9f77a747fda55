package fortinet

// Wire-format sizes for a framed ESP datagram.
const (
	EspSPISize     = 4
	EspSeqSize     = 4
	EspHeaderSize  = EspSPISize + EspSeqSize
	EspIVSize      = 16
	EspBlockSize   = 16
	EspMaxPadding  = EspBlockSize
	EspHMACSize    = 12
	EspHeaderTotal = EspHeaderSize + EspIVSize
)

// Packet is a fixed-capacity buffer holding one ESP datagram in flight.
//
// Layout: [ spi(4) | seq(4) | iv(16) | data ... | pad ... | hmac(12) ].
// Len reports the length of the cleartext/ciphertext payload currently
// held in Data; it does not include the header, IV, padding, or HMAC.
type Packet struct {
	buf []byte
	Len int
}

// NewPacket allocates a Packet able to hold up to maxPayload bytes of
// cleartext plus ESP header, IV, padding, and HMAC trailer.
func NewPacket(maxPayload int) *Packet {
	// Trailer room: up to EspBlockSize-1 pad bytes plus the pad-length and
	// next-header bytes, i.e. EspMaxPadding+1.
	cap := EspHeaderTotal + maxPayload + EspMaxPadding + 1 + EspHMACSize
	return &Packet{buf: make([]byte, cap)}
}

// SPI returns the 4-byte SPI field.
func (p *Packet) SPI() []byte { return p.buf[0:EspSPISize] }

// Seq returns the 4-byte sequence field.
func (p *Packet) Seq() []byte { return p.buf[EspSPISize : EspSPISize+EspSeqSize] }

// IV returns the 16-byte IV field.
func (p *Packet) IV() []byte { return p.buf[EspHeaderSize:EspHeaderTotal] }

// Data returns the payload region, sized to cap(buf)-header, independent of Len.
// Callers index it with [0:Len+padding...] as needed.
func (p *Packet) Data() []byte { return p.buf[EspHeaderTotal:] }

// Raw returns the full underlying buffer (header + iv + data region).
func (p *Packet) Raw() []byte { return p.buf }

// SetPayload copies cleartext into the data region and sets Len.
func (p *Packet) SetPayload(cleartext []byte) {
	n := copy(p.Data(), cleartext)
	p.Len = n
}
