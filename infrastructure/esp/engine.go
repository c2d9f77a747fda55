package esp

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"

	"fortivpn/application"
	"fortivpn/domain/fortinet"
)

// Engine implements application.EspCryptographyService using
// crypto/aes + crypto/cipher for CBC framing and infrastructure/esp's
// truncatedHMAC for authentication, the same two-primitive split the
// teacher uses for its own data-plane crypto (application.HMAC +
// a block/AEAD cipher built per packet from session key material).
//
// Engine holds no per-SA state of its own: cipher.Block is stateless
// and rebuilt from the SA's key on every call, so there is nothing to
// destroy beyond zeroing caller-owned key material, which Destroy does
// not attempt (keys are owned by the SA, not the Engine).
type Engine struct{}

func NewEngine() application.EspCryptographyService {
	return &Engine{}
}

func keySize(bits int) (int, error) {
	switch bits {
	case 128:
		return 16, nil
	case 256:
		return 32, nil
	default:
		return 0, ErrUnsupportedKeySize
	}
}

func (e *Engine) block(sa *fortinet.SecurityAssociation) (cipher.Block, error) {
	n, err := keySize(sa.Algo.CipherKeyBits)
	if err != nil {
		return nil, err
	}
	if len(sa.EncKey) < n {
		return nil, ErrUnsupportedKeySize
	}
	return aes.NewCipher(sa.EncKey[:n])
}

func (e *Engine) hmac(sa *fortinet.SecurityAssociation) application.HMAC {
	return NewHMAC(sa.HMACKey, sa.Algo.HMACIsSHA1)
}

// Encrypt implements spec.md §4.1's encrypt procedure.
func (e *Engine) Encrypt(sa *fortinet.SecurityAssociation, pkt *fortinet.Packet) (int, error) {
	seq, err := sa.NextSeq()
	if err != nil {
		return 0, err
	}

	binary.BigEndian.PutUint32(pkt.SPI(), sa.SPI)
	binary.BigEndian.PutUint32(pkt.Seq(), seq)

	payloadLen := pkt.Len
	padlen := fortinet.EspBlockSize - 1 - ((payloadLen + 1) % fortinet.EspBlockSize)

	data := pkt.Data()
	for i := 0; i < padlen; i++ {
		data[payloadLen+i] = byte(i + 1)
	}
	data[payloadLen+padlen] = byte(padlen)
	data[payloadLen+padlen+1] = 0x04 // next header: IPv4
	total := payloadLen + padlen + 2

	copy(pkt.IV(), sa.IV[:])

	block, err := e.block(sa)
	if err != nil {
		return 0, fortinet.NewCryptoError(err)
	}
	cipher.NewCBCEncrypter(block, pkt.IV()).CryptBlocks(data[:total], data[:total])

	tag, err := e.hmac(sa).Generate(pkt.Raw()[:fortinet.EspHeaderTotal+total])
	if err != nil {
		return 0, fortinet.NewCryptoError(err)
	}
	copy(data[total:total+fortinet.EspHMACSize], tag)

	// IV chaining invariant (spec.md §4.1 step 6): the next outbound IV
	// is the last ciphertext block run once more through the cipher,
	// so it's unpredictable to an observer who only sees this packet.
	lastBlock := data[total-fortinet.EspBlockSize : total]
	block.Encrypt(sa.IV[:], lastBlock)

	return fortinet.EspHeaderTotal + total + fortinet.EspHMACSize, nil
}

// Decrypt implements spec.md §4.1's decrypt procedure. pkt.Len on entry
// is the ciphertext payload length; the HMAC tag follows it in Data().
func (e *Engine) Decrypt(sa *fortinet.SecurityAssociation, pkt *fortinet.Packet) error {
	if pkt.Len < fortinet.EspBlockSize {
		return fortinet.NewCryptoError(ErrShortPacket)
	}

	data := pkt.Data()
	tag := data[pkt.Len : pkt.Len+fortinet.EspHMACSize]
	signed := pkt.Raw()[:fortinet.EspHeaderTotal+pkt.Len]
	if err := e.hmac(sa).Verify(signed, tag); err != nil {
		return fortinet.NewCryptoError(err)
	}

	seq := binary.BigEndian.Uint32(pkt.Seq())
	if sa.Window == nil {
		return fortinet.NewCryptoError(ErrShortPacket)
	}
	if err := sa.Window.Check(seq); err != nil {
		return err // fortinet.ErrReplay: silent, non-fatal
	}

	block, err := e.block(sa)
	if err != nil {
		return fortinet.NewCryptoError(err)
	}
	cipher.NewCBCDecrypter(block, pkt.IV()).CryptBlocks(data[:pkt.Len], data[:pkt.Len])

	sa.Window.Accept(seq)
	return nil
}

func (e *Engine) Destroy() {}
