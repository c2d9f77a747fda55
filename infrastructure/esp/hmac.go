package esp

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"hash"

	"fortivpn/application"
)

// truncatedHMAC implements application.HMAC the same way
// infrastructure/cryptography/hmac.CryptoHMAC does (generate with
// crypto/hmac, compare with the constant-time crypto/hmac.Equal), but
// parametrized over the hash and truncated to the 12 bytes the ESP
// wire format reserves for the tag (spec.md §4.1).
type truncatedHMAC struct {
	newHash func() hash.Hash
	key     []byte
}

// NewHMAC builds the ESP HMAC for the negotiated algorithm. sha1 selects
// HMAC-SHA1; otherwise HMAC-MD5 is used, matching spec.md's "HMAC is
// MD5 or SHA-1 truncated to 12 bytes".
func NewHMAC(key []byte, sha1Algo bool) application.HMAC {
	newHash := md5.New
	if sha1Algo {
		newHash = sha1.New
	}
	return &truncatedHMAC{newHash: newHash, key: key}
}

func (h *truncatedHMAC) Generate(data []byte) ([]byte, error) {
	mac := hmac.New(h.newHash, h.key)
	mac.Write(data)
	return mac.Sum(nil)[:fortinetHMACSize], nil
}

func (h *truncatedHMAC) Verify(data, signature []byte) error {
	expected, err := h.Generate(data)
	if err != nil {
		return err
	}
	if !hmac.Equal(expected, signature) {
		return ErrHMACMismatch
	}
	return nil
}

const fortinetHMACSize = 12
