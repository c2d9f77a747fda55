package esp

import "errors"

// ErrHMACMismatch means the trailing 12-byte tag didn't match. It never
// escapes the engine: callers wrap it in fortinet.CryptoError.
var ErrHMACMismatch = errors.New("esp: hmac mismatch")

// ErrShortPacket means the ciphertext region is smaller than one block
// plus the HMAC trailer, so it can't possibly be a valid ESP payload.
var ErrShortPacket = errors.New("esp: packet too short")

// ErrUnsupportedKeySize means CipherKeyBits named neither 128 nor 256.
var ErrUnsupportedKeySize = errors.New("esp: unsupported cipher key size")
