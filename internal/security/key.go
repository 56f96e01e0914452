// Package security derives symmetric keys from user passwords and uses them to
// protect the planner data file at rest. It also issues the bearer tokens the
// read-only viewer accepts. Nothing here keeps process-wide state: passwords,
// parameters and keys are always passed in.
package security

import (
	"crypto/aes"
	"crypto/sha256"
	"errors"

	"golang.org/x/crypto/pbkdf2"
)

// ErrEmptyPassword is returned when a key is requested for an empty password.
var ErrEmptyPassword = errors.New("password must not be empty")

// KDFParams controls password stretching.
//
// Fields:
//  Iterations – PBKDF2 rounds.
//  Salt       – fixed salt; the same password must always give the same key
//               so a file saved in one session opens in the next.
//  KeyLen     – AES key length in bytes (16, 24 or 32).
type KDFParams struct {
	Iterations int
	Salt       []byte
	KeyLen     int
}

// DefaultKDF is used when the configuration does not override it. The salt is
// deliberately constant: no per-file metadata is stored next to the data.
var DefaultKDF = KDFParams{
	Iterations: 65536,
	Salt:       []byte("cinema-planner.salt.v1"),
	KeyLen:     32,
}

// Key is the derived key material: the AES key plus the CBC IV.
type Key struct {
	cipherKey []byte
	iv        []byte
}

// DeriveKey stretches password with PBKDF2-HMAC-SHA256. The output is split
// into the AES key and a 16-byte IV, so derivation is fully deterministic.
func DeriveKey(password string, params KDFParams) (Key, error) {
	if password == "" {
		return Key{}, ErrEmptyPassword
	}
	if params.Iterations <= 0 {
		params.Iterations = DefaultKDF.Iterations
	}
	if len(params.Salt) == 0 {
		params.Salt = DefaultKDF.Salt
	}
	switch params.KeyLen {
	case 16, 24, 32:
	default:
		params.KeyLen = DefaultKDF.KeyLen
	}
	raw := pbkdf2.Key([]byte(password), params.Salt, params.Iterations, params.KeyLen+aes.BlockSize, sha256.New)
	return Key{cipherKey: raw[:params.KeyLen], iv: raw[params.KeyLen:]}, nil
}
