package security

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"
)

// ErrNoKey is returned when a zero Key is used.
var ErrNoKey = errors.New("security: key not derived")

// Encrypt pads plain with PKCS#7 and encrypts it as one AES-CBC message.
//
// The mode is unauthenticated and the IV is fixed per password, so equal
// plaintexts give equal ciphertexts. Decrypt relies on that to tolerate input
// that was never encrypted.
func Encrypt(plain []byte, key Key) ([]byte, error) {
	block, err := newBlock(key)
	if err != nil {
		return nil, err
	}
	padded := pad(plain, aes.BlockSize)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, key.iv).CryptBlocks(out, padded)
	return out, nil
}

// Decrypt reverses Encrypt. Input that cannot be ciphertext (empty, not a
// whole number of blocks, or with invalid padding once decrypted) is taken
// to be plaintext already and returned unchanged, with plaintext set to true.
func Decrypt(data []byte, key Key) (out []byte, plaintext bool, err error) {
	block, err := newBlock(key)
	if err != nil {
		return nil, false, err
	}
	if len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return data, true, nil
	}
	buf := make([]byte, len(data))
	cipher.NewCBCDecrypter(block, key.iv).CryptBlocks(buf, data)
	unpadded, ok := unpad(buf, aes.BlockSize)
	if !ok {
		return data, true, nil
	}
	return unpadded, false, nil
}

func newBlock(key Key) (cipher.Block, error) {
	if len(key.cipherKey) == 0 || len(key.iv) != aes.BlockSize {
		return nil, ErrNoKey
	}
	block, err := aes.NewCipher(key.cipherKey)
	if err != nil {
		return nil, fmt.Errorf("security: new cipher: %w", err)
	}
	return block, nil
}

func pad(b []byte, size int) []byte {
	n := size - len(b)%size
	return append(append(make([]byte, 0, len(b)+n), b...), bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(b []byte, size int) ([]byte, bool) {
	if len(b) == 0 || len(b)%size != 0 {
		return nil, false
	}
	n := int(b[len(b)-1])
	if n == 0 || n > size || n > len(b) {
		return nil, false
	}
	for _, x := range b[len(b)-n:] {
		if int(x) != n {
			return nil, false
		}
	}
	return b[:len(b)-n], true
}
