package security

import (
	"fmt"
	"os"
)

// EncryptFile reads src whole, encrypts it and writes the result to dst.
// src and dst may name the same file.
func EncryptFile(src, dst string, key Key) error {
	plain, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("encrypt %s: %w", src, err)
	}
	out, err := Encrypt(plain, key)
	if err != nil {
		return fmt.Errorf("encrypt %s: %w", src, err)
	}
	if err := os.WriteFile(dst, out, 0o600); err != nil {
		return fmt.Errorf("encrypt %s: %w", dst, err)
	}
	return nil
}

// DecryptFile reads src whole, decrypts it and writes the result to dst. A
// src that is already plaintext is copied through unchanged; the returned
// bool reports that case so callers can log it.
func DecryptFile(src, dst string, key Key) (plaintext bool, err error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return false, fmt.Errorf("decrypt %s: %w", src, err)
	}
	out, plaintext, err := Decrypt(data, key)
	if err != nil {
		return false, fmt.Errorf("decrypt %s: %w", src, err)
	}
	if err := os.WriteFile(dst, out, 0o600); err != nil {
		return false, fmt.Errorf("decrypt %s: %w", dst, err)
	}
	return plaintext, nil
}
