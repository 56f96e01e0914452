package storage

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/iliyamo/cinema-planner/internal/planner"
	"github.com/iliyamo/cinema-planner/internal/security"
)

// EncryptedStorage keeps the XML document encrypted with a password-derived
// key. The file carries no marker saying whether it is encrypted, so Load
// accepts a plaintext file too and the next Save encrypts it.
type EncryptedStorage struct {
	inner *XMLStorage
	key   security.Key
	log   *zap.Logger
}

// NewEncryptedStorage wraps inner with key. log may be nil.
func NewEncryptedStorage(inner *XMLStorage, key security.Key, log *zap.Logger) *EncryptedStorage {
	if log == nil {
		log = zap.NewNop()
	}
	return &EncryptedStorage{inner: inner, key: key, log: log}
}

func (s *EncryptedStorage) Path() string { return s.inner.path }

// Load decrypts the data file in memory and parses it.
func (s *EncryptedStorage) Load() (*planner.Planner, error) {
	data, err := readFile(s.inner.path)
	if err != nil {
		return nil, err
	}
	plain, wasPlain, err := security.Decrypt(data, s.key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.inner.path, err)
	}
	p, err := decode(s.inner.path, plain, s.inner.opts...)
	switch {
	case err != nil:
		// under a wrong key the padding check usually fails and the ciphertext
		// is handed to the parser as if it were plaintext
		s.log.Error("data file neither decrypts nor parses; PLANNER_PASSWORD is probably wrong",
			zap.String("path", s.inner.path),
			zap.Bool("padding_ok", !wasPlain),
			zap.Error(err))
		return nil, err
	case wasPlain:
		s.log.Info("data file is not encrypted; it will be encrypted on next save",
			zap.String("path", s.inner.path))
	}
	return p, nil
}

// Save serializes p, encrypts the document and replaces the data file.
func (s *EncryptedStorage) Save(p planner.ReadOnlyPlanner) error {
	data, err := encode(p)
	if err != nil {
		return &IOError{Op: "encode", Path: s.inner.path, Err: err}
	}
	sealed, err := security.Encrypt(data, s.key)
	if err != nil {
		return fmt.Errorf("save %s: %w", s.inner.path, err)
	}
	return writeFile(s.inner.path, sealed)
}
