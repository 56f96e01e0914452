package storage

import (
	"errors"

	"go.uber.org/zap"

	"github.com/iliyamo/cinema-planner/internal/planner"
	"github.com/iliyamo/cinema-planner/internal/security"
)

// Options selects how Open builds a Storage.
type Options struct {
	Path          string
	Encrypt       bool
	Password      string
	KDFIterations int // 0 keeps security.DefaultKDF
	Log           *zap.Logger
	Planner       []planner.Option // applied to loaded planners
}

// Open returns encrypted storage when o.Encrypt is set and plain XML storage
// otherwise. Key derivation happens here, once per process.
func Open(o Options) (Storage, error) {
	inner := NewXMLStorage(o.Path, o.Planner...)
	if !o.Encrypt {
		return inner, nil
	}
	params := security.DefaultKDF
	if o.KDFIterations > 0 {
		params.Iterations = o.KDFIterations
	}
	key, err := security.DeriveKey(o.Password, params)
	if err != nil {
		return nil, err
	}
	return NewEncryptedStorage(inner, key, o.Log), nil
}

// LoadOrSample loads store. A missing data file yields the sample data and a
// malformed one yields an empty planner; both are logged. Only read failures
// are returned as errors.
func LoadOrSample(store Storage, log *zap.Logger, opts ...planner.Option) (*planner.Planner, error) {
	if log == nil {
		log = zap.NewNop()
	}
	p, err := store.Load()
	switch {
	case err == nil:
		return p, nil
	case errors.Is(err, ErrFileNotFound):
		log.Info("data file not found; starting with sample data", zap.String("path", store.Path()))
		return planner.FromSnapshot(planner.SampleData(), opts...), nil
	case errors.Is(err, ErrFormat):
		log.Warn("data file is not in the correct format; starting with an empty planner",
			zap.String("path", store.Path()),
			zap.Error(err))
		return planner.New(opts...), nil
	default:
		return nil, err
	}
}
