package embedding

import (
	"fmt"

	"github.com/hyperjump/fitscout/pkg/utils"
	"go.uber.org/zap"
)

// Provider names accepted by New.
const (
	ProviderONNX = "onnx"
	ProviderHash = "hash"
	ProviderNone = "none"
)

// Options configures New.
type Options struct {
	Provider   string
	ModelPath  string
	OutputName string
	Dimensions int
	MaxTokens  int
	CacheSize  int
}

// New returns the embedder for opts.Provider. The ONNX embedder is wrapped in a
// LazyEmbedder so the model is only loaded when a ranking call needs it.
// ProviderNone returns a nil Embedder and no error.
func New(opts Options, logger *zap.Logger) (Embedder, error) {
	logger = utils.Named(logger, "embedding")
	switch opts.Provider {
	case ProviderONNX:
		return NewLazyEmbedder(func() (Embedder, error) {
			logger.Info("loading embedding model", zap.String("path", opts.ModelPath))
			e, err := NewONNXEmbedder(opts)
			if err != nil {
				logger.Error("failed to load embedding model", zap.Error(err))
				return nil, err
			}
			return e, nil
		}, opts.Dimensions), nil
	case ProviderHash:
		return NewHashEmbedder(opts.Dimensions), nil
	case ProviderNone, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q (supported: onnx, hash, none)", opts.Provider)
	}
}
