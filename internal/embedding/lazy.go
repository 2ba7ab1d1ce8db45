package embedding

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/hyperjump/fitscout/internal/models"
)

// Constructor builds the wrapped embedder on first use.
type Constructor func() (Embedder, error)

// LazyEmbedder defers construction of an expensive embedder until the first Embed call.
// Construction runs at most once; concurrent first callers wait for the same construction.
// A failed construction is remembered and returned to every later caller.
type LazyEmbedder struct {
	newFn      Constructor
	dimensions int

	once   sync.Once
	inner  Embedder
	err    error
	loaded atomic.Bool
}

// NewLazyEmbedder wraps newFn. dimensions is reported before the embedder is built.
func NewLazyEmbedder(newFn Constructor, dimensions int) *LazyEmbedder {
	return &LazyEmbedder{newFn: newFn, dimensions: dimensions}
}

func (l *LazyEmbedder) get() (Embedder, error) {
	l.once.Do(func() {
		inner, err := l.newFn()
		if err != nil {
			l.err = fmt.Errorf("%w: %w", models.ErrEmbedderUnavailable, err)
			return
		}
		l.inner = inner
		l.loaded.Store(true)
	})
	return l.inner, l.err
}

// Embed builds the embedder if needed and embeds text.
func (l *LazyEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	inner, err := l.get()
	if err != nil {
		return nil, err
	}
	return inner.Embed(ctx, text)
}

// EmbedBatch builds the embedder if needed and embeds texts.
func (l *LazyEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	inner, err := l.get()
	if err != nil {
		return nil, err
	}
	return inner.EmbedBatch(ctx, texts)
}

// Dimensions returns the configured dimension without building the embedder.
func (l *LazyEmbedder) Dimensions() int {
	return l.dimensions
}

// Loaded reports whether the wrapped embedder has been built successfully.
func (l *LazyEmbedder) Loaded() bool {
	return l.loaded.Load()
}

// Close closes the wrapped embedder if it was built.
func (l *LazyEmbedder) Close() error {
	if !l.loaded.Load() {
		return nil
	}
	return l.inner.Close()
}
