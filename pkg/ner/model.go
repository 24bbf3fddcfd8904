package ner

import (
	"context"
	"errors"
	"sync"
)

// ErrModelUnavailable is returned when a tagging model cannot be loaded.
var ErrModelUnavailable = errors.New("tagging model unavailable")

// Model tags text with named-entity labels. Implementations must be safe
// for concurrent use once loaded.
type Model interface {
	Tag(ctx context.Context, text string) ([]TaggedSpan, error)
}

// ModelLoader performs the expensive one-time initialization of a Model.
type ModelLoader func(ctx context.Context) (Model, error)

// ModelCache owns a lazily loaded Model. The loader runs at most once per
// cache; every later Get returns the same model, or the same load error.
//
// Create one ModelCache per process and pass it to every Extractor that
// should share the model.
type ModelCache struct {
	load  ModelLoader
	once  sync.Once
	model Model
	err   error
}

// NewModelCache creates a cache around load.
func NewModelCache(load ModelLoader) *ModelCache {
	return &ModelCache{load: load}
}

// NewLoadedModelCache wraps an already initialized model.
func NewLoadedModelCache(m Model) *ModelCache {
	return NewModelCache(func(context.Context) (Model, error) {
		return m, nil
	})
}

// Get returns the cached model, loading it on first use.
func (c *ModelCache) Get(ctx context.Context) (Model, error) {
	c.once.Do(func() {
		if c.load == nil {
			c.err = ErrModelUnavailable
			return
		}
		c.model, c.err = c.load(ctx)
		if c.err == nil && c.model == nil {
			c.err = ErrModelUnavailable
		}
	})
	return c.model, c.err
}
