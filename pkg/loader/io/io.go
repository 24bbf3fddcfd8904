package io

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/OFFIS-RIT/plotline/pkg/loader"

	"golang.org/x/sync/singleflight"
)

// IOTextLoader loads files directly from the local filesystem with caching.
type IOTextLoader struct {
	maxBytes int64

	cache   map[string][]byte
	cacheMu sync.RWMutex
	group   singleflight.Group
}

// NewIOTextLoaderParams configures an IOTextLoader. MaxBytes rejects larger
// files; zero means no limit.
type NewIOTextLoaderParams struct {
	MaxBytes int64
}

// NewIOTextLoader creates a new filesystem-based file loader.
func NewIOTextLoader(params NewIOTextLoaderParams) *IOTextLoader {
	return &IOTextLoader{
		maxBytes: params.MaxBytes,
		cache:    make(map[string][]byte),
	}
}

// GetFileBytes reads the file content from the filesystem. Results are cached.
func (l *IOTextLoader) GetFileBytes(ctx context.Context, file loader.TextFile) ([]byte, error) {
	key := loader.CacheKey(file)

	l.cacheMu.RLock()
	if cached, ok := l.cache[key]; ok {
		l.cacheMu.RUnlock()
		return cached, nil
	}
	l.cacheMu.RUnlock()

	result, err, _ := l.group.Do(key, func() (any, error) {
		l.cacheMu.RLock()
		if cached, ok := l.cache[key]; ok {
			l.cacheMu.RUnlock()
			return cached, nil
		}
		l.cacheMu.RUnlock()

		if l.maxBytes > 0 {
			info, err := os.Stat(file.Path)
			if err != nil {
				return nil, err
			}
			if info.Size() > l.maxBytes {
				return nil, fmt.Errorf("file %s exceeds %d bytes", file.Path, l.maxBytes)
			}
		}

		result, err := os.ReadFile(file.Path)
		if err != nil {
			return nil, err
		}

		l.cacheMu.Lock()
		l.cache[key] = result
		l.cacheMu.Unlock()

		return result, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}
