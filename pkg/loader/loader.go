// Package loader fetches narrative text from the local filesystem, S3 or
// the web and decodes it to UTF-8.
package loader

import (
	"context"
	"errors"
)

// ErrUnsupportedSource is returned when no loader is registered for the
// requested source type.
var ErrUnsupportedSource = errors.New("unsupported text source")

type SourceType string

const (
	SourceTypeFile SourceType = "file"
	SourceTypeS3   SourceType = "s3"
	SourceTypeWeb  SourceType = "web"
)

// TextFile is a document whose text is retrieved through its Loader. Path
// is interpreted by the loader: a filesystem path, an object key or a URL.
type TextFile struct {
	ID     string
	Path   string
	Type   SourceType
	Loader TextLoader
}

// NewTextFileParams defines the input parameters for creating a TextFile.
type NewTextFileParams struct {
	ID     string
	Path   string
	Loader TextLoader
}

// NewTextFile creates a TextFile of the given source type.
func NewTextFile(params NewTextFileParams, sourceType SourceType) TextFile {
	return TextFile{
		ID:     params.ID,
		Path:   params.Path,
		Type:   sourceType,
		Loader: params.Loader,
	}
}

// GetText retrieves the file through its Loader and decodes it.
//
// Example:
//
//	text, err := file.GetText(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(text)
func (f *TextFile) GetText(ctx context.Context) (string, error) {
	if f.Loader == nil {
		return "", ErrUnsupportedSource
	}
	raw, err := f.Loader.GetFileBytes(ctx, *f)
	if err != nil {
		return "", err
	}
	return DecodeText(raw)
}

// TextLoader defines the interface for loading the raw bytes of a TextFile.
// Implementations may load files from disk, cloud storage, or other sources.
type TextLoader interface {
	GetFileBytes(ctx context.Context, file TextFile) ([]byte, error)
}

// CacheKey generates a unique cache key for a TextFile based on its ID and path.
func CacheKey(file TextFile) string {
	return file.ID + ":" + file.Path
}

// Registry maps source types to loaders.
type Registry map[SourceType]TextLoader

// File builds a TextFile for path using the loader registered for
// sourceType.
func (r Registry) File(id string, sourceType SourceType, path string) (TextFile, error) {
	l, ok := r[sourceType]
	if !ok || l == nil {
		return TextFile{}, ErrUnsupportedSource
	}
	return NewTextFile(NewTextFileParams{ID: id, Path: path, Loader: l}, sourceType), nil
}
