package openapi

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// SourceKind enumerates the supported document origins.
type SourceKind string

const (
	SourceKindFile  SourceKind = "file"
	SourceKindURL   SourceKind = "url"
	SourceKindBytes SourceKind = "bytes"
)

// Source identifies where an OpenAPI document comes from.
type Source interface {
	Location() string
	Kind() SourceKind
}

// fileSource identifies on-disk OpenAPI documents.
type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }
func (s fileSource) Kind() SourceKind { return SourceKindFile }

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

// urlSource references an HTTP/HTTPS endpoint.
type urlSource struct {
	raw string
}

func (s urlSource) Location() string { return s.raw }
func (s urlSource) Kind() SourceKind { return SourceKindURL }

// SourceFromURL parses the supplied URL string and returns a Source. It
// panics if the URL is invalid to surface configuration mistakes early.
func SourceFromURL(raw string) Source {
	if raw == "" {
		panic("openapi: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		panic(fmt.Sprintf("openapi: invalid URL %q: %v", raw, err))
	}
	return urlSource{raw: raw}
}

// bytesSource carries an in-memory document, mostly for tests and embedding.
type bytesSource struct {
	name string
	data []byte
}

func (s bytesSource) Location() string { return s.name }
func (s bytesSource) Kind() SourceKind { return SourceKindBytes }

// SourceFromBytes wraps a raw document payload. The name is used in error
// messages only.
func SourceFromBytes(name string, data []byte) Source {
	return bytesSource{name: name, data: data}
}
