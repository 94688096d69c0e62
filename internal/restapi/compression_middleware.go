package restapi

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

// CompressionConfig holds configuration options for response compression
type CompressionConfig struct {
	// MinSize is the smallest response body, in bytes, that gets compressed.
	MinSize int
	// Level is the gzip level, 1-9.
	Level int
	// ContentTypes restricts compression to these media types. Empty means all.
	ContentTypes []string
}

func DefaultCompressionConfig() CompressionConfig {
	return CompressionConfig{
		MinSize:      1024,
		Level:        6,
		ContentTypes: []string{"application/json", "text/plain"},
	}
}

// NewCompressionMiddleware gzips responses according to config.
func NewCompressionMiddleware(config CompressionConfig) (func(http.Handler) http.Handler, error) {
	var wrap func(http.Handler) http.HandlerFunc
	var err error
	if len(config.ContentTypes) > 0 {
		wrap, err = gzhttp.NewWrapper(
			gzhttp.MinSize(config.MinSize),
			gzhttp.CompressionLevel(config.Level),
			gzhttp.ContentTypes(config.ContentTypes),
		)
	} else {
		wrap, err = gzhttp.NewWrapper(
			gzhttp.MinSize(config.MinSize),
			gzhttp.CompressionLevel(config.Level),
		)
	}
	if err != nil {
		return nil, err
	}
	return func(h http.Handler) http.Handler { return wrap(h) }, nil
}

// CompressionMiddleware applies gzip compression with default settings
func CompressionMiddleware(next http.Handler) http.Handler {
	wrap, err := NewCompressionMiddleware(DefaultCompressionConfig())
	if err != nil {
		return gzhttp.GzipHandler(next)
	}
	return wrap(next)
}
