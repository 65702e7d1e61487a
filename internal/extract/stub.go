//go:build !cgo

package extract

import (
	"context"
	"errors"

	"repolens/internal/model"
)

// ErrUnavailable is returned when repolens was built without cgo and the
// tree-sitter extractor cannot run.
var ErrUnavailable = errors.New("tree-sitter extraction requires a cgo-enabled build")

// JavaExtractor is a stub for non-cgo builds.
type JavaExtractor struct{}

// NewJavaExtractor creates a Java extractor stub.
func NewJavaExtractor() *JavaExtractor {
	return &JavaExtractor{}
}

// Extract always fails on non-cgo builds.
func (e *JavaExtractor) Extract(ctx context.Context, path string) (*model.SourceFileRecord, error) {
	return nil, ErrUnavailable
}
