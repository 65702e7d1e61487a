// Package extract normalizes parsed source files into SourceFileRecords.
//
// The concrete extractor is tree-sitter based; the orchestrator depends only
// on the Extractor interface so alternative front ends can be plugged in.
package extract

import (
	"context"

	"repolens/internal/model"
)

// Extractor turns one source file into its structural record. Extract must be
// a pure function of the file contents: implementations share no mutable
// state between calls, so one extractor can serve many workers.
type Extractor interface {
	Extract(ctx context.Context, path string) (*model.SourceFileRecord, error)
}
