// Package sdk is the boundary with the external provenance toolkit that
// verifies an asset and extracts its manifest store. pramaan never parses or
// verifies manifests itself; it consumes what a Reader returns.
package sdk

import (
	"context"

	"github.com/sonnes/pramaan/manifest"
)

// Reader extracts the manifest store embedded in an asset.
type Reader interface {
	Read(ctx context.Context, data []byte) (*Store, error)
}

// ReaderFunc adapts a function to Reader.
type ReaderFunc func(ctx context.Context, data []byte) (*Store, error)

// Read implements Reader.
func (f ReaderFunc) Read(ctx context.Context, data []byte) (*Store, error) {
	return f(ctx, data)
}

// Resources locate the toolkit's auxiliary files. They are handed to the
// loader verbatim and never validated here.
type Resources struct {
	CodecSrc  string // codec binary or module
	WorkerSrc string // background worker script or settings file
}

// Store is the result of reading one asset.
type Store struct {
	// ActiveManifest describes the asset's current state, with each
	// ingredient's own manifest nested under "manifest". Absent when the
	// asset carries no credentials.
	ActiveManifest manifest.Value
	// Source describes the asset itself; its "thumbnail" is preferred over
	// the asset URL for the first card.
	Source manifest.Value
	// ValidationStatus lists validation codes reported by the toolkit.
	ValidationStatus []string
}

// HasActive reports whether the store carries an active manifest.
func (s *Store) HasActive() bool {
	return s != nil && !s.ActiveManifest.IsNil()
}
