// Package jsonstore reads manifest stores that were exported to JSON ahead of
// time, either by the JavaScript toolkit or by `c2patool <asset>`.
package jsonstore

import (
	"context"

	"github.com/sonnes/pramaan/sdk"
)

// Reader decodes the bytes handed to it as a manifest store document.
type Reader struct{}

// Load needs no resources.
func Load(ctx context.Context, res sdk.Resources) (sdk.Reader, error) {
	return Reader{}, nil
}

// Read implements sdk.Reader.
func (Reader) Read(ctx context.Context, data []byte) (*sdk.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return sdk.DecodeStore(data)
}
