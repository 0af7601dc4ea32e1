package sdk

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Loader brings up a toolkit and returns its Reader.
type Loader func(ctx context.Context, res Resources) (Reader, error)

// ErrNotInitialized is returned by Get before a successful Init.
var ErrNotInitialized = errors.New("provenance toolkit not initialized")

// Runtime is the process-wide toolkit handle. The loader runs at most once
// successfully; afterwards every caller shares the same Reader. A failed load
// is not cached, so the next Init tries again.
type Runtime struct {
	loader Loader
	res    Resources

	mu     sync.Mutex
	reader Reader
}

// NewRuntime returns an uninitialized Runtime.
func NewRuntime(loader Loader, res Resources) *Runtime {
	return &Runtime{loader: loader, res: res}
}

// Init loads the toolkit if it is not loaded yet and returns its Reader.
// Concurrent callers block until the first load finishes.
func (r *Runtime) Init(ctx context.Context) (Reader, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.reader != nil {
		return r.reader, nil
	}
	if r.loader == nil {
		return nil, errors.New("no provenance toolkit configured")
	}

	reader, err := r.loader(ctx, r.res)
	if err != nil {
		return nil, err
	}
	if reader == nil {
		return nil, fmt.Errorf("provenance toolkit loader returned no reader")
	}
	r.reader = reader
	return reader, nil
}

// IsInitialized reports whether Init has succeeded.
func (r *Runtime) IsInitialized() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reader != nil
}

// Get returns the Reader loaded by Init.
func (r *Runtime) Get() (Reader, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.reader == nil {
		return nil, ErrNotInitialized
	}
	return r.reader, nil
}

// Resources returns the locations the runtime was configured with.
func (r *Runtime) Resources() Resources {
	return r.res
}
