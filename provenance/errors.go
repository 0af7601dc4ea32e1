package provenance

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure a walk reports matches exactly one of them
// under errors.Is.
var (
	ErrAssetMissing  = errors.New("asset missing")
	ErrAssetFetch    = errors.New("asset fetch failed")
	ErrSDKInit       = errors.New("provenance toolkit init failed")
	ErrManifestRead  = errors.New("manifest read failed")
	ErrUnexpected    = errors.New("unexpected error")
	errNoImageToShow = errors.New("No image found to inspect.")
)

// Error is a classified walk failure. Its message is the underlying error's,
// which is what the viewer shows.
type Error struct {
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the error's kind.
func (e *Error) Is(target error) bool { return target == e.Kind }

// KindOf returns the kind of err, or ErrUnexpected when it is unclassified.
func KindOf(err error) error {
	var pe *Error
	if errors.As(err, &pe) && pe.Kind != nil {
		return pe.Kind
	}
	return ErrUnexpected
}

func classify(kind, err error) *Error {
	var pe *Error
	if errors.As(err, &pe) {
		return pe
	}
	return &Error{Kind: kind, Err: err}
}

// FetchError is a non-success response to an asset fetch.
type FetchError struct {
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("Image fetch failed (%d)", e.Status)
}

func (e *FetchError) Unwrap() error { return e.Err }
