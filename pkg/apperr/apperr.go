// Package apperr enumerates the error kinds callers are allowed to react to.
// Handlers and the session manager decide user-visible formatting; everything
// below them wraps causes with one of these kinds.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a lookup of an unknown document id.
	ErrNotFound = errors.New("not found")
	// ErrEmptyInput marks ingestion input with no usable text.
	ErrEmptyInput = errors.New("empty input")
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindStorage
	KindEmbedding
	KindGeneration
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindStorage:
		return "storage"
	case KindEmbedding:
		return "embedding"
	case KindGeneration:
		return "generation"
	}
	return "unknown"
}

type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %v", e.Kind, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

func Validation(err error) error { return &Error{Kind: KindValidation, Err: err} }
func Storage(err error) error    { return &Error{Kind: KindStorage, Err: err} }
func Embedding(err error) error  { return &Error{Kind: KindEmbedding, Err: err} }
func Generation(err error) error { return &Error{Kind: KindGeneration, Err: err} }

// IsKind reports whether err carries the given kind anywhere in its chain.
func IsKind(err error, k Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == k
}
