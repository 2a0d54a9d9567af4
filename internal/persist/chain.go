package persist

import (
	"context"
	"errors"
	"fmt"
)

// ErrEmpty is reported for a source that answered with nothing usable.
var ErrEmpty = errors.New("empty result")

// ErrExhausted is returned when every source in a chain failed.
var ErrExhausted = errors.New("all sources failed")

// Source is one step of a fallback chain.
type Source[T any] struct {
	Name  string
	Fetch func(ctx context.Context) (T, error)
}

// Chain tries its sources in order; the first one that returns a non-empty
// value without error wins.
type Chain[T any] struct {
	Sources []Source[T]
	// Empty reports whether a value counts as a miss. Nil means never.
	Empty func(T) bool
	// OnFailure is called for every source that did not win.
	OnFailure func(name string, err error)
}

// Resolve returns the winning value and the name of the source that
// produced it.
func (c Chain[T]) Resolve(ctx context.Context) (T, string, error) {
	var zero T
	var failures []error
	for _, src := range c.Sources {
		if err := ctx.Err(); err != nil {
			return zero, "", err
		}
		v, err := src.Fetch(ctx)
		if err == nil && c.Empty != nil && c.Empty(v) {
			err = ErrEmpty
		}
		if err != nil {
			if c.OnFailure != nil {
				c.OnFailure(src.Name, err)
			}
			failures = append(failures, fmt.Errorf("%s: %w", src.Name, err))
			continue
		}
		return v, src.Name, nil
	}
	return zero, "", fmt.Errorf("%w: %w", ErrExhausted, errors.Join(failures...))
}
