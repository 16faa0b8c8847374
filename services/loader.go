package services

import (
	"context"
	"log"
)

// Fetch reads a collection, most recent first.
type Fetch[T any] func(ctx context.Context) ([]T, error)

// Loaded is the sequence a page renders.
type Loaded[T any] struct {
	Items []T `json:"items"`
	// Fallback is true when Items is the compiled-in default collection.
	Fallback bool `json:"fallback"`
}

// ListLoader reads one collection per page visit and falls back to a fixed
// default collection when the read fails or finds nothing. Failures are
// logged and never reach the visitor. There are no retries and nothing is
// cached between visits.
type ListLoader[T any] struct {
	name     string
	fetch    Fetch[T]
	fallback []T
}

// NewListLoader returns a loader for the named collection.
func NewListLoader[T any](name string, fetch Fetch[T], fallback []T) *ListLoader[T] {
	return &ListLoader[T]{name: name, fetch: fetch, fallback: fallback}
}

// Load issues exactly one fetch.
func (l *ListLoader[T]) Load(ctx context.Context) Loaded[T] {
	items, err := l.fetch(ctx)
	if err != nil {
		log.Printf("[loader] failed to load %s, using defaults: %v", l.name, err)
		return l.defaults()
	}
	if len(items) == 0 {
		return l.defaults()
	}
	return Loaded[T]{Items: items}
}

func (l *ListLoader[T]) defaults() Loaded[T] {
	items := make([]T, len(l.fallback))
	copy(items, l.fallback)
	return Loaded[T]{Items: items, Fallback: true}
}
