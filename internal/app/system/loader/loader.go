// Package loader runs the upstream fetches behind one page concurrently.
package loader

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Task is one fetch. It must honor ctx.
type Task func(ctx context.Context) error

// All runs tasks concurrently and waits for every one of them. The first
// error cancels the context handed to the rest and is the one returned;
// callers should then discard whatever the tasks stored.
func All(ctx context.Context, tasks ...Task) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, t := range tasks {
		g.Go(func() error { return t(gctx) })
	}
	return g.Wait()
}

// Into adapts a fetch returning a value into a Task that stores it in dst.
// dst is written only on success.
func Into[T any](dst *T, fetch func(ctx context.Context) (T, error)) Task {
	return func(ctx context.Context) error {
		v, err := fetch(ctx)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}
}

// Once defers fetch until the first call and then keeps its result, error
// included. Forms use it so reference data is loaded only when needed.
func Once[T any](fetch func(ctx context.Context) (T, error)) func(ctx context.Context) (T, error) {
	var (
		once sync.Once
		v    T
		err  error
	)
	return func(ctx context.Context) (T, error) {
		once.Do(func() { v, err = fetch(ctx) })
		return v, err
	}
}
