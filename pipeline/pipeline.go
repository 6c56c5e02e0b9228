package pipeline

import "context"

// Iterator pulls values one at a time. Next reports ok=false once the
// source is exhausted.
type Iterator[T any] interface {
	Next(ctx context.Context) (value T, ok bool, err error)
	Close() error
}

// Pipeline is a lazy stream. Each terminal call opens a fresh iterator
// chain.
type Pipeline[T any] struct {
	open func(ctx context.Context) Iterator[T]
}

// iterator adapts a pair of closures to Iterator.
type iterator[T any] struct {
	next  func(ctx context.Context) (T, bool, error)
	close func() error
}

func (it iterator[T]) Next(ctx context.Context) (T, bool, error) { return it.next(ctx) }

func (it iterator[T]) Close() error {
	if it.close == nil {
		return nil
	}
	return it.close()
}

// stage derives a pipeline whose iterator reads from p's and closes it.
func stage[I, O any](p *Pipeline[I], next func(ctx context.Context, src Iterator[I]) (O, bool, error)) *Pipeline[O] {
	return &Pipeline[O]{open: func(ctx context.Context) Iterator[O] {
		src := p.open(ctx)
		return iterator[O]{
			next:  func(ctx context.Context) (O, bool, error) { return next(ctx, src) },
			close: src.Close,
		}
	}}
}

// FromSlice streams items in order.
func FromSlice[T any](items []T) *Pipeline[T] {
	return &Pipeline[T]{open: func(context.Context) Iterator[T] {
		rest := items
		return iterator[T]{next: func(context.Context) (v T, ok bool, _ error) {
			if len(rest) == 0 {
				return v, false, nil
			}
			v, rest = rest[0], rest[1:]
			return v, true, nil
		}}
	}}
}

// FromChannel streams values until ch is closed. A done context ends the
// stream with ctx.Err().
func FromChannel[T any](ch <-chan T) *Pipeline[T] {
	return &Pipeline[T]{open: func(context.Context) Iterator[T] {
		return iterator[T]{next: func(ctx context.Context) (v T, ok bool, err error) {
			select {
			case v, ok = <-ch:
				return v, ok, nil
			case <-ctx.Done():
				return v, false, ctx.Err()
			}
		}}
	}}
}

// ForEach pulls every value through fn. It stops at the first error from
// the pipeline or from fn.
func ForEach[T any](ctx context.Context, p *Pipeline[T], fn func(context.Context, T) error) error {
	it := p.open(ctx)
	defer it.Close()
	for {
		v, ok, err := it.Next(ctx)
		if err != nil || !ok {
			return err
		}
		if err := fn(ctx, v); err != nil {
			return err
		}
	}
}

// Collect gathers every value. On error it returns what was gathered so far.
func Collect[T any](ctx context.Context, p *Pipeline[T]) ([]T, error) {
	var out []T
	err := ForEach(ctx, p, func(_ context.Context, v T) error {
		out = append(out, v)
		return nil
	})
	return out, err
}
