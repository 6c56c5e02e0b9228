package pipeline

import "context"

// Map transforms each value. An error from fn ends the stream.
func Map[I, O any](p *Pipeline[I], fn func(context.Context, I) (O, error)) *Pipeline[O] {
	return stage(p, func(ctx context.Context, src Iterator[I]) (out O, ok bool, err error) {
		v, ok, err := src.Next(ctx)
		if err != nil || !ok {
			return out, false, err
		}
		if out, err = fn(ctx, v); err != nil {
			return out, false, err
		}
		return out, true, nil
	})
}

// Filter keeps the values keep accepts.
func Filter[T any](p *Pipeline[T], keep func(T) bool) *Pipeline[T] {
	return stage(p, func(ctx context.Context, src Iterator[T]) (T, bool, error) {
		for {
			v, ok, err := src.Next(ctx)
			if err != nil || !ok || keep(v) {
				return v, ok, err
			}
		}
	})
}
