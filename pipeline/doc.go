// Package pipeline provides small pull-based stream operators over
// iterators and channels.
//
// Pipelines are lazy. No work happens until values are pulled with Collect
// or ForEach, and each stage pulls from the one before it on demand.
//
//	events := pipeline.FromChannel(ch)
//	frames := pipeline.ThrottleWhere(events, 250*time.Millisecond, isTick)
//	err := pipeline.ForEach(ctx, frames, publish)
package pipeline
