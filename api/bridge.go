package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/RichTeaMan/timer/logger"
	"github.com/RichTeaMan/timer/pipeline"
	"github.com/RichTeaMan/timer/runner"
	"github.com/RichTeaMan/timer/sse"
)

// RunPattern matches the SSE client IDs watching a run.
func RunPattern(runID string) string {
	return fmt.Sprintf("run:%s:*", runID)
}

type frame struct {
	event string
	data  []byte
}

// Bridge returns an OnLaunch hook that forwards a runner's events to the
// hub until the runner is closed. Tick events closer together than tickGap
// are dropped. Every other event is forwarded.
func Bridge(hub sse.Broadcaster, buffer int, tickGap time.Duration) func(*runner.Runner) {
	log := logger.Get("api")
	encode := func(_ context.Context, e runner.Event) (frame, error) {
		data, err := json.Marshal(e)
		if err != nil {
			log.Error("encoding run event", logger.Fields(logger.FieldRunID, e.RunID, logger.FieldError, err.Error()))
		}
		return frame{event: string(e.Type), data: data}, nil
	}

	return func(r *runner.Runner) {
		events, _ := r.Subscribe(buffer)
		pattern := RunPattern(r.ID())

		ticks := pipeline.ThrottleWhere(pipeline.FromChannel(events), tickGap, func(e runner.Event) bool {
			return e.Type == runner.EventTick
		})
		frames := pipeline.Filter(pipeline.Map(ticks, encode), func(f frame) bool {
			return f.data != nil
		})

		go func() {
			_ = pipeline.ForEach(context.Background(), frames, func(_ context.Context, f frame) error {
				hub.Broadcast(pattern, f.event, f.data)
				return nil
			})
		}()
	}
}
