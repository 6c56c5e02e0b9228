package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/RichTeaMan/timer/duration"
	"github.com/RichTeaMan/timer/errors"
	"github.com/RichTeaMan/timer/runner"
	"github.com/RichTeaMan/timer/server"
	"github.com/RichTeaMan/timer/sse"
	"github.com/RichTeaMan/timer/timer"
	"github.com/RichTeaMan/timer/validation"
)

// StartRunRequest names a catalog key or carries an inline definition.
type StartRunRequest struct {
	Key        string            `json:"key"`
	Definition *timer.Definition `json:"definition"`
}

// RunResponse is returned when a run starts.
type RunResponse struct {
	ID       string         `json:"id"`
	Snapshot timer.Snapshot `json:"snapshot"`
}

// AdjustRequest carries the amount for extend and reduce, either as
// seconds or as a [[[D:]H:]M:]S duration.
type AdjustRequest struct {
	Seconds  int64  `json:"seconds"`
	Duration string `json:"duration"`
}

// Amount resolves the request to a positive number of seconds.
func (r AdjustRequest) Amount() (int64, error) {
	if r.Seconds == 0 && r.Duration == "" {
		return 0, errors.MissingField("seconds")
	}
	if r.Seconds != 0 && r.Duration != "" {
		return 0, errors.InvalidInput("body", "give seconds or duration, not both")
	}

	field, secs := "seconds", r.Seconds
	if r.Duration != "" {
		parsed, err := duration.Parse(r.Duration)
		if err != nil {
			return 0, err
		}
		field, secs = "duration", parsed
	}
	if err := validation.New().Positive(field, secs).Err(); err != nil {
		return 0, err
	}
	return secs, nil
}

// StartRun launches a run from {key} or {definition}.
func (h *Handler) StartRun(c *gin.Context) {
	var req StartRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, errors.InvalidFormat("body", "JSON").WithCause(err))
		return
	}

	var (
		r   *runner.Runner
		err error
	)
	switch {
	case req.Key != "" && req.Definition != nil:
		err = errors.InvalidInput("body", "give key or definition, not both")
	case req.Key != "":
		r, err = h.runs.Launch(req.Key)
	case req.Definition != nil:
		r, err = h.runs.LaunchDefinition(*req.Definition)
	default:
		err = errors.MissingField("key")
	}
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, RunResponse{ID: r.ID(), Snapshot: r.Snapshot()})
}

// ListRuns returns every active run.
func (h *Handler) ListRuns(c *gin.Context) {
	server.RespondOK(c, h.runs.List())
}

// GetRun returns the current snapshot of :id.
func (h *Handler) GetRun(c *gin.Context) {
	r, err := h.runs.Get(c.Param("id"))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, r.Snapshot())
}

// StopRun stops and forgets :id.
func (h *Handler) StopRun(c *gin.Context) {
	if err := h.runs.StopRun(c.Param("id")); err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondNoContent(c)
}

// RestartRun resets :id to its built state.
func (h *Handler) RestartRun(c *gin.Context) {
	h.mutate(c, func(ctx context.Context, r *runner.Runner) error {
		return r.Restart(ctx)
	})
}

// ExtendEvent lengthens :event.
func (h *Handler) ExtendEvent(c *gin.Context) {
	h.adjust(c, (*runner.Runner).Extend)
}

// ReduceEvent shortens :event.
func (h *Handler) ReduceEvent(c *gin.Context) {
	h.adjust(c, (*runner.Runner).Reduce)
}

// CompleteEvent force-completes :event.
func (h *Handler) CompleteEvent(c *gin.Context) {
	event := c.Param("event")
	h.mutate(c, func(ctx context.Context, r *runner.Runner) error {
		return r.ForceComplete(ctx, event)
	})
}

// PauseEvent pauses or resumes :event.
func (h *Handler) PauseEvent(c *gin.Context) {
	event := c.Param("event")
	h.mutate(c, func(ctx context.Context, r *runner.Runner) error {
		return r.TogglePause(ctx, event)
	})
}

func (h *Handler) adjust(c *gin.Context, apply func(*runner.Runner, context.Context, string, int64) error) {
	var req AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, errors.InvalidFormat("body", "JSON").WithCause(err))
		return
	}
	secs, err := req.Amount()
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	event := c.Param("event")
	h.mutate(c, func(ctx context.Context, r *runner.Runner) error {
		return apply(r, ctx, event, secs)
	})
}

// mutate applies fn to :id and responds with the resulting snapshot.
func (h *Handler) mutate(c *gin.Context, fn func(context.Context, *runner.Runner) error) {
	id := c.Param("id")
	if err := h.runs.Mutate(c.Request.Context(), id, fn); err != nil {
		server.RespondWithError(c, err)
		return
	}
	r, err := h.runs.Get(id)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, r.Snapshot())
}

// StreamRun streams the events of :id. The first frame after connecting is
// the current snapshot.
func (h *Handler) StreamRun(c *gin.Context) {
	id := c.Param("id")
	r, err := h.runs.Get(id)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	snap := r.Snapshot()
	data, err := json.Marshal(runner.Event{Type: runner.EventTick, RunID: id, Snapshot: &snap})
	if err != nil {
		server.RespondWithError(c, errors.Internal(err))
		return
	}

	clientID := fmt.Sprintf("run:%s:%s", id, uuid.NewString())
	sse.ServeSSE(h.hub, c.Writer, c.Request, clientID, sse.StreamOptions{
		KeepAlive: h.keepAlive,
		Initial:   []sse.Frame{{Event: string(runner.EventTick), Data: data}},
	}, sse.WithRunID(id))
}
