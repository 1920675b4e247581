// Package task holds the task controller: per-task state, event record
// formatting and the pause-then-send start flow.
package task

import (
	"context"
	"fmt"
	"time"

	clog "github.com/charmbracelet/log"

	"github.com/ivtomov/task-manager/internal/pipe"
	"github.com/ivtomov/task-manager/internal/system"
)

// Controller owns the state of tasks 1..3 and is the single producer on the
// record stream. It is not safe for concurrent use.
type Controller struct {
	sink   pipe.Sender
	delay  Delay
	log    *clog.Logger
	states [3]State
}

// Option configures a Controller.
type Option func(*Controller)

// WithDelay replaces the real-time pause, e.g. with a recording fake in tests.
func WithDelay(d Delay) Option {
	return func(c *Controller) {
		if d != nil {
			c.delay = d
		}
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *clog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// NewController returns a Controller sending records to sink.
func NewController(sink pipe.Sender, opts ...Option) *Controller {
	c := &Controller{
		sink:  sink,
		delay: Sleep,
		log:   system.Component("controller"),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// StartTask pauses for pauseMs, records the start in the task state and sends
// the start record. p must match the task's kind. Unknown ids produce the
// "Unknown task started" record. Nothing is sent when validation fails or
// the pause is interrupted.
func (c *Controller) StartTask(ctx context.Context, id ID, p Param, pauseMs int) (Record, error) {
	if pauseMs < 0 {
		return "", fmt.Errorf("%w: negative pause %d ms", ErrInvalidInput, pauseMs)
	}
	if int64(pauseMs) > MaxPauseMs {
		return "", fmt.Errorf("%w: pause %d ms exceeds %d ms", ErrInvalidInput, pauseMs, MaxPauseMs)
	}
	if want, ok := id.Kind(); ok {
		if p == nil || p.Kind() != want {
			return "", fmt.Errorf("%w: task %d expects a %s parameter", ErrInvalidInput, id, want)
		}
		if s, isStr := p.(StringParam); isStr && s == "" {
			return "", fmt.Errorf("%w: empty string", ErrInvalidInput)
		}
	}

	if err := c.delay(ctx, time.Duration(pauseMs)*time.Millisecond); err != nil {
		return "", fmt.Errorf("pause task %d: %w", id, err)
	}

	var rec Record
	if st := c.state(id); st != nil {
		st.Running = true
		st.Param = p
		st.PauseMs = pauseMs
		rec = StartedRecord(id, p, pauseMs)
	} else {
		rec = StartedRecord(id, nil, pauseMs)
	}
	if err := c.send(rec); err != nil {
		return "", err
	}
	return rec, nil
}

// StopTask marks the task stopped and sends the stop record.
func (c *Controller) StopTask(id ID) (Record, error) {
	if st := c.state(id); st != nil {
		if !st.Running {
			c.log.Debug("stopping a task that is not running", "task", int(id))
		}
		st.Running = false
	}
	rec := StoppedRecord(id)
	if err := c.send(rec); err != nil {
		return "", err
	}
	return rec, nil
}

// State returns a copy of the state of task id.
func (c *Controller) State(id ID) (State, bool) {
	if st := c.state(id); st != nil {
		return *st, true
	}
	return State{}, false
}

// States returns a copy of every task state in id order.
func (c *Controller) States() []Snapshot {
	out := make([]Snapshot, 0, len(IDs))
	for _, id := range IDs {
		out = append(out, Snapshot{ID: id, State: *c.state(id)})
	}
	return out
}

func (c *Controller) state(id ID) *State {
	if !id.Known() {
		return nil
	}
	return &c.states[id-1]
}

func (c *Controller) send(rec Record) error {
	if err := c.sink.Send(rec.Line()); err != nil {
		return fmt.Errorf("send record: %w", err)
	}
	c.log.Debug("record sent", "record", rec.String())
	return nil
}
