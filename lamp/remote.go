package lamp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"lautenbacher.net/lavalamp/util"
)

// CommandKind names what a Command changes.
type CommandKind int

const (
	SelectColor CommandKind = iota
	SelectBrightness
)

func (k CommandKind) String() string {
	switch k {
	case SelectColor:
		return "color"
	case SelectBrightness:
		return "brightness"
	}
	return fmt.Sprintf("CommandKind(%d)", int(k))
}

// Command is a plan change requested from outside the cycle loop.
type Command struct {
	Kind   CommandKind
	Index  int
	Source string
	done   chan error
}

func (c Command) apply(e *Engine) error {
	var err error
	switch c.Kind {
	case SelectColor:
		err = e.SetColorPlan(c.Index)
	case SelectBrightness:
		err = e.SetBrightnessPlan(c.Index)
	default:
		err = fmt.Errorf("unknown command %v", c.Kind)
	}
	if errors.Is(err, ErrPlanOutOfRange) {
		slog.Debug("Ignoring plan selection", "kind", c.Kind, "index", c.Index, "source", c.Source)
	}
	return err
}

// Remote connects other goroutines to the engine: commands are queued for
// the cycle loop, and the loop publishes a State after every change.
type Remote struct {
	commands util.Queue[Command]
	state    *util.Latest[State]
}

func NewRemote() *Remote {
	return &Remote{state: util.NewLatest[State]()}
}

// Submit queues a plan change and waits until the cycle loop applied it.
// The error is ErrPlanOutOfRange for an index without a plan, or the
// context error when ctx ends first (the command is still applied later).
func (r *Remote) Submit(ctx context.Context, kind CommandKind, index int, source string) error {
	done := make(chan error, 1)
	r.commands.Push(Command{Kind: kind, Index: index, Source: source, done: done})
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Post queues a plan change without waiting for it.
func (r *Remote) Post(kind CommandKind, index int, source string) {
	r.commands.Push(Command{Kind: kind, Index: index, Source: source})
}

// Apply runs all queued commands against e in arrival order, publishes the
// resulting state and then releases the waiting submitters. It returns the
// number of commands applied.
func (r *Remote) Apply(e *Engine) int {
	if r.commands.Len() == 0 {
		return 0
	}
	cmds := r.commands.Drain()
	errs := make([]error, len(cmds))
	for i, c := range cmds {
		errs[i] = c.apply(e)
	}
	r.Publish(e)
	for i, c := range cmds {
		if c.done != nil {
			c.done <- errs[i]
		}
	}
	return len(cmds)
}

// Publish makes the current engine state visible to State.
func (r *Remote) Publish(e *Engine) {
	r.state.Put(e.Snapshot())
}

// State returns the last published state.
func (r *Remote) State() State {
	return r.state.Value()
}
