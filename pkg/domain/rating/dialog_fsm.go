package rating

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// Dialog states. Untyped string constants for statekit.StateID compatibility.
const (
	StateClosed     = "closed"
	StateIdle       = "idle"
	StateSubmitting = "submitting"
)

// Dialog events.
const (
	EventOpen    = "open"
	EventSubmit  = "submit"
	EventSucceed = "succeed"
	EventFail    = "fail"
	EventClose   = "close"
)

// DialogContext carries what the guards need to know about the dialog.
type DialogContext struct {
	Complete func() bool
}

// DialogStateMachine enforces the dialog lifecycle:
//
//	closed --open--> idle --submit--> submitting --succeed--> closed
//	                  ^                    |
//	                  +-------fail---------+
//
// idle --close--> closed. Submitting accepts neither submit nor close, which
// keeps at most one submission in flight.
type DialogStateMachine struct {
	interpreter *statekit.Interpreter[DialogContext]
}

// NewDialogStateMachine builds a machine starting in initialState. complete
// guards the submit event; nil means always complete.
func NewDialogStateMachine(initialState string, complete func() bool) (*DialogStateMachine, error) {
	if complete == nil {
		complete = func() bool { return true }
	}

	builder := statekit.NewMachine[DialogContext]("rating-dialog").
		WithInitial(statekit.StateID(initialState)).
		WithContext(DialogContext{Complete: complete}).
		WithGuard("ratingsComplete", func(ctx DialogContext, e statekit.Event) bool {
			return ctx.Complete()
		})

	builder.State(StateClosed).
		On(EventOpen).Target(StateIdle).
		Done()

	builder.State(StateIdle).
		On(EventSubmit).Target(StateSubmitting).Guard("ratingsComplete").
		On(EventClose).Target(StateClosed).
		Done()

	builder.State(StateSubmitting).
		On(EventSucceed).Target(StateClosed).
		On(EventFail).Target(StateIdle).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build dialog state machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &DialogStateMachine{interpreter: interpreter}, nil
}

// Transition sends event and reports a TransitionError when the state did
// not change, either because the event is not valid here or a guard failed.
func (sm *DialogStateMachine) Transition(event string) error {
	before := sm.Current()
	sm.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	if sm.Current() != before {
		return nil
	}
	return &TransitionError{From: before, Event: event}
}

// Current returns the active state.
func (sm *DialogStateMachine) Current() string {
	return string(sm.interpreter.State().Value)
}
