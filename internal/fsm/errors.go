package fsm

import (
	"errors"
	"fmt"
)

var (
	// ErrUninitialized is returned when a machine's start or current state
	// is read before a start state was assigned.
	ErrUninitialized = errors.New("fsm: machine is not initialized")

	// ErrMissingTarget is wrapped by MissingTargetError.
	ErrMissingTarget = errors.New("fsm: transition has no target")

	// ErrNotDeterministic is returned by NFA.Transit; an NFA has to be
	// determinized before it can consume input.
	ErrNotDeterministic = errors.New("fsm: transit requires a deterministic machine")
)

// MissingTargetError reports a traversal that reached a dangling transition.
type MissingTargetError struct {
	Transition int
	From       int
}

func (e *MissingTargetError) Error() string {
	return fmt.Sprintf("fsm: transition t%d leaving s%d has no target", e.Transition, e.From)
}

func (e *MissingTargetError) Unwrap() error { return ErrMissingTarget }

// ArgumentError indicates an invalid argument was passed. It is raised with
// panic: passing nil states or transitions is a programming error.
type ArgumentError struct {
	ParamName string
	Message   string
}

func (e *ArgumentError) Error() string {
	if e.ParamName != "" {
		return fmt.Sprintf("fsm: %s (parameter: %s)", e.Message, e.ParamName)
	}
	return "fsm: " + e.Message
}

func mustNotBeNil(name string, isNil bool) {
	if isNil {
		panic(&ArgumentError{ParamName: name, Message: "value must not be nil"})
	}
}
