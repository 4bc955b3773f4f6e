package entity

import (
	"errors"
	"fmt"

	"github.com/piresc/fleetsim/internal/pkg/models"
)

// ErrPrecondition is wrapped by every state machine contract violation.
// Such a violation is a programming error and is raised with panic.
var ErrPrecondition = errors.New("precondition violated")

// PreconditionError describes which operation was refused and why
type PreconditionError struct {
	Entity string
	ID     int64
	Op     string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s %d: %s: %s: %v", e.Entity, e.ID, e.Op, e.Reason, ErrPrecondition)
}

func (e *PreconditionError) Unwrap() error {
	return ErrPrecondition
}

// EventSink receives lifecycle events
type EventSink interface {
	OnEvent(kind models.EventKind, data interface{})
}

// Env carries what entities need from their simulation: the clock used to
// stamp events and where to send them
type Env struct {
	Sink  EventSink
	Clock func() int64
}

func (e *Env) now() int64 {
	if e == nil || e.Clock == nil {
		return 0
	}
	return e.Clock()
}

func (e *Env) emit(kind models.EventKind, data interface{}) {
	if e == nil || e.Sink == nil {
		return
	}
	e.Sink.OnEvent(kind, data)
}
