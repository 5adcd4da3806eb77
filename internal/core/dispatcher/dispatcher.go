package dispatcher

import (
	"fmt"

	"github.com/penwyp/go-project-clock/internal/util"
)

// HandlerFunc reacts to one event.
type HandlerFunc func(Event)

// Dispatcher routes events to the handlers registered for their kind.
//
// It performs no locking: registration happens at startup and dispatch runs on
// the application loop goroutine.
type Dispatcher struct {
	handlers map[EventKind][]HandlerFunc
}

func New() *Dispatcher {
	return &Dispatcher{handlers: make(map[EventKind][]HandlerFunc)}
}

// RegisterHandler appends fn to the handlers of kind.
func (d *Dispatcher) RegisterHandler(kind EventKind, fn HandlerFunc) error {
	if !kind.Valid() {
		return fmt.Errorf("unknown event kind %q", kind)
	}
	if fn == nil {
		return fmt.Errorf("nil handler for event kind %q", kind)
	}
	d.handlers[kind] = append(d.handlers[kind], fn)
	return nil
}

// Dispatch runs the handlers of event.Kind in registration order and returns
// how many ran.
func (d *Dispatcher) Dispatch(event Event) int {
	handlers := d.handlers[event.Kind]
	if len(handlers) == 0 {
		util.LogDebugf("No handler for event %s", event.Kind)
		return 0
	}
	for _, fn := range handlers {
		fn(event)
	}
	return len(handlers)
}

// HandlerCount returns the number of handlers registered for kind.
func (d *Dispatcher) HandlerCount(kind EventKind) int {
	return len(d.handlers[kind])
}
