// Package event is a small synchronous dispatcher for domain events.
//
// Services fire events after a state change has been persisted; listeners
// (cache invalidation, audit logging) must not fail the request.
package event

import (
	"context"
	"sync"
)

// Names of the domain events fired by app/services.
const (
	CourseAdded     = "course.added"
	StudentApproved = "student.approved"
	OrderPaid       = "order.paid"
	PaymentMarked   = "payment.marked"
)

// Handler receives the event payload.
type Handler func(ctx context.Context, payload interface{})

// Dispatcher keeps listeners per event name.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: map[string][]Handler{}}
}

// Listen registers h for name.
func (d *Dispatcher) Listen(name string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[name] = append(d.handlers[name], h)
}

// Fire calls every listener for name in registration order. A nil
// Dispatcher drops the event.
func (d *Dispatcher) Fire(ctx context.Context, name string, payload interface{}) {
	if d == nil {
		return
	}

	d.mu.RLock()
	hs := make([]Handler, len(d.handlers[name]))
	copy(hs, d.handlers[name])
	d.mu.RUnlock()

	for _, h := range hs {
		h(ctx, payload)
	}
}
