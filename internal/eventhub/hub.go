// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package eventhub

import (
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"
)

const loggerName = "eventhub"

// ID identifies a single registration on a Hub.
type ID uint64

// Handler receives the payload of an emitted event.
type Handler[P any] func(payload P)

type registration[P any] struct {
	id      ID
	handler Handler[P]
	once    bool
}

// Hub dispatches payloads of type P to the handlers registered for an event key E.
type Hub[E comparable, P any] struct {
	mu       sync.Mutex
	nextID   ID
	handlers map[E][]*registration[P]

	log hclog.Logger
}

// New returns an empty hub. Handler panics are logged on diagnostics; a nil
// diagnostics logger discards them.
func New[E comparable, P any](diagnostics hclog.Logger) *Hub[E, P] {
	if diagnostics == nil {
		diagnostics = hclog.NewNullLogger()
	}

	return &Hub[E, P]{
		handlers: make(map[E][]*registration[P]),
		log:      diagnostics.Named(loggerName),
	}
}

// Subscribe registers handler for every future emit of event.
func (h *Hub[E, P]) Subscribe(event E, handler Handler[P]) ID {
	return h.add(event, handler, false)
}

// SubscribeOnce registers handler for the next emit of event only.
func (h *Hub[E, P]) SubscribeOnce(event E, handler Handler[P]) ID {
	return h.add(event, handler, true)
}

// Unsubscribe removes the registration id from event. Unknown ids are ignored.
func (h *Hub[E, P]) Unsubscribe(event E, id ID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeLocked(event, id)
}

// Listeners returns how many handlers are currently registered for event.
func (h *Hub[E, P]) Listeners(event E) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.handlers[event])
}

// Emit synchronously invokes every handler registered for event with payload and
// reports whether at least one handler was registered.
func (h *Hub[E, P]) Emit(event E, payload P) bool {
	h.mu.Lock()
	registered := h.handlers[event]
	snapshot := make([]*registration[P], len(registered))
	copy(snapshot, registered)
	for _, reg := range snapshot {
		if reg.once {
			h.removeLocked(event, reg.id)
		}
	}
	h.mu.Unlock()

	for _, reg := range snapshot {
		h.invoke(event, reg, payload)
	}

	return len(snapshot) > 0
}

func (h *Hub[E, P]) invoke(event E, reg *registration[P], payload P) {
	defer func() {
		if recovered := recover(); recovered != nil {
			h.log.Error("event handler panicked",
				"event", fmt.Sprint(event),
				"subscription", uint64(reg.id),
				"panic", fmt.Sprint(recovered),
			)
		}
	}()

	reg.handler(payload)
}

func (h *Hub[E, P]) add(event E, handler Handler[P], once bool) ID {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	h.handlers[event] = append(h.handlers[event], &registration[P]{
		id:      h.nextID,
		handler: handler,
		once:    once,
	})

	return h.nextID
}

func (h *Hub[E, P]) removeLocked(event E, id ID) {
	registered := h.handlers[event]
	for idx, reg := range registered {
		if reg.id != id {
			continue
		}

		remaining := make([]*registration[P], 0, len(registered)-1)
		remaining = append(remaining, registered[:idx]...)
		remaining = append(remaining, registered[idx+1:]...)
		if len(remaining) == 0 {
			delete(h.handlers, event)
		} else {
			h.handlers[event] = remaining
		}
		return
	}
}
