// Package events is a small in-process pub/sub broker for the engine's
// output events. The engine itself never publishes; it returns events in its
// output stream, and whoever drives it (the node shell, an indexer, tests)
// fans them out here so local subscribers like loggers and websocket feeds
// don't couple to the execution loop.
package events

import (
	"log"
	"sync"

	"github.com/wagerchain/wagerchain/core"
)

// Handler is a callback invoked for matching events.
type Handler func(core.Event)

// Emitter is a simple pub/sub broker. Subscribe before Emit.
type Emitter struct {
	mu       sync.RWMutex
	handlers map[core.EventType][]Handler
}

// NewEmitter creates an Emitter with no subscribers.
func NewEmitter() *Emitter {
	return &Emitter{handlers: make(map[core.EventType][]Handler)}
}

// Subscribe registers h to be called whenever typ is emitted.
func (e *Emitter) Subscribe(typ core.EventType, h Handler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers[typ] = append(e.handlers[typ], h)
}

// Emit delivers ev to all subscribers for ev.Type synchronously.
// Each handler is guarded by panic recovery so a misbehaving subscriber
// cannot crash the node or stall batch processing.
func (e *Emitter) Emit(ev core.Event) {
	e.mu.RLock()
	handlers := e.handlers[ev.Type]
	e.mu.RUnlock()
	for _, h := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("[events] handler panicked for %s: %v", ev.Type, r)
				}
			}()
			h(ev)
		}()
	}
}

// EmitOutputs publishes every event in an engine output stream, skipping
// transaction echoes.
func (e *Emitter) EmitOutputs(outs []core.Output) {
	for _, out := range outs {
		if out.Event != nil {
			e.Emit(*out.Event)
		}
	}
}
