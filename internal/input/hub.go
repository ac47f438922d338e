// Package input holds the subscription plumbing shared by the terminal
// input sources.
package input

import (
	"slices"
	"sync"

	domain "github.com/inference-gateway/envkeys/internal/domain"
)

// Hub fans key events out to subscribed handlers in subscription order
type Hub struct {
	mutex    sync.RWMutex
	handlers map[int]domain.KeyHandler
	nextID   int
}

var _ domain.InputSource = (*Hub)(nil)

// NewHub creates a hub with no subscribers
func NewHub() *Hub {
	return &Hub{
		handlers: make(map[int]domain.KeyHandler),
	}
}

// Subscribe registers handler until the returned function is called
func (h *Hub) Subscribe(handler domain.KeyHandler) func() {
	if handler == nil {
		return func() {}
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	id := h.nextID
	h.nextID++
	h.handlers[id] = handler

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mutex.Lock()
			defer h.mutex.Unlock()
			delete(h.handlers, id)
		})
	}
}

// Dispatch delivers press to every subscriber until one stops propagation
func (h *Hub) Dispatch(press *domain.KeyPress) {
	for _, handler := range h.snapshot() {
		if press.PropagationStopped() {
			return
		}
		handler(press)
	}
}

// Len returns the number of subscribers
func (h *Hub) Len() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.handlers)
}

func (h *Hub) snapshot() []domain.KeyHandler {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	ids := make([]int, 0, len(h.handlers))
	for id := range h.handlers {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	handlers := make([]domain.KeyHandler, 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, h.handlers[id])
	}
	return handlers
}
