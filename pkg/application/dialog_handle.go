package application

import (
	"sync"

	"github.com/felixgeelhaar/studiorate/pkg/domain/rating"
)

var _ rating.Handle = (*DialogHandle)(nil)

// DialogHandle is the parent-owned open/close reference of a rating dialog.
// The parent opens it; the dialog receives it as a capability and closes it.
type DialogHandle struct {
	mu        sync.Mutex
	open      bool
	nextID    int
	listeners []handleListener
}

type handleListener struct {
	id int
	fn func(open bool)
}

// NewDialogHandle returns a closed handle.
func NewDialogHandle() *DialogHandle {
	return &DialogHandle{}
}

// Open shows the dialog. Opening an open dialog does nothing.
func (h *DialogHandle) Open() { h.set(true) }

// Close hides the dialog. Closing a closed dialog does nothing.
func (h *DialogHandle) Close() { h.set(false) }

// IsOpen reports whether the dialog surface is showing.
func (h *DialogHandle) IsOpen() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.open
}

// OnChange registers fn for open/close transitions, called in registration
// order without the handle's lock held.
func (h *DialogHandle) OnChange(fn func(open bool)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID
	h.listeners = append(h.listeners, handleListener{id: id, fn: fn})

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		for i, l := range h.listeners {
			if l.id == id {
				h.listeners = append(h.listeners[:i], h.listeners[i+1:]...)
				return
			}
		}
	}
}

func (h *DialogHandle) set(open bool) {
	h.mu.Lock()
	if h.open == open {
		h.mu.Unlock()
		return
	}
	h.open = open
	listeners := make([]handleListener, len(h.listeners))
	copy(listeners, h.listeners)
	h.mu.Unlock()

	for _, l := range listeners {
		l.fn(open)
	}
}
