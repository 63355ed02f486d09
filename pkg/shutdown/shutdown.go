package shutdown

import (
	"context"
	"sync"

	"github.com/cheddar/hoodbot/pkg/logger"
)

// Handler releases one resource.
type Handler func(ctx context.Context) error

type namedHandler struct {
	name string
	fn   Handler
}

// Manager runs cleanup handlers on exit.
type Manager struct {
	mu       sync.Mutex
	handlers []namedHandler
	done     bool
}

// NewManager creates a Manager.
func NewManager() *Manager {
	return &Manager{}
}

// OnShutdown registers a handler. Handlers run in reverse registration
// order, so resources opened later are released first.
func (m *Manager) OnShutdown(name string, handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers = append(m.handlers, namedHandler{name: name, fn: handler})
}

// Shutdown runs every handler once, stopping early when ctx expires. It
// returns the first handler error. Later calls are no-ops.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	if m.done {
		m.mu.Unlock()
		return nil
	}
	m.done = true
	handlers := m.handlers
	m.mu.Unlock()

	var first error
	for i := len(handlers) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			logger.WithField("component", "shutdown").Warnf("shutdown interrupted: %v", err)
			if first == nil {
				first = err
			}
			break
		}
		h := handlers[i]
		if err := h.fn(ctx); err != nil {
			logger.WithField("component", "shutdown").WithError(err).Warnf("%s: cleanup failed", h.name)
			if first == nil {
				first = err
			}
		}
	}
	return first
}
