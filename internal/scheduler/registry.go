package scheduler

import "sync"

var (
	activeBackend Backend
	backendMu     sync.RWMutex
)

// SetActiveBackend configures the backend instance that the application should use.
// Passing nil clears any previously configured backend.
func SetActiveBackend(b Backend) {
	backendMu.Lock()
	defer backendMu.Unlock()
	activeBackend = b
}

// ActiveBackend returns the currently configured backend instance (may be nil).
func ActiveBackend() Backend {
	backendMu.RLock()
	defer backendMu.RUnlock()
	return activeBackend
}

// ClearActiveBackend resets the active backend reference.
func ClearActiveBackend() {
	SetActiveBackend(nil)
}
