package core

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Notes           int    `json:"notes"`
	NextID          int64  `json:"next_id"`
	Hydrated        bool   `json:"hydrated"`
	OrderedSaves    bool   `json:"ordered_saves"`
	SavesDispatched uint64 `json:"saves_dispatched"`
	SavesCompleted  uint64 `json:"saves_completed"`
	SavesFailed     uint64 `json:"saves_failed"`
	PendingSaves    int    `json:"pending_saves"`
	LastSaveError   string `json:"last_save_error,omitempty"`
	Watchers        int    `json:"watchers"`
	GatewayType     string `json:"gateway_type"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	state := StoreState{
		Notes:           len(s.notes),
		NextID:          s.nextID,
		Hydrated:        s.hydrated,
		OrderedSaves:    s.config.OrderedSaves,
		SavesDispatched: s.seq,
		SavesCompleted:  s.completedSaves,
		SavesFailed:     s.failedSaves,
		PendingSaves:    len(s.inflight),
	}
	if s.lastSaveErr != nil {
		state.LastSaveError = s.lastSaveErr.Error()
	}
	s.mu.RUnlock()

	s.watchMu.Lock()
	state.Watchers = len(s.watchers)
	s.watchMu.Unlock()

	state.GatewayType = "unknown"
	if s.gateway != nil {
		state.GatewayType = "gateway"
		// Try to get component type if gateway implements introspection.Component
		if comp, ok := s.gateway.(introspection.Component); ok {
			state.GatewayType = comp.ComponentType()
		}
	}

	return state
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
