package breakout

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/multiball/internal/core"
)

// Hooks receives presentation notifications from the simulation. Calls are
// synchronous and happen on the goroutine driving the simulation.
type Hooks interface {
	EntitySpawned(kind EntityKind, id core.EntityID, pos core.Vec2)
	EntityRemoved(kind EntityKind, id core.EntityID)
	PlaySound(sound Sound)
}

// NopHooks ignores every notification.
type NopHooks struct{}

func (NopHooks) EntitySpawned(EntityKind, core.EntityID, core.Vec2) {}
func (NopHooks) EntityRemoved(EntityKind, core.EntityID) {}
func (NopHooks) PlaySound(Sound) {}

// LogHooks writes each notification as a debug line.
type LogHooks struct {
	Logger *log.Logger
}

func (h LogHooks) EntitySpawned(kind EntityKind, id core.EntityID, pos core.Vec2) {
	h.Logger.Debug("spawned", "kind", kind, "id", id, "x", pos.X, "y", pos.Y)
}

func (h LogHooks) EntityRemoved(kind EntityKind, id core.EntityID) {
	h.Logger.Debug("removed", "kind", kind, "id", id)
}

func (h LogHooks) PlaySound(sound Sound) {
	h.Logger.Debug("sound", "name", sound)
}

// MultiHooks fans notifications out in order.
type MultiHooks []Hooks

func (m MultiHooks) EntitySpawned(kind EntityKind, id core.EntityID, pos core.Vec2) {
	for _, h := range m {
		h.EntitySpawned(kind, id, pos)
	}
}

func (m MultiHooks) EntityRemoved(kind EntityKind, id core.EntityID) {
	for _, h := range m {
		h.EntityRemoved(kind, id)
	}
}

func (m MultiHooks) PlaySound(sound Sound) {
	for _, h := range m {
		h.PlaySound(sound)
	}
}
