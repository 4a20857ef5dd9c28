package ecs

import (
	"github.com/phanxgames/alder"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// BusEvent carries one alder runtime event into a Donburi world.
type BusEvent struct {
	Name    string
	Payload any
}

// BusEventType is the Donburi event type for alder bus events. Subscribe to
// this in your ECS systems to receive plugin lifecycle, frame, viewport, and
// selection events alongside anything plugins emit themselves.
var BusEventType = events.NewEventType[BusEvent]()

// Bridge republishes every event emitted on an alder runtime into a Donburi
// world as queued BusEvent values.
type Bridge struct {
	unsubscribe func()
}

// NewBridge attaches a wildcard subscriber to the runtime that publishes
// each event to BusEventType in world. Published events are queued; drain
// them with BusEventType.ProcessEvents or events.ProcessAllEvents.
func NewBridge(world donburi.World, runtime *alder.Runtime) *Bridge {
	unsubscribe := runtime.OnAny(func(event string, payload any) {
		BusEventType.Publish(world, BusEvent{Name: event, Payload: payload})
	})
	return &Bridge{unsubscribe: unsubscribe}
}

// Close detaches the bridge from the runtime. Safe to call more than once.
func (b *Bridge) Close() {
	b.unsubscribe()
}
