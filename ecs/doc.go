// Package ecs provides ECS adapters for alder's event bus.
//
// The primary adapter is [NewBridge], which republishes every event emitted
// on an alder [Runtime] into a [Donburi] world as typed events. Subscribe to
// [BusEventType] in your ECS systems to receive them.
//
// Usage:
//
//	bridge := ecs.NewBridge(world, editor.Runtime())
//	defer bridge.Close()
//
// [Donburi]: https://github.com/yohamta/donburi
// [Runtime]: https://pkg.go.dev/github.com/phanxgames/alder#Runtime
package ecs
