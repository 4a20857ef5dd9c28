package alder

// Event names emitted by the core and the editor shell. Plugins are free to
// emit their own names; these constants cover the built-in traffic.
const (
	EventPluginInstalled   = "plugin:installed"   // payload: plugin name (string)
	EventPluginUninstalled = "plugin:uninstalled" // payload: plugin name (string)
	EventFrameApplied      = "frame:applied"      // payload: *Frame
	EventViewportChanged   = "viewport:changed"   // payload: Viewport
	EventSelectionChanged  = "selection:changed"  // payload: []EntityID
)

// --- Subscriber registry ---

type busHandler struct {
	id uint32
	fn func(payload any)
}

type anyHandler struct {
	id uint32
	fn func(event string, payload any)
}

func removeBusHandler(s []busHandler, id uint32) []busHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = busHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeAnyHandler(s []anyHandler, id uint32) []anyHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = anyHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// --- Subscription ---

// On subscribes fn to an event name. Subscribers fire synchronously in
// subscription order. The returned function unsubscribes; calling it more
// than once is harmless.
func (r *Runtime) On(event string, fn func(payload any)) func() {
	r.nextSubID++
	id := r.nextSubID
	r.subs[event] = append(r.subs[event], busHandler{id: id, fn: fn})
	return func() {
		r.subs[event] = removeBusHandler(r.subs[event], id)
	}
}

// OnAny subscribes fn to every event. Wildcard subscribers fire after the
// event's own subscribers, in subscription order. The returned function
// unsubscribes; calling it more than once is harmless.
func (r *Runtime) OnAny(fn func(event string, payload any)) func() {
	r.nextSubID++
	id := r.nextSubID
	r.anySubs = append(r.anySubs, anyHandler{id: id, fn: fn})
	return func() {
		r.anySubs = removeAnyHandler(r.anySubs, id)
	}
}

// --- Emission ---

// Emit delivers payload to every subscriber of event, then to every wildcard
// subscriber, synchronously on the calling thread. A panicking subscriber is
// recovered and logged; the remaining subscribers still run. Emit itself
// never panics.
func (r *Runtime) Emit(event string, payload any) {
	// Snapshot both lists so subscribers that unsubscribe or subscribe
	// mid-emit do not disturb this fan-out.
	if subs := r.subs[event]; len(subs) > 0 {
		snapshot := append([]busHandler(nil), subs...)
		for i := range snapshot {
			r.callSubscriber(event, snapshot[i].fn, payload)
		}
	}
	if len(r.anySubs) > 0 {
		snapshot := append([]anyHandler(nil), r.anySubs...)
		for i := range snapshot {
			r.callAnySubscriber(event, snapshot[i].fn, payload)
		}
	}
}

func (r *Runtime) callSubscriber(event string, fn func(any), payload any) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error().Str("event", event).Interface("panic", rec).
				Msg("event subscriber panicked")
		}
	}()
	fn(payload)
}

func (r *Runtime) callAnySubscriber(event string, fn func(string, any), payload any) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error().Str("event", event).Interface("panic", rec).
				Msg("wildcard subscriber panicked")
		}
	}()
	fn(event, payload)
}
