package tansu

// signal is a synchronous listener list for pool structural changes. Pools
// publish to their construction signal right after an entity gains a
// component and to their destruction signal right after it loses one, so
// listeners always observe the pool's post-mutation state. Persistent views
// are the only in-package subscribers, but the connect/disconnect surface is
// the general event-notification contract a pool offers.
//
// Publish is allocation-free; connect and disconnect may allocate.
type signal struct {
	handlers []connection
	nextID   int
}

// connection pairs a listener with the token used to disconnect it.
type connection struct {
	fn func(Entity)
	id int
}

// connect registers a listener and returns a token for disconnect. Listeners
// run in subscription order.
func (s *signal) connect(fn func(Entity)) int {
	if cap(s.handlers) == 0 {
		s.handlers = make([]connection, 0, 4) // Preallocate small capacity to reduce reallocs
	}
	id := s.nextID
	s.nextID++
	s.handlers = append(s.handlers, connection{fn: fn, id: id})
	return id
}

// disconnect removes the listener registered under the given token. Unknown
// tokens are ignored.
func (s *signal) disconnect(id int) {
	for i := range s.handlers {
		if s.handlers[i].id == id {
			s.handlers = append(s.handlers[:i], s.handlers[i+1:]...)
			return
		}
	}
}

// publish invokes every listener with the affected entity, synchronously and
// in subscription order.
func (s *signal) publish(e Entity) {
	for i := range s.handlers {
		s.handlers[i].fn(e)
	}
}
