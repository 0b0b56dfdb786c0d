// ABOUTME: Explicit publish/subscribe list for state change notifications
// ABOUTME: Session and draft models notify registered listeners after every mutation

package observer

import "sync"

// List holds listeners for values of type T
type List[T any] struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]func(T)
	order     []int
}

// Subscribe registers fn and returns a function that removes it
func (l *List[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.listeners == nil {
		l.listeners = make(map[int]func(T))
	}
	id := l.nextID
	l.nextID++
	l.listeners[id] = fn
	l.order = append(l.order, id)

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if _, ok := l.listeners[id]; !ok {
			return
		}
		delete(l.listeners, id)
		for i, v := range l.order {
			if v == id {
				l.order = append(l.order[:i], l.order[i+1:]...)
				break
			}
		}
	}
}

// Notify calls every listener in subscription order.
// Listeners run outside the lock so they may subscribe or unsubscribe.
func (l *List[T]) Notify(v T) {
	l.mu.Lock()
	fns := make([]func(T), 0, len(l.order))
	for _, id := range l.order {
		fns = append(fns, l.listeners[id])
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Len returns the number of registered listeners
func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.order)
}
