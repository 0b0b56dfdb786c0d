// ABOUTME: Tests for the observer list
// ABOUTME: Verifies ordering, unsubscribe and re-entrant subscription

package observer

import "testing"

func TestNotifyInSubscriptionOrder(t *testing.T) {
	var l List[int]
	var got []string

	l.Subscribe(func(v int) { got = append(got, "a") })
	l.Subscribe(func(v int) { got = append(got, "b") })
	l.Notify(1)

	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("expected [a b], got %v", got)
	}
}

func TestUnsubscribe(t *testing.T) {
	var l List[string]
	calls := 0

	unsub := l.Subscribe(func(string) { calls++ })
	l.Notify("x")
	unsub()
	unsub() // second call is a no-op
	l.Notify("y")

	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
	if l.Len() != 0 {
		t.Errorf("expected no listeners, got %d", l.Len())
	}
}

func TestListenerMaySubscribeDuringNotify(t *testing.T) {
	var l List[int]
	l.Subscribe(func(int) {
		l.Subscribe(func(int) {})
	})

	l.Notify(1)

	if l.Len() != 2 {
		t.Errorf("expected 2 listeners, got %d", l.Len())
	}
}
