package listeners

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchReachesOnlyMatchingKind(t *testing.T) {
	r := New()
	var clicks, escapes []Event
	r.Subscribe(MouseDown, func(e Event) { clicks = append(clicks, e) })
	r.Subscribe(KeyEscape, func(e Event) { escapes = append(escapes, e) })

	r.Dispatch(Event{Kind: MouseDown, X: 3, Y: 9})

	require.Len(t, clicks, 1)
	assert.Equal(t, 9, clicks[0].Y)
	assert.Empty(t, escapes)
}

func TestDispatchKeepsSubscriptionOrder(t *testing.T) {
	r := New()
	var order []string
	r.Subscribe(KeyEscape, func(Event) { order = append(order, "first") })
	r.Subscribe(KeyEscape, func(Event) { order = append(order, "second") })

	r.Dispatch(Event{Kind: KeyEscape})
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	r := New()
	calls := 0
	release := r.Subscribe(MouseDown, func(Event) { calls++ })
	other := r.Subscribe(MouseDown, func(Event) {})

	release()
	release()
	r.Dispatch(Event{Kind: MouseDown})

	assert.Zero(t, calls)
	assert.Equal(t, 1, r.Count(MouseDown))
	other()
	assert.Zero(t, r.Count(MouseDown))
}

func TestHandlerMayUnsubscribeItself(t *testing.T) {
	r := New()
	calls := 0
	var release func()
	release = r.Subscribe(KeyEscape, func(Event) {
		calls++
		release()
	})

	r.Dispatch(Event{Kind: KeyEscape})
	r.Dispatch(Event{Kind: KeyEscape})
	assert.Equal(t, 1, calls)
}

func TestScopeReleasesEverything(t *testing.T) {
	r := New()
	s := r.NewScope()
	s.On(MouseDown, func(Event) {})
	s.On(KeyEscape, func(Event) {})
	require.True(t, s.Active())

	s.Release()
	assert.False(t, s.Active())
	assert.Zero(t, r.Count(MouseDown))
	assert.Zero(t, r.Count(KeyEscape))
	assert.NotPanics(t, s.Release)
}
