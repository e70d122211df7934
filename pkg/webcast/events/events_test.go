package events_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/landoop/livefeed/pkg/webcast/events"
)

func TestRouter_RoutesOnlyToMatchingKind(t *testing.T) {
	r := events.NewRouter()

	var gotChat, gotGift int
	r.On(events.KindChat, func(events.Event) { gotChat++ })
	r.On(events.KindGift, func(events.Event) { gotGift++ })

	r.Route(events.ChatMessage{Comment: "hi"})
	r.Route(events.ChatMessage{Comment: "again"})
	r.Route(events.GiftMessage{GiftID: 1})

	assert.Equal(t, 2, gotChat)
	assert.Equal(t, 1, gotGift)
}

func TestRouter_MultipleHandlersSameKindInOrder(t *testing.T) {
	r := events.NewRouter()

	var order []int
	r.On(events.KindLike, func(events.Event) { order = append(order, 1) })
	r.On(events.KindLike, func(events.Event) { order = append(order, 2) })

	r.Route(events.LikeMessage{Count: 5})

	assert.Equal(t, []int{1, 2}, order)
}

func TestRouter_HasListener(t *testing.T) {
	r := events.NewRouter()
	assert.False(t, r.HasListener(events.KindFollow))

	r.On(events.KindFollow, func(events.Event) {})
	assert.True(t, r.HasListener(events.KindFollow))
}

func TestRouter_UnroutedKindIsNoop(t *testing.T) {
	r := events.NewRouter()
	assert.NotPanics(t, func() {
		r.Route(events.UnknownMessage{Method: "WebcastSomethingNew"})
	})
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "chat", events.KindChat.String())
	assert.Equal(t, "unknown", events.Kind(999).String())
}
