package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gogo/protobuf/proto"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landoop/livefeed/internal/webcastpb"
	"github.com/landoop/livefeed/pkg/webcast/events"
	"github.com/landoop/livefeed/pkg/webcast/session"
	"github.com/landoop/livefeed/pkg/webcast/wire"
)

var upgrader = websocket.Upgrader{}

// newTestServer starts a websocket endpoint that writes the given push
// frames (already wire-encoded) to the first connecting client, then,
// if ackSeen is non-nil, reads one frame and sends its LogId on ackSeen
// when it is an ack.
func newTestServer(t *testing.T, frames [][]byte, ackSeen chan uint64) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		for _, f := range frames {
			if err := conn.WriteMessage(websocket.BinaryMessage, f); err != nil {
				return
			}
		}

		if ackSeen != nil {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				return
			}
			pf, err := wire.DecodePushFrame(raw)
			if err == nil && pf.PayloadType == "ack" {
				ackSeen <- pf.LogId
			}
		}

		// keep the connection open briefly so the client's Disconnect
		// races a real close rather than an immediate EOF.
		time.Sleep(50 * time.Millisecond)
	}))
}

func wsURL(t *testing.T, server *httptest.Server) string {
	t.Helper()
	u, err := url.Parse(server.URL)
	require.NoError(t, err)
	u.Scheme = "ws"
	return u.String()
}

func encodeFetchResult(t *testing.T, fr *webcastpb.Response, logID uint64) []byte {
	t.Helper()
	payload, err := proto.Marshal(fr)
	require.NoError(t, err)

	pf := &webcastpb.PushFrame{LogId: logID, PayloadType: "msg", Payload: payload}
	b, err := wire.EncodePushFrame(pf)
	require.NoError(t, err)
	return b
}

func TestEngine_ConnectRoutesConnectEvent(t *testing.T) {
	server := newTestServer(t, nil, nil)
	defer server.Close()

	router := events.NewRouter()
	var gotConnect bool
	router.On(events.KindConnect, func(events.Event) { gotConnect = true })

	e := session.New(session.Config{WebsocketURL: wsURL(t, server), RoomID: 42, Router: router, HeartbeatEvery: time.Hour})
	require.NoError(t, e.Connect(context.Background()))
	defer e.Disconnect()

	time.Sleep(20 * time.Millisecond)
	assert.True(t, gotConnect)
	assert.Equal(t, session.StateRunning, e.State())
}

func TestEngine_ConnectTwiceErrors(t *testing.T) {
	server := newTestServer(t, nil, nil)
	defer server.Close()

	e := session.New(session.Config{WebsocketURL: wsURL(t, server), HeartbeatEvery: time.Hour})
	require.NoError(t, e.Connect(context.Background()))
	defer e.Disconnect()

	err := e.Connect(context.Background())
	assert.ErrorIs(t, err, session.ErrAlreadyConnected)
}

func TestEngine_DispatchesChatAndAdvancesCursor(t *testing.T) {
	fr := &webcastpb.Response{
		Cursor: "cursor-1",
		Messages: []*webcastpb.Message{
			{Method: "WebcastChatMessage", Payload: marshal(t, &webcastpb.ChatMessage{Content: "hello", User: &webcastpb.User{UniqueId: "u1"}})},
		},
	}
	frame := encodeFetchResult(t, fr, 1)

	server := newTestServer(t, [][]byte{frame}, nil)
	defer server.Close()

	router := events.NewRouter()
	chatCh := make(chan events.ChatMessage, 1)
	router.On(events.KindChat, func(ev events.Event) { chatCh <- ev.(events.ChatMessage) })

	e := session.New(session.Config{WebsocketURL: wsURL(t, server), Router: router, HeartbeatEvery: time.Hour})
	require.NoError(t, e.Connect(context.Background()))
	defer e.Disconnect()

	select {
	case chat := <-chatCh:
		assert.Equal(t, "hello", chat.Comment)
		assert.Equal(t, "u1", chat.User.UniqueID)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for chat event")
	}

	assert.Eventually(t, func() bool { return e.Cursor() == "cursor-1" }, time.Second, 5*time.Millisecond)
}

func TestEngine_AcksWhenNeedAckSet(t *testing.T) {
	fr := &webcastpb.Response{Cursor: "c", NeedAck: true, InternalExt: "ext-1"}
	frame := encodeFetchResult(t, fr, 99)

	ackSeen := make(chan uint64, 1)
	server := newTestServer(t, [][]byte{frame}, ackSeen)
	defer server.Close()

	e := session.New(session.Config{WebsocketURL: wsURL(t, server), HeartbeatEvery: time.Hour})
	require.NoError(t, e.Connect(context.Background()))
	defer e.Disconnect()

	select {
	case logID := <-ackSeen:
		assert.Equal(t, uint64(99), logID)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for ack")
	}
}

func TestEngine_DisconnectIsIdempotent(t *testing.T) {
	server := newTestServer(t, nil, nil)
	defer server.Close()

	e := session.New(session.Config{WebsocketURL: wsURL(t, server), HeartbeatEvery: time.Hour})
	require.NoError(t, e.Connect(context.Background()))

	require.NoError(t, e.Disconnect())
	require.NoError(t, e.Disconnect())
	assert.Equal(t, session.StateClosed, e.State())
}

func TestEngine_RunReturnsOnDisconnect(t *testing.T) {
	server := newTestServer(t, nil, nil)
	defer server.Close()

	router := events.NewRouter()
	var gotDisconnect bool
	router.On(events.KindDisconnect, func(events.Event) { gotDisconnect = true })

	e := session.New(session.Config{WebsocketURL: wsURL(t, server), Router: router, HeartbeatEvery: time.Hour})
	require.NoError(t, e.Connect(context.Background()))

	done := make(chan error, 1)
	go func() { done <- e.Run(context.Background()) }()

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, e.Disconnect())

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Disconnect")
	}
	assert.True(t, gotDisconnect)
}

func marshal(t *testing.T, m proto.Message) []byte {
	t.Helper()
	b, err := proto.Marshal(m)
	require.NoError(t, err)
	return b
}

func TestEngine_UnparseableFrameIsSkippedNotFatal(t *testing.T) {
	garbage := []byte(strings.Repeat("\xff", 5))
	server := newTestServer(t, [][]byte{garbage}, nil)
	defer server.Close()

	e := session.New(session.Config{WebsocketURL: wsURL(t, server), HeartbeatEvery: time.Hour})
	require.NoError(t, e.Connect(context.Background()))
	defer e.Disconnect()

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, session.StateRunning, e.State())
}
