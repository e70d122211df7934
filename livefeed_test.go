package livefeed_test

import (
	"context"
	"io/ioutil"
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

	"github.com/landoop/livefeed"
	"github.com/landoop/livefeed/internal/webcastpb"
	"github.com/landoop/livefeed/pkg/webcast/config"
	"github.com/landoop/livefeed/pkg/webcast/events"
	"github.com/landoop/livefeed/pkg/webcast/room"
	"github.com/landoop/livefeed/pkg/webcast/session"
)

// scriptedSender answers a fixed sequence of HTTP responses keyed by
// substring match against the request URL, letting a single test drive
// the resolver, signer, and chat-send calls a Connect/SendRoomChat does
// without a real network.
type scriptedSender struct {
	routes []route
}

type route struct {
	match string
	resp  func() *http.Response
}

func (s *scriptedSender) Do(req *http.Request) (*http.Response, error) {
	for _, r := range s.routes {
		if strings.Contains(req.URL.String(), r.match) {
			return r.resp(), nil
		}
	}
	return &http.Response{StatusCode: 404, Header: http.Header{}, Body: ioutil.NopCloser(strings.NewReader(""))}, nil
}

func jsonOK(body string) func() *http.Response {
	return func() *http.Response {
		return &http.Response{StatusCode: 200, Header: http.Header{}, Body: ioutil.NopCloser(strings.NewReader(body))}
	}
}

func TestClient_Connect_OfflineRoomReturnsUserOffline(t *testing.T) {
	sender := &scriptedSender{routes: []route{
		{match: "webcast/room/info", resp: jsonOK(`{"data":{"status":4}}`)},
	}}

	c := livefeed.New(config.Defaults(), livefeed.WithSender(sender))
	err := c.Connect(context.Background(), "123456789")
	assert.ErrorIs(t, err, room.ErrUserOffline)
}

func TestClient_Run_WithoutConnectErrors(t *testing.T) {
	c := livefeed.New(config.Defaults())
	err := c.Run(context.Background())
	assert.ErrorIs(t, err, session.ErrNotConnected)
}

func TestClient_Disconnect_WithoutConnectIsNoop(t *testing.T) {
	c := livefeed.New(config.Defaults())
	assert.NoError(t, c.Disconnect())
}

func TestClient_IsLive_WithoutConnectErrors(t *testing.T) {
	c := livefeed.New(config.Defaults())
	_, err := c.IsLive(context.Background())
	assert.ErrorIs(t, err, session.ErrNotConnected)
}

func TestClient_SendRoomChat_WithoutConnectErrors(t *testing.T) {
	c := livefeed.New(config.Defaults())
	err := c.SendRoomChat(context.Background(), "hi")
	assert.ErrorIs(t, err, session.ErrNotConnected)
}

func TestClient_HasListener(t *testing.T) {
	c := livefeed.New(config.Defaults())
	require.False(t, c.HasListener(0))
}

var upgrader = websocket.Upgrader{}

func TestClient_Connect_PerformsProtobufHandshakeAndEmitsConnect(t *testing.T) {
	wsServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()
		time.Sleep(50 * time.Millisecond)
	}))
	defer wsServer.Close()

	wsURL, err := url.Parse(wsServer.URL)
	require.NoError(t, err)
	wsURL.Scheme = "ws"

	fetchResult := &webcastpb.Response{
		Cursor:      "cursor-1",
		InternalExt: "ext-1",
		PushServer:  wsURL.String(),
		RouteParams: map[string]string{"k": "v"},
	}
	payload, err := proto.Marshal(fetchResult)
	require.NoError(t, err)

	sender := &scriptedSender{routes: []route{
		{match: "webcast/room/info", resp: jsonOK(`{"data":{"status":2}}`)},
		{match: "webcast/fetch", resp: func() *http.Response {
			h := http.Header{}
			h.Set("X-Set-TT-Cookie", "sessionid=abc")
			return &http.Response{StatusCode: 200, Header: h, Body: ioutil.NopCloser(strings.NewReader(string(payload)))}
		}},
	}}

	c := livefeed.New(config.Defaults(), livefeed.WithSender(sender))

	connectCh := make(chan events.ConnectEvent, 1)
	c.On(events.KindConnect, func(ev events.Event) { connectCh <- ev.(events.ConnectEvent) })

	require.NoError(t, c.Connect(context.Background(), "123456789"))
	defer c.Disconnect()

	select {
	case ev := <-connectCh:
		assert.Equal(t, "123456789", ev.RoomID)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for connect event")
	}
}
