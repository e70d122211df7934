package signer_test

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landoop/livefeed/internal/webcastpb"
	"github.com/landoop/livefeed/pkg/webcast/signer"
	"github.com/landoop/livefeed/pkg/webcast/transport"
)

type fakeSender struct {
	resp    *http.Response
	lastReq *http.Request
}

func (f *fakeSender) Do(r *http.Request) (*http.Response, error) {
	f.lastReq = r
	return f.resp, nil
}

func protoResp(t *testing.T, status int, fr *webcastpb.Response, headers http.Header) *http.Response {
	t.Helper()
	if headers == nil {
		headers = http.Header{}
	}
	var body []byte
	if fr != nil {
		var err error
		body, err = proto.Marshal(fr)
		require.NoError(t, err)
	}
	return &http.Response{StatusCode: status, Header: headers, Body: ioutil.NopCloser(strings.NewReader(string(body)))}
}

func TestResolve_Success(t *testing.T) {
	fr := &webcastpb.Response{
		Cursor:      "100",
		InternalExt: "ext-1",
		PushServer:  "wss://webcast16.tiktok.com/webcast/im/fetch/",
		RouteParams: map[string]string{"cursor": "100"},
		Messages: []*webcastpb.Message{
			{Method: "WebcastChatMessage", Payload: []byte("x")},
		},
	}
	headers := http.Header{}
	headers.Set("X-Set-TT-Cookie", "sessionid=abc; tt-target-idc=useast1a")

	f := transport.New()
	sender := &fakeSender{resp: protoResp(t, 200, fr, headers)}
	f.Std = sender

	c := signer.New(f)
	hs, err := c.Resolve(context.Background(), 1, signer.ResolveOptions{UserAgent: "ua-1"})
	require.NoError(t, err)

	assert.Equal(t, "100", hs.Cursor)
	assert.Equal(t, "ext-1", hs.InternalExt)
	assert.Equal(t, "wss://webcast16.tiktok.com/webcast/im/fetch/", hs.PushServer)
	assert.Equal(t, "100", hs.RouteParams["cursor"])
	assert.Equal(t, "abc", hs.SessionCookies["sessionid"])
	assert.Len(t, hs.Messages, 1)

	assert.Contains(t, sender.lastReq.URL.Query().Get("room_id"), "1")
	assert.NotEmpty(t, sender.lastReq.URL.Query().Get("client"))
}

func TestResolve_RateLimited(t *testing.T) {
	f := transport.New()
	f.Std = &fakeSender{resp: protoResp(t, 429, nil, http.Header{"RateLimit-Remaining": []string{"5"}})}

	c := signer.New(f)
	_, err := c.Resolve(context.Background(), 1, signer.ResolveOptions{})

	var rlErr *signer.RateLimitError
	require.ErrorAs(t, err, &rlErr)
}

func TestResolve_NonOKStatus(t *testing.T) {
	f := transport.New()
	f.Std = &fakeSender{resp: &http.Response{StatusCode: 500, Header: http.Header{}, Body: ioutil.NopCloser(strings.NewReader("boom"))}}

	c := signer.New(f)
	_, err := c.Resolve(context.Background(), 1, signer.ResolveOptions{})

	var apiErr *signer.SignAPIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.StatusCode)
}

func TestResolve_EmptyCookies(t *testing.T) {
	fr := &webcastpb.Response{
		Cursor:      "1",
		PushServer:  "wss://x",
		RouteParams: map[string]string{"a": "b"},
	}
	f := transport.New()
	f.Std = &fakeSender{resp: protoResp(t, 200, fr, nil)}

	c := signer.New(f)
	_, err := c.Resolve(context.Background(), 1, signer.ResolveOptions{})
	assert.ErrorIs(t, err, transport.ErrEmptyCookies{})
}

func TestResolve_MissingCursor(t *testing.T) {
	fr := &webcastpb.Response{
		PushServer:  "wss://x",
		RouteParams: map[string]string{"a": "b"},
	}
	headers := http.Header{}
	headers.Set("X-Set-TT-Cookie", "a=b")

	f := transport.New()
	f.Std = &fakeSender{resp: protoResp(t, 200, fr, headers)}

	c := signer.New(f)
	_, err := c.Resolve(context.Background(), 1, signer.ResolveOptions{})
	assert.ErrorIs(t, err, signer.ErrInitialCursorMissing)
}

func TestResolve_MissingPushServer(t *testing.T) {
	fr := &webcastpb.Response{
		Cursor:      "1",
		RouteParams: map[string]string{"a": "b"},
	}
	headers := http.Header{}
	headers.Set("X-Set-TT-Cookie", "a=b")

	f := transport.New()
	f.Std = &fakeSender{resp: protoResp(t, 200, fr, headers)}

	c := signer.New(f)
	_, err := c.Resolve(context.Background(), 1, signer.ResolveOptions{})
	assert.ErrorIs(t, err, signer.ErrWebsocketURLMissing)
}

func TestResolve_MissingRouteParams(t *testing.T) {
	fr := &webcastpb.Response{
		Cursor:     "1",
		PushServer: "wss://x",
	}
	headers := http.Header{}
	headers.Set("X-Set-TT-Cookie", "a=b")

	f := transport.New()
	f.Std = &fakeSender{resp: protoResp(t, 200, fr, headers)}

	c := signer.New(f)
	_, err := c.Resolve(context.Background(), 1, signer.ResolveOptions{})
	assert.ErrorIs(t, err, signer.ErrRouteParamsMissing)
}

func TestResolve_SessionIDWithoutWhitelistRefuses(t *testing.T) {
	f := transport.New()
	sender := &fakeSender{resp: protoResp(t, 200, &webcastpb.Response{}, nil)}
	f.Std = sender

	c := signer.New(f)
	_, err := c.Resolve(context.Background(), 1, signer.ResolveOptions{SessionID: "sid-1"})

	assert.ErrorIs(t, err, signer.ErrAuthenticatedWebSocketConnection)
	assert.Nil(t, sender.lastReq, "no request should be sent when the session id is refused")
}

func TestResolve_SessionIDWithMatchingWhitelistForwards(t *testing.T) {
	c := signer.New(transport.New())
	host, err := url.Parse(c.SignAPIBase)
	require.NoError(t, err)
	t.Setenv("WHITELIST_AUTHENTICATED_SESSION_ID_HOST", host.Host)

	fr := &webcastpb.Response{
		Cursor:      "1",
		PushServer:  "wss://x",
		RouteParams: map[string]string{"a": "b"},
	}
	headers := http.Header{}
	headers.Set("X-Set-TT-Cookie", "a=b")

	sender := &fakeSender{resp: protoResp(t, 200, fr, headers)}
	c.Facade.Std = sender

	_, err = c.Resolve(context.Background(), 1, signer.ResolveOptions{SessionID: "sid-1"})
	require.NoError(t, err)
	assert.Equal(t, "sid-1", sender.lastReq.URL.Query().Get("session_id"))
}
