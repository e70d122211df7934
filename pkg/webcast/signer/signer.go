// Package signer implements the handshake client: it exchanges a room id
// for the signing service's initial fetch-result envelope — the push
// server URI, route params, cursor, and any messages embedded in the
// handshake itself — plus the session cookies the session engine needs
// to open its connection.
package signer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/landoop/livefeed/internal/webcastpb"
	"github.com/landoop/livefeed/pkg/webcast/transport"
	"github.com/landoop/livefeed/pkg/webcast/wire"
)

// handshakeLogID tags the synthetic push frame a handshake response is
// wrapped into; the wire format has no signed-integer log id, so the
// all-ones pattern stands in for "-1".
const handshakeLogID = ^uint64(0)

// Errors covering the handshake failure modes callers need to match on.
var (
	ErrInitialCursorMissing             = fmt.Errorf("signer: response carried no initial cursor")
	ErrWebsocketURLMissing              = fmt.Errorf("signer: response carried no push server")
	ErrRouteParamsMissing               = fmt.Errorf("signer: response carried no route params")
	ErrAuthenticatedWebSocketConnection = fmt.Errorf("signer: session cookie set but sign host is not whitelisted for authenticated connections")
)

// RateLimitError is SignAPIError's rate-limited variant, carrying the
// retry_after/reset_time fields.
type RateLimitError struct {
	RetryAfter time.Duration
	ResetTime  time.Time
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("signer: rate limited, retry after %s", e.RetryAfter)
}

// SignAPIError wraps a non-200, non-429 response from the sign service.
type SignAPIError struct {
	StatusCode int
	Body       string
}

func (e *SignAPIError) Error() string {
	return fmt.Sprintf("signer: sign api returned %d: %s", e.StatusCode, e.Body)
}

// Handshake is the resolved connection bundle a Resolve call returns: the
// initial fetch-result envelope plus the session cookies the sign
// service issued alongside it.
type Handshake struct {
	PushServer  string
	RouteParams map[string]string
	Cursor      string
	InternalExt string
	Messages    []*webcastpb.Message

	SessionCookies map[string]string
	UserAgent      string
}

// ResolveOptions customizes a single Resolve call.
type ResolveOptions struct {
	UserAgent          string
	PreferredAgentIDs  []string
	SessionID          string
}

// Client performs handshake exchanges against the sign service.
type Client struct {
	Facade      *transport.Facade
	SignAPIBase string // defaults to "https://tiktok.eulerstream.com" when empty.
}

// New builds a handshake Client bound to the given facade.
func New(f *transport.Facade) *Client {
	return &Client{Facade: f, SignAPIBase: "https://tiktok.eulerstream.com"}
}

func (c *Client) signAPIBase() string {
	if c.SignAPIBase != "" {
		return c.SignAPIBase
	}
	return "https://tiktok.eulerstream.com"
}

// Resolve performs the handshake for roomID, returning the initial
// fetch-result envelope and the session cookies the sign service issued.
func (c *Client) Resolve(ctx context.Context, roomID uint64, opts ResolveOptions) (*Handshake, error) {
	if opts.SessionID != "" {
		if err := c.checkSessionIDWhitelisted(); err != nil {
			return nil, err
		}
	}

	params := map[string]string{
		"client":  transport.NewClientSessionID(),
		"room_id": fmt.Sprintf("%d", roomID),
	}
	if opts.UserAgent != "" {
		params["user_agent"] = opts.UserAgent
	}
	if len(opts.PreferredAgentIDs) > 0 {
		params["preferred_agent_ids"] = strings.Join(opts.PreferredAgentIDs, ",")
	}
	if opts.SessionID != "" {
		params["session_id"] = opts.SessionID
	}

	fetchURL := fmt.Sprintf("%s/webcast/fetch/", c.signAPIBase())

	resp, err := c.Facade.Get(ctx, fetchURL, transport.CallOptions{Params: params})
	if err != nil {
		return nil, err
	}

	body, err := transport.ReadBody(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == 429 {
		retryAfter := transport.ParseRetryAfter(resp.Header)
		return nil, &RateLimitError{
			RetryAfter: retryAfter,
			ResetTime:  time.Now().Add(retryAfter),
		}
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("signer: %w", transport.ErrEmptyPayload{})
	}
	if resp.StatusCode != 200 {
		return nil, &SignAPIError{StatusCode: resp.StatusCode, Body: sniffMessage(body)}
	}

	cookies := parseCookieHeader(resp.Header.Get("X-Set-TT-Cookie"))
	if len(cookies) == 0 {
		return nil, fmt.Errorf("signer: %w", transport.ErrEmptyCookies{})
	}
	c.Facade.MergeCookies(platformHost, cookies)

	pf := &webcastpb.PushFrame{LogId: handshakeLogID, PayloadType: "msg", Payload: body}
	fr, err := wire.DecodeFetchResult(pf)
	if err != nil {
		return nil, err
	}
	fr.IsFirst = true

	if fr.Cursor == "" {
		return nil, ErrInitialCursorMissing
	}
	if fr.PushServer == "" {
		return nil, ErrWebsocketURLMissing
	}
	if len(fr.RouteParams) == 0 {
		return nil, ErrRouteParamsMissing
	}

	return &Handshake{
		PushServer:     fr.PushServer,
		RouteParams:    fr.RouteParams,
		Cursor:         fr.Cursor,
		InternalExt:    fr.InternalExt,
		Messages:       fr.Messages,
		SessionCookies: cookies,
		UserAgent:      opts.UserAgent,
	}, nil
}

const platformHost = "webcast.tiktok.com"

// checkSessionIDWhitelisted refuses an authenticated connect unless the
// sign host matches WHITELIST_AUTHENTICATED_SESSION_ID_HOST, the same
// env-gated opt-in the platform's own client requires before forwarding
// a viewer's session cookie to a third-party signing service.
func (c *Client) checkSessionIDWhitelisted() error {
	want := os.Getenv("WHITELIST_AUTHENTICATED_SESSION_ID_HOST")
	if want == "" {
		return ErrAuthenticatedWebSocketConnection
	}

	host := c.signAPIBase()
	if u, err := url.Parse(host); err == nil && u.Host != "" {
		host = u.Host
	}
	if host != want {
		return ErrAuthenticatedWebSocketConnection
	}
	return nil
}

// parseCookieHeader parses the X-Set-TT-Cookie response header, a
// semicolon-separated "name=value" list, the same shape a Cookie request
// header uses.
func parseCookieHeader(raw string) map[string]string {
	if raw == "" {
		return nil
	}

	cookies := make(map[string]string)
	for _, part := range strings.Split(raw, ";") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 || kv[0] == "" {
			continue
		}
		cookies[kv[0]] = kv[1]
	}
	return cookies
}

// sniffMessage best-effort-extracts a "message" field from a JSON error
// body; when the body isn't JSON, it is returned verbatim.
func sniffMessage(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		return parsed.Message
	}
	return string(body)
}
