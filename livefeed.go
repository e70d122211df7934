// Package livefeed is a client for the Webcast real-time event feed: it
// resolves a room, performs the signed handshake, and streams typed
// chat/gift/like/member/control events over a managed WebSocket
// connection through a single public constructor that takes a
// Configuration value plus functional options and returns a ready-to-use
// Client.
package livefeed

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/kataras/golog"

	"github.com/landoop/livefeed/pkg/webcast/config"
	"github.com/landoop/livefeed/pkg/webcast/events"
	"github.com/landoop/livefeed/pkg/webcast/room"
	"github.com/landoop/livefeed/pkg/webcast/session"
	"github.com/landoop/livefeed/pkg/webcast/signer"
	"github.com/landoop/livefeed/pkg/webcast/transport"
)

// platformHost is the upstream platform domain the session engine's
// cookie header and room/gift HTTP calls are scoped to.
const platformHost = "webcast.tiktok.com"

// Client is a single room's feed handle. Construct one with New and call
// Start (or Connect, then Run) to begin receiving events.
type Client struct {
	cfg config.Configuration

	facade   *transport.Facade
	resolver *room.Resolver
	signer   *signer.Client
	router   *events.Router

	mu          sync.Mutex
	engine      *session.Engine
	roomID      string
	roomInfo    *room.Info
	giftCatalog room.GiftCatalog
}

// New builds a Client from cfg, wiring a fresh transport Facade, room
// Resolver, handshake Client, and event Router. The handle (an
// "@username" or a literal numeric room id) is passed later to Connect
// or Start.
func New(cfg config.Configuration, opts ...ClientOption) *Client {
	facade := transport.New()
	facade.MergeCookies(platformHost, transport.DefaultCookies())
	if cfg.Proxy != "" {
		// Proxy wiring is left to the caller's Sender override (ClientOption
		// WithSender); the facade's default *http.Client does not parse
		// cfg.Proxy itself, and instead accepts an externally-configured
		// *http.Client.
		golog.Debugf("livefeed: proxy %s configured; supply it via WithSender", cfg.Proxy)
	}
	if cfg.SessionID != "" {
		facade.SetSessionCookie(platformHost, cfg.SessionID)
	}

	signClient := signer.New(facade)
	signClient.SignAPIBase = cfg.SignAPIBase

	c := &Client{
		cfg:      cfg,
		facade:   facade,
		resolver: room.New(facade),
		signer:   signClient,
		router:   events.NewRouter(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// On subscribes handler to every event of the given kind. Safe to call
// before or after Start.
func (c *Client) On(kind events.Kind, handler events.Handler) {
	c.router.On(kind, handler)
}

// HasListener reports whether at least one handler is subscribed to kind.
func (c *Client) HasListener(kind events.Kind) bool {
	return c.router.HasListener(kind)
}

// RoomInfo returns the room-info document fetched during Connect, or nil
// if WithFetchRoomInfo was not set.
func (c *Client) RoomInfo() *room.Info {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roomInfo
}

// GiftCatalog returns the gift catalog fetched during Connect, or nil if
// WithFetchGiftInfo was not set.
func (c *Client) GiftCatalog() room.GiftCatalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.giftCatalog
}

// Connect resolves handle to a room id, performs the signed handshake,
// and opens the WebSocket connection, returning once the connection is
// live. Call Run afterwards to block until the session ends.
func (c *Client) Connect(ctx context.Context, handle string, opts ...StartOption) error {
	cfg := defaultStartConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	c.mu.Lock()
	if c.engine != nil && c.engine.State() != session.StateClosed {
		c.mu.Unlock()
		return session.ErrAlreadyConnected
	}
	c.mu.Unlock()

	roomID := cfg.roomID
	if roomID == "" {
		var err error
		roomID, err = c.resolveRoomID(ctx, handle)
		if err != nil {
			return err
		}
	}

	if cfg.fetchLiveCheck {
		alive, err := c.resolver.CheckAlive(ctx, roomID)
		if err != nil {
			return err
		}
		if !alive {
			return room.ErrUserOffline
		}
	}

	var roomInfo *room.Info
	if cfg.fetchRoomInfo {
		info, err := c.resolver.FetchRoomInfo(ctx, roomID)
		if err != nil {
			return err
		}
		roomInfo = info
	}

	var giftCatalog room.GiftCatalog
	if cfg.fetchGiftInfo {
		catalog, err := c.resolver.FetchGiftCatalog(ctx, roomID)
		if err != nil {
			return err
		}
		giftCatalog = catalog
	}

	roomIDUint, err := parseRoomID(roomID)
	if err != nil {
		return err
	}

	hs, err := c.signer.Resolve(ctx, roomIDUint, signer.ResolveOptions{
		UserAgent:         c.facade.BaseHeaders["User-Agent"],
		PreferredAgentIDs: cfg.preferredAgentIDs,
		SessionID:         c.cfg.SessionID,
	})
	if err != nil {
		return err
	}

	wsURL, err := session.BuildWebsocketURL(
		hs.PushServer,
		hs.RouteParams,
		transport.DefaultParams(),
		hs.InternalExt,
		hs.Cursor,
		roomIDUint,
		cfg.compressWSEvents,
		transport.DefaultWebsocketAppendParams(),
	)
	if err != nil {
		return err
	}

	engine := session.New(session.Config{
		Handle:               handle,
		WebsocketURL:         wsURL,
		Cursor:               hs.Cursor,
		InternalExt:          hs.InternalExt,
		RoomID:               roomIDUint,
		InitialMessages:      hs.Messages,
		ProcessConnectEvents: cfg.processConnectEvents,
		Headers:              c.wsHeaders(hs.UserAgent),
		HeartbeatEvery:       c.cfg.HeartbeatEvery,
		Router:               c.router,
	})

	if err := engine.Connect(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	c.engine = engine
	c.roomID = roomID
	c.roomInfo = roomInfo
	c.giftCatalog = giftCatalog
	c.mu.Unlock()

	return nil
}

// wsHeaders builds the handshake headers for the WebSocket upgrade: a
// Cookie header reconstructed from the facade's cookie jar, scoped to the
// platform domain, plus the handshake's User-Agent (the one Connect sent
// to the sign service), falling back to the facade's default.
func (c *Client) wsHeaders(userAgent string) http.Header {
	h := http.Header{}
	if userAgent == "" {
		userAgent = c.facade.BaseHeaders["User-Agent"]
	}
	h.Set("User-Agent", userAgent)

	cookies := c.facade.CookieJar().Cookies(&url.URL{Scheme: "https", Host: platformHost})
	if len(cookies) > 0 {
		req := &http.Request{Header: http.Header{}}
		for _, ck := range cookies {
			req.AddCookie(ck)
		}
		h.Set("Cookie", req.Header.Get("Cookie"))

		if c.cfg.SessionID != "" {
			golog.Debugf("livefeed: connecting with session cookie (redacted, len=%d)", len(c.cfg.SessionID))
		}
	}

	return h
}

// Run blocks until the active session ends. Connect must be called first.
func (c *Client) Run(ctx context.Context) error {
	c.mu.Lock()
	engine := c.engine
	c.mu.Unlock()

	if engine == nil {
		return session.ErrNotConnected
	}

	return engine.Run(ctx)
}

// Start is the common-case helper combining Connect and Run into a
// single call.
func (c *Client) Start(ctx context.Context, handle string, opts ...StartOption) error {
	if err := c.Connect(ctx, handle, opts...); err != nil {
		return err
	}
	return c.Run(ctx)
}

// Disconnect tears the active session down, if any. Safe to call even
// when no session is active.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	engine := c.engine
	c.mu.Unlock()

	if engine == nil {
		return nil
	}
	return engine.Disconnect()
}

// IsLive reports whether the resolved room is currently broadcasting.
func (c *Client) IsLive(ctx context.Context) (bool, error) {
	c.mu.Lock()
	roomID := c.roomID
	c.mu.Unlock()

	if roomID == "" {
		return false, session.ErrNotConnected
	}
	return c.resolver.CheckAlive(ctx, roomID)
}

// SendRoomChat posts a chat message to the connected room using the
// authenticated session cookie configured at construction. Requires
// Configuration.SessionID to have been set; it is not part of the
// anonymous read-only feed path.
func (c *Client) SendRoomChat(ctx context.Context, text string) error {
	c.mu.Lock()
	roomID := c.roomID
	c.mu.Unlock()

	if roomID == "" {
		return session.ErrNotConnected
	}
	if c.cfg.SessionID == "" {
		return fmt.Errorf("livefeed: SendRoomChat requires Configuration.SessionID")
	}

	resp, err := c.facade.Post(ctx, "https://webcast.tiktok.com/webcast/room/chat/", nil, transport.CallOptions{
		Params: map[string]string{"room_id": roomID, "content": text},
		Sign:   true,
	})
	if err != nil {
		return err
	}
	_, err = transport.ReadBody(resp)
	return err
}

func (c *Client) resolveRoomID(ctx context.Context, handle string) (string, error) {
	if id, ok := room.ParseRoomIDLiteral(handle); ok {
		return id, nil
	}
	return c.resolver.FetchRoomIDFromHTML(ctx, handle)
}

func parseRoomID(s string) (uint64, error) {
	var id uint64
	_, err := fmt.Sscanf(s, "%d", &id)
	if err != nil {
		return 0, room.ErrFailedParseRoomID
	}
	return id, nil
}
