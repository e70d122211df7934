// Package session owns the WebSocket connection lifecycle: dialing,
// framing, ack/heartbeat, read-loop dispatch, and the explicit state
// machine that replaces ad hoc, intertwined goroutine cancellation. An
// atomic close-once guard, a readLoop goroutine, and a typed Router
// dispatch table handle binary push frames end to end.
package session

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/kataras/golog"

	"github.com/landoop/livefeed/internal/webcastpb"
	"github.com/landoop/livefeed/pkg/webcast/events"
	"github.com/landoop/livefeed/pkg/webcast/wire"
)

// State is the session engine's explicit lifecycle state, replacing the
// implicit state tracking of only which background goroutines happen
// to be alive.
type State int32

const (
	StateIdle State = iota
	StateConnecting
	StateRunning
	StateClosing
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateRunning:
		return "running"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// ErrAlreadyConnected is returned by Connect when the engine is not idle.
var ErrAlreadyConnected = fmt.Errorf("session: already connected")

// ErrNotConnected is returned by operations that require a running session.
var ErrNotConnected = fmt.Errorf("session: not connected")

// WebSocketBlockedError is returned by Connect when the upgrade request
// is answered with HTTP 200 instead of a protocol switch: the server
// accepted the request but refused to upgrade, a detection signal rather
// than an ordinary connection failure.
type WebSocketBlockedError struct {
	HandshakeMsg string
}

func (e *WebSocketBlockedError) Error() string {
	return fmt.Sprintf("session: websocket upgrade blocked (200): %s", e.HandshakeMsg)
}

// Config bundles the parameters a Connect call needs; everything here is
// resolved ahead of time by the room resolver and handshake client so the
// engine itself performs no HTTP calls.
type Config struct {
	Handle string

	WebsocketURL string
	Cursor       string
	InternalExt  string
	RoomID       uint64

	// InitialMessages are the messages embedded in the handshake's
	// fetch-result envelope, replayed through the same dispatch path as
	// a live push frame when ProcessConnectEvents is set.
	InitialMessages []*webcastpb.Message
	// ProcessConnectEvents controls whether InitialMessages are replayed
	// as events. New leaves it as given, so the zero value skips them;
	// livefeed.Client sets it from WithProcessConnectEvents, which
	// defaults to true.
	ProcessConnectEvents bool

	Headers        http.Header
	HeartbeatEvery time.Duration // defaults to 5s when zero.
	Router         *events.Router
}

// Engine drives one room's WebSocket connection for its entire lifetime.
// A new Engine must be constructed for each Connect; it is not reusable
// after Disconnect.
type Engine struct {
	cfg  Config
	conn *websocket.Conn

	state int32 // atomic State

	closeOnce sync.Once
	done      chan struct{}

	cursor atomic.Value // string

	errOnce sync.Once
	lastErr error
}

// New builds an Engine in StateIdle.
func New(cfg Config) *Engine {
	if cfg.HeartbeatEvery == 0 {
		cfg.HeartbeatEvery = 5 * time.Second
	}
	e := &Engine{cfg: cfg, done: make(chan struct{})}
	e.cursor.Store(cfg.Cursor)
	atomic.StoreInt32(&e.state, int32(StateIdle))
	return e
}

// State reports the engine's current lifecycle state.
func (e *Engine) State() State {
	return State(atomic.LoadInt32(&e.state))
}

// Cursor reports the most recently observed fetch cursor, monotonically
// advancing as push frames are processed.
func (e *Engine) Cursor() string {
	return e.cursor.Load().(string)
}

// Connect dials the WebSocket endpoint, replays the handshake's initial
// fetch result, and starts the read loop. It returns once the handshake
// completes. The read loop then runs on a background goroutine until the
// connection closes or Disconnect is called; the heartbeat ticker runs
// until the session ends or ctx is cancelled.
func (e *Engine) Connect(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&e.state, int32(StateIdle), int32(StateConnecting)) {
		return ErrAlreadyConnected
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: 15 * time.Second,
		Subprotocols:     []string{"echo-protocol"},
	}

	conn, resp, err := dialer.DialContext(ctx, e.cfg.WebsocketURL, e.cfg.Headers)
	if err != nil {
		atomic.StoreInt32(&e.state, int32(StateIdle))
		if resp != nil && resp.StatusCode == http.StatusOK {
			return &WebSocketBlockedError{HandshakeMsg: resp.Header.Get("Handshake-Msg")}
		}
		return fmt.Errorf("session: dial: %w", err)
	}
	e.conn = conn

	if resp != nil {
		if interval, ok := parsePingInterval(resp.Header); ok {
			e.cfg.HeartbeatEvery = interval
		}
	}

	atomic.StoreInt32(&e.state, int32(StateRunning))

	e.dispatch(&webcastpb.Response{
		Cursor:      e.cfg.Cursor,
		InternalExt: e.cfg.InternalExt,
		IsFirst:     true,
		Messages:    e.cfg.InitialMessages,
	})

	go e.readLoop()
	go e.heartbeatLoop(ctx)

	return nil
}

// Run blocks until the session ends, either because the remote side
// closed the connection, ctx was cancelled, or Disconnect was called.
// It is the blocking entry point callers use to keep a process alive
// for the session's duration.
func (e *Engine) Run(ctx context.Context) error {
	select {
	case <-ctx.Done():
		_ = e.Disconnect()
		return ctx.Err()
	case <-e.done:
		return e.lastErr
	}
}

// Disconnect closes the connection exactly once, transitioning through
// StateClosing to StateClosed. Calling Disconnect more than once, or
// concurrently with the read loop observing a close, is safe.
func (e *Engine) Disconnect() error {
	prev := atomic.SwapInt32(&e.state, int32(StateClosing))
	if State(prev) == StateClosed || State(prev) == StateIdle {
		atomic.StoreInt32(&e.state, prev)
		return nil
	}

	var err error
	e.closeOnce.Do(func() {
		if e.conn != nil {
			err = e.conn.Close()
		}
		atomic.StoreInt32(&e.state, int32(StateClosed))
		close(e.done)

		if e.cfg.Router != nil {
			e.cfg.Router.Route(events.DisconnectEvent{Err: e.lastErr})
		}
	})
	return err
}

func (e *Engine) fail(err error) {
	e.errOnce.Do(func() {
		e.lastErr = err
	})
	_ = e.Disconnect()
}

// readLoop pulls binary frames off the connection, decodes them, routes
// every contained message, and acks afterwards when the envelope demands
// it.
func (e *Engine) readLoop() {
	for {
		if e.State() != StateRunning {
			return
		}

		_, raw, err := e.conn.ReadMessage()
		if err != nil {
			if e.State() == StateClosing || e.State() == StateClosed {
				return
			}
			golog.Errorf("session: read: %v", err)
			e.fail(fmt.Errorf("session: read: %w", err))
			return
		}

		pf, err := wire.DecodePushFrame(raw)
		if err != nil {
			golog.Warnf("session: %v", err)
			continue
		}

		if pf.PayloadType != "msg" {
			// Heartbeat acks and other diagnostic frames carry no fetch
			// result; nothing further to decode or route.
			continue
		}

		fr, err := wire.DecodeFetchResult(pf)
		if err != nil {
			golog.Warnf("session: %v", err)
			continue
		}

		if fr.Cursor != "" {
			e.cursor.Store(fr.Cursor)
		}

		e.dispatch(fr)

		if fr.NeedAck {
			if err := e.sendAck(pf.LogId, fr.InternalExt); err != nil {
				golog.Warnf("session: ack: %v", err)
			}
		}
	}
}

// sendAck acknowledges a push frame whose fetch-result envelope set
// NeedAck, using its LogId and InternalExt.
func (e *Engine) sendAck(logID uint64, internalExt string) error {
	ack := wire.BuildAck(logID, internalExt)
	b, err := wire.EncodePushFrame(ack)
	if err != nil {
		return err
	}
	return e.conn.WriteMessage(websocket.BinaryMessage, b)
}

func (e *Engine) heartbeatLoop(ctx context.Context) {
	ticker := time.NewTicker(e.cfg.HeartbeatEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-e.done:
			return
		case <-ticker.C:
			if e.State() != StateRunning {
				return
			}
			if err := e.conn.WriteMessage(websocket.BinaryMessage, wire.Heartbeat(e.cfg.RoomID)); err != nil {
				golog.Warnf("session: heartbeat: %v", err)
			}
		}
	}
}

// dispatch routes a fetch result's messages, preserving message order,
// emitting the Connect event exactly once for the handshake-derived
// result, and scheduling a detached disconnect when a message's control
// action signals the stream ended.
func (e *Engine) dispatch(fr *webcastpb.Response) {
	if e.cfg.Router == nil {
		return
	}

	if fr.IsFirst {
		e.cfg.Router.Route(events.ConnectEvent{Handle: e.cfg.Handle, RoomID: fmt.Sprintf("%d", e.cfg.RoomID)})
		if !e.cfg.ProcessConnectEvents {
			return
		}
	}

	for _, msg := range fr.Messages {
		evs, disconnect := eventsForMessage(fr, msg)
		for _, ev := range evs {
			e.cfg.Router.Route(ev)
		}
		if disconnect {
			go func() { _ = e.Disconnect() }()
		}
	}
}

// eventsForMessage decodes one embedded message into the ordered sequence
// of events the router should emit for it: an optional synthetic event
// derived from a control action or a follow/share display key, then the
// always-present raw WebsocketResponse, then the typed proto event (or
// Unknown when the method isn't recognized). It reports whether the
// message's control action demands a disconnect.
func eventsForMessage(fr *webcastpb.Response, msg *webcastpb.Message) (out []events.Event, disconnect bool) {
	typed, unknown, err := decodeTyped(msg)

	switch t := typed.(type) {
	case events.ControlMessage:
		switch t.Action {
		case webcastpb.ControlActionStreamEnded, webcastpb.ControlActionStreamSuspended:
			out = append(out, events.LiveEndMessage{})
			disconnect = true
		case webcastpb.ControlActionStreamPaused:
			out = append(out, events.LivePauseMessage{})
		case webcastpb.ControlActionStreamUnpaused:
			out = append(out, events.LiveUnpauseMessage{})
		}
	case events.SocialMessage:
		key := strings.ToLower(t.Key)
		switch {
		case strings.Contains(key, "follow"):
			out = append(out, events.FollowMessage{User: t.User})
		case strings.Contains(key, "share"):
			out = append(out, events.ShareMessage{User: t.User})
		}
	}

	out = append(out, events.WebsocketResponse{
		Cursor:      fr.Cursor,
		InternalExt: fr.InternalExt,
		NeedAck:     fr.NeedAck,
		IsFirst:     fr.IsFirst,
		Method:      msg.Method,
		Raw:         msg.Payload,
	})

	if err != nil {
		golog.Warnf("session: decode %s: %v", msg.Method, err)
		return out, disconnect
	}
	if unknown {
		out = append(out, events.UnknownMessage{Method: msg.Method, Raw: msg.Payload})
		return out, disconnect
	}

	out = append(out, typed)
	return out, disconnect
}

// decodeTyped maps a method-tagged message onto the typed event union,
// replacing dynamic method-name dispatch with a static switch the
// compiler checks. unknown is true when msg.Method has no case below.
func decodeTyped(msg *webcastpb.Message) (ev events.Event, unknown bool, err error) {
	switch msg.Method {
	case "WebcastChatMessage":
		var m webcastpb.ChatMessage
		if err := wire.DecodeMessage(msg, &m); err != nil {
			return nil, false, err
		}
		return events.ChatMessage{User: toUser(m.User), Comment: m.Content}, false, nil

	case "WebcastGiftMessage":
		var m webcastpb.GiftMessage
		if err := wire.DecodeMessage(msg, &m); err != nil {
			return nil, false, err
		}
		return events.GiftMessage{
			User:        toUser(m.User),
			GiftID:      m.GiftId,
			Repeating:   m.RepeatEnd == 0,
			RepeatCount: m.RepeatCount,
			Diamonds:    m.Diamonds,
		}, false, nil

	case "WebcastLikeMessage":
		var m webcastpb.LikeMessage
		if err := wire.DecodeMessage(msg, &m); err != nil {
			return nil, false, err
		}
		return events.LikeMessage{User: toUser(m.User), Count: m.Count, Total: uint64(m.Total)}, false, nil

	case "WebcastMemberMessage":
		var m webcastpb.MemberMessage
		if err := wire.DecodeMessage(msg, &m); err != nil {
			return nil, false, err
		}
		return events.MemberMessage{User: toUser(m.User), ActionID: m.Action}, false, nil

	case "WebcastSocialMessage":
		var m webcastpb.SocialMessage
		if err := wire.DecodeMessage(msg, &m); err != nil {
			return nil, false, err
		}
		var key string
		if m.BaseMessage != nil && m.BaseMessage.DisplayText != nil {
			key = m.BaseMessage.DisplayText.Key
		}
		return events.SocialMessage{User: toUser(m.User), Key: key}, false, nil

	case "WebcastRoomUserSeqMessage":
		var m webcastpb.RoomUserSeqMessage
		if err := wire.DecodeMessage(msg, &m); err != nil {
			return nil, false, err
		}
		out := events.RoomUserSeqMessage{Total: uint64(m.ViewerCount)}
		for _, tv := range m.TopViewers {
			out.TopViewers = append(out.TopViewers, events.TopViewer{User: toUser(tv.User), Score: tv.CoinCount})
		}
		return out, false, nil

	case "WebcastControlMessage":
		var m webcastpb.ControlMessage
		if err := wire.DecodeMessage(msg, &m); err != nil {
			return nil, false, err
		}
		return events.ControlMessage{Action: m.Action}, false, nil

	case "WebcastEmoteChatMessage":
		var m webcastpb.EmoteChatMessage
		if err := wire.DecodeMessage(msg, &m); err != nil {
			return nil, false, err
		}
		return events.EmoteMessage{User: toUser(m.User), EmoteID: m.EmoteImageUrl}, false, nil

	case "WebcastLinkMicBattle":
		var m webcastpb.LinkMicBattleMessage
		if err := wire.DecodeMessage(msg, &m); err != nil {
			return nil, false, err
		}
		out := events.LinkMicBattleMessage{}
		for _, u := range m.Battlers {
			out.BattleUsers = append(out.BattleUsers, toUser(u))
		}
		return out, false, nil

	default:
		return nil, true, nil
	}
}

func toUser(u *webcastpb.User) events.User {
	if u == nil {
		return events.User{}
	}
	var pic string
	if len(u.ProfilePictureUrls) > 0 {
		pic = u.ProfilePictureUrls[0]
	}
	return events.User{
		UserID:        fmt.Sprintf("%d", u.UserId),
		UniqueID:      u.UniqueId,
		Nickname:      u.Nickname,
		ProfilePicURL: pic,
	}
}
