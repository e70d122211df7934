// Package events defines the typed event union the session engine
// dispatches and the Router callers subscribe through: a compile-time
// Kind enum and a Router keyed on that enum, the same shape a danmaku
// client's onDanmaku/onGift/onSuper callback slices take, collapsed into
// one map keyed by Kind.
package events

import (
	"sync"

	"github.com/landoop/livefeed/internal/webcastpb"
)

// Kind identifies an event's concrete Go type, replacing the dynamic
// ad hoc method-name dispatch built at runtime.
type Kind int

// The full set of event kinds this client can deliver.
const (
	KindInvalid Kind = iota // zero value; the router never produces this.
	KindConnect
	KindDisconnect
	KindWebsocketResponse
	KindChat
	KindGift
	KindLike
	KindMember // join
	KindFollow
	KindShare
	KindViewerCountUpdate
	KindRoomUserSeq
	KindSocial
	KindControl
	KindLiveEnd
	KindLivePause
	KindLiveUnpause
	KindEmote
	KindLinkMicBattle
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindConnect:
		return "connect"
	case KindDisconnect:
		return "disconnect"
	case KindWebsocketResponse:
		return "websocket_response"
	case KindChat:
		return "chat"
	case KindGift:
		return "gift"
	case KindLike:
		return "like"
	case KindMember:
		return "member"
	case KindFollow:
		return "follow"
	case KindShare:
		return "share"
	case KindViewerCountUpdate:
		return "viewer_count_update"
	case KindRoomUserSeq:
		return "room_user_seq"
	case KindSocial:
		return "social"
	case KindControl:
		return "control"
	case KindLiveEnd:
		return "live_end"
	case KindLivePause:
		return "live_pause"
	case KindLiveUnpause:
		return "live_unpause"
	case KindEmote:
		return "emote"
	case KindLinkMicBattle:
		return "link_mic_battle"
	case KindUnknown:
		return "unknown"
	default:
		return "unknown"
	}
}

// Event is implemented by every concrete event type this package defines.
type Event interface {
	Kind() Kind
}

// ConnectEvent fires once the session engine's websocket handshake
// completes and the handshake-derived fetch result has been observed.
type ConnectEvent struct {
	Handle string
	RoomID string
}

// DisconnectEvent fires when the session engine tears the connection down,
// whether by request or because of an upstream error.
type DisconnectEvent struct{ Err error }

// WebsocketResponse is the raw, always-emitted envelope-level event: one
// fires for every embedded message a fetch result carries, ahead of
// whatever typed event that message decodes to.
type WebsocketResponse struct {
	Cursor      string
	InternalExt string
	NeedAck     bool
	IsFirst     bool
	Method      string
	Raw         []byte
}

// ChatMessage is a viewer's chat comment.
type ChatMessage struct {
	User    User
	Comment string
}

// GiftMessage is a gift send, possibly part of a combo streak.
type GiftMessage struct {
	User        User
	GiftID      uint64
	Repeating   bool
	RepeatCount uint32
	Diamonds    uint32
}

// LikeMessage is a batch of likes.
type LikeMessage struct {
	User  User
	Count uint32
	Total uint64
}

// MemberMessage fires when a viewer joins the room.
type MemberMessage struct {
	User     User
	ActionID uint64
}

// FollowMessage fires when a viewer follows the streamer mid-session,
// derived from a SocialMessage whose display key names a follow.
type FollowMessage struct{ User User }

// ShareMessage fires when a viewer shares the room, derived from a
// SocialMessage whose display key names a share.
type ShareMessage struct{ User User }

// ViewerCountUpdateMessage reports the room's current viewer count.
type ViewerCountUpdateMessage struct{ Count uint32 }

// RoomUserSeqMessage carries the periodic top-viewer ranking snapshot.
type RoomUserSeqMessage struct {
	Total      uint64
	TopViewers []TopViewer
}

// TopViewer is one ranked entry in a RoomUserSeqMessage.
type TopViewer struct {
	User  User
	Score uint64
	Rank  uint32
}

// SocialMessage is the raw follow/share/more-share event as the platform
// sends it, before the router's display-key-based Follow/Share derivation.
type SocialMessage struct {
	User User
	Key  string
}

// ControlMessage signals a stream lifecycle transition.
type ControlMessage struct{ Action webcastpb.ControlAction }

// LiveEndMessage fires once the session engine observes a stream-ended or
// stream-suspended control action; the engine schedules a disconnect
// immediately after.
type LiveEndMessage struct{}

// LivePauseMessage fires when a stream-paused control action arrives.
type LivePauseMessage struct{}

// LiveUnpauseMessage fires when a stream-unpaused control action arrives.
type LiveUnpauseMessage struct{}

// EmoteMessage is a viewer's emote/sticker send.
type EmoteMessage struct {
	User    User
	EmoteID string
}

// LinkMicBattleMessage reports a PK battle state update.
type LinkMicBattleMessage struct {
	BattleUsers []User
}

// UnknownMessage wraps a decoded message whose method this client does
// not model explicitly.
type UnknownMessage struct {
	Method string
	Raw    []byte
}

// User is the event-facing projection of webcastpb.User.
type User struct {
	UserID        string
	UniqueID      string
	Nickname      string
	ProfilePicURL string
}

func (ConnectEvent) Kind() Kind             { return KindConnect }
func (DisconnectEvent) Kind() Kind          { return KindDisconnect }
func (WebsocketResponse) Kind() Kind        { return KindWebsocketResponse }
func (ChatMessage) Kind() Kind              { return KindChat }
func (GiftMessage) Kind() Kind              { return KindGift }
func (LikeMessage) Kind() Kind              { return KindLike }
func (MemberMessage) Kind() Kind            { return KindMember }
func (FollowMessage) Kind() Kind            { return KindFollow }
func (ShareMessage) Kind() Kind             { return KindShare }
func (ViewerCountUpdateMessage) Kind() Kind { return KindViewerCountUpdate }
func (RoomUserSeqMessage) Kind() Kind       { return KindRoomUserSeq }
func (SocialMessage) Kind() Kind            { return KindSocial }
func (ControlMessage) Kind() Kind           { return KindControl }
func (LiveEndMessage) Kind() Kind           { return KindLiveEnd }
func (LivePauseMessage) Kind() Kind         { return KindLivePause }
func (LiveUnpauseMessage) Kind() Kind       { return KindLiveUnpause }
func (EmoteMessage) Kind() Kind             { return KindEmote }
func (LinkMicBattleMessage) Kind() Kind     { return KindLinkMicBattle }
func (UnknownMessage) Kind() Kind           { return KindUnknown }

// Handler receives one dispatched event.
type Handler func(Event)

// Router fans a decoded event out to every handler subscribed to its
// Kind, in place of a string-topic event emitter, with a
// compile-time enum keyed map, guarded for concurrent On/Route
// calls from the session engine's read loop and a caller's goroutine.
type Router struct {
	mu       sync.RWMutex
	handlers map[Kind][]Handler
}

// NewRouter builds an empty Router.
func NewRouter() *Router {
	return &Router{handlers: make(map[Kind][]Handler)}
}

// On subscribes handler to every event of the given kind.
func (r *Router) On(kind Kind, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[kind] = append(r.handlers[kind], handler)
}

// HasListener reports whether at least one handler is subscribed to kind.
func (r *Router) HasListener(kind Kind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers[kind]) > 0
}

// Route delivers ev to every handler subscribed to its Kind. Handlers run
// synchronously, in subscription order, on the caller's goroutine — the
// session engine's read loop calls Route directly, so a slow handler
// backpressures the read loop exactly like a synchronous
// emit did.
func (r *Router) Route(ev Event) {
	r.mu.RLock()
	handlers := append([]Handler(nil), r.handlers[ev.Kind()]...)
	r.mu.RUnlock()

	for _, h := range handlers {
		h(ev)
	}
}
