package livefeed

import "github.com/landoop/livefeed/pkg/webcast/transport"

// ClientOption customizes a Client at construction time.
type ClientOption func(*Client)

// WithSender overrides the HTTP backend used for non-impersonated calls.
func WithSender(sender transport.Sender) ClientOption {
	return func(c *Client) {
		c.facade.Std = sender
	}
}

// WithImpersonatedSender wires a TLS-fingerprint-impersonating backend
// for endpoints that reject standard Go HTTP clients. Calls made with
// CallOptions.Impersonate are routed through it; none of the Client's own
// calls set that option.
func WithImpersonatedSender(sender transport.Sender) ClientOption {
	return func(c *Client) {
		c.facade.Impersonated = sender
	}
}

// WithSignFunc overrides how outbound requests are signed, letting a
// caller plug in a local signer instead of the remote sign service.
func WithSignFunc(fn transport.SignFunc) ClientOption {
	return func(c *Client) {
		c.facade.Sign = fn
	}
}

// startConfig holds the per-Connect/Start options.
type startConfig struct {
	roomID               string
	preferredAgentIDs    []string
	fetchRoomInfo        bool
	fetchGiftInfo        bool
	fetchLiveCheck       bool
	processConnectEvents bool
	compressWSEvents     bool
}

func defaultStartConfig() startConfig {
	return startConfig{
		fetchLiveCheck:       true,
		processConnectEvents: true,
		compressWSEvents:     true,
	}
}

// StartOption customizes a single Connect or Start call.
type StartOption func(*startConfig)

// WithRoomID bypasses handle resolution entirely; the consumer supplies
// the already-known numeric room id.
func WithRoomID(roomID string) StartOption {
	return func(c *startConfig) {
		c.roomID = roomID
	}
}

// WithPreferredAgentIDs passes a hint to the signing service about which
// upstream agents it should prefer for this handshake.
func WithPreferredAgentIDs(ids []string) StartOption {
	return func(c *startConfig) {
		c.preferredAgentIDs = ids
	}
}

// WithFetchRoomInfo fetches the full room-info document during Connect,
// exposed afterwards through Client.RoomInfo.
func WithFetchRoomInfo() StartOption {
	return func(c *startConfig) {
		c.fetchRoomInfo = true
	}
}

// WithFetchGiftInfo fetches the room's gift catalog during Connect,
// exposed afterwards through Client.GiftCatalog.
func WithFetchGiftInfo() StartOption {
	return func(c *startConfig) {
		c.fetchGiftInfo = true
	}
}

// WithFetchLiveCheck toggles the room-info liveness probe before
// connecting; it is enabled by default.
func WithFetchLiveCheck(enabled bool) StartOption {
	return func(c *startConfig) {
		c.fetchLiveCheck = enabled
	}
}

// WithoutLiveCheck skips the room-info liveness probe before connecting,
// useful for a room a caller already knows is live. Equivalent to
// WithFetchLiveCheck(false).
func WithoutLiveCheck() StartOption {
	return WithFetchLiveCheck(false)
}

// WithProcessConnectEvents toggles whether the handshake's
// embedded messages are replayed as events after the Connect event; it
// is enabled by default.
func WithProcessConnectEvents(enabled bool) StartOption {
	return func(c *startConfig) {
		c.processConnectEvents = enabled
	}
}

// WithCompressWSEvents toggles gzip compression on the WebSocket
// connection; it is enabled by default.
func WithCompressWSEvents(enabled bool) StartOption {
	return func(c *startConfig) {
		c.compressWSEvents = enabled
	}
}
