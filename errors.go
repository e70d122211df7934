package livefeed

import (
	"github.com/landoop/livefeed/pkg/webcast/room"
	"github.com/landoop/livefeed/pkg/webcast/session"
	"github.com/landoop/livefeed/pkg/webcast/signer"
)

// Named errors re-exported at the package root so callers can match on
// them without reaching into pkg/webcast/*.
var (
	// ErrAlreadyConnected is returned by Connect/Start when a session is
	// already active on this Client.
	ErrAlreadyConnected = session.ErrAlreadyConnected
	// ErrNotConnected is returned by Run/IsLive/SendRoomChat before Connect.
	ErrNotConnected = session.ErrNotConnected

	// ErrUserOffline is returned by Connect when the room is not currently live.
	ErrUserOffline = room.ErrUserOffline
	// ErrUserNotFound is returned when the handle does not resolve to any room.
	ErrUserNotFound = room.ErrUserNotFound
	// ErrAgeRestricted is returned when the room requires age verification.
	ErrAgeRestricted = room.ErrAgeRestricted
	// ErrFailedParseRoomID is returned when the room id cannot be extracted
	// from the profile page.
	ErrFailedParseRoomID = room.ErrFailedParseRoomID
	// ErrFailedParseAppInfo names a missing or malformed app-info bootstrap
	// blob on the page; no resolver call in this module returns it.
	ErrFailedParseAppInfo = room.ErrFailedParseAppInfo
	// ErrWebcastBlocked200 is returned when the platform answers 200 with
	// an empty body, the signature of a soft geo/rate block.
	ErrWebcastBlocked200 = room.ErrWebcastBlocked200

	// ErrInitialCursorMissing is returned when a handshake response carries
	// no cursor.
	ErrInitialCursorMissing = signer.ErrInitialCursorMissing
	// ErrWebsocketURLMissing is returned when a handshake response carries
	// no push server.
	ErrWebsocketURLMissing = signer.ErrWebsocketURLMissing
	// ErrRouteParamsMissing is returned when a handshake response carries
	// no route params.
	ErrRouteParamsMissing = signer.ErrRouteParamsMissing
	// ErrAuthenticatedWebSocketConnection is returned by Connect/Start when
	// Configuration.SessionID is set but the sign host is not whitelisted
	// via WHITELIST_AUTHENTICATED_SESSION_ID_HOST.
	ErrAuthenticatedWebSocketConnection = signer.ErrAuthenticatedWebSocketConnection
)

// RateLimitError is SignAPIError's rate-limited variant; use
// errors.As(err, &rateLimitErr) to recover RetryAfter/ResetTime.
type RateLimitError = signer.RateLimitError

// SignAPIError wraps a non-200, non-429 response from the sign service.
type SignAPIError = signer.SignAPIError

// WebSocketBlockedError is returned by Connect/Start when the WebSocket
// upgrade is answered with HTTP 200 instead of a protocol switch.
type WebSocketBlockedError = session.WebSocketBlockedError
