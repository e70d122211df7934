package session

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// BuildWebsocketURL deterministically constructs the websocket endpoint
// from the handshake's push server and route params, merged with the
// caller's base connection params and the per-connect overrides. Calling
// it twice with the same inputs yields an identical string: route params
// default the query, base params override them, and internalExt/cursor/
// roomID/compress always win.
func BuildWebsocketURL(pushServer string, routeParams, baseParams map[string]string, internalExt, cursor string, roomID uint64, compress bool, appendStr string) (string, error) {
	u, err := url.Parse(pushServer)
	if err != nil {
		return "", fmt.Errorf("session: parse push server: %w", err)
	}

	q := u.Query()
	for k, v := range routeParams {
		q.Set(k, v)
	}
	for k, v := range baseParams {
		q.Set(k, v)
	}
	q.Set("internal_ext", internalExt)
	q.Set("cursor", cursor)
	q.Set("room_id", fmt.Sprintf("%d", roomID))
	if compress {
		q.Set("compress", "gzip")
	} else {
		q.Set("compress", "")
	}
	u.RawQuery = q.Encode()

	return u.String() + appendStr, nil
}

// parsePingInterval reads a server-advertised heartbeat interval off the
// Handshake-Options header, a semicolon-separated key=value list, e.g.
// "ping-interval=15;other=x". It reports false when the header is absent
// or carries no recognizable ping-interval value.
func parsePingInterval(h http.Header) (time.Duration, bool) {
	v := h.Get("Handshake-Options")
	if v == "" {
		return 0, false
	}

	for _, part := range strings.Split(v, ";") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch strings.TrimSpace(kv[0]) {
		case "ping-interval", "ping_interval":
			secs, err := strconv.Atoi(strings.TrimSpace(kv[1]))
			if err != nil {
				continue
			}
			return time.Duration(secs) * time.Second, true
		}
	}
	return 0, false
}
