// Package room resolves a human-entered handle or numeric room id into
// the concrete room id the session engine needs to open a connection,
// and fetches a room's REST room-info document (live status, age
// restriction) and gift catalog. A handle is resolved from its live
// page's HTML only; there is no REST fallback when that parse fails.
package room

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/landoop/livefeed/pkg/webcast/transport"
)

// Named error values for the resolution failure modes callers need to match on.
var (
	ErrUserOffline          = fmt.Errorf("room: user is offline")
	ErrUserNotFound         = fmt.Errorf("room: user not found")
	ErrAgeRestricted        = fmt.Errorf("room: content is age restricted")
	ErrFailedParseRoomID    = fmt.Errorf("room: failed to parse room id from page")
	ErrFailedParseAppInfo   = fmt.Errorf("room: failed to parse app info from page")
	ErrCountryBlacklisted   = fmt.Errorf("room: room is geo-blocked for the current IP")
	ErrWebcastBlocked200    = fmt.Errorf("room: webcast responded 200 with an empty blocked payload")
)

var handleRe = regexp.MustCompile(`^@?([\w.-]+)$`)

// NormalizeHandle strips a leading "@" and surrounding whitespace/URL
// scaffolding from a user-supplied handle. Normalization never performs
// network I/O and is deterministic for a given input.
func NormalizeHandle(handle string) string {
	h := strings.TrimSpace(handle)
	h = strings.TrimPrefix(h, "https://www.tiktok.com/")
	h = strings.TrimPrefix(h, "www.tiktok.com/")
	h = strings.TrimSuffix(h, "/live")
	if m := handleRe.FindStringSubmatch(h); len(m) == 2 {
		return m[1]
	}
	return strings.TrimPrefix(h, "@")
}

// Info is the resolved state of a room, returned by FetchRoomInfo and
// surfaced to callers via Client.RoomInfo; CheckAlive reports its IsLive
// field.
type Info struct {
	RoomID     string
	UniqueID   string
	IsLive     bool
	AgeRestrict bool
}

// Resolver looks up a handle's room id through the HTML-page route, and
// room info and gift catalogs through the REST routes. FetchRoomIDFromHTML
// does not fall back to a REST lookup when the page lacks a room id.
type Resolver struct {
	Facade   *transport.Facade
	BaseHost string // defaults to "www.tiktok.com" when empty.
}

// New builds a Resolver bound to the given facade.
func New(f *transport.Facade) *Resolver {
	return &Resolver{Facade: f, BaseHost: "www.tiktok.com"}
}

func (r *Resolver) host() string {
	if r.BaseHost != "" {
		return r.BaseHost
	}
	return "www.tiktok.com"
}

// FetchRoomIDFromHTML resolves a handle to a room id by requesting the
// live page and extracting the SIGI_STATE bootstrap blob.
func (r *Resolver) FetchRoomIDFromHTML(ctx context.Context, handle string) (string, error) {
	handle = NormalizeHandle(handle)
	rawURL := fmt.Sprintf("https://%s/@%s/live", r.host(), handle)

	resp, err := r.Facade.Get(ctx, rawURL, transport.CallOptions{})
	if err != nil {
		return "", err
	}

	body, err := transport.ReadBody(resp)
	if err != nil {
		return "", err
	}

	if resp.StatusCode == 404 {
		return "", ErrUserNotFound
	}

	roomID, err := extractRoomID(body)
	if err != nil {
		return "", err
	}
	if roomID == "" {
		return "", ErrFailedParseRoomID
	}

	return roomID, nil
}

var (
	sigiRoomIDRe = regexp.MustCompile(`"roomId":"(\d+)"`)
	sigiLiveRe   = regexp.MustCompile(`"status":\s*(\d+)`)
)

func extractRoomID(html []byte) (string, error) {
	m := sigiRoomIDRe.FindSubmatch(html)
	if m == nil {
		return "", ErrFailedParseRoomID
	}
	return string(m[1]), nil
}

// roomInfoResponse models the subset of the REST room-info payload this
// client relies on.
type roomInfoResponse struct {
	Data struct {
		Status    int    `json:"status"`
		OwnerID   string `json:"owner_user_id"`
		IDStr     string `json:"id_str"`
		AgeRestrict bool `json:"age_restrict"`
	} `json:"data"`
	StatusCode int    `json:"status_code"`
	StatusMsg  string `json:"status_msg"`
}

// FetchRoomInfo retrieves the REST room-info document for roomID and
// translates it into an Info, including the age-restriction and
// went-offline edge cases.
func (r *Resolver) FetchRoomInfo(ctx context.Context, roomID string) (*Info, error) {
	rawURL := "https://webcast.tiktok.com/webcast/room/info/"

	resp, err := r.Facade.Get(ctx, rawURL, transport.CallOptions{
		Params: map[string]string{"room_id": roomID},
	})
	if err != nil {
		return nil, err
	}

	body, err := transport.ReadBody(resp)
	if err != nil {
		return nil, err
	}

	if len(body) == 0 {
		return nil, ErrWebcastBlocked200
	}

	var parsed roomInfoResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("room: decode room-info: %w", err)
	}

	if parsed.Data.AgeRestrict {
		return nil, ErrAgeRestricted
	}

	// status 4 means the room is not currently live.
	info := &Info{
		RoomID:      roomID,
		UniqueID:    parsed.Data.OwnerID,
		IsLive:      parsed.Data.Status != 4,
		AgeRestrict: parsed.Data.AgeRestrict,
	}

	return info, nil
}

// CheckAlive reports whether roomID is live; Client.Connect's liveness
// check and Client.IsLive use it. It fetches and parses the full room-info
// document through FetchRoomInfo; there is no lighter or multi-room
// liveness call.
func (r *Resolver) CheckAlive(ctx context.Context, roomID string) (bool, error) {
	info, err := r.FetchRoomInfo(ctx, roomID)
	if err != nil {
		if err == ErrUserOffline {
			return false, nil
		}
		return false, err
	}
	return info.IsLive, nil
}

// ParseRoomIDLiteral accepts a handle that is already a numeric room id,
// short-circuiting the network round trip entirely.
func ParseRoomIDLiteral(handle string) (string, bool) {
	h := NormalizeHandle(handle)
	if _, err := strconv.ParseUint(h, 10, 64); err != nil {
		return "", false
	}
	return h, true
}

// Gift is one entry of a room's gift catalog: the diamond cost and
// display metadata needed to turn a GiftMessage's numeric GiftID into
// something presentable.
type Gift struct {
	ID        uint64 `json:"gift_id"`
	Name      string `json:"name"`
	DiamondCount int `json:"diamond_count"`
	ImageURL  string `json:"image_url"`
	Combo     bool   `json:"combo"`
}

// GiftCatalog maps a gift's numeric id to its descriptor.
type GiftCatalog map[uint64]Gift

type giftInfoResponse struct {
	Data struct {
		Gifts []Gift `json:"gifts"`
	} `json:"data"`
}

// FetchGiftCatalog retrieves the room's gift catalog, used to resolve
// GiftMessage.GiftID into a human-readable descriptor. Callers fetch it
// once per connection; the result is immutable afterwards.
func (r *Resolver) FetchGiftCatalog(ctx context.Context, roomID string) (GiftCatalog, error) {
	rawURL := "https://webcast.tiktok.com/webcast/gift/list/"

	resp, err := r.Facade.Get(ctx, rawURL, transport.CallOptions{
		Params: map[string]string{"room_id": roomID},
	})
	if err != nil {
		return nil, err
	}

	body, err := transport.ReadBody(resp)
	if err != nil {
		return nil, err
	}

	var parsed giftInfoResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("room: decode gift catalog: %w", err)
	}

	catalog := make(GiftCatalog, len(parsed.Data.Gifts))
	for _, g := range parsed.Data.Gifts {
		catalog[g.ID] = g
	}
	return catalog, nil
}
