// Package wire implements the binary framing codec for the Webcast push
// protocol: length-delimited protocol-buffer messages, optionally
// gzip-compressed, plus the deterministic heartbeat frame the session
// engine sends to keep a connection alive.
package wire

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io/ioutil"

	"github.com/gogo/protobuf/proto"
	"github.com/kataras/golog"

	"github.com/landoop/livefeed/internal/webcastpb"
)

// ErrMalformedFrame is returned when a push frame cannot be parsed.
var ErrMalformedFrame = fmt.Errorf("wire: malformed push frame")

// ErrMalformedPayload is returned when a fetch-result envelope cannot be
// parsed, including when gzip inflation of its payload fails.
var ErrMalformedPayload = fmt.Errorf("wire: malformed fetch-result payload")

const (
	compressTypeHeader = "compress_type"
	compressGzip       = "gzip"
	compressNone       = "none"
)

// DecodePushFrame parses the outer binary envelope of a WebSocket message.
func DecodePushFrame(b []byte) (*webcastpb.PushFrame, error) {
	pf := new(webcastpb.PushFrame)
	if err := proto.Unmarshal(b, pf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	return pf, nil
}

// EncodePushFrame serializes a push frame, used only for acks and heartbeats.
func EncodePushFrame(pf *webcastpb.PushFrame) ([]byte, error) {
	return proto.Marshal(pf)
}

// DecodeFetchResult decodes the fetch-result envelope carried by a "msg"
// push frame, transparently inflating gzip-compressed payloads.
func DecodeFetchResult(pf *webcastpb.PushFrame) (*webcastpb.Response, error) {
	payload := pf.Payload

	switch compress := pf.Headers[compressTypeHeader]; compress {
	case compressGzip:
		inflated, err := gunzip(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: gzip: %v", ErrMalformedPayload, err)
		}
		payload = inflated
	case "", compressNone:
		// parse directly.
	default:
		golog.Warnf("wire: unrecognized compress_type %q, parsing payload as-is", compress)
	}

	fr := new(webcastpb.Response)
	if err := proto.Unmarshal(payload, fr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	return fr, nil
}

func gunzip(b []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return ioutil.ReadAll(r)
}

// DecodeMessage parses a method-tagged message's payload into the proto
// message pointed to by out, propagating malformed-payload errors.
func DecodeMessage(msg *webcastpb.Message, out proto.Message) error {
	if err := proto.Unmarshal(msg.Payload, out); err != nil {
		return fmt.Errorf("%w: method %s: %v", ErrMalformedPayload, msg.Method, err)
	}
	return nil
}

// heartbeatSubHeaders reproduces the two constant
// metadata sub-messages a heartbeat always carries; they never change between
// calls so Heartbeat is a pure function of roomID.
var heartbeatSubHeaders = map[string]string{
	"device-platform": "web",
	"appid":           "webcast",
}

// Heartbeat returns the deterministic push-frame bytes the session engine
// sends on its heartbeat interval to keep the connection alive.
func Heartbeat(roomID uint64) []byte {
	pf := &webcastpb.PushFrame{
		PayloadType: "hb",
		Headers:     heartbeatSubHeaders,
		Payload:     []byte(fmt.Sprintf("room_id=%d", roomID)),
	}

	b, err := EncodePushFrame(pf)
	if err != nil {
		// Heartbeat is built from constant, always-marshalable fields;
		// a failure here means the wire types themselves are broken.
		panic(fmt.Sprintf("wire: heartbeat encode: %v", err))
	}
	return b
}

// BuildAck constructs the ack frame for a push frame whose fetch-result
// envelope set NeedAck.
func BuildAck(logID uint64, internalExt string) *webcastpb.PushFrame {
	payload := []byte(internalExt)
	if len(payload) == 0 {
		payload = []byte("-")
	}

	return &webcastpb.PushFrame{
		LogId:       logID,
		PayloadType: "ack",
		Payload:     payload,
	}
}
