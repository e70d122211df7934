// Package transport is the HTTP facade used by every other component. It
// performs outbound calls with configurable proxy, cookie jar,
// header/param defaults, device-id randomization, and an optional
// TLS-fingerprint-impersonating Sender for endpoints the platform
// rejects from standard clients, with request building, header merge,
// gzip-aware response reading, and typed errors all centralized here.
package transport

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"math/rand"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kataras/golog"
	uuid "github.com/satori/go.uuid"
)

// Sender is the minimal round-tripping interface a backend must satisfy,
// letting callers swap in a TLS-fingerprint-impersonating HTTP client
// without this package depending on any particular implementation.
type Sender interface {
	Do(*http.Request) (*http.Response, error)
}

// ErrImpersonationUnavailable is returned when a call requests the
// TLS-fingerprint-impersonating backend but none was configured.
var ErrImpersonationUnavailable = fmt.Errorf("transport: impersonation backend not available")

// Typed errors for the signing and rate-limit paths.
type (
	// ErrRateLimited is returned when a signing call is throttled.
	ErrRateLimited struct {
		ResetAfter time.Duration
	}
	// ErrEmptyPayload is returned when a signing call returns an empty body.
	ErrEmptyPayload struct{}
	// ErrSignNot200 is returned when the signing service answers non-200.
	ErrSignNot200 struct {
		StatusCode int
		Message    string
	}
	// ErrEmptyCookies is returned when a sign response carries no cookies.
	ErrEmptyCookies struct{}
	// ErrPremiumEndpoint is returned when an endpoint refuses unprivileged callers.
	ErrPremiumEndpoint struct{ Endpoint string }
)

func (e ErrRateLimited) Error() string {
	return fmt.Sprintf("transport: signature rate limited, retry after %s", e.ResetAfter)
}
func (ErrEmptyPayload) Error() string { return "transport: empty payload" }
func (e ErrSignNot200) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("transport: sign server responded %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("transport: sign server responded %d", e.StatusCode)
}
func (ErrEmptyCookies) Error() string { return "transport: sign response carried no cookies" }
func (e ErrPremiumEndpoint) Error() string {
	return fmt.Sprintf("transport: %s is a premium endpoint", e.Endpoint)
}

// SignFunc signs an outbound request's URL, returning the signed URL and
// user agent to use. The root package sets it through
// livefeed.WithSignFunc; while it is nil, BuildRequest sends
// CallOptions.Sign requests unsigned.
type SignFunc func(ctx context.Context, rawURL, method, userAgent, sessionCookie string) (signedURL, signedUA string, err error)

// Facade is the HTTP client used by every other component to talk to the
// platform and the signing service.
type Facade struct {
	Std          Sender
	Impersonated Sender // nil unless a fingerprinting backend was wired in.

	jar *cookiejar.Jar

	BaseParams  map[string]string
	BaseHeaders map[string]string

	Sign SignFunc

	Timeout time.Duration
}

// New builds a Facade with a 10s per-client timeout and a fresh
// in-memory cookie jar.
func New() *Facade {
	jar, _ := cookiejar.New(nil)
	timeout := 10 * time.Second

	return &Facade{
		Std:         &http.Client{Jar: jar, Timeout: timeout},
		jar:         jar,
		BaseParams:  DefaultParams(),
		BaseHeaders: DefaultHeaders(),
		Timeout:     timeout,
	}
}

// CookieJar exposes the underlying jar so the handshake client and
// session engine can inspect/merge cookies. The jar is created at
// construction, mutated by sign responses and explicit session-cookie
// sets, and persists across reconnects.
func (f *Facade) CookieJar() *cookiejar.Jar { return f.jar }

// SetSessionCookie stores the consumer-supplied session cookie for the
// given host, scoping it the same way a sign response's cookies are
// scoped.
func (f *Facade) SetSessionCookie(host, sessionID string) {
	u := &url.URL{Scheme: "https", Host: host}
	f.jar.SetCookies(u, []*http.Cookie{{Name: "sessionid", Value: sessionID}})
}

// MergeCookies stores a handshake's signing-service-issued cookies against
// host, so subsequent calls through the facade carry them automatically.
func (f *Facade) MergeCookies(host string, cookies map[string]string) {
	if len(cookies) == 0 {
		return
	}
	u := &url.URL{Scheme: "https", Host: host}
	jarCookies := make([]*http.Cookie, 0, len(cookies))
	for name, value := range cookies {
		jarCookies = append(jarCookies, &http.Cookie{Name: name, Value: value})
	}
	f.jar.SetCookies(u, jarCookies)
}

// CallOptions customize a single Get/Post call.
type CallOptions struct {
	Params      map[string]string
	Headers     map[string]string
	Impersonate bool
	Sign        bool
	SignType    string // "xhr" or "fetch"; not read by BuildRequest nor passed to Sign.
	UserAgent   string
	SessionID   string
}

// Get performs a signed or unsigned GET.
func (f *Facade) Get(ctx context.Context, rawURL string, opts CallOptions) (*http.Response, error) {
	return f.do(ctx, http.MethodGet, rawURL, nil, opts)
}

// Post performs a signed or unsigned POST.
func (f *Facade) Post(ctx context.Context, rawURL string, body []byte, opts CallOptions) (*http.Response, error) {
	return f.do(ctx, http.MethodPost, rawURL, body, opts)
}

func (f *Facade) do(ctx context.Context, method, rawURL string, body []byte, opts CallOptions) (*http.Response, error) {
	req, err := f.BuildRequest(ctx, method, rawURL, body, opts)
	if err != nil {
		return nil, err
	}

	sender := f.Std
	if opts.Impersonate {
		if f.Impersonated == nil {
			return nil, ErrImpersonationUnavailable
		}
		sender = f.Impersonated
	}

	golog.Debugf("transport: %s %s", method, req.URL.String())

	resp, err := sender.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusPaymentRequired {
		resp.Body.Close()
		return nil, ErrPremiumEndpoint{Endpoint: rawURL}
	}

	return resp, nil
}

// BuildRequest merges base params/headers with per-call overrides
// (per-call wins on key collision), stamps a fresh
// device id, and optionally runs the request URL through the signing
// service before constructing the *http.Request.
func (f *Facade) BuildRequest(ctx context.Context, method, rawURL string, body []byte, opts CallOptions) (*http.Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}

	q := u.Query()
	for k, v := range f.BaseParams {
		q.Set(k, v)
	}
	for k, v := range opts.Params {
		q.Set(k, v)
	}
	q.Set("device_id", newDeviceID())
	u.RawQuery = q.Encode()

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = f.BaseHeaders["User-Agent"]
	}

	finalURL := u.String()
	if opts.Sign && f.Sign != nil {
		signedURL, signedUA, err := f.Sign(ctx, finalURL, method, userAgent, opts.SessionID)
		if err != nil {
			return nil, err
		}
		finalURL = signedURL
		userAgent = signedUA
	}

	req, err := http.NewRequestWithContext(ctx, method, finalURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	for k, v := range f.BaseHeaders {
		req.Header.Set(k, v)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("User-Agent", userAgent)

	return req, nil
}

// ReadBody reads and, if gzip-encoded, inflates an HTTP response body.
func ReadBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("transport: gzip response: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	return ioutil.ReadAll(reader)
}

// ParseRetryAfter reads the RateLimit-Remaining header the signing
// service sends on 429 responses.
func ParseRetryAfter(h http.Header) time.Duration {
	v := h.Get("RateLimit-Remaining")
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func newDeviceID() string {
	var b strings.Builder
	for i := 0; i < 20; i++ {
		b.WriteByte(byte('0' + rand.Intn(10)))
	}
	return b.String()
}

// NewClientSessionID mints a fresh session/client identifier, used by the
// handshake client as the sign service's "client" parameter.
func NewClientSessionID() string {
	return uuid.Must(uuid.NewV4()).String()
}
