package transport

// DefaultParams and DefaultHeaders return a fresh map on every call, so
// each caller gets its own copy and one room's session can never leak a
// header into another's by mutating a shared map in place.
func DefaultParams() map[string]string {
	return map[string]string{
		"aid":                 "1988",
		"app_language":        "en-US",
		"app_name":            "tiktok_web",
		"browser_language":    "en-US",
		"browser_name":        "Mozilla",
		"browser_online":      "true",
		"browser_platform":    "Win32",
		"browser_version":     "5.0 (Windows)",
		"cookie_enabled":      "true",
		"device_platform":     "web_pc",
		"focus_state":         "true",
		"from_page":           "user",
		"history_len":         "4",
		"is_fullscreen":       "false",
		"is_page_visible":     "true",
		"did_rule":            "3",
		"webcast_language":    "en-US",
		"tz_name":             "UTC",
		"referer":             "https://www.tiktok.com/",
		"root_referer":        "https://www.tiktok.com/",
		"priority_region":     "",
		"region":              "US",
	}
}

// DefaultWebsocketAppendParams returns a literal "&version_code=270000"
// tail glued onto the websocket query string outside the normal param
// table, because the platform's WS endpoint historically rejected a
// url-encoded version_code value. Kept distinct from DefaultParams so
// callers that must reproduce the exact append order can do so.
func DefaultWebsocketAppendParams() string {
	return "&version_code=270000"
}

// DefaultHeaders returns the header table every outbound request starts
// from.
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Connection":      "keep-alive",
		"Cache-Control":   "max-age=0",
		"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0.0.0 Safari/537.36",
		"Accept":          "text/html,application/json,application/protobuf",
		"Accept-Language": "en-US,en;q=0.9",
		"Referer":         "https://www.tiktok.com/",
	}
}

// DefaultCookies returns the cookie table every session starts from
// before a sign call or explicit session cookie overrides it.
func DefaultCookies() map[string]string {
	return map[string]string{
		"tt-target-idc": "useast1a",
	}
}
