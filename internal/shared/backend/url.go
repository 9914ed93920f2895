package backend

import (
	"regexp"
	"strings"
)

// DefaultBaseURL is used when no backend override is configured.
const DefaultBaseURL = "http://127.0.0.1:8000"

const (
	// StatusPath serves the detailed table status snapshot.
	StatusPath = "/api/status/detailed"
	// WeeklyStatsPath serves the weekly hourly aggregate.
	WeeklyStatsPath = "/api/stats/weekly"
	// StatusStreamPath is the push channel for status snapshots.
	StatusStreamPath = "/ws/status"
)

var (
	schemePattern = regexp.MustCompile(`(?i)^https?://`)
	httpsPrefix   = regexp.MustCompile(`(?i)^https:`)
	httpPrefix    = regexp.MustCompile(`(?i)^http:`)
)

// ResolveBaseURL normalizes a configured backend address. Empty values fall
// back to DefaultBaseURL, addresses without a scheme get http://, and
// trailing slashes are removed.
func ResolveBaseURL(raw string) string {
	url := strings.TrimSpace(raw)
	if url == "" {
		url = DefaultBaseURL
	}
	if !schemePattern.MatchString(url) {
		url = "http://" + url
	}
	return strings.TrimRight(url, "/")
}

// ToWebSocketBaseURL maps an http(s) base onto its ws(s) counterpart.
func ToWebSocketBaseURL(httpBaseURL string) string {
	if httpsPrefix.MatchString(httpBaseURL) {
		return httpsPrefix.ReplaceAllString(httpBaseURL, "wss:")
	}
	return httpPrefix.ReplaceAllString(httpBaseURL, "ws:")
}

// StatusStreamURL returns the push channel address for a resolved base URL.
func StatusStreamURL(httpBaseURL string) string {
	return ToWebSocketBaseURL(httpBaseURL) + StatusStreamPath
}
