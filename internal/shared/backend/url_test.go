package backend

import "testing"

func TestResolveBaseURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty uses default", raw: "", want: "http://127.0.0.1:8000"},
		{name: "whitespace uses default", raw: "   ", want: "http://127.0.0.1:8000"},
		{name: "missing scheme", raw: "127.0.0.1:8123", want: "http://127.0.0.1:8123"},
		{name: "https kept", raw: "https://example.com:8443/", want: "https://example.com:8443"},
		{name: "uppercase scheme kept", raw: "HTTP://example.com", want: "HTTP://example.com"},
		{name: "many trailing slashes", raw: "http://host///", want: "http://host"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := ResolveBaseURL(tc.raw); got != tc.want {
				t.Fatalf("ResolveBaseURL(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestStatusStreamURL(t *testing.T) {
	t.Parallel()

	if got := StatusStreamURL(ResolveBaseURL("127.0.0.1:8123")); got != "ws://127.0.0.1:8123/ws/status" {
		t.Fatalf("unexpected ws url: %s", got)
	}
	if got := StatusStreamURL(ResolveBaseURL("https://example.com:8443/")); got != "wss://example.com:8443/ws/status" {
		t.Fatalf("unexpected wss url: %s", got)
	}
	if got := ToWebSocketBaseURL("HTTPS://Example.com"); got != "wss://Example.com" {
		t.Fatalf("expected case-insensitive scheme mapping, got %s", got)
	}
}
