package server

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewOriginPolicy(t *testing.T) {
	policy, canonical := newOriginPolicy([]string{"https://Chess.Example:8443", "", "ftp//broken", "http://localhost:8080", "https://chess.example:8443"})

	assert.False(t, policy.anySite)
	assert.Equal(t, []string{"https://chess.example:8443", "http://localhost:8080"}, canonical)
	assert.Len(t, policy.sites, 2)

	policy, canonical = newOriginPolicy([]string{"*"})
	assert.True(t, policy.anySite)
	assert.Empty(t, canonical)

	policy, canonical = newOriginPolicy(nil)
	assert.Nil(t, canonical)
	assert.False(t, policy.anySite)
}

func TestCheckOrigin(t *testing.T) {
	t.Cleanup(func() { SetConfig(nil) })
	SetConfig(&Config{AllowedOrigins: []string{"https://chess.example"}})

	tests := []struct {
		name   string
		host   string
		origin string
		want   bool
	}{
		{name: "configured origin", host: "lobby.internal", origin: "https://chess.example", want: true},
		{name: "configured origin different case", host: "lobby.internal", origin: "HTTPS://CHESS.EXAMPLE", want: true},
		{name: "play page on the same host", host: "lobby.internal:8080", origin: "http://lobby.internal:8080", want: true},
		{name: "subdomain of the lobby host", host: "lobby.internal:8080", origin: "http://evil.lobby.internal:8080", want: false},
		{name: "unknown origin", host: "lobby.internal", origin: "https://evil.example", want: false},
		{name: "missing origin", host: "lobby.internal", origin: "", want: false},
		{name: "malformed origin", host: "lobby.internal", origin: "chess.example", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/ws", nil)
			req.Host = tt.host
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.want, checkOrigin(req))
		})
	}
}

func TestWildcardOrigin(t *testing.T) {
	t.Cleanup(func() { SetConfig(nil) })
	SetConfig(&Config{AllowedOrigins: []string{"*"}})

	req := httptest.NewRequest("GET", "/ws", nil)
	req.Header.Set("Origin", "https://anywhere.example")
	assert.True(t, checkOrigin(req))
}
