package mcpserver

import (
	"context"
	"net/http"
	"net/netip"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockedAddr(t *testing.T) {
	tests := []struct {
		addr    string
		blocked bool
	}{
		{"127.0.0.1", true},
		{"10.1.2.3", true},
		{"172.20.0.1", true},
		{"192.168.0.10", true},
		{"169.254.169.254", true}, // cloud metadata
		{"0.0.0.0", true},
		{"::1", true},
		{"::", true},
		{"fe80::1", true},
		{"fd12:3456::1", true},
		{"::ffff:10.0.0.1", true}, // IPv4-mapped private
		{"8.8.8.8", false},
		{"2606:4700:4700::1111", false},
	}
	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			assert.Equal(t, tt.blocked, blockedAddr(netip.MustParseAddr(tt.addr)))
		})
	}
}

func TestPublicAddrsRejectsLiteralPrivateHost(t *testing.T) {
	_, err := publicAddrs(context.Background(), "127.0.0.1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not allowed")
}

func TestSafeClientRedirects(t *testing.T) {
	client := newSafeHTTPClient()
	require.NotNil(t, client.CheckRedirect)
	assert.Equal(t, fetchTimeout, client.Timeout)

	internal := &http.Request{URL: &url.URL{Scheme: "http", Host: "10.0.0.1"}}
	internal = internal.WithContext(context.Background())
	assert.Error(t, client.CheckRedirect(internal, nil))

	via := make([]*http.Request, maxRedirects)
	err := client.CheckRedirect(internal, via)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redirects")
}
