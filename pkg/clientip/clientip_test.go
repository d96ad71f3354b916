package clientip_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/calckit/pkg/clientip"
)

func TestFromRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		trusted []string
		want    string
	}{
		{"remote addr", nil, "192.0.2.10:5123", nil, "192.0.2.10"},
		{"remote addr without port", nil, "192.0.2.10", nil, "192.0.2.10"},
		{"ipv6 remote addr", nil, "[2001:db8::1]:443", nil, "2001:db8::1"},
		{"cloudflare first", map[string]string{"CF-Connecting-IP": "203.0.113.7", "X-Real-IP": "198.51.100.1"}, "10.0.0.1:1", nil, "203.0.113.7"},
		{"first valid forwarded entry", map[string]string{"X-Forwarded-For": "garbage, 198.51.100.4, 10.0.0.2"}, "10.0.0.1:1", nil, "198.51.100.4"},
		{"invalid headers fall back", map[string]string{"X-Real-IP": "not-an-ip"}, "10.0.0.1:1", nil, "10.0.0.1"},
		{"untrusted header ignored", map[string]string{"X-Real-IP": "198.51.100.1"}, "10.0.0.1:1", []string{}, "10.0.0.1"},
		{"custom header", map[string]string{"Fly-Client-IP": "198.51.100.9"}, "10.0.0.1:1", []string{"Fly-Client-IP"}, "198.51.100.9"},
		{"nothing usable", nil, "pipe", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientip.FromRequest(r, tt.trusted))
		})
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var got string
	h := clientip.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = clientip.FromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.50")
	h.ServeHTTP(httptest.NewRecorder(), r)
	assert.Equal(t, "203.0.113.50", got)
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	extract := clientip.LoggerExtractor()
	_, ok := extract(context.Background())
	assert.False(t, ok)

	attr, ok := extract(clientip.WithContext(context.Background(), "192.0.2.1"))
	require.True(t, ok)
	assert.Equal(t, "client_ip", attr.Key)
	assert.Equal(t, "192.0.2.1", attr.Value.String())
}
