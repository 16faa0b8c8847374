package ratelimit

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
)

type clientIPKey struct{}

// ProxyTrust decides which forwarding headers to believe. X-Forwarded-For
// and X-Real-IP are only read when the connection comes from a trusted
// proxy; otherwise anyone could pick the address their requests are
// limited under.
type ProxyTrust struct {
	nets []*net.IPNet
}

// NewProxyTrust parses proxies, each an IP or a CIDR. An empty list trusts
// no proxy.
func NewProxyTrust(proxies []string) (*ProxyTrust, error) {
	t := &ProxyTrust{}
	for _, p := range proxies {
		if !strings.Contains(p, "/") {
			ip := net.ParseIP(p)
			if ip == nil {
				return nil, fmt.Errorf("invalid trusted proxy %q", p)
			}
			bits := 128
			if ip.To4() != nil {
				ip, bits = ip.To4(), 32
			}
			t.nets = append(t.nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}

		_, n, err := net.ParseCIDR(p)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", p, err)
		}
		t.nets = append(t.nets, n)
	}
	return t, nil
}

func (t *ProxyTrust) trusted(addr string) bool {
	ip := net.ParseIP(strings.TrimSpace(addr))
	if ip == nil {
		return false
	}
	for _, n := range t.nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// ClientIP returns the address of the client behind r. For a request from
// a trusted proxy that is the right-most X-Forwarded-For entry that is not
// itself a trusted proxy, then X-Real-IP. Otherwise it is the peer address.
func (t *ProxyTrust) ClientIP(r *http.Request) string {
	peer := remoteHost(r)
	if t == nil || !t.trusted(peer) {
		return peer
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop != "" && !t.trusted(hop) {
				return hop
			}
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	return peer
}

// WithClientIP stores ip as the client address of r.
func WithClientIP(r *http.Request, ip string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), clientIPKey{}, ip))
}

// ExtractIP returns the client address stored by WithClientIP, or the peer
// address of r.
func ExtractIP(r *http.Request) string {
	if ip, ok := r.Context().Value(clientIPKey{}).(string); ok && ip != "" {
		return ip
	}
	return remoteHost(r)
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
