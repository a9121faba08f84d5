package ratelimit

import (
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"skillnaav/internal/common"
)

func RateLimit(limiter Limiter, keyFn func(*http.Request) string, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil {
				next.ServeHTTP(w, r)
				return
			}
			key := keyFn(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}
			if !limiter.Allow(key, limit, window) {
				common.WriteJSON(w, http.StatusTooManyRequests, common.ErrorResponse{
					Success: false,
					Error:   "rate_limited",
					Message: "too many requests",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Keyer derives rate-limit keys from requests. X-Forwarded-For is only read
// when the immediate peer is a trusted proxy.
type Keyer struct {
	trusted []*net.IPNet
}

// NewKeyer accepts plain IPs and CIDRs. Unparseable entries are skipped.
func NewKeyer(trustedProxies []string) *Keyer {
	k := &Keyer{}
	for _, entry := range trustedProxies {
		entry = strings.TrimSpace(entry)
		if _, network, err := net.ParseCIDR(entry); err == nil {
			k.trusted = append(k.trusted, network)
			continue
		}
		ip := net.ParseIP(entry)
		if ip == nil {
			log.Printf("Ignoring invalid trusted proxy %q", entry)
			continue
		}
		bits := 8 * net.IPv6len
		if ip.To4() != nil {
			ip, bits = ip.To4(), 8*net.IPv4len
		}
		k.trusted = append(k.trusted, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
	}
	return k
}

func (k *Keyer) isTrusted(addr string) bool {
	ip := net.ParseIP(addr)
	if ip == nil {
		return false
	}
	for _, network := range k.trusted {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// CallerKey keys authenticated callers by user id and everyone else by IP.
func (k *Keyer) CallerKey(r *http.Request) string {
	if id, ok := common.IdentityFromContext(r.Context()); ok && id.UserID != "" {
		return "user:" + id.UserID
	}
	return "ip:" + k.ClientIP(r)
}

// ClientIP walks X-Forwarded-For from the right, skipping trusted hops, and
// returns the first untrusted address. Without a trusted peer the header is
// ignored.
func (k *Keyer) ClientIP(r *http.Request) string {
	peer := remoteHost(r)
	if !k.isTrusted(peer) {
		return peer
	}
	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if !k.isTrusted(hop) {
			return hop
		}
		peer = hop
	}
	return peer
}

// CallerKey uses a Keyer that trusts no proxies.
func CallerKey(r *http.Request) string {
	return (&Keyer{}).CallerKey(r)
}

// ClientIP returns the peer address, ignoring forwarding headers.
func ClientIP(r *http.Request) string {
	return remoteHost(r)
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
