// Package cachecontrol derives Cache-Control response headers from a
// configured time-to-live and the incoming request.
package cachecontrol

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// VaryHeader lists the request headers that change the cached response.
const VaryHeader = "Origin, Cache-Control"

// NoStore forbids any caching of the response.
const NoStore = "no-store"

// TTL is a cache lifetime. The zero value means caching is disabled.
type TTL struct {
	d time.Duration
}

// NoCache is the sentinel TTL that disables caching.
var NoCache = TTL{}

// Duration returns a TTL of d. Non-positive durations disable caching.
func Duration(d time.Duration) TTL {
	if d <= 0 {
		return NoCache
	}
	return TTL{d: d}
}

// Disabled reports whether the TTL forbids caching.
func (t TTL) Disabled() bool { return t.d <= 0 }

// Seconds returns the TTL in whole seconds, rounded to the nearest second.
func (t TTL) Seconds() int64 {
	return int64(t.d.Round(time.Second) / time.Second)
}

func (t TTL) String() string {
	if t.Disabled() {
		return "disabled"
	}
	return t.d.String()
}

// ParseTTL accepts a Go duration ("1h30m"), a plain number of seconds
// ("3600"), or one of "", "0", "false", "disabled", "no-cache" to disable caching.
func ParseTTL(s string) (TTL, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "0", "false", "disabled", "no-cache":
		return NoCache, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			return NoCache, fmt.Errorf("negative cache ttl %q", s)
		}
		return Duration(time.Duration(n) * time.Second), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return NoCache, fmt.Errorf("invalid cache ttl %q: %w", s, err)
	}
	if d < 0 {
		return NoCache, fmt.Errorf("negative cache ttl %q", s)
	}
	return Duration(d), nil
}

// Policy is the caching configuration applied to responses.
type Policy struct {
	TTL TTL
	// SkipAllowed lets a request opt out of caching by sending
	// "Cache-Control: no-store".
	SkipAllowed bool
}

// Compute returns the Cache-Control value for a response to r.
//
// A disabled TTL, or a TTL that rounds to zero seconds, yields no-store. So
// does a request asking for no-store when the policy allows skipping.
// Otherwise the header is "public" (or "private") with max-age set to the
// TTL, plus "immutable" when the content served under the URL never changes.
func (p Policy) Compute(r *http.Request, immutable, private bool) string {
	if p.TTL.Disabled() || p.TTL.Seconds() == 0 {
		return NoStore
	}
	if p.SkipAllowed && r != nil && requestsNoStore(r.Header) {
		return NoStore
	}

	access := "public"
	if private {
		access = "private"
	}
	v := fmt.Sprintf("%s, max-age=%d", access, p.TTL.Seconds())
	if immutable {
		v += ", immutable"
	}
	return v
}

// Compute returns the Cache-Control value for ttl with request skipping
// disabled.
func Compute(r *http.Request, ttl TTL, immutable, private bool) string {
	return Policy{TTL: ttl}.Compute(r, immutable, private)
}

func requestsNoStore(h http.Header) bool {
	for _, v := range h.Values("Cache-Control") {
		for _, directive := range strings.Split(v, ",") {
			if strings.EqualFold(strings.TrimSpace(directive), NoStore) {
				return true
			}
		}
	}
	return false
}
