package proxy

import (
	"net/url"
	"strings"
)

// refererPolicy picks the HTTP-Referer sent upstream. The caller's origin is
// forwarded only when it is one of the allowed sites.
type refererPolicy struct {
	fallback string
	allowed  map[string]struct{}
}

func newRefererPolicy(fallback string, allowed []string) *refererPolicy {
	p := &refererPolicy{
		fallback: fallback,
		allowed:  make(map[string]struct{}, len(allowed)),
	}
	for _, origin := range allowed {
		if key := originKey(origin); key != "" {
			p.allowed[key] = struct{}{}
		}
	}
	return p
}

// resolve returns the referer for a request given its Origin and Referer headers.
func (p *refererPolicy) resolve(origin, referer string) string {
	candidate := origin
	if candidate == "" {
		candidate = referer
	}
	if candidate == "" {
		return p.fallback
	}
	if !strings.Contains(candidate, "://") {
		candidate = "https://" + candidate
	}

	if _, ok := p.allowed[originKey(candidate)]; ok {
		return candidate
	}
	return p.fallback
}

// originKey reduces a URL to scheme://host[:port].
func originKey(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.ToLower(u.Scheme + "://" + u.Host)
}
