// Package imagepolicy decides which image URLs the render adapters may load.
package imagepolicy

import (
	"net/url"
	"strings"
)

var (
	// DefaultPrefixes are trusted download URL prefixes.
	DefaultPrefixes = []string{"https://firebasestorage.googleapis.com/"}
	// DefaultHostSuffixes are trusted host name suffixes.
	DefaultHostSuffixes = []string{".appspot.com"}
)

// Policy trusts a URL when it starts with one of Prefixes or when its host
// ends with one of HostSuffixes.
type Policy struct {
	Prefixes     []string
	HostSuffixes []string
}

// Default returns the stock policy.
func Default() Policy {
	return Policy{
		Prefixes:     append([]string(nil), DefaultPrefixes...),
		HostSuffixes: append([]string(nil), DefaultHostSuffixes...),
	}
}

// New returns a policy from configuration; empty lists fall back to the
// defaults.
func New(prefixes, hostSuffixes []string) Policy {
	policy := Default()
	if len(prefixes) > 0 {
		policy.Prefixes = append([]string(nil), prefixes...)
	}
	if len(hostSuffixes) > 0 {
		policy.HostSuffixes = append([]string(nil), hostSuffixes...)
	}
	return policy
}

// Allowed reports whether raw may be used as an image source.
func (p Policy) Allowed(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	for _, prefix := range p.Prefixes {
		if prefix != "" && strings.HasPrefix(raw, prefix) {
			return true
		}
	}
	if len(p.HostSuffixes) == 0 {
		return false
	}

	parsed, err := url.Parse(raw)
	if err != nil || (parsed.Scheme != "https" && parsed.Scheme != "http") {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	for _, suffix := range p.HostSuffixes {
		suffix = strings.ToLower(strings.TrimSpace(suffix))
		if suffix != "" && strings.HasSuffix(host, suffix) {
			return true
		}
	}
	return false
}
