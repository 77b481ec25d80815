package ratelimit

import (
	"fmt"
	"net/netip"
	"strings"
	"time"
)

// EndpointConfig is the limit applied to one method and path. A path ending in "/" also
// matches every path below it. Entries with the same Key share one bucket per client.
type EndpointConfig struct {
	Key    string
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

// bucketKey names the allowance this endpoint draws from.
func (e *EndpointConfig) bucketKey() string {
	if e.Key != "" {
		return e.Key
	}
	return e.Path
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTTL         time.Duration
	Whitelist       *IPSet
	Blacklist       *IPSet
	EndpointConfigs []EndpointConfig
}

// DefaultConfig returns a lenient global limit and the strict rewrite tier.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		Whitelist:       &IPSet{},
		Blacklist:       &IPSet{},
		EndpointConfigs: RewriteEndpoints(10, time.Hour, 2),
	}
}

// RewriteEndpoints returns the tier for the rewrite endpoint. Both spellings of the path
// draw from the same allowance.
func RewriteEndpoints(limit int, window time.Duration, burst int) []EndpointConfig {
	return []EndpointConfig{
		{Key: "rewrite", Path: "/rewrite/", Method: "POST", Limit: limit, Window: window, Burst: burst},
		{Key: "rewrite", Path: "/rewrite", Method: "POST", Limit: limit, Window: window, Burst: burst},
	}
}

// MatchEndpoint returns the configuration for a request, or nil when the default applies.
// Exact paths win over prefixes. GET /health is never limited.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return &EndpointConfig{Path: path, Method: method}
	}

	for i := range configs {
		if configs[i].Method == method && configs[i].Path == path {
			return &configs[i]
		}
	}
	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}
	return nil
}

// IPSet matches client addresses against single IPs and CIDR prefixes.
type IPSet struct {
	prefixes []netip.Prefix
}

// ParseIPSet parses entries such as "10.0.0.1" or "192.168.0.0/16".
func ParseIPSet(entries []string) (*IPSet, error) {
	set := &IPSet{}
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			prefix, err := netip.ParsePrefix(entry)
			if err != nil {
				return nil, fmt.Errorf("invalid CIDR %q: %w", entry, err)
			}
			set.prefixes = append(set.prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid IP %q: %w", entry, err)
		}
		set.prefixes = append(set.prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return set, nil
}

// Contains reports whether clientID is an address inside the set.
func (s *IPSet) Contains(clientID string) bool {
	if s == nil || len(s.prefixes) == 0 {
		return false
	}
	addr, err := netip.ParseAddr(clientID)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range s.prefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
