package ratelimit

import (
	"net/http"
	"strings"
)

// unlimited is returned for requests that are never rate limited.
var unlimited = EndpointConfig{}

// MatchEndpoint returns the tier for a request, or nil when the default limit
// applies. Exact path matches win over prefix matches ("/builder/" matches
// "/builder/sections").
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if method == http.MethodOptions || (path == "/health" && method == http.MethodGet) {
		u := unlimited
		return &u
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}

	var best *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != method || !strings.HasSuffix(c.Path, "/") || !strings.HasPrefix(path, c.Path) {
			continue
		}
		if best == nil || len(c.Path) > len(best.Path) {
			best = c
		}
	}
	return best
}
