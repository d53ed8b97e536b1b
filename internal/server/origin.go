// Package server decides which web pages may open a game socket: the lobby's
// own play page, plus any site listed in the configuration.
package server

import (
	"log"
	"net/http"
	"net/url"
	"strings"
)

// originPolicy is the compiled form of Config.AllowedOrigins.
type originPolicy struct {
	anySite bool
	sites   map[string]struct{}
}

// newOriginPolicy canonicalizes the configured origins. "*" admits every
// site; entries without a scheme and host are logged and skipped. The
// canonical list is returned for the active Config.
func newOriginPolicy(origins []string) (originPolicy, []string) {
	policy := originPolicy{sites: make(map[string]struct{}, len(origins))}
	var canonical []string

	for _, entry := range origins {
		entry = strings.TrimSpace(entry)
		switch {
		case entry == "":
			continue
		case entry == "*":
			policy.anySite = true
			continue
		}

		site, ok := canonicalOrigin(entry)
		if !ok {
			log.Printf("Ignoring invalid origin in configuration: %q", entry)
			continue
		}
		if _, dup := policy.sites[site]; !dup {
			canonical = append(canonical, site)
		}
		policy.sites[site] = struct{}{}
	}
	return policy, canonical
}

// canonicalOrigin reduces origin to lower-case scheme://host[:port].
func canonicalOrigin(origin string) (string, bool) {
	u, err := url.Parse(origin)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", false
	}
	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host), true
}

// permits reports whether the page that opened r may join the lobby. A page
// served by this lobby (the built-in play page) is always admitted.
func (p originPolicy) permits(r *http.Request) bool {
	site, ok := canonicalOrigin(r.Header.Get("Origin"))
	if !ok {
		return false
	}
	if r.Host != "" && strings.HasSuffix(site, "://"+strings.ToLower(r.Host)) {
		return true
	}
	if p.anySite {
		return true
	}
	_, listed := p.sites[site]
	return listed
}

// checkOrigin is the upgrader hook; it consults the active policy.
func checkOrigin(r *http.Request) bool {
	configMu.RLock()
	policy := activeOrigins
	configMu.RUnlock()

	if policy.permits(r) {
		return true
	}
	log.Printf("Rejected game socket from origin %q", r.Header.Get("Origin"))
	return false
}
