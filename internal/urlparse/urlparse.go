// Package urlparse classifies link targets as URLs and extracts the parts
// that compact displays show in place of the full address.
package urlparse

import (
	"net/url"
	"regexp"
	"strings"
)

// Result describes a classified string.
type Result struct {
	// IsURL reports whether the input is a well-formed absolute URL.
	IsURL bool

	// Scheme is the explicit scheme. It is empty for http and https,
	// which are implied in compact displays.
	Scheme string

	// Domain is the resolved host name without port.
	Domain string
}

// DisplayDomain returns the domain prefixed with the scheme when one is shown.
func (r Result) DisplayDomain() string {
	if r.Scheme == "" {
		return r.Domain
	}
	return r.Scheme + "://" + r.Domain
}

var schemePattern = regexp.MustCompile(`^([a-zA-Z]+)://`)

// Schemes whose URLs are meaningless without a host.
var hostRequired = map[string]bool{
	"http":  true,
	"https": true,
	"ftp":   true,
	"ws":    true,
	"wss":   true,
}

// Parse classifies s. It never panics; anything that cannot be parsed
// yields the zero Result.
func Parse(s string) (res Result) {
	defer func() {
		if recover() != nil {
			res = Result{}
		}
	}()

	scheme, rest := splitScheme(s)

	if host, ok := hostname(s); ok {
		return Result{IsURL: true, Scheme: scheme, Domain: host}
	}
	if scheme == "" {
		return Result{}
	}

	// Custom schemes whose remainder is a plain host.
	if host, ok := hostname("http://" + rest); ok {
		return Result{IsURL: true, Scheme: scheme, Domain: host}
	}
	return Result{}
}

// splitScheme separates a leading scheme:// prefix. http and https are
// reported as the empty scheme.
func splitScheme(s string) (scheme, rest string) {
	m := schemePattern.FindStringSubmatch(s)
	if m == nil {
		return "", s
	}
	rest = s[len(m[0]):]
	scheme = strings.ToLower(m[1])
	if scheme == "http" || scheme == "https" {
		return "", rest
	}
	return scheme, rest
}

// hostname parses s as an absolute URL and returns its host name.
func hostname(s string) (string, bool) {
	if strings.TrimSpace(s) != s || s == "" {
		return "", false
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return "", false
	}
	scheme := strings.ToLower(u.Scheme)
	host := u.Hostname()
	if hostRequired[scheme] {
		if host == "" || strings.ContainsAny(host, " \t") {
			return "", false
		}
		host = strings.ToLower(host)
	}
	return host, true
}
