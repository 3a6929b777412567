// Package reel holds the request-independent rules of the reel pipeline:
// link normalization, summary validation, record assembly, reply text and
// thumbnail imaging.
package reel

import "net/url"

// NormalizeLink keeps scheme, host and path of a post link. Query strings and
// fragments carry tracking noise and are dropped. Unparseable input yields "".
func NormalizeLink(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if u.Scheme == "" && u.Host == "" {
		return u.Path
	}
	return u.Scheme + "://" + u.Host + u.Path
}
