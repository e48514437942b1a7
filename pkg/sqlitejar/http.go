package sqlitejar

import (
	"net/http"
	"time"
)

// FromHTTPCookie converts c into a Record. host is used as the domain when
// the cookie carries no Domain attribute. MaxAge takes precedence over
// Expires: a positive MaxAge expires relative to now, a negative one marks
// the cookie as already expired, and a cookie with neither is a session
// cookie.
func FromHTTPCookie(c *http.Cookie, host string, now time.Time) Record {
	rec := Record{
		Name:     c.Name,
		Value:    c.Value,
		Domain:   c.Domain,
		Path:     c.Path,
		Secure:   c.Secure,
		HttpOnly: c.HttpOnly,
	}
	if rec.Domain == "" {
		rec.Domain = host
	}
	switch {
	case c.MaxAge < 0:
		rec.Expires = now
	case c.MaxAge > 0:
		rec.Expires = now.Add(time.Duration(c.MaxAge) * time.Second)
	case !c.Expires.IsZero():
		rec.Expires = c.Expires
	default:
		rec.Session = true
	}
	return rec
}

// HTTPCookie converts r back into an *http.Cookie. Session records carry no
// expiry.
func (r Record) HTTPCookie() *http.Cookie {
	c := &http.Cookie{
		Name:     r.Name,
		Value:    r.Value,
		Domain:   r.Domain,
		Path:     normalizePath(r.Path),
		Secure:   r.Secure,
		HttpOnly: r.HttpOnly,
	}
	if !r.IsSession() {
		c.Expires = r.Expires
	}
	return c
}
