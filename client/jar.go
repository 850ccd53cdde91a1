// ABOUTME: Cookie jar with optional file persistence for the refresh cookie
// ABOUTME: Cookies are stored opaque; the client never inspects their contents

package client

import (
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// persistentJar wraps the stdlib cookie jar and mirrors cookies for the
// API origin to a file, so a short-lived CLI process can carry the
// httpOnly refresh cookie across invocations the way a browser does.
// The cookie values are treated as opaque credentials.
//
// The stdlib jar strips everything but Name and Value on read, so the
// expiry of each cookie is recorded here as the backend sets it.
type persistentJar struct {
	mu      sync.Mutex
	jar     *cookiejar.Jar
	path    string
	base    *url.URL
	expires map[string]time.Time
}

type storedCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Expires time.Time `json:"expires,omitempty"`
}

func newPersistentJar(base *url.URL, path string) (*persistentJar, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	p := &persistentJar{jar: jar, path: path, base: base, expires: make(map[string]time.Time)}
	p.load()
	return p, nil
}

func (p *persistentJar) Cookies(u *url.URL) []*http.Cookie {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.jar.Cookies(u)
}

func (p *persistentJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, c := range cookies {
		p.expires[c.Name] = cookieExpiry(c)
	}
	p.jar.SetCookies(u, cookies)
	p.save()
}

// cookieExpiry resolves a cookie's expiry from Max-Age or Expires.
// Session cookies yield the zero time and are kept until cleared.
func cookieExpiry(c *http.Cookie) time.Time {
	if c.MaxAge > 0 {
		return time.Now().Add(time.Duration(c.MaxAge) * time.Second)
	}
	if c.MaxAge < 0 {
		return time.Unix(0, 0)
	}
	return c.Expires
}

// load restores cookies for the API origin. Expired entries are
// dropped; corrupt or missing files mean an empty jar, never an error.
func (p *persistentJar) load() {
	if p.path == "" {
		return
	}
	data, err := os.ReadFile(p.path)
	if err != nil {
		return
	}
	var stored []storedCookie
	if err := json.Unmarshal(data, &stored); err != nil {
		return
	}
	cookies := make([]*http.Cookie, 0, len(stored))
	now := time.Now()
	for _, c := range stored {
		if !c.Expires.IsZero() && c.Expires.Before(now) {
			continue
		}
		p.expires[c.Name] = c.Expires
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value, Expires: c.Expires})
	}
	p.jar.SetCookies(p.base, cookies)
}

// save writes the current cookies for the API origin. Caller holds the
// lock.
func (p *persistentJar) save() {
	if p.path == "" {
		return
	}
	cookies := p.jar.Cookies(p.base)
	stored := make([]storedCookie, 0, len(cookies))
	for _, c := range cookies {
		stored = append(stored, storedCookie{Name: c.Name, Value: c.Value, Expires: p.expires[c.Name]})
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o700); err != nil {
		return
	}
	_ = os.WriteFile(p.path, data, 0o600)
}

// clear drops all cookies for the API origin and removes the file.
func (p *persistentJar) clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return
	}
	p.jar = jar
	p.expires = make(map[string]time.Time)
	if p.path != "" {
		_ = os.Remove(p.path)
	}
}
