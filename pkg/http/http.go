// Package http builds the authenticated HTTP session shared by every step of a run.
//
// One cookie jar and one transport are created per run. Earthdata Login redirects
// OPeNDAP requests through urs.earthdata.nasa.gov, so Basic credentials are applied to
// that host only and the session cookies it sets are replayed on the way back.
package http

import (
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/glorpus-work/podaac-subset/pkg/auth"
	"github.com/glorpus-work/podaac-subset/pkg/errors"
	"golang.org/x/net/publicsuffix"
)

// DefaultUserAgent is sent when Options.UserAgent is empty.
const DefaultUserAgent = "podaac-subset/1.0"

// Options configure a Session.
type Options struct {
	APITimeout      time.Duration      // token and search calls
	DownloadTimeout time.Duration      // a single granule transfer, body included
	UserAgent       string             // defaults to DefaultUserAgent
	Auth            auth.Authenticator // applied to every outgoing request, including redirects
	Base            http.RoundTripper  // defaults to http.DefaultTransport
}

// Session holds the clients for one run. API and Download share the cookie jar
// and the transport; they differ only in timeout.
type Session struct {
	API      *http.Client
	Download *http.Client
	Jar      http.CookieJar
}

// NewSession creates the clients described by opts.
func NewSession(opts Options) (*Session, error) {
	jar, err := NewCookieJar()
	if err != nil {
		return nil, err
	}

	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	base := opts.Base
	if base == nil {
		base = http.DefaultTransport
	}
	transport := &authTransport{base: base, auth: opts.Auth, userAgent: opts.UserAgent}

	return &Session{
		API:      &http.Client{Transport: transport, Jar: jar, Timeout: opts.APITimeout},
		Download: &http.Client{Transport: transport, Jar: jar, Timeout: opts.DownloadTimeout},
		Jar:      jar,
	}, nil
}

// NewCookieJar returns a jar that scopes cookies by registrable domain.
func NewCookieJar() (http.CookieJar, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create cookie jar")
	}
	return jar, nil
}

type authTransport struct {
	base      http.RoundTripper
	auth      auth.Authenticator
	userAgent string
}

// RoundTrip clones the request before touching headers, as RoundTripper requires.
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	if r.Header.Get("User-Agent") == "" {
		r.Header.Set("User-Agent", t.userAgent)
	}
	if t.auth != nil && r.Header.Get("Authorization") == "" {
		if err := t.auth.Apply(r); err != nil {
			return nil, errors.Wrap(err, "failed to apply authentication")
		}
	}
	return t.base.RoundTrip(r)
}
