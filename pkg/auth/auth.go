// Package auth provides Earthdata Login credentials and applies them to HTTP requests.
package auth

import (
	"net/http"
	"strings"
)

// Authenticator defines the interface for applying authentication to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request) error
	Type() Type
}

// Type represents the type of authentication.
type Type string

// Authentication types.
const (
	// BasicAuthType represents HTTP Basic Authentication.
	BasicAuthType Type = "basic"
	// NoAuthType is reported by authenticators that leave requests untouched.
	NoAuthType Type = "none"
)

// BasicAuth represents HTTP Basic Authentication credentials.
type BasicAuth struct {
	Username string
	Password string
}

// Apply adds Basic Authentication headers to the HTTP request.
func (b BasicAuth) Apply(req *http.Request) error {
	req.SetBasicAuth(b.Username, b.Password)
	return nil
}

// Type returns the authentication type (BasicAuthType).
func (b BasicAuth) Type() Type { return BasicAuthType }

// HostAuth applies Inner only to requests addressed to Host, the way a
// per-host password manager would. Requests to other hosts pass through.
type HostAuth struct {
	Host  string
	Inner Authenticator
}

// Apply delegates to Inner when the request host matches.
func (h HostAuth) Apply(req *http.Request) error {
	if h.Inner == nil || req.URL == nil || !strings.EqualFold(req.URL.Hostname(), h.Host) {
		return nil
	}
	return h.Inner.Apply(req)
}

// Type returns the type of the wrapped authenticator.
func (h HostAuth) Type() Type {
	if h.Inner == nil {
		return NoAuthType
	}
	return h.Inner.Type()
}
