package auth

import (
	"os"
	"runtime"

	"github.com/glorpus-work/podaac-subset/pkg/errors"
	"github.com/glorpus-work/podaac-subset/pkg/fsutil"
	"github.com/jdx/go-netrc"
)

// Credential is a login/password pair for a single remote host.
type Credential struct {
	Host     string
	Login    string
	Password string
}

// Empty reports whether the credential carries no login.
func (c Credential) Empty() bool {
	return c.Login == ""
}

// Basic returns a Basic authenticator scoped to the credential host.
func (c Credential) Basic() HostAuth {
	return HostAuth{Host: c.Host, Inner: BasicAuth{Username: c.Login, Password: c.Password}}
}

// BasicAuth returns an unscoped Basic authenticator for endpoints that always need it.
func (c Credential) BasicAuth() BasicAuth {
	return BasicAuth{Username: c.Login, Password: c.Password}
}

// NetrcInfo describes non-fatal observations made while reading the netrc file.
type NetrcInfo struct {
	Path          string
	TooPermissive bool
}

// LoadNetrcCredential looks up host in the netrc file at path.
// It never returns a zero Host: on a missing file or entry the returned
// credential has empty login and password alongside ErrNetrcNotFound or ErrNoNetrcEntry.
func LoadNetrcCredential(path, host string) (Credential, NetrcInfo, error) {
	cred := Credential{Host: host}
	info := NetrcInfo{Path: path}

	st, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cred, info, errors.Wrapf(errors.ErrNetrcNotFound, "%s", path)
		}
		return cred, info, errors.Wrapf(err, "failed to stat netrc file %s", path)
	}
	if runtime.GOOS != "windows" {
		info.TooPermissive = fsutil.IsTooPermissive(st.Mode())
	}

	n, err := netrc.Parse(path)
	if err != nil {
		return cred, info, errors.Wrapf(err, "failed to parse netrc file %s", path)
	}

	m := n.Machine(host)
	if m == nil {
		return cred, info, errors.Wrapf(errors.ErrNoNetrcEntry, "%s in %s", host, path)
	}
	cred.Login = m.Get("login")
	cred.Password = m.Get("password")
	if cred.Login == "" {
		return cred, info, errors.Wrapf(errors.ErrNoNetrcEntry, "%s in %s has no login", host, path)
	}
	return cred, info, nil
}
