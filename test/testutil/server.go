// Package testutil provides an in-process fake of the Earthdata services a run talks to:
// the CMR token endpoint, the granule search endpoint and an OPeNDAP data server.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// Paths served by EarthdataServer.
const (
	TokenPath   = "/legacy-services/rest/tokens"
	SearchPath  = "/search/granules.umm_json"
	OPeNDAPPath = "/opendap/"

	TestLogin    = "earthdata-user"
	TestPassword = "s3cret"
	TestToken    = "tok-1"
)

// EarthdataServer is a fake CMR + OPeNDAP server. Fields may be changed before
// the first request.
type EarthdataServer struct {
	*httptest.Server

	Granules     []string        // granule names; each gets an OPeNDAP URL under OPeNDAPPath
	Missing      map[string]bool // request paths answered with 404
	SearchStatus int             // non-zero overrides the search response status
	MaxTokens    bool            // token creation answers max_token_limit

	mu       sync.Mutex
	requests []*http.Request
	deleted  []string
}

// NewEarthdataServer starts a fake server that is closed when t finishes.
func NewEarthdataServer(t *testing.T, granules ...string) *EarthdataServer {
	t.Helper()
	s := &EarthdataServer{Granules: granules, Missing: map[string]bool{}}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// Host is the hostname the server listens on, used as the Earthdata Login host.
func (s *EarthdataServer) Host() string {
	u, _ := url.Parse(s.URL)
	return u.Hostname()
}

// Requests returns a copy of every request received so far.
func (s *EarthdataServer) Requests() []*http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*http.Request(nil), s.requests...)
}

// RequestsTo returns the requests whose path starts with prefix.
func (s *EarthdataServer) RequestsTo(prefix string) []*http.Request {
	var out []*http.Request
	for _, r := range s.Requests() {
		if strings.HasPrefix(r.URL.Path, prefix) {
			out = append(out, r)
		}
	}
	return out
}

// Deleted returns the tokens deleted so far.
func (s *EarthdataServer) Deleted() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deleted...)
}

func (s *EarthdataServer) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, r.Clone(r.Context()))
	s.mu.Unlock()

	switch {
	case r.URL.Path == TokenPath:
		s.handleTokens(w, r)
	case strings.HasPrefix(r.URL.Path, TokenPath+"/") && r.Method == http.MethodDelete:
		s.mu.Lock()
		s.deleted = append(s.deleted, strings.TrimPrefix(r.URL.Path, TokenPath+"/"))
		s.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	case r.URL.Path == SearchPath:
		s.handleSearch(w)
	case strings.HasPrefix(r.URL.Path, OPeNDAPPath):
		if s.Missing[r.URL.Path] {
			http.NotFound(w, r)
			return
		}
		_, _ = fmt.Fprintf(w, "granule %s", r.URL.Path)
	default:
		http.NotFound(w, r)
	}
}

func (s *EarthdataServer) handleTokens(w http.ResponseWriter, r *http.Request) {
	user, pass, ok := r.BasicAuth()
	if !ok || user != TestLogin || pass != TestPassword {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid_credentials","error_description":"bad login"}`))
		return
	}
	switch r.Method {
	case http.MethodPost:
		if s.MaxTokens {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":"max_token_limit","error_description":"too many tokens"}`))
			return
		}
		_, _ = fmt.Fprintf(w, `{"access_token":%q,"token_type":"Bearer"}`, TestToken)
	case http.MethodGet:
		_, _ = fmt.Fprintf(w, `[{"access_token":%q},{"access_token":"tok-2"}]`, TestToken)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *EarthdataServer) handleSearch(w http.ResponseWriter) {
	if s.SearchStatus != 0 {
		w.WriteHeader(s.SearchStatus)
		return
	}
	type relatedURL struct {
		URL     string `json:"URL"`
		Type    string `json:"Type"`
		Subtype string `json:"Subtype,omitempty"`
	}
	type item struct {
		UMM struct {
			GranuleUR   string       `json:"GranuleUR"`
			RelatedUrls []relatedURL `json:"RelatedUrls"`
		} `json:"umm"`
	}
	items := make([]item, 0, len(s.Granules))
	for _, g := range s.Granules {
		var it item
		it.UMM.GranuleUR = g
		it.UMM.RelatedUrls = []relatedURL{
			{URL: s.URL + "/archive/" + g + ".nc", Type: "GET DATA"},
			{URL: s.URL + OPeNDAPPath + g, Type: "USE SERVICE API", Subtype: "OPENDAP DATA"},
		}
		items = append(items, it)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("CMR-Hits", fmt.Sprint(len(items)))
	_ = json.NewEncoder(w).Encode(map[string]any{"hits": len(items), "items": items})
}

// SetupTestConfig writes a config file pointing every endpoint at s and a netrc
// file with the test credentials. It returns both paths.
func SetupTestConfig(t *testing.T, s *EarthdataServer) (configPath, netrcPath string) {
	t.Helper()
	dir := t.TempDir()

	configPath = filepath.Join(dir, "config.yaml")
	cfg := fmt.Sprintf("settings:\n  cmr_url: %s\n  edl_host: %s\n  http_timeout: 5s\n  download_timeout: 10s\n", s.URL, s.Host())
	if err := os.WriteFile(configPath, []byte(cfg), 0o600); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	netrcPath = filepath.Join(dir, "netrc")
	netrc := fmt.Sprintf("machine %s\n  login %s\n  password %s\n", s.Host(), TestLogin, TestPassword)
	if err := os.WriteFile(netrcPath, []byte(netrc), 0o600); err != nil {
		t.Fatalf("Failed to write test netrc: %v", err)
	}
	return configPath, netrcPath
}
