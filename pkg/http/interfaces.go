package http

import "net/http"

// Doer is the subset of *http.Client used by the catalog and download clients.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}
