//go:generate mockgen -destination=./mocks/orchestrator.go . TokenService,GranuleSearcher

package orchestrator

import (
	"context"
	"io"
	"time"

	"github.com/glorpus-work/podaac-subset/pkg/cmr"
	"github.com/glorpus-work/podaac-subset/pkg/download"
)

// TokenService is the subset of the token manager used by the orchestrator.
type TokenService interface {
	Acquire(ctx context.Context) (string, error)
	Delete(ctx context.Context, token string) error
}

// GranuleSearcher runs a granule search against the catalog.
type GranuleSearcher interface {
	Search(ctx context.Context, q cmr.SearchQuery) ([]cmr.Granule, error)
}

// Downloader handles granule downloading.
type Downloader interface {
	FetchAll(ctx context.Context, items []download.Item, opts download.Options) (*download.Summary, error)
}

// Orchestrator ties the token, search and download steps of a run together.
type Orchestrator struct {
	Tokens TokenService
	Search GranuleSearcher
	DL     Downloader
	Hooks  Hooks // Hooks for progress and event notifications
}

// Phases reported through Hooks.
const (
	PhaseToken       = "token"
	PhaseSearching   = "searching"
	PhaseFiltering   = "filtering"
	PhaseDownloading = "downloading"
	PhaseCleanup     = "cleanup"
	PhaseDone        = "done"
)

// Event represents a simple progress notification.
type Event struct {
	Phase string
	ID    string // granule URL, if the event concerns one
	Msg   string
}

// Hooks carries callbacks for progress events.
type Hooks struct {
	OnEvent func(Event)
}

// Request describes one subset run.
type Request struct {
	ShortName string
	Start     time.Time
	End       time.Time
	Dir       string
	Extension string
	Variables []string
	Progress  io.Writer // passed to the downloader; nil disables progress bars
	DryRun    bool      // search and filter only
}

// Report is the outcome of a run. Errors recorded here were logged and did not
// stop the run.
type Report struct {
	Granules  int
	Items     []download.Item
	Summary   *download.Summary
	TokenErr  error
	SearchErr error
	DeleteErr error
}

// Failed reports whether the search failed or any download failed.
func (r *Report) Failed() bool {
	if r == nil {
		return false
	}
	return r.SearchErr != nil || r.Summary.Count(download.StatusFailed) > 0
}
