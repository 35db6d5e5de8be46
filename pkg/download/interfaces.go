//go:generate mockgen -destination=./mocks/manager.go . Manager

package download

import (
	"context"
	"io"
	"time"
)

// Manager downloads a batch of granules one after another.
type Manager interface {
	// FetchAll attempts every item in order and reports a Result per item.
	// The returned error is reserved for failures that prevent the batch from
	// starting, such as an output directory that cannot be created.
	FetchAll(ctx context.Context, items []Item, opts Options) (*Summary, error)
}

// Item is one granule to fetch: the OPeNDAP URL from the catalog and where it lands.
type Item struct {
	URL  string // OPeNDAP granule URL as listed in the catalog, without DAP suffix
	Path string // destination file; empty when no file name could be derived from URL
}

// Options control the behavior of the download manager.
type Options struct {
	Dir       string    // output directory, created if missing
	Extension string    // file extension, e.g. ".nc4"; also selects the DAP4 response encoding
	Variables []string  // variables to subset; empty downloads full files
	Progress  io.Writer // if set, a byte progress bar is drawn here for each transfer

	// ProgressThrottle is the minimum interval between redraws; zero redraws on every write.
	ProgressThrottle time.Duration
}
