package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/glorpus-work/podaac-subset/internal/logger"
	pkgerrors "github.com/glorpus-work/podaac-subset/pkg/errors"
	"github.com/glorpus-work/podaac-subset/pkg/fsutil"
	pkghttp "github.com/glorpus-work/podaac-subset/pkg/http"
	"github.com/glorpus-work/podaac-subset/pkg/opendap"
	"github.com/schollz/progressbar/v3"
)

// Remediation hints logged after an HTTP error from the OPeNDAP server.
const (
	HintVariables = "  1. Double check that all variables exist in the files and are spelled correctly"
	HintExtension = "  2. If using the '.nc' extension try using the '.nc4' extension instead. " +
		"NetCDF-4 can handle the int8 data type used in some PO.DAAC files; netCDF-3 (.nc) often has issues with it."
)

// DefaultProgressThrottle is the minimum interval between progress bar redraws.
const DefaultProgressThrottle = 100 * time.Millisecond

// ManagerImpl fetches granules sequentially over a shared authenticated client.
// Existing files are never overwritten or validated.
type ManagerImpl struct {
	client pkghttp.Doer
}

// NewManager creates a download manager using client for every transfer.
func NewManager(client pkghttp.Doer) *ManagerImpl {
	return &ManagerImpl{client: client}
}

// statusError is returned when the server answers with anything but 200.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d %s", e.code, http.StatusText(e.code))
}

func (e *statusError) Unwrap() error { return pkgerrors.ErrDownloadFailed }

// FetchAll downloads items in order. A failed item never stops the batch; once ctx
// is done the remaining items are recorded as failed with the context error.
func (m *ManagerImpl) FetchAll(ctx context.Context, items []Item, opts Options) (*Summary, error) {
	summary := &Summary{Results: make([]Result, 0, len(items))}
	if len(items) == 0 {
		return summary, nil
	}
	if err := fsutil.EnsureDir(opts.Dir); err != nil {
		return nil, pkgerrors.Wrapf(err, "could not create output directory %s", opts.Dir)
	}

	total := len(items)
	for i, item := range items {
		progress := fmt.Sprintf("%d of %d", i+1, total)

		if err := ctx.Err(); err != nil {
			summary.Results = append(summary.Results, Result{Item: item, Status: StatusFailed, Err: err})
			continue
		}

		if item.Path != "" && fsutil.Exists(item.Path) {
			logger.Info("File already exists. Skipping download", logger.Fields{"path": item.Path, "progress": progress})
			summary.Results = append(summary.Results, Result{Item: item, Status: StatusSkipped})
			continue
		}

		res := m.fetchOne(ctx, item, opts)
		summary.Results = append(summary.Results, res)
		if res.Err != nil {
			logFailure(res.Err)
		}
		logger.Info("Processed", logger.Fields{"progress": progress, "status": string(res.Status)})
	}
	return summary, nil
}

func logFailure(err error) {
	logger.Error("Received Error: " + err.Error())
	var se *statusError
	if !errors.As(err, &se) {
		return
	}
	logger.Error("There are a few potential causes of this: ")
	logger.Error(HintVariables)
	logger.Error(HintExtension)
}

func (m *ManagerImpl) fetchOne(ctx context.Context, item Item, opts Options) Result {
	res := Result{Item: item, Status: StatusFailed}
	if item.Path == "" {
		res.Err = pkgerrors.Wrapf(pkgerrors.ErrNoFileName, "%s", item.URL)
		return res
	}

	target := opendap.RequestURL(item.URL, opts.Extension, opts.Variables)
	logger.Info("Downloading: "+item.URL+opendap.Suffix(opts.Extension, opts.Variables), logger.Fields{"path": item.Path})

	resp, err := m.doRequest(ctx, target)
	if err != nil {
		res.Err = err
		return res
	}
	defer func() { _ = resp.Body.Close() }()

	n, err := writeBody(resp, item.Path, opts)
	if err != nil {
		res.Err = err
		return res
	}
	res.Status = StatusDownloaded
	res.Bytes = n
	return res
}

func (m *ManagerImpl) doRequest(ctx context.Context, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to create request")
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "download failed")
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, &statusError{code: resp.StatusCode}
	}
	return resp, nil
}

// writeBody streams resp into a temp file next to dst and renames it into place,
// so an interrupted transfer never leaves a file that a re-run would skip.
func writeBody(resp *http.Response, dst string, opts Options) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".podaac-*.part")
	if err != nil {
		return 0, pkgerrors.Wrap(err, "could not create temp file")
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	var w io.Writer = tmp
	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = newProgressBar(opts.Progress, opts.ProgressThrottle, resp.ContentLength, filepath.Base(dst))
		w = io.MultiWriter(tmp, bar)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		cleanup()
		return n, pkgerrors.Wrap(err, "could not write file")
	}
	if bar != nil {
		_ = bar.Finish()
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return n, pkgerrors.Wrap(err, "could not sync file")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return n, pkgerrors.Wrap(err, "could not close file")
	}
	if err := os.Chmod(tmpPath, fsutil.FileModeDefault); err != nil {
		_ = os.Remove(tmpPath)
		return n, pkgerrors.Wrap(err, "could not set permissions")
	}
	if err := fsutil.MoveFile(tmpPath, dst); err != nil {
		_ = os.Remove(tmpPath)
		return n, pkgerrors.Wrap(err, "could not finalize file")
	}
	return n, nil
}

// newProgressBar draws a byte bar for one file. The finished bar is kept on its
// own line so every file of a batch leaves a record.
func newProgressBar(w io.Writer, throttle time.Duration, size int64, name string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(size,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(name),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(throttle),
		progressbar.OptionOnCompletion(func() { _, _ = fmt.Fprintln(w) }),
	)
}
