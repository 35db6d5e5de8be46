package orchestrator

import (
	"context"
	"fmt"

	"github.com/glorpus-work/podaac-subset/internal/logger"
	"github.com/glorpus-work/podaac-subset/pkg/cmr"
	"github.com/glorpus-work/podaac-subset/pkg/download"
)

func emit(h Hooks, e Event) {
	if h.OnEvent != nil {
		h.OnEvent(e)
	}
}

// Run acquires a token, searches for granules, filters their OPeNDAP URLs and
// downloads each one. The token is deleted before Run returns on every path,
// even when ctx has been cancelled.
//
// Token and search failures are logged and recorded in the Report; Run only
// returns an error when it is misconfigured or the downloader cannot start.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*Report, error) {
	if o.Tokens == nil || o.Search == nil {
		return nil, fmt.Errorf("token service and granule searcher must be configured")
	}
	if o.DL == nil && !req.DryRun {
		return nil, fmt.Errorf("download manager is not configured")
	}

	report := &Report{}

	emit(o.Hooks, Event{Phase: PhaseToken})
	token, err := o.Tokens.Acquire(ctx)
	if err != nil {
		report.TokenErr = err
		logger.Error("Error getting the token - check user name and password", logger.Fields{"error": err.Error()})
	}
	defer o.deleteToken(ctx, token, report)

	emit(o.Hooks, Event{Phase: PhaseSearching, Msg: req.ShortName})
	granules, err := o.Search.Search(ctx, cmr.NewSearchQuery(req.ShortName, req.Start, req.End, token))
	if err != nil {
		report.SearchErr = err
		logger.Error("Error searching for granules", logger.Fields{"error": err.Error()})
		return report, nil
	}
	report.Granules = len(granules)

	emit(o.Hooks, Event{Phase: PhaseFiltering})
	urls := cmr.FilterOPeNDAPURLs(granules)
	if len(urls) == 0 {
		logger.Info("No files found to download")
		logger.Info("Please double check the collection name", logger.Fields{"short_name": req.ShortName})
		return report, nil
	}
	report.Items = download.NewItems(urls, req.Dir, req.Extension)

	if len(req.Variables) > 0 {
		logger.Info("Downloading the following variables:")
		for _, v := range req.Variables {
			logger.Info("   " + v)
		}
	} else {
		logger.Info("Downloading full files")
	}
	logger.Info(fmt.Sprintf("Found %d file(s) to download", len(report.Items)), logger.Fields{"dir": req.Dir})

	if req.DryRun {
		for _, it := range report.Items {
			emit(o.Hooks, Event{Phase: PhaseDownloading, ID: it.URL, Msg: "dry-run: " + it.Path})
		}
		return report, nil
	}

	emit(o.Hooks, Event{Phase: PhaseDownloading})
	summary, err := o.DL.FetchAll(ctx, report.Items, download.Options{
		Dir:       req.Dir,
		Extension: req.Extension,
		Variables: req.Variables,
		Progress:  req.Progress,

		ProgressThrottle: download.DefaultProgressThrottle,
	})
	if err != nil {
		return report, err
	}
	report.Summary = summary
	logger.Info("Download finished: " + summary.String())
	return report, nil
}

// deleteToken runs detached from ctx cancellation so an interrupted run still
// releases its token.
func (o *Orchestrator) deleteToken(ctx context.Context, token string, report *Report) {
	emit(o.Hooks, Event{Phase: PhaseCleanup})
	defer emit(o.Hooks, Event{Phase: PhaseDone})
	if token == "" {
		return
	}
	if err := o.Tokens.Delete(context.WithoutCancel(ctx), token); err != nil {
		report.DeleteErr = err
		logger.Warn("CMR token deleting failed", logger.Fields{"error": err.Error()})
		return
	}
	logger.Info("CMR token successfully deleted")
}
