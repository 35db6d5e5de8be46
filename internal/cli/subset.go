package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/glorpus-work/podaac-subset/internal/logger"
	"github.com/glorpus-work/podaac-subset/pkg/cmr"
	"github.com/glorpus-work/podaac-subset/pkg/download"
	"github.com/glorpus-work/podaac-subset/pkg/errors"
	"github.com/glorpus-work/podaac-subset/pkg/opendap"
	"github.com/glorpus-work/podaac-subset/pkg/orchestrator"
	"github.com/spf13/cobra"
)

type subsetOptions struct {
	ext       string
	outDir    string
	variables string
	progress  bool
	dryRun    bool
	strict    bool
}

// NewSubsetCmd creates the command that searches a collection and downloads
// OPeNDAP subsets of every matching granule. It serves as the root command.
func NewSubsetCmd() *cobra.Command {
	opts := &subsetOptions{}

	cmd := &cobra.Command{
		Use:   "podaac-subset START_DATE END_DATE SHORT_NAME",
		Short: "Download variable subsets of PO.DAAC cloud granules",
		Long: `podaac-subset searches the CMR catalog for granules of a PO.DAAC collection
that intersect [START_DATE, END_DATE) and downloads each one through OPeNDAP,
optionally restricted to a list of variables.

Dates use the format YYYY-MM-DDTHH:MM:SS. Earthdata Login credentials are read
from ~/.netrc (machine urs.earthdata.nasa.gov).`,
		Example: `  podaac-subset 2020-01-01T00:00:00 2020-01-02T00:00:00 MUR-JPL-L4-GLOB-v4.1 \
      --variables analysed_sst,analysis_error --out-dir ./sst`,
		Args:          validateSubsetArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubset(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.ext, "ext", "", "file extension and DAP4 encoding of the downloads (default from config, .nc4)")
	cmd.Flags().StringVar(&opts.outDir, "out-dir", ".", "output directory for the downloaded files")
	cmd.Flags().StringVar(&opts.variables, "variables", "", "comma separated variables to extract, e.g. sp_lat,sp_lon (default: full files)")
	cmd.Flags().BoolVar(&opts.progress, "progress", false, "show a progress bar per file")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "search and list the files without downloading")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "exit with status 2 when the search or any download fails")

	return cmd
}

// validateSubsetArgs rejects malformed dates before any network call.
func validateSubsetArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(subsetArgCount)(cmd, args); err != nil {
		return err
	}
	if _, _, err := parseRange(args[0], args[1]); err != nil {
		return err
	}
	if strings.TrimSpace(args[2]) == "" {
		return errors.ErrEmptyShortName
	}
	return nil
}

func parseRange(startArg, endArg string) (time.Time, time.Time, error) {
	start, err := cmr.ParseDate("start_date", startArg)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := cmr.ParseDate("end_date", endArg)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func runSubset(ctx context.Context, out, errOut io.Writer, args []string, opts *subsetOptions) error {
	start, end, err := parseRange(args[0], args[1])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ext := opts.ext
	if ext == "" {
		ext = cfg.Settings.Extension
	}

	cred := loadCredential(cfg)
	sess, err := newSession(cfg, cred)
	if err != nil {
		return err
	}

	orch := &orchestrator.Orchestrator{
		Tokens: cmr.NewTokenManager(sess.API, cfg.GetTokenURL(), cred),
		Search: cmr.NewSearchClient(sess.API, cfg.GetSearchURL()),
		DL:     download.NewManager(sess.Download),
		Hooks: orchestrator.Hooks{OnEvent: func(e orchestrator.Event) {
			logger.Debug("phase "+e.Phase, logger.Fields{"id": e.ID, "msg": e.Msg})
		}},
	}

	req := orchestrator.Request{
		ShortName: args[2],
		Start:     start,
		End:       end,
		Dir:       opts.outDir,
		Extension: ext,
		Variables: opendap.ParseVariables(opts.variables),
		DryRun:    opts.dryRun,
	}
	if opts.progress {
		req.Progress = errOut
	}

	report, err := orch.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to download granules: %w", err)
	}

	if opts.dryRun {
		for _, it := range report.Items {
			_, _ = fmt.Fprintf(out, "%s\t%s\n", it.URL, it.Path)
		}
	}

	if ctx.Err() != nil {
		return &ExitError{Code: ExitCodeFailure, Err: fmt.Errorf("interrupted: %w", ctx.Err())}
	}
	if opts.strict && report.Failed() {
		return &ExitError{Code: ExitCodePartial, Err: strictError(report)}
	}
	return nil
}

func strictError(r *orchestrator.Report) error {
	if r.SearchErr != nil {
		return r.SearchErr
	}
	return fmt.Errorf("%d of %d downloads failed: %w",
		r.Summary.Count(download.StatusFailed), r.Summary.Total(), r.Summary.Err())
}
