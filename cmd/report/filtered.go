// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirseerhq/sirseer-report/internal/filter"
	"github.com/sirseerhq/sirseer-report/internal/github"
	"github.com/sirseerhq/sirseer-report/internal/metadata"
	"github.com/sirseerhq/sirseer-report/internal/report"
	"github.com/spf13/cobra"
)

// filteredReportName is the base filename of the windowed sweep's report.
const filteredReportName = "merged_prs"

func newFilteredCommand() *cobra.Command {
	var (
		flags       runFlags
		noEarlyStop bool
	)

	cmd := &cobra.Command{
		Use:   "filtered [<org>/<repo>]",
		Short: "Export merged pull requests in a date window over the GraphQL API",
		Long: `Fetch merged pull requests newest-first with one GraphQL query per page,
keeping only those merged inside the configured date window whose
changed files match at least one configured glob pattern. Pagination
stops early once an entire page falls before the window start.

Results are ordered by last update, not merge time, so a pull request
updated long after an old merge can push its page past the cutoff; use
--no-early-stop to walk the full history instead.

The job file must provide github_token, repo_owner, repo_name,
included_paths, start_date, and end_date; an <org>/<repo> argument
overrides the job file's repository.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repoArg := ""
			if len(args) == 1 {
				repoArg = args[0]
			}
			return runFiltered(cmd.Context(), flags, repoArg, noEarlyStop)
		},
	}

	registerRunFlags(cmd, &flags)
	cmd.Flags().BoolVar(&noEarlyStop, "no-early-stop", false, "Walk the full history instead of stopping at the first all-too-old page")
	return cmd
}

// sweepOptions carries everything the windowed sweep needs besides the
// fetcher itself.
type sweepOptions struct {
	Window    filter.Window
	Paths     *filter.PathFilter
	PageSize  int
	EarlyStop bool
	Tracker   *metadata.Tracker
	Progress  io.Writer
}

// runFiltered executes the windowed GraphQL sweep end to end.
func runFiltered(ctx context.Context, flags runFlags, repoArg string, noEarlyStop bool) error {
	cfg, job, err := loadRun(flags, repoArg)
	if err != nil {
		return err
	}
	if err := job.RequireWindow(); err != nil {
		return err
	}

	paths, err := filter.NewPathFilter(job.IncludedPaths)
	if err != nil {
		return err
	}

	if flags.endpoint != "" {
		cfg.GitHub.GraphQLEndpoint = flags.endpoint
	}

	client := github.NewGraphQLClient(job.Token, cfg.GitHub.GraphQLEndpoint)
	opts := sweepOptions{
		Window:    filter.NewWindow(job.StartDate, job.EndDate),
		Paths:     paths,
		PageSize:  cfg.Defaults.GraphQLPageSize,
		EarlyStop: cfg.Defaults.EarlyStop && !noEarlyStop,
		Tracker:   metadata.NewTracker(),
		Progress:  os.Stderr,
	}

	fmt.Fprintf(opts.Progress, "🔍 Fetching merged pull requests from %s/%s between %s and %s...\n",
		job.Owner, job.Repo,
		job.StartDate.Format("2006-01-02"), job.EndDate.Format("2006-01-02"))

	kept, err := sweepMergedWindow(ctx, client, job.Owner, job.Repo, opts)
	if err != nil {
		return err
	}

	records := make([]report.Record, 0, len(kept))
	for _, pr := range kept {
		records = append(records, report.FromPullRequest(pr))
	}
	opts.Tracker.Kept(len(records))

	path, err := report.Write(cfg.Defaults.ReportDir, filteredReportName, time.Now().UTC(), records)
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Fprintf(opts.Progress, "ℹ️  No matching pull requests in the window; no report written\n")
	} else {
		fmt.Fprintf(opts.Progress, "📁 Report written to %s (%d pull requests)\n", path, len(records))
	}

	opts.Tracker.WriteSummary(opts.Progress)
	return nil
}

// sweepMergedWindow pages through merged pull requests newest-first,
// keeping those inside the window whose files match the path filter.
// When early stop is enabled, a page whose every item is older than the
// window start ends the sweep without fetching further pages.
func sweepMergedWindow(ctx context.Context, fetcher github.PageFetcher, owner, repo string, opts sweepOptions) ([]github.PullRequest, error) {
	var (
		kept   []github.PullRequest
		cursor string
	)

	for pageNum := 1; ; pageNum++ {
		page, err := fetcher.FetchMergedPullRequests(ctx, owner, repo, github.FetchOptions{
			PageSize: opts.PageSize,
			After:    cursor,
		})
		if err != nil {
			return nil, err
		}
		opts.Tracker.APICall()
		opts.Tracker.Page()
		opts.Tracker.Scanned(len(page.PullRequests))

		older := 0
		for _, pr := range page.PullRequests {
			if pr.MergedAt == nil {
				continue
			}
			if opts.Window.After(*pr.MergedAt) {
				continue
			}
			if opts.Window.Before(*pr.MergedAt) {
				older++
				continue
			}
			if !opts.Paths.MatchAny(pr.Files) {
				continue
			}
			kept = append(kept, pr)
		}

		fmt.Fprintf(opts.Progress, "📦 Page %d: %d merged pull requests (%d matched so far)\n",
			pageNum, len(page.PullRequests), len(kept))

		if opts.EarlyStop && len(page.PullRequests) > 0 && older == len(page.PullRequests) {
			fmt.Fprintf(opts.Progress, "⏹  Page %d is entirely before the window start; stopping\n", pageNum)
			break
		}
		if !page.HasNextPage {
			break
		}
		cursor = page.EndCursor
	}

	return kept, nil
}
