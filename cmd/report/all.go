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
	"log/slog"
	"os"
	"time"

	"github.com/sirseerhq/sirseer-report/internal/github"
	"github.com/sirseerhq/sirseer-report/internal/metadata"
	"github.com/sirseerhq/sirseer-report/internal/report"
	"github.com/spf13/cobra"
)

// allReportName is the base filename of the exhaustive sweep's report.
const allReportName = "all_merged_prs"

func newAllCommand() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "all [<org>/<repo>]",
		Short: "Export every merged pull request over the REST API",
		Long: `Walk the repository's closed pull request list page by page, keep the
merged ones, and enrich each with the merge actor, approving reviewers,
and changed files. A failed enrichment lookup logs a warning and leaves
a sentinel in that one column; a failed page fetch aborts the run.

The job file must provide github_token, repo_owner, and repo_name; an
<org>/<repo> argument overrides the job file's repository.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repoArg := ""
			if len(args) == 1 {
				repoArg = args[0]
			}
			return runAll(cmd.Context(), flags, repoArg)
		},
	}

	registerRunFlags(cmd, &flags)
	return cmd
}

// runAll executes the exhaustive REST sweep end to end.
func runAll(ctx context.Context, flags runFlags, repoArg string) error {
	cfg, job, err := loadRun(flags, repoArg)
	if err != nil {
		return err
	}

	if flags.endpoint != "" {
		cfg.GitHub.APIEndpoint = flags.endpoint
	}

	client := github.NewRESTClient(job.Token, cfg.GitHub.APIEndpoint)
	client.PageSize = cfg.Defaults.RestPageSize
	tracker := metadata.NewTracker()
	progress := os.Stderr

	fmt.Fprintf(progress, "🔍 Fetching all merged pull requests from %s/%s...\n", job.Owner, job.Repo)

	merged, err := sweepClosedPullRequests(ctx, client, job.Owner, job.Repo, tracker, progress)
	if err != nil {
		return err
	}

	records := enrichPullRequests(ctx, client, job.Owner, job.Repo, merged, tracker)
	tracker.Kept(len(records))

	path, err := report.Write(cfg.Defaults.ReportDir, allReportName, time.Now().UTC(), records)
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Fprintf(progress, "ℹ️  No merged pull requests found in %s/%s; no report written\n", job.Owner, job.Repo)
	} else {
		fmt.Fprintf(progress, "📁 Report written to %s (%d pull requests)\n", path, len(records))
	}

	tracker.WriteSummary(progress)
	return nil
}

// sweepClosedPullRequests pages through the closed pull request list
// until an empty page, accumulating only merged items. Any page fetch
// error is fatal.
func sweepClosedPullRequests(ctx context.Context, client github.Lister, owner, repo string, tracker *metadata.Tracker, progress io.Writer) ([]github.PullRequest, error) {
	var merged []github.PullRequest

	for page := 1; ; page++ {
		items, err := client.ListClosedPullRequests(ctx, owner, repo, page)
		if err != nil {
			return nil, err
		}
		tracker.APICall()
		if len(items) == 0 {
			break
		}
		tracker.Page()
		tracker.Scanned(len(items))

		for _, pr := range items {
			if pr.Merged() {
				merged = append(merged, pr)
			}
		}
		fmt.Fprintf(progress, "📦 Page %d: %d closed pull requests (%d merged so far)\n", page, len(items), len(merged))
	}

	return merged, nil
}

// enrichPullRequests resolves the merge actor, approvers, and changed
// files for each merged pull request. The three lookups are independent
// and non-fatal: a failure logs a warning and leaves the sentinel in
// that one column.
func enrichPullRequests(ctx context.Context, client github.Lister, owner, repo string, prs []github.PullRequest, tracker *metadata.Tracker) []report.Record {
	records := make([]report.Record, 0, len(prs))

	for _, pr := range prs {
		mergedBy, err := client.MergedBy(ctx, owner, repo, pr.Number)
		tracker.APICall()
		if err != nil {
			slog.Warn("merge actor lookup failed", "pr", pr.Number, "error", err)
		} else {
			pr.MergedBy = mergedBy
		}

		approvers, err := client.Approvers(ctx, owner, repo, pr.Number)
		tracker.APICall()
		if err != nil {
			slog.Warn("approvals lookup failed", "pr", pr.Number, "error", err)
		} else {
			pr.Approvers = approvers
		}

		files, err := client.ChangedFiles(ctx, owner, repo, pr.Number)
		tracker.APICall()
		if err != nil {
			slog.Warn("changed files lookup failed", "pr", pr.Number, "error", err)
		} else {
			pr.Files = files
		}

		records = append(records, report.FromPullRequest(pr))
	}

	return records
}
