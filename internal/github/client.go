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

package github

import "context"

// PageFetcher fetches merged pull requests one GraphQL page at a time.
// This interface allows for easy mocking in tests.
type PageFetcher interface {
	// FetchMergedPullRequests retrieves one page of merged pull requests,
	// ordered by most-recently-updated descending, with author, merge
	// actor, merge commit, changed files, and approved reviews resolved
	// in the same round trip. Cursor pagination via opts.After.
	FetchMergedPullRequests(ctx context.Context, owner, repo string, opts FetchOptions) (*PullRequestPage, error)
}

// Lister enumerates closed pull requests through the REST API and enriches
// individual pull requests with follow-up lookups. A page-level failure is
// fatal to the sweep; the three per-item lookups degrade independently.
type Lister interface {
	// ListClosedPullRequests returns one page of closed pull requests,
	// most-recently-updated first. An empty slice signals the end of data.
	ListClosedPullRequests(ctx context.Context, owner, repo string, page int) ([]PullRequest, error)

	// MergedBy returns the login of the user who merged the pull request,
	// or the empty string when GitHub reports none.
	MergedBy(ctx context.Context, owner, repo string, number int) (string, error)

	// Approvers returns the deduplicated logins of reviewers whose review
	// state is APPROVED.
	Approvers(ctx context.Context, owner, repo string, number int) ([]string, error)

	// ChangedFiles returns the paths modified by the pull request. Only
	// the first 100 files are reported; no further pagination is done.
	ChangedFiles(ctx context.Context, owner, repo string, number int) ([]string, error)
}
