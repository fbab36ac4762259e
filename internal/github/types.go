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

import "time"

// PullRequest is the domain view of a pull request shared by both clients.
// The REST listing fills the identity fields only; the enrichment lookups
// (or the GraphQL query's nested selections) complete MergedBy, Approvers,
// and Files. A nil MergedAt means the pull request was closed unmerged.
type PullRequest struct {
	Number         int
	Title          string
	URL            string
	Author         string
	MergedBy       string
	MergeCommitSHA string
	MergedAt       *time.Time
	Approvers      []string
	Files          []string
}

// Merged reports whether the pull request carries a merge timestamp.
func (pr *PullRequest) Merged() bool {
	return pr.MergedAt != nil
}

// PullRequestPage represents a page of pull requests from a GraphQL query.
// It includes the pull requests for the current page and pagination
// information to support fetching subsequent pages.
type PullRequestPage struct {
	PullRequests []PullRequest
	HasNextPage  bool
	EndCursor    string
}

// FetchOptions configures how a GraphQL page is fetched.
type FetchOptions struct {
	// PageSize controls how many PRs to fetch per page.
	// Defaults to 50 if not specified. Maximum is 100 per GitHub's API limits.
	PageSize int

	// After is the cursor for pagination.
	// Empty string fetches from the beginning.
	// Use PullRequestPage.EndCursor from previous response for next page.
	After string
}

// Default values for fetch operations
const (
	defaultPageSize = 50
)
