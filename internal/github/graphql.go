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

import (
	"context"
	"time"

	"github.com/shurcooL/graphql"
	"github.com/sirseerhq/sirseer-report/internal/giterror"
)

// GraphQLClient implements the PageFetcher interface using GitHub's GraphQL
// API. One query per page resolves the pull request together with its
// author, merge actor, merge commit, changed files, and approved reviews,
// eliminating the REST sweep's per-item follow-up calls.
type GraphQLClient struct {
	client    *graphql.Client
	inspector giterror.Inspector
}

// NewGraphQLClient creates a new GitHub GraphQL client with the provided
// token and endpoint. The client is configured with:
//   - Authentication via the provided token
//   - Custom GraphQL endpoint URL (e.g., for GitHub Enterprise)
//   - Per-request timeout and response size limiting
//   - User-Agent header for API compliance
func NewGraphQLClient(token, endpoint string) *GraphQLClient {
	return &GraphQLClient{
		client:    graphql.NewClient(endpoint, newHTTPClient(token)),
		inspector: giterror.NewErrorChainInspector(giterror.NewInspector()),
	}
}

// mergedPRNode is the per-item selection of the merged-PR query. Nullable
// associations (author, mergedBy, mergeCommit) are pointers: GitHub returns
// null for deleted accounts and for merges performed outside the API.
type mergedPRNode struct {
	Number   graphql.Int
	Title    graphql.String
	URL      graphql.String
	MergedAt *time.Time

	Author *struct {
		Login graphql.String
	} `graphql:"author"`

	MergedBy *struct {
		Login graphql.String
	} `graphql:"mergedBy"`

	MergeCommit *struct {
		OID graphql.String `graphql:"oid"`
	} `graphql:"mergeCommit"`

	Files struct {
		Nodes []struct {
			Path graphql.String
		}
	} `graphql:"files(first: 100)"`

	Reviews struct {
		Nodes []struct {
			Author *struct {
				Login graphql.String
			} `graphql:"author"`
		}
	} `graphql:"reviews(first: 50, states: APPROVED)"`
}

// FetchMergedPullRequests fetches a page of merged pull requests from the
// specified repository, ordered by most-recently-updated descending. It
// supports cursor-based pagination via the opts.After parameter and
// configurable page sizes through opts.PageSize. The method returns a
// PullRequestPage containing the PRs and the pagination information needed
// to fetch subsequent pages.
func (c *GraphQLClient) FetchMergedPullRequests(ctx context.Context, owner, repo string, opts FetchOptions) (*PullRequestPage, error) {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > 100 {
		pageSize = 100
	}

	var query struct {
		Repository struct {
			PullRequests struct {
				PageInfo struct {
					HasNextPage graphql.Boolean
					EndCursor   graphql.String
				}
				Nodes []mergedPRNode
			} `graphql:"pullRequests(first: $first, after: $after, states: MERGED, orderBy: {field: UPDATED_AT, direction: DESC})"`
		} `graphql:"repository(owner: $owner, name: $repo)"`
	}

	variables := map[string]interface{}{
		"owner": graphql.String(owner),
		"repo":  graphql.String(repo),
		"first": graphql.Int(int32(pageSize)), // #nosec G115 - pageSize is capped at 100
		"after": (*graphql.String)(nil),
	}
	if opts.After != "" {
		variables["after"] = graphql.String(opts.After)
	}

	// Execute the query. GraphQL-level errors (the "errors" array) surface
	// here as a single error, as do transport failures and undecodable
	// responses; all are fatal to the sweep.
	if err := c.client.Query(ctx, &query, variables); err != nil {
		return nil, mapAPIError(c.inspector, err, owner, repo)
	}

	page := &PullRequestPage{
		HasNextPage:  bool(query.Repository.PullRequests.PageInfo.HasNextPage),
		EndCursor:    string(query.Repository.PullRequests.PageInfo.EndCursor),
		PullRequests: make([]PullRequest, 0, len(query.Repository.PullRequests.Nodes)),
	}

	for i := range query.Repository.PullRequests.Nodes {
		page.PullRequests = append(page.PullRequests, convertGraphQLPR(&query.Repository.PullRequests.Nodes[i]))
	}

	return page, nil
}

// convertGraphQLPR converts a GraphQL node to the domain model, collapsing
// duplicate approvals to a single approver entry.
func convertGraphQLPR(node *mergedPRNode) PullRequest {
	pr := PullRequest{
		Number:   int(node.Number),
		Title:    string(node.Title),
		URL:      string(node.URL),
		MergedAt: node.MergedAt,
	}

	if node.Author != nil {
		pr.Author = string(node.Author.Login)
	}
	if node.MergedBy != nil {
		pr.MergedBy = string(node.MergedBy.Login)
	}
	if node.MergeCommit != nil {
		pr.MergeCommitSHA = string(node.MergeCommit.OID)
	}

	pr.Files = make([]string, 0, len(node.Files.Nodes))
	for _, f := range node.Files.Nodes {
		pr.Files = append(pr.Files, string(f.Path))
	}

	seen := make(map[string]struct{}, len(node.Reviews.Nodes))
	for _, review := range node.Reviews.Nodes {
		if review.Author == nil {
			continue
		}
		login := string(review.Author.Login)
		if _, ok := seen[login]; ok {
			continue
		}
		seen[login] = struct{}{}
		pr.Approvers = append(pr.Approvers, login)
	}

	return pr
}
