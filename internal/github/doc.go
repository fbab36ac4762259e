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

// Package github provides clients for fetching merged pull request data
// from GitHub. Two surfaces are exposed, matching the two report sweeps:
//
//   - A REST client that pages through closed pull requests and performs
//     per-item follow-up lookups (merge actor, approvals, changed files).
//   - A GraphQL client (shurcooL/graphql) that retrieves the same nested
//     data in a single cursor-paginated query per page.
//
// Both clients share an authenticated transport with a response size cap
// and map raw API failures onto the application's sentinel errors.
//
// Basic usage:
//
//	client := github.NewGraphQLClient("your-github-token", "https://api.github.com/graphql")
//	page, err := client.FetchMergedPullRequests(ctx, "golang", "go", github.FetchOptions{
//	    PageSize: 50,
//	})
//	if err != nil {
//	    // Handle error
//	}
//	for _, pr := range page.PullRequests {
//	    // Process pull request
//	}
package github
