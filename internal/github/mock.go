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
	"fmt"

	reporterrors "github.com/sirseerhq/sirseer-report/internal/errors"
)

// MockPageFetcher is a mock implementation of the PageFetcher interface for
// testing. It plays back a prepared sequence of pages and records how many
// were requested, which lets tests assert pagination and early-stop
// behavior without a server.
type MockPageFetcher struct {
	// Pages to return, in order. HasNextPage/EndCursor on each page drive
	// the caller's cursor loop.
	Pages []*PullRequestPage

	// Error to return on the first call, if set.
	Error error

	// Track calls for verification
	CallCount int
	LastOwner string
	LastRepo  string
	LastOpts  FetchOptions
}

// FetchMergedPullRequests implements the PageFetcher interface.
func (m *MockPageFetcher) FetchMergedPullRequests(ctx context.Context, owner, repo string, opts FetchOptions) (*PullRequestPage, error) {
	m.CallCount++
	m.LastOwner = owner
	m.LastRepo = repo
	m.LastOpts = opts

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if m.Error != nil {
		return nil, m.Error
	}

	if m.CallCount > len(m.Pages) {
		return nil, fmt.Errorf("mock fetcher exhausted after %d pages: %w", len(m.Pages), reporterrors.ErrBadResponse)
	}
	return m.Pages[m.CallCount-1], nil
}

// MockLister is a mock implementation of the Lister interface for testing
// the REST sweep and its per-item enrichment, including the degraded paths
// where individual lookups fail.
type MockLister struct {
	// ClosedPages holds the successive list pages; requests past the end
	// return an empty page, terminating the sweep.
	ClosedPages [][]PullRequest

	// MergedByLogin maps PR number to merge actor login.
	MergedByLogin map[int]string
	// ApproverLogins maps PR number to APPROVED review logins (pre-dedup).
	ApproverLogins map[int][]string
	// FilePaths maps PR number to changed file paths.
	FilePaths map[int][]string

	// ListError makes ListClosedPullRequests fail, simulating a fatal
	// page-level error.
	ListError error

	// Per-lookup failure switches for the degraded, non-fatal paths.
	FailMergedBy  bool
	FailApprovers bool
	FailFiles     bool

	// Track calls for verification
	ListCalls     int
	MergedByCalls int
	ApproverCalls int
	FileCalls     int
}

// ListClosedPullRequests implements the Lister interface.
func (m *MockLister) ListClosedPullRequests(ctx context.Context, owner, repo string, page int) ([]PullRequest, error) {
	m.ListCalls++
	if m.ListError != nil {
		return nil, m.ListError
	}
	if page < 1 || page > len(m.ClosedPages) {
		return nil, nil
	}
	return m.ClosedPages[page-1], nil
}

// MergedBy implements the Lister interface.
func (m *MockLister) MergedBy(ctx context.Context, owner, repo string, number int) (string, error) {
	m.MergedByCalls++
	if m.FailMergedBy {
		return "", fmt.Errorf("merge actor lookup failed: %w", reporterrors.ErrNetworkFailure)
	}
	return m.MergedByLogin[number], nil
}

// Approvers implements the Lister interface.
func (m *MockLister) Approvers(ctx context.Context, owner, repo string, number int) ([]string, error) {
	m.ApproverCalls++
	if m.FailApprovers {
		return nil, fmt.Errorf("reviews lookup failed: %w", reporterrors.ErrNetworkFailure)
	}
	seen := make(map[string]struct{})
	var approvers []string
	for _, login := range m.ApproverLogins[number] {
		if _, ok := seen[login]; ok {
			continue
		}
		seen[login] = struct{}{}
		approvers = append(approvers, login)
	}
	return approvers, nil
}

// ChangedFiles implements the Lister interface.
func (m *MockLister) ChangedFiles(ctx context.Context, owner, repo string, number int) ([]string, error) {
	m.FileCalls++
	if m.FailFiles {
		return nil, fmt.Errorf("files lookup failed: %w", reporterrors.ErrNetworkFailure)
	}
	return m.FilePaths[number], nil
}
