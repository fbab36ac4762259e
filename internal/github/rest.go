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
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	reporterrors "github.com/sirseerhq/sirseer-report/internal/errors"
	"github.com/sirseerhq/sirseer-report/internal/giterror"
)

// maxErrorBodySize limits error response body reading for diagnostics.
const maxErrorBodySize = 1024

// RESTClient implements the Lister interface against GitHub's REST API.
// Every request carries the token set at construction; no process-wide
// header state is involved.
type RESTClient struct {
	httpClient *http.Client
	baseURL    string
	inspector  giterror.Inspector

	// PageSize is the number of items requested per list page. Values
	// outside 1..100 are clamped to the API maximum of 100.
	PageSize int
}

// NewRESTClient creates a REST client for the given endpoint (e.g.
// https://api.github.com, or a GitHub Enterprise base URL).
func NewRESTClient(token, endpoint string) *RESTClient {
	return &RESTClient{
		httpClient: newHTTPClient(token),
		baseURL:    endpoint,
		inspector:  giterror.NewErrorChainInspector(giterror.NewInspector()),
	}
}

// restUser is the wire shape of a GitHub account reference.
type restUser struct {
	Login string `json:"login"`
}

// restPullRequest is the wire shape of a pull request list/detail item.
// Only the fields the report needs are decoded.
type restPullRequest struct {
	Number         int        `json:"number"`
	Title          string     `json:"title"`
	HTMLURL        string     `json:"html_url"`
	MergedAt       *time.Time `json:"merged_at"`
	MergeCommitSHA string     `json:"merge_commit_sha"`
	User           *restUser  `json:"user"`
	MergedBy       *restUser  `json:"merged_by"`
}

type restReview struct {
	State string    `json:"state"`
	User  *restUser `json:"user"`
}

type restFile struct {
	Filename string `json:"filename"`
}

// ListClosedPullRequests returns one page of closed pull requests for the
// repository, most-recently-updated first. Pages are 1-based; an empty
// result marks the end of data. Any non-success status is returned as an
// error for the caller to treat as fatal.
func (c *RESTClient) ListClosedPullRequests(ctx context.Context, owner, repo string, page int) ([]PullRequest, error) {
	perPage := c.PageSize
	if perPage <= 0 || perPage > 100 {
		perPage = 100
	}
	path := fmt.Sprintf("/repos/%s/%s/pulls?state=closed&per_page=%d&page=%d&sort=updated&direction=desc",
		owner, repo, perPage, page)

	var items []restPullRequest
	if err := c.get(ctx, path, &items); err != nil {
		return nil, mapAPIError(c.inspector, err, owner, repo)
	}

	prs := make([]PullRequest, 0, len(items))
	for _, item := range items {
		prs = append(prs, convertRESTPR(&item))
	}

	slog.Debug("fetched closed pull requests", "owner", owner, "repo", repo, "page", page, "count", len(prs))
	return prs, nil
}

// MergedBy fetches the single pull-request resource and returns the login
// of the merge actor, or the empty string when the field is absent.
func (c *RESTClient) MergedBy(ctx context.Context, owner, repo string, number int) (string, error) {
	path := fmt.Sprintf("/repos/%s/%s/pulls/%d", owner, repo, number)

	var pr restPullRequest
	if err := c.get(ctx, path, &pr); err != nil {
		return "", mapAPIError(c.inspector, err, owner, repo)
	}

	if pr.MergedBy == nil {
		return "", nil
	}
	return pr.MergedBy.Login, nil
}

// Approvers fetches the reviews collection and returns the distinct logins
// of reviewers whose review state is APPROVED. A reviewer who approved
// multiple times counts once.
func (c *RESTClient) Approvers(ctx context.Context, owner, repo string, number int) ([]string, error) {
	path := fmt.Sprintf("/repos/%s/%s/pulls/%d/reviews?per_page=100", owner, repo, number)

	var reviews []restReview
	if err := c.get(ctx, path, &reviews); err != nil {
		return nil, mapAPIError(c.inspector, err, owner, repo)
	}

	seen := make(map[string]struct{}, len(reviews))
	var approvers []string
	for _, review := range reviews {
		if review.State != "APPROVED" || review.User == nil {
			continue
		}
		if _, ok := seen[review.User.Login]; ok {
			continue
		}
		seen[review.User.Login] = struct{}{}
		approvers = append(approvers, review.User.Login)
	}

	return approvers, nil
}

// ChangedFiles fetches the files collection and returns the modified paths.
// Only the first 100 files are requested; no further pagination is done.
func (c *RESTClient) ChangedFiles(ctx context.Context, owner, repo string, number int) ([]string, error) {
	path := fmt.Sprintf("/repos/%s/%s/pulls/%d/files?per_page=100", owner, repo, number)

	var files []restFile
	if err := c.get(ctx, path, &files); err != nil {
		return nil, mapAPIError(c.inspector, err, owner, repo)
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.Filename)
	}
	return paths, nil
}

// get performs a GET request against the REST API and decodes the JSON
// response into v. Non-2xx statuses become an apiStatusError carrying the
// status line and a bounded body snippet for diagnostics.
func (c *RESTClient) get(ctx context.Context, path string, v any) error {
	apiURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, http.NoBody)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		slog.Error("GitHub API request failed", "url", apiURL, "error", err, "elapsed", elapsed)
		return err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Debug("failed to close response body", "error", closeErr, "url", apiURL)
		}
	}()

	slog.Debug("GitHub API response received", "status", resp.Status, "url", apiURL, "elapsed", elapsed)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		if readErr != nil {
			body = []byte("failed to read response body")
		}
		return &apiStatusError{
			Status:     resp.Status,
			StatusCode: resp.StatusCode,
			Body:       string(body),
			URL:        apiURL,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding %s: %w", apiURL, reporterrors.ErrBadResponse)
	}
	return nil
}

// convertRESTPR converts a REST wire item to the domain model. MergedBy,
// Approvers, and Files stay empty until enrichment fills them in.
func convertRESTPR(item *restPullRequest) PullRequest {
	pr := PullRequest{
		Number:         item.Number,
		Title:          item.Title,
		URL:            item.HTMLURL,
		MergeCommitSHA: item.MergeCommitSHA,
		MergedAt:       item.MergedAt,
	}
	if item.User != nil {
		pr.Author = item.User.Login
	}
	return pr
}
