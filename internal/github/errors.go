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
	"fmt"

	reporterrors "github.com/sirseerhq/sirseer-report/internal/errors"
	"github.com/sirseerhq/sirseer-report/internal/giterror"
)

// mapAPIError maps raw API errors to domain sentinels with actionable messages.
// Rate limit is checked first, as 403 can be both auth and rate limit.
func mapAPIError(inspector giterror.Inspector, err error, owner, repo string) error {
	if err == nil {
		return nil
	}

	if inspector.IsRateLimitError(err) {
		return fmt.Errorf("GitHub API rate limit exceeded. Please wait before retrying: %w", reporterrors.ErrRateLimit)
	}

	if inspector.IsAuthError(err) {
		return fmt.Errorf("GitHub API authentication failed. Please provide a valid token via the job file, --token flag, or GITHUB_TOKEN environment variable: %w", reporterrors.ErrInvalidToken)
	}

	if inspector.IsNotFoundError(err) {
		return fmt.Errorf("repository '%s/%s' not found. Please check the repository name and your access permissions: %w", owner, repo, reporterrors.ErrRepoNotFound)
	}

	if inspector.IsNetworkError(err) {
		return fmt.Errorf("network error connecting to GitHub API. Please check your internet connection and try again: %w", reporterrors.ErrNetworkFailure)
	}

	// Generic error
	return fmt.Errorf("github api request failed: %w", err)
}

// apiStatusError represents a non-success HTTP status from the REST API.
type apiStatusError struct {
	Status     string
	StatusCode int
	Body       string
	URL        string
}

// Error includes the body snippet: GitHub reports rate limiting as a
// plain 403, so classification needs the message text, not just the
// status line.
func (e *apiStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("github API error: %s", e.Status)
	}
	return fmt.Sprintf("github API error: %s: %s", e.Status, e.Body)
}
