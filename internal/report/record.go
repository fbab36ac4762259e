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

package report

import (
	"time"

	"github.com/sirseerhq/sirseer-report/internal/github"
)

// NotAvailable is written in place of any text field the API did not
// supply.
const NotAvailable = "N/A"

// Record is one row of the final report. Every text field is already
// resolved: absent values carry the NotAvailable sentinel instead of
// an empty string.
type Record struct {
	URL            string
	Number         int
	Title          string
	Author         string
	MergedBy       string
	MergeCommitSHA string
	MergedAt       string
	ApprovedBy     []string
	ModifiedFiles  []string
}

// FromPullRequest converts a fetched pull request into a report row.
// Approver logins are deduplicated preserving first occurrence; file
// paths are carried through as returned by the API.
func FromPullRequest(pr github.PullRequest) Record {
	return Record{
		URL:            orNA(pr.URL),
		Number:         pr.Number,
		Title:          orNA(pr.Title),
		Author:         orNA(pr.Author),
		MergedBy:       orNA(pr.MergedBy),
		MergeCommitSHA: orNA(pr.MergeCommitSHA),
		MergedAt:       formatMergedAt(pr.MergedAt),
		ApprovedBy:     dedup(pr.Approvers),
		ModifiedFiles:  pr.Files,
	}
}

func formatMergedAt(t *time.Time) string {
	if t == nil {
		return NotAvailable
	}
	return t.UTC().Format(time.RFC3339)
}

func orNA(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}

func dedup(logins []string) []string {
	if len(logins) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(logins))
	var out []string
	for _, l := range logins {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}
