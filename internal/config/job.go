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

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	reporterrors "github.com/sirseerhq/sirseer-report/internal/errors"
)

// Job holds the per-run parameters read from a key=value .properties file:
// credentials, target repository, and, for the filtered sweep, the date
// window and path glob patterns. All network-facing code receives these
// values explicitly; nothing is kept in process-wide state.
type Job struct {
	Token         string
	Owner         string
	Repo          string
	IncludedPaths []string
	StartDate     time.Time
	EndDate       time.Time

	// HasWindow reports whether both start_date and end_date were present
	// and parsed successfully.
	HasWindow bool
}

// Recognized job file keys.
const (
	keyToken         = "github_token"
	keyOwner         = "repo_owner"
	keyRepo          = "repo_name"
	keyIncludedPaths = "included_paths"
	keyStartDate     = "start_date"
	keyEndDate       = "end_date"
)

const dateLayout = "2006-01-02"

// LoadJob reads a job file in key=value format. Unknown keys are ignored.
// Dates must be ISO YYYY-MM-DD; included_paths is a comma-separated list of
// shell-style glob patterns. Which keys are required depends on the
// pipeline, so validation is left to RequireRepo and RequireWindow.
func LoadJob(path string) (*Job, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file %s: %w", path, err)
	}

	job := &Job{
		Token: strings.TrimSpace(values[keyToken]),
		Owner: strings.TrimSpace(values[keyOwner]),
		Repo:  strings.TrimSpace(values[keyRepo]),
	}

	if raw, ok := values[keyIncludedPaths]; ok {
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				job.IncludedPaths = append(job.IncludedPaths, p)
			}
		}
	}

	start, hasStart := values[keyStartDate]
	end, hasEnd := values[keyEndDate]
	if hasStart || hasEnd {
		if job.StartDate, err = parseDate(keyStartDate, start); err != nil {
			return nil, err
		}
		if job.EndDate, err = parseDate(keyEndDate, end); err != nil {
			return nil, err
		}
		if job.EndDate.Before(job.StartDate) {
			return nil, fmt.Errorf("end_date %s is before start_date %s",
				job.EndDate.Format(dateLayout), job.StartDate.Format(dateLayout))
		}
		job.HasWindow = true
	}

	return job, nil
}

// RequireRepo verifies the keys every pipeline needs: credentials and the
// target repository. The check runs before any network activity so a bad
// job file fails immediately.
func (j *Job) RequireRepo() error {
	var missing []string
	if j.Token == "" {
		missing = append(missing, keyToken)
	}
	if j.Owner == "" {
		missing = append(missing, keyOwner)
	}
	if j.Repo == "" {
		missing = append(missing, keyRepo)
	}
	if len(missing) > 0 {
		return fmt.Errorf("job file is missing required keys: %s: %w",
			strings.Join(missing, ", "), reporterrors.ErrMissingConfig)
	}
	return nil
}

// RequireWindow verifies the additional keys the filtered sweep needs:
// the date window and at least one path pattern.
func (j *Job) RequireWindow() error {
	var missing []string
	if !j.HasWindow {
		missing = append(missing, keyStartDate, keyEndDate)
	}
	if len(j.IncludedPaths) == 0 {
		missing = append(missing, keyIncludedPaths)
	}
	if len(missing) > 0 {
		return fmt.Errorf("job file is missing required keys: %s: %w",
			strings.Join(missing, ", "), reporterrors.ErrMissingConfig)
	}
	return nil
}

func parseDate(key, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("job file is missing required keys: %s: %w",
			key, reporterrors.ErrMissingConfig)
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q: expected YYYY-MM-DD: %w", key, value, err)
	}
	return t.UTC(), nil
}
