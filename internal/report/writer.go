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
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// csvHeader is the fixed column set of every report file.
var csvHeader = []string{
	"PR URL",
	"PR Number",
	"Title",
	"Author",
	"Merged By",
	"Merge Commit SHA",
	"Merged At",
	"Approved By",
	"Modified Files",
}

// Filename returns the dated report filename for the given base name,
// e.g. "all_merged_prs_2024-01-15.csv".
func Filename(name string, day time.Time) string {
	return fmt.Sprintf("%s_%s.csv", name, day.UTC().Format("2006-01-02"))
}

// Write serializes records to <dir>/<name>_<day>.csv, creating dir if
// it does not exist. A same-day file is overwritten. When records is
// empty no file is written and Write returns an empty path.
func Write(dir, name string, day time.Time, records []Record) (string, error) {
	if len(records) == 0 {
		return "", nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating report directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, Filename(name, day))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating report file %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("writing header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.URL,
			strconv.Itoa(rec.Number),
			rec.Title,
			rec.Author,
			rec.MergedBy,
			rec.MergeCommitSHA,
			rec.MergedAt,
			joinOrNA(rec.ApprovedBy),
			joinOrNA(rec.ModifiedFiles),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("writing row for PR #%d: %w", rec.Number, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing report: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing report file: %w", err)
	}
	return path, nil
}

func joinOrNA(values []string) string {
	if len(values) == 0 {
		return NotAvailable
	}
	return strings.Join(values, ", ")
}
