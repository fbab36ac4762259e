package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/sirseerhq/sirseer-report/internal/github"
)

func TestFromPullRequest(t *testing.T) {
	mergedAt := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	pr := github.PullRequest{
		Number:         42,
		Title:          "Add parser",
		URL:            "https://github.com/o/r/pull/42",
		Author:         "alice",
		MergedBy:       "release-bot",
		MergeCommitSHA: "abc123",
		MergedAt:       &mergedAt,
		Approvers:      []string{"carol", "dave", "carol"},
		Files:          []string{"src/main.go", "src/main.go", "README.md"},
	}

	rec := FromPullRequest(pr)
	if rec.URL != pr.URL || rec.Number != 42 || rec.Title != "Add parser" {
		t.Errorf("unexpected record: %+v", rec)
	}
	if rec.MergedAt != "2024-01-15T10:30:00Z" {
		t.Errorf("MergedAt = %q, want RFC3339 timestamp", rec.MergedAt)
	}
	if !reflect.DeepEqual(rec.ApprovedBy, []string{"carol", "dave"}) {
		t.Errorf("ApprovedBy = %v, want deduplicated [carol dave]", rec.ApprovedBy)
	}
	// File paths pass through exactly as the API returned them.
	if !reflect.DeepEqual(rec.ModifiedFiles, pr.Files) {
		t.Errorf("ModifiedFiles = %v, want %v", rec.ModifiedFiles, pr.Files)
	}
}

func TestFromPullRequestSentinels(t *testing.T) {
	rec := FromPullRequest(github.PullRequest{Number: 7})

	for name, got := range map[string]string{
		"URL":            rec.URL,
		"Title":          rec.Title,
		"Author":         rec.Author,
		"MergedBy":       rec.MergedBy,
		"MergeCommitSHA": rec.MergeCommitSHA,
		"MergedAt":       rec.MergedAt,
	} {
		if got != NotAvailable {
			t.Errorf("%s = %q, want %q", name, got, NotAvailable)
		}
	}
	if rec.ApprovedBy != nil {
		t.Errorf("ApprovedBy = %v, want nil", rec.ApprovedBy)
	}
}

func TestFilename(t *testing.T) {
	day := time.Date(2024, 3, 5, 18, 0, 0, 0, time.UTC)
	if got := Filename("merged_prs", day); got != "merged_prs_2024-03-05.csv" {
		t.Errorf("Filename() = %q", got)
	}
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	records := []Record{
		{
			URL: "https://github.com/o/r/pull/42", Number: 42, Title: "Add parser",
			Author: "alice", MergedBy: "release-bot", MergeCommitSHA: "abc123",
			MergedAt:   "2024-01-15T10:30:00Z",
			ApprovedBy: []string{"carol", "dave"}, ModifiedFiles: []string{"src/main.go", "README.md"},
		},
		{
			URL: "https://github.com/o/r/pull/41", Number: 41, Title: "Fix, with comma",
			Author: "bob", MergedBy: NotAvailable, MergeCommitSHA: NotAvailable,
			MergedAt: "2024-01-14T09:00:00Z",
		},
	}

	path, err := Write(dir, "all_merged_prs", day, records)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if filepath.Base(path) != "all_merged_prs_2024-01-15.csv" {
		t.Errorf("unexpected path %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open report: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header plus 2 records", len(rows))
	}

	wantHeader := []string{"PR URL", "PR Number", "Title", "Author", "Merged By", "Merge Commit SHA", "Merged At", "Approved By", "Modified Files"}
	if !reflect.DeepEqual(rows[0], wantHeader) {
		t.Errorf("header = %v, want %v", rows[0], wantHeader)
	}
	if rows[1][1] != "42" || rows[1][7] != "carol, dave" || rows[1][8] != "src/main.go, README.md" {
		t.Errorf("unexpected first data row: %v", rows[1])
	}
	// Empty collections collapse to the sentinel.
	if rows[2][7] != NotAvailable || rows[2][8] != NotAvailable {
		t.Errorf("unexpected sentinel row: %v", rows[2])
	}
	// Commas in titles survive CSV quoting.
	if rows[2][2] != "Fix, with comma" {
		t.Errorf("title = %q", rows[2][2])
	}
}

func TestWriteEmptyRecordSet(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	path, err := Write(dir, "merged_prs", time.Now(), nil)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if path != "" {
		t.Errorf("path = %q, want empty for empty record set", path)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("empty record set must not create the report directory")
	}
}

func TestWriteOverwritesSameDayFile(t *testing.T) {
	dir := t.TempDir()
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	first := []Record{{URL: "u", Number: 1, Title: "old", Author: "a", MergedBy: "b", MergeCommitSHA: "c", MergedAt: "d"}}
	if _, err := Write(dir, "merged_prs", day, first); err != nil {
		t.Fatalf("first Write() error = %v", err)
	}

	second := []Record{{URL: "u", Number: 2, Title: "new", Author: "a", MergedBy: "b", MergeCommitSHA: "c", MergedAt: "d"}}
	path, err := Write(dir, "merged_prs", day, second)
	if err != nil {
		t.Fatalf("second Write() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "new") || strings.Contains(content, "old") {
		t.Errorf("same-day file was not overwritten:\n%s", content)
	}
}
