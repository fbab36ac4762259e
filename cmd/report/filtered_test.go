package main

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	reporterrors "github.com/sirseerhq/sirseer-report/internal/errors"
	"github.com/sirseerhq/sirseer-report/internal/filter"
	"github.com/sirseerhq/sirseer-report/internal/github"
	"github.com/sirseerhq/sirseer-report/internal/metadata"
)

func windowedPR(number int, mergedAt string, files ...string) github.PullRequest {
	t, err := time.Parse(time.RFC3339, mergedAt)
	if err != nil {
		panic(err)
	}
	return github.PullRequest{
		Number:   number,
		Title:    "change",
		MergedAt: &t,
		Files:    files,
	}
}

func testSweepOptions(t *testing.T, patterns []string) sweepOptions {
	t.Helper()
	paths, err := filter.NewPathFilter(patterns)
	if err != nil {
		t.Fatalf("NewPathFilter(%v) error = %v", patterns, err)
	}
	return sweepOptions{
		Window: filter.NewWindow(
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)),
		Paths:     paths,
		PageSize:  50,
		EarlyStop: true,
		Tracker:   metadata.NewTracker(),
		Progress:  io.Discard,
	}
}

func TestSweepMergedWindowFilters(t *testing.T) {
	fetcher := &github.MockPageFetcher{
		Pages: []*github.PullRequestPage{
			{
				PullRequests: []github.PullRequest{
					windowedPR(10, "2024-02-05T00:00:00Z", "src/a.go"),   // after window
					windowedPR(9, "2024-01-20T12:00:00Z", "src/a.go"),    // keep
					windowedPR(8, "2024-01-18T12:00:00Z", "docs/x.md"),   // no glob match
					{Number: 7, Title: "no timestamp"},                   // nil mergedAt
					windowedPR(6, "2024-01-31T23:59:00Z", "src/deep.go"), // keep, end date
				},
				HasNextPage: false,
			},
		},
	}

	kept, err := sweepMergedWindow(context.Background(), fetcher, "o", "r", testSweepOptions(t, []string{"src/*.go"}))
	if err != nil {
		t.Fatalf("sweepMergedWindow() error = %v", err)
	}

	if len(kept) != 2 {
		t.Fatalf("kept %d pull requests, want 2", len(kept))
	}
	if kept[0].Number != 9 || kept[1].Number != 6 {
		t.Errorf("kept = [%d %d], want [9 6]", kept[0].Number, kept[1].Number)
	}
}

func TestSweepMergedWindowEarlyStop(t *testing.T) {
	fetcher := &github.MockPageFetcher{
		Pages: []*github.PullRequestPage{
			{
				PullRequests: []github.PullRequest{
					windowedPR(9, "2024-01-20T00:00:00Z", "src/a.go"),
				},
				HasNextPage: true,
				EndCursor:   "c1",
			},
			{
				PullRequests: []github.PullRequest{
					windowedPR(8, "2023-12-30T00:00:00Z", "src/b.go"),
					windowedPR(7, "2023-12-01T00:00:00Z", "src/c.go"),
				},
				HasNextPage: true,
				EndCursor:   "c2",
			},
			{
				// Reachable only without early stop: an old PR whose
				// recent update pushed it down the UPDATED_AT ordering.
				PullRequests: []github.PullRequest{
					windowedPR(6, "2024-01-10T00:00:00Z", "src/d.go"),
				},
				HasNextPage: false,
			},
		},
	}

	kept, err := sweepMergedWindow(context.Background(), fetcher, "o", "r", testSweepOptions(t, []string{"src/*.go"}))
	if err != nil {
		t.Fatalf("sweepMergedWindow() error = %v", err)
	}

	if fetcher.CallCount != 2 {
		t.Errorf("CallCount = %d, want 2 (third page must never be fetched)", fetcher.CallCount)
	}
	if len(kept) != 1 || kept[0].Number != 9 {
		t.Errorf("kept = %v, want only PR 9", kept)
	}
	if fetcher.LastOpts.After != "c1" {
		t.Errorf("LastOpts.After = %q, want c1", fetcher.LastOpts.After)
	}
}

func TestSweepMergedWindowNoEarlyStop(t *testing.T) {
	fetcher := &github.MockPageFetcher{
		Pages: []*github.PullRequestPage{
			{
				PullRequests: []github.PullRequest{
					windowedPR(8, "2023-12-30T00:00:00Z", "src/b.go"),
				},
				HasNextPage: true,
				EndCursor:   "c1",
			},
			{
				PullRequests: []github.PullRequest{
					windowedPR(6, "2024-01-10T00:00:00Z", "src/d.go"),
				},
				HasNextPage: false,
			},
		},
	}

	opts := testSweepOptions(t, []string{"src/*.go"})
	opts.EarlyStop = false

	kept, err := sweepMergedWindow(context.Background(), fetcher, "o", "r", opts)
	if err != nil {
		t.Fatalf("sweepMergedWindow() error = %v", err)
	}

	if fetcher.CallCount != 2 {
		t.Errorf("CallCount = %d, want full walk of 2 pages", fetcher.CallCount)
	}
	if len(kept) != 1 || kept[0].Number != 6 {
		t.Errorf("kept = %v, want PR 6 from the final page", kept)
	}
}

func TestSweepMergedWindowEmptyRepository(t *testing.T) {
	fetcher := &github.MockPageFetcher{
		Pages: []*github.PullRequestPage{
			{PullRequests: nil, HasNextPage: false},
		},
	}

	kept, err := sweepMergedWindow(context.Background(), fetcher, "o", "r", testSweepOptions(t, []string{"*"}))
	if err != nil {
		t.Fatalf("sweepMergedWindow() error = %v", err)
	}
	if len(kept) != 0 {
		t.Errorf("kept = %v, want empty", kept)
	}
	if fetcher.CallCount != 1 {
		t.Errorf("CallCount = %d, want 1", fetcher.CallCount)
	}
}

func TestSweepMergedWindowFatalOnFetchError(t *testing.T) {
	fetcher := &github.MockPageFetcher{Error: reporterrors.ErrRateLimit}

	_, err := sweepMergedWindow(context.Background(), fetcher, "o", "r", testSweepOptions(t, []string{"*"}))
	if !errors.Is(err, reporterrors.ErrRateLimit) {
		t.Fatalf("error = %v, want ErrRateLimit", err)
	}
}
