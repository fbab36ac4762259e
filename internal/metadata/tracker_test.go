package metadata

import (
	"strings"
	"testing"
)

func TestTrackerSummary(t *testing.T) {
	tr := NewTracker()
	tr.APICall()
	tr.APICall()
	tr.APICall()
	tr.Page()
	tr.Page()
	tr.Scanned(150)
	tr.Kept(12)

	if tr.PagesFetched() != 2 {
		t.Errorf("PagesFetched() = %d, want 2", tr.PagesFetched())
	}

	var buf strings.Builder
	tr.WriteSummary(&buf)
	out := buf.String()

	for _, want := range []string{"150 pull requests", "2 pages", "3 API calls", "12 matched"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary %q missing %q", out, want)
		}
	}
}

func TestTrackerZeroRun(t *testing.T) {
	tr := NewTracker()
	var buf strings.Builder
	tr.WriteSummary(&buf)
	if !strings.Contains(buf.String(), "0 pull requests") {
		t.Errorf("summary %q should report zero scanned", buf.String())
	}
}
