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

// Package metadata tracks per-run fetch statistics. Stats live only in
// memory; the CSV report is the run's sole durable artifact, so the
// tracker prints a summary instead of persisting state.
package metadata

import (
	"fmt"
	"io"
	"time"
)

// Tracker accumulates counters over one report run. It is not safe
// for concurrent use; both pipelines are sequential.
type Tracker struct {
	startTime time.Time
	apiCalls  int
	pages     int
	scanned   int
	kept      int
}

// NewTracker starts a tracker with the clock running.
func NewTracker() *Tracker {
	return &Tracker{startTime: time.Now()}
}

// APICall records one HTTP request to the platform.
func (t *Tracker) APICall() { t.apiCalls++ }

// Page records one completed page of results.
func (t *Tracker) Page() { t.pages++ }

// Scanned records pull requests examined, whether or not they were
// kept.
func (t *Tracker) Scanned(n int) { t.scanned += n }

// Kept records pull requests that passed all filters into the report.
func (t *Tracker) Kept(n int) { t.kept += n }

// PagesFetched returns the number of completed pages.
func (t *Tracker) PagesFetched() int { return t.pages }

// WriteSummary prints a one-run summary of the tracker's counters.
func (t *Tracker) WriteSummary(w io.Writer) {
	elapsed := time.Since(t.startTime).Round(time.Millisecond)
	fmt.Fprintf(w, "ℹ️  Scanned %d pull requests across %d pages (%d API calls) in %s; %d matched\n",
		t.scanned, t.pages, t.apiCalls, elapsed, t.kept)
}
