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

package filter

import "time"

// Window is an inclusive range of calendar dates. Both endpoints are
// interpreted as UTC dates; the time-of-day component of a merge
// timestamp never affects membership.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow builds a window from the given endpoints, truncating both
// to their UTC calendar date.
func NewWindow(start, end time.Time) Window {
	return Window{Start: dateOf(start), End: dateOf(end)}
}

// Contains reports whether t falls inside the window. Membership is
// decided on t's UTC calendar date, so a merge at 23:59 on the end
// date is in the window.
func (w Window) Contains(t time.Time) bool {
	d := dateOf(t)
	return !d.Before(w.Start) && !d.After(w.End)
}

// Before reports whether t's UTC calendar date is strictly earlier
// than the window start. With results ordered newest-first, a page
// composed entirely of such items means no later page can contain a
// match.
func (w Window) Before(t time.Time) bool {
	return dateOf(t).Before(w.Start)
}

// After reports whether t's UTC calendar date is strictly later than
// the window end.
func (w Window) After(t time.Time) bool {
	return dateOf(t).After(w.End)
}

func dateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
