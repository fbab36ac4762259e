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

// Package filter selects pull requests by merge date and touched paths.
//
// A Window holds an inclusive calendar-date range; comparisons use the
// UTC date of the merge timestamp so that a request merged late on the
// end date is still inside the window. A PathFilter matches changed
// file paths against shell-style glob patterns where '*' crosses
// directory separators.
package filter
