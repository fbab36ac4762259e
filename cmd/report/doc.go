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

// Package main implements the sirseer-report command-line interface.
// This tool enumerates merged pull requests in a GitHub repository and
// exports them to a dated CSV report.
//
// Two sweeps are available:
//   - "all" walks the closed pull request list page by page over the
//     REST API and enriches each merged item with follow-up calls for
//     the merge actor, approvals, and changed files.
//   - "filtered" runs a single GraphQL query per page with the nested
//     fields included, keeping only items inside a date window whose
//     changed files match the configured glob patterns.
//
// Both read their run parameters (credentials, repository, window,
// patterns) from a key=value job file.
//
// Usage:
//
//	sirseer-report all --job-file report.properties
//	sirseer-report filtered --job-file report.properties
//
// Exit codes:
//   - 0: Success
//   - 1: General error
//   - 2: Authentication/authorization error
//   - 3: Network error
package main
