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

import (
	"fmt"
	"regexp"
	"strings"
)

// PathFilter matches repository file paths against shell-style glob
// patterns. Unlike path.Match, '*' and '?' cross directory
// separators, so "src/*.go" matches "src/deep/nested/file.go" as well
// as "src/main.go". An empty pattern list matches every path.
type PathFilter struct {
	patterns []string
	res      []*regexp.Regexp
}

// NewPathFilter compiles the given glob patterns. It returns an error
// when a pattern contains an unbalanced character class that cannot be
// compiled.
func NewPathFilter(patterns []string) (*PathFilter, error) {
	f := &PathFilter{patterns: patterns}
	for _, p := range patterns {
		re, err := regexp.Compile(globToRegexp(p))
		if err != nil {
			return nil, fmt.Errorf("invalid path pattern %q: %w", p, err)
		}
		f.res = append(f.res, re)
	}
	return f, nil
}

// Empty reports whether the filter has no patterns and therefore
// matches everything.
func (f *PathFilter) Empty() bool {
	return len(f.res) == 0
}

// Match reports whether the path matches at least one pattern. With no
// patterns configured every path matches.
func (f *PathFilter) Match(path string) bool {
	if f.Empty() {
		return true
	}
	for _, re := range f.res {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// MatchAny reports whether any of the paths matches the filter.
func (f *PathFilter) MatchAny(paths []string) bool {
	if f.Empty() {
		return true
	}
	for _, p := range paths {
		if f.Match(p) {
			return true
		}
	}
	return false
}

// Patterns returns the original pattern strings, for logging.
func (f *PathFilter) Patterns() []string {
	return f.patterns
}

// globToRegexp translates a shell glob into an anchored regular
// expression. '*' becomes '.*' and '?' becomes '.', both matching
// across '/'. Character classes pass through, with '[!...]' negation
// rewritten to '[^...]'; an unterminated '[' is treated as a literal
// bracket.
func globToRegexp(pattern string) string {
	var b strings.Builder
	b.WriteString(`\A`)
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch c {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteByte('.')
		case '[':
			end := classEnd(pattern, i)
			if end < 0 {
				b.WriteString(`\[`)
				continue
			}
			class := pattern[i+1 : end]
			b.WriteByte('[')
			if strings.HasPrefix(class, "!") {
				b.WriteByte('^')
				class = class[1:]
			}
			b.WriteString(strings.ReplaceAll(class, `\`, `\\`))
			b.WriteByte(']')
			i = end
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	b.WriteString(`\z`)
	return b.String()
}

// classEnd returns the index of the ']' closing the class that opens
// at pattern[start], or -1 when the class never closes. A ']' in the
// first position (after an optional '!') is part of the class.
func classEnd(pattern string, start int) int {
	i := start + 1
	if i < len(pattern) && pattern[i] == '!' {
		i++
	}
	if i < len(pattern) && pattern[i] == ']' {
		i++
	}
	for ; i < len(pattern); i++ {
		if pattern[i] == ']' {
			return i
		}
	}
	return -1
}
