package match

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/assetforge/assetctl/internal/logging"
)

// Matcher is a single compiled path pattern. Matching is case-insensitive and
// operates on slash-separated relative paths. The supported dialect:
//
//   - `*` matches any run of characters except `/`
//   - `?` matches exactly one character
//   - a `**/` prefix matches zero or more leading path segments
//   - a pattern without a leading `/` may match at any directory depth
//   - a pattern ending with `/` matches that directory and everything beneath it
//   - a leading `/` anchors the pattern to the root
type Matcher struct {
	Pattern string
	globs   []glob.Glob
}

// Compile builds a Matcher for pattern. The dialect above is mapped onto
// gobwas/glob by expanding a pattern into a small set of glob alternatives:
// `**/` may match zero segments, so `**/foo.png` also compiles as `foo.png`,
// and an unanchored pattern additionally compiles with a `**/` prefix.
func Compile(pattern string) (*Matcher, error) {
	p := strings.ToLower(strings.TrimSpace(pattern))
	if strings.HasSuffix(p, "/") {
		p += "**"
	}

	var variants []string
	switch {
	case strings.HasPrefix(p, "/"):
		variants = []string{strings.TrimPrefix(p, "/")}
	case strings.HasPrefix(p, "**/"):
		variants = []string{p, strings.TrimPrefix(p, "**/")}
	default:
		variants = []string{p, "**/" + p}
	}

	m := &Matcher{Pattern: pattern}
	for _, v := range variants {
		g, err := glob.Compile(v, '/')
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
		}
		m.globs = append(m.globs, g)
	}
	return m, nil
}

// Match reports whether the slash-separated relative path matches. A nil
// Matcher never matches.
func (m *Matcher) Match(path string) bool {
	if m == nil {
		return false
	}
	path = strings.TrimPrefix(strings.ToLower(strings.ReplaceAll(path, `\`, "/")), "/")
	for _, g := range m.globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// Set is an ordered collection of matchers compiled from raw patterns.
// Patterns that fail to compile are dropped: they never match anything, and
// the failure does not abort the operation that supplied them.
type Set struct {
	matchers []*Matcher
}

// NewSet compiles patterns into a Set, logging and skipping any that fail to
// compile. log may be nil.
func NewSet(patterns []string, log *logging.Logger) *Set {
	s := &Set{}
	for _, p := range patterns {
		m, err := Compile(p)
		if err != nil {
			if log != nil {
				log.Warnf("ignoring uncompilable pattern %q: %v", p, err)
			}
			continue
		}
		s.matchers = append(s.matchers, m)
	}
	return s
}

func (s *Set) Empty() bool {
	return s == nil || len(s.matchers) == 0
}

func (s *Set) Match(path string) bool {
	if s == nil {
		return false
	}
	for _, m := range s.matchers {
		if m.Match(path) {
			return true
		}
	}
	return false
}

// IsIncluded returns true if patterns is empty or any pattern matches path.
func IsIncluded(path string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	return NewSet(patterns, nil).Match(path)
}

// IsExcluded returns false if patterns is empty, and true if any pattern
// matches path.
func IsExcluded(path string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	return NewSet(patterns, nil).Match(path)
}

// Selection pairs include and exclude pattern sets. A path is selected iff it
// is included and not excluded; excludes are applied after includes and can
// only remove files. An empty include set selects everything.
type Selection struct {
	include  *Set
	exclude  *Set
	rawEmpty bool
}

func NewSelection(include, exclude []string, log *logging.Logger) *Selection {
	return &Selection{
		include:  NewSet(include, log),
		exclude:  NewSet(exclude, log),
		rawEmpty: len(include) == 0,
	}
}

func (sel *Selection) Selected(path string) bool {
	if !sel.rawEmpty && !sel.include.Match(path) {
		// NB: a non-empty include list whose patterns all failed to compile
		// selects nothing; failing closed beats silently including everything.
		return false
	}
	return !sel.exclude.Match(path)
}

// Filter returns the subset of paths selected, preserving order.
func (sel *Selection) Filter(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if sel.Selected(p) {
			out = append(out, p)
		}
	}
	return out
}
