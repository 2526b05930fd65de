// SPDX-License-Identifier: MPL-2.0

package fileglob

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/pattern"
	"mvdan.cc/sh/v3/syntax"
)

// ErrInvalidPattern is the sentinel error wrapped by InvalidPatternError.
var ErrInvalidPattern = errors.New("invalid glob pattern")

// InvalidPatternError is returned when a glob pattern cannot be compiled.
type InvalidPatternError struct {
	Pattern string
	Reason  string
}

// Error implements the error interface.
func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid glob pattern %q: %s", e.Pattern, e.Reason)
}

// Unwrap returns ErrInvalidPattern for errors.Is() compatibility.
func (e *InvalidPatternError) Unwrap() error { return ErrInvalidPattern }

// Alternation combines patterns into a single "one or more of" pattern list:
// ["*.csproj", "*.fsproj"] becomes "+(*.csproj|*.fsproj)".
func Alternation(patterns []string) string {
	return "+(" + strings.Join(patterns, "|") + ")"
}

// Compile translates a glob pattern into an anchored regular expression.
// Brace expansions such as "*.{csproj,fsproj}" are expanded first.
func Compile(pat string) (*regexp.Regexp, error) {
	expr, err := translate(expandBraces(pat))
	if err != nil {
		return nil, &InvalidPatternError{Pattern: pat, Reason: err.Error()}
	}
	re, err := regexp.Compile("^(?:" + expr + ")$")
	if err != nil {
		return nil, &InvalidPatternError{Pattern: pat, Reason: err.Error()}
	}
	return re, nil
}

// Match reports whether the slash-separated relative path name matches pat.
func Match(pat, name string) (bool, error) {
	re, err := Compile(pat)
	if err != nil {
		return false, err
	}
	return re.MatchString(name), nil
}

// expandBraces rewrites the brace expansions in pat as an "exactly one of"
// pattern list. Malformed braces are left as literals.
func expandBraces(pat string) string {
	word := &syntax.Word{Parts: []syntax.WordPart{&syntax.Lit{Value: pat}}}
	if !syntax.SplitBraces(word) {
		return pat
	}
	coalesceLits(word)

	words := expand.Braces(word)
	alts := make([]string, 0, len(words))
	for _, w := range words {
		alts = append(alts, w.Lit())
	}
	if len(alts) == 1 {
		return alts[0]
	}
	return "@(" + strings.Join(alts, "|") + ")"
}

// coalesceLits merges adjacent literal parts so that expansion never appends
// into a shared prefix slice.
func coalesceLits(word *syntax.Word) {
	parts := make([]syntax.WordPart, 0, len(word.Parts))
	for _, part := range word.Parts {
		if br, ok := part.(*syntax.BraceExp); ok {
			for _, elem := range br.Elems {
				coalesceLits(elem)
			}
		}
		lit, ok := part.(*syntax.Lit)
		if !ok || len(parts) == 0 {
			parts = append(parts, part)
			continue
		}
		prev, ok := parts[len(parts)-1].(*syntax.Lit)
		if !ok {
			parts = append(parts, part)
			continue
		}
		parts[len(parts)-1] = &syntax.Lit{Value: prev.Value + lit.Value}
	}
	word.Parts = parts
}

// translate converts pat to regular expression source. Pattern lists are
// handled here; every other fragment is delegated to the shell pattern
// translator in filename mode.
func translate(pat string) (string, error) {
	var sb strings.Builder
	start := 0
	for i := 0; i < len(pat); i++ {
		switch pat[i] {
		case '\\':
			i++
			continue
		case '@', '+', '?', '*', '!':
			if i+1 >= len(pat) || pat[i+1] != '(' {
				continue
			}
		default:
			continue
		}

		end, err := closingParen(pat, i+1)
		if err != nil {
			return "", err
		}
		if pat[i] == '!' {
			return "", errors.New("negated pattern lists are not supported")
		}

		if err := writeFragment(&sb, pat[start:i]); err != nil {
			return "", err
		}

		alts := splitAlternatives(pat[i+2 : end])
		exprs := make([]string, 0, len(alts))
		for _, alt := range alts {
			expr, err := translate(alt)
			if err != nil {
				return "", err
			}
			exprs = append(exprs, expr)
		}
		sb.WriteString("(?:")
		sb.WriteString(strings.Join(exprs, "|"))
		sb.WriteString(")")
		switch pat[i] {
		case '+':
			sb.WriteString("+")
		case '?':
			sb.WriteString("?")
		case '*':
			sb.WriteString("*")
		}

		start = end + 1
		i = end
	}
	if err := writeFragment(&sb, pat[start:]); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func writeFragment(sb *strings.Builder, frag string) error {
	if frag == "" {
		return nil
	}
	expr, err := pattern.Regexp(frag, pattern.Filenames)
	if err != nil {
		return err
	}
	sb.WriteString(expr)
	return nil
}

// closingParen returns the index of the ')' matching the '(' at open.
func closingParen(pat string, open int) (int, error) {
	depth := 0
	inClass := false
	for i := open; i < len(pat); i++ {
		c := pat[i]
		switch {
		case c == '\\':
			i++
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("unclosed pattern list at offset %d", open-1)
}

// splitAlternatives splits the body of a pattern list on top-level '|'.
func splitAlternatives(body string) []string {
	var alts []string
	depth := 0
	inClass := false
	start := 0
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '\\':
			i++
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
		case c == '(':
			depth++
		case c == ')':
			depth--
		case c == '|' && depth == 0:
			alts = append(alts, body[start:i])
			start = i + 1
		}
	}
	return append(alts, body[start:])
}

// maxDepth returns the number of path separators a match of pat can contain,
// or -1 when the pattern contains a "**" element and is unbounded.
func maxDepth(pat string) int {
	if strings.Contains(pat, "**") {
		return -1
	}
	return strings.Count(pat, "/")
}
