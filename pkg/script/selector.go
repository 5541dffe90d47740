package script

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/lexkeep/pkg/syntax"
)

// Selector errors.
var (
	ErrInvalidSelector = errors.New("invalid selector")
	ErrNoMatch         = errors.New("selector matched nothing")
)

type step struct {
	kind  string
	index int
}

// Select resolves a selector against root.
//
// A selector is a slash-separated path of node kinds. Each step picks a
// descendant of the previous match by kind, in document order, with an
// optional zero-based index: "class_body/field_declaration[2]". An empty
// selector or "/" selects root.
func Select(root *syntax.Node, selector string) (*syntax.Node, error) {
	steps, err := parseSelector(selector)
	if err != nil {
		return nil, err
	}

	current := root
	for _, st := range steps {
		next := nthDescendant(current, st.kind, st.index)
		if next == nil {
			return nil, fmt.Errorf("%w: %q (no %s[%d])", ErrNoMatch, selector, st.kind, st.index)
		}
		current = next
	}
	return current, nil
}

func parseSelector(selector string) ([]step, error) {
	selector = strings.Trim(strings.TrimSpace(selector), "/")
	if selector == "" {
		return nil, nil
	}

	parts := strings.Split(selector, "/")
	steps := make([]step, 0, len(parts))
	for _, part := range parts {
		st := step{kind: part}
		if open := strings.IndexByte(part, '['); open >= 0 {
			if !strings.HasSuffix(part, "]") {
				return nil, fmt.Errorf("%w: %q", ErrInvalidSelector, part)
			}
			idx, err := strconv.Atoi(part[open+1 : len(part)-1])
			if err != nil || idx < 0 {
				return nil, fmt.Errorf("%w: bad index in %q", ErrInvalidSelector, part)
			}
			st = step{kind: part[:open], index: idx}
		}
		if st.kind == "" {
			return nil, fmt.Errorf("%w: empty kind in %q", ErrInvalidSelector, selector)
		}
		steps = append(steps, st)
	}
	return steps, nil
}

// nthDescendant returns the n-th proper descendant of node with the
// given kind in pre-order.
func nthDescendant(node *syntax.Node, kind string, n int) *syntax.Node {
	var found *syntax.Node
	count := 0
	for child := node.FirstChild; child != nil && found == nil; child = child.Next {
		_ = syntax.Walk(child, func(d *syntax.Node) error {
			if found != nil {
				return syntax.SkipChildren
			}
			if d.Kind == kind {
				if count == n {
					found = d
					return syntax.SkipChildren
				}
				count++
			}
			return nil
		})
	}
	return found
}
