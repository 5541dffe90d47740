package lexical

import (
	"errors"
	"fmt"

	"github.com/yaklabco/lexkeep/pkg/eol"
	"github.com/yaklabco/lexkeep/pkg/syntax"
)

// ErrUnknownKind is returned by a DefaultPrinter that has no layout for a node kind.
var ErrUnknownKind = errors.New("no layout for node kind")

// UntrackedNodeError reports a node whose text could neither be reused
// nor synthesized.
type UntrackedNodeError struct {
	Kind string
	Err  error
}

func (e *UntrackedNodeError) Error() string {
	return fmt.Sprintf("cannot synthesize text for %s node: %v", e.Kind, e.Err)
}

func (e *UntrackedNodeError) Unwrap() error {
	return e.Err
}

// AmbiguousLineEndingError reports that the original text had no line
// breaks, so the line ending in use is the configured fallback.
type AmbiguousLineEndingError struct {
	Fallback eol.LineEnding
}

func (e *AmbiguousLineEndingError) Error() string {
	return fmt.Sprintf("line ending is ambiguous, using %s", e.Fallback)
}

func (e *AmbiguousLineEndingError) Unwrap() error {
	return eol.ErrNoLineBreaks
}

// InconsistentOwnershipError reports a node that is not owned where the
// session expects it to be: a node of another tree, or a child reference
// whose node has moved to a different parent.
type InconsistentOwnershipError struct {
	Node   *syntax.Node
	Reason string
}

func (e *InconsistentOwnershipError) Error() string {
	kind := "<nil>"
	if e.Node != nil {
		kind = e.Node.Kind
	}
	return fmt.Sprintf("inconsistent ownership of %s node: %s", kind, e.Reason)
}

// RangeError reports a node whose source range cannot be partitioned
// inside its parent.
type RangeError struct {
	Node  *syntax.Node
	Range syntax.SourceRange
	Outer syntax.SourceRange
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s node range [%d,%d) does not fit in [%d,%d)",
		e.Node.Kind, e.Range.StartOffset, e.Range.EndOffset, e.Outer.StartOffset, e.Outer.EndOffset)
}
