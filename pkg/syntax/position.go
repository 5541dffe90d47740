package syntax

// NoRange marks a node that has no span in the source content.
var NoRange = SourceRange{StartOffset: -1, EndOffset: -1}

// SourceRange represents a byte range in the source content.
type SourceRange struct {
	// StartOffset is the byte index where the range begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the range ends (exclusive).
	EndOffset int
}

// Len returns the length of the range in bytes.
func (r SourceRange) Len() int {
	return r.EndOffset - r.StartOffset
}

// IsEmpty returns true if the range has zero length.
func (r SourceRange) IsEmpty() bool {
	return r.StartOffset == r.EndOffset
}

// IsValid reports whether the range has non-negative, ordered offsets.
func (r SourceRange) IsValid() bool {
	return r.StartOffset >= 0 && r.EndOffset >= r.StartOffset
}

// Contains returns true if the given offset is within this range.
func (r SourceRange) Contains(offset int) bool {
	return offset >= r.StartOffset && offset < r.EndOffset
}

// Covers reports whether other lies entirely inside r.
func (r SourceRange) Covers(other SourceRange) bool {
	return other.StartOffset >= r.StartOffset && other.EndOffset <= r.EndOffset
}

// Position represents a 1-based line and column in a file.
type Position struct {
	Line   int
	Column int
}

// IsValid returns true if this position has valid (positive) values.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// Position returns the start position of a node in its tree.
// It returns an invalid position for detached or synthetic nodes.
func (n *Node) Position() Position {
	if n.Tree == nil || !n.Range.IsValid() {
		return Position{}
	}
	line, col := n.Tree.LineAt(n.Range.StartOffset)
	return Position{Line: line, Column: col}
}
