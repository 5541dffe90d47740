// Package textdiff aligns sequences and renders unified diffs.
package textdiff

// OpKind classifies one step of an alignment.
type OpKind int

const (
	// OpKeep pairs an element present in both sequences.
	OpKeep OpKind = iota

	// OpInsert is an element present only in the modified sequence.
	OpInsert

	// OpDelete is an element present only in the original sequence.
	OpDelete
)

// String returns the operation name.
func (k OpKind) String() string {
	switch k {
	case OpKeep:
		return "keep"
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Op is one step of an alignment between two sequences.
type Op struct {
	Kind OpKind

	// OrigIdx is the index into the original sequence (-1 for inserts).
	OrigIdx int

	// ModIdx is the index into the modified sequence (-1 for deletes).
	ModIdx int
}

// Align computes a minimal edit script between orig and mod using a
// longest common subsequence. Within a run of changes, deletions are
// emitted before insertions. The common prefix and suffix are matched
// directly, so the quadratic table only covers the changed window.
func Align[T comparable](orig, mod []T) []Op {
	origLen, modLen := len(orig), len(mod)

	head := 0
	for head < origLen && head < modLen && orig[head] == mod[head] {
		head++
	}
	tail := 0
	for tail < origLen-head && tail < modLen-head && orig[origLen-1-tail] == mod[modLen-1-tail] {
		tail++
	}

	ops := make([]Op, 0, max(origLen, modLen))
	for idx := range head {
		ops = append(ops, Op{Kind: OpKeep, OrigIdx: idx, ModIdx: idx})
	}
	ops = alignWindow(ops, orig[head:origLen-tail], mod[head:modLen-tail], head)
	for idx := range tail {
		ops = append(ops, Op{Kind: OpKeep, OrigIdx: origLen - tail + idx, ModIdx: modLen - tail + idx})
	}
	return ops
}

// alignWindow appends the LCS script of orig and mod to ops, with both
// indexes shifted by offset.
func alignWindow[T comparable](ops []Op, orig, mod []T, offset int) []Op {
	origLen, modLen := len(orig), len(mod)
	if origLen == 0 || modLen == 0 {
		for row := range origLen {
			ops = append(ops, Op{Kind: OpDelete, OrigIdx: offset + row, ModIdx: -1})
		}
		for col := range modLen {
			ops = append(ops, Op{Kind: OpInsert, OrigIdx: -1, ModIdx: offset + col})
		}
		return ops
	}

	// lcs(row, col) is the LCS length of orig[row:] and mod[col:].
	width := modLen + 1
	table := make([]int, (origLen+1)*width)
	lcs := func(row, col int) int { return table[row*width+col] }
	for row := origLen - 1; row >= 0; row-- {
		for col := modLen - 1; col >= 0; col-- {
			if orig[row] == mod[col] {
				table[row*width+col] = lcs(row+1, col+1) + 1
			} else {
				table[row*width+col] = max(lcs(row+1, col), lcs(row, col+1))
			}
		}
	}

	row, col := 0, 0
	for row < origLen || col < modLen {
		switch {
		case row < origLen && col < modLen && orig[row] == mod[col]:
			ops = append(ops, Op{Kind: OpKeep, OrigIdx: offset + row, ModIdx: offset + col})
			row++
			col++
		case col >= modLen || (row < origLen && lcs(row+1, col) >= lcs(row, col+1)):
			ops = append(ops, Op{Kind: OpDelete, OrigIdx: offset + row, ModIdx: -1})
			row++
		default:
			ops = append(ops, Op{Kind: OpInsert, OrigIdx: -1, ModIdx: offset + col})
			col++
		}
	}
	return ops
}

// LongestCommonSubsequence returns the elements shared, in order, by
// both sequences.
func LongestCommonSubsequence[T comparable](orig, mod []T) []T {
	var lcs []T
	for _, op := range Align(orig, mod) {
		if op.Kind == OpKeep {
			lcs = append(lcs, orig[op.OrigIdx])
		}
	}
	return lcs
}
