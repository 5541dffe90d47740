package lexical

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/lexkeep/pkg/eol"
)

// IndentPolicy chooses the indentation of inserted children.
type IndentPolicy int

const (
	// IndentCanonical indents by one printer unit per enclosing node
	// that indents its children.
	IndentCanonical IndentPolicy = iota

	// IndentInherit copies the indentation of the neighboring kept child.
	IndentInherit
)

// String returns the policy name.
func (p IndentPolicy) String() string {
	switch p {
	case IndentCanonical:
		return "canonical"
	case IndentInherit:
		return "inherit"
	default:
		return fmt.Sprintf("IndentPolicy(%d)", int(p))
	}
}

// ParseIndentPolicy converts a policy name. The empty string selects
// IndentCanonical.
func ParseIndentPolicy(name string) (IndentPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "canonical":
		return IndentCanonical, nil
	case "inherit":
		return IndentInherit, nil
	default:
		return IndentCanonical, fmt.Errorf("unknown indent policy %q (valid: canonical, inherit)", name)
	}
}

// Options configures a Session.
type Options struct {
	// Printer renders nodes without original text. Nil selects PlainPrinter.
	Printer DefaultPrinter

	// Indent selects the indentation policy for inserted children.
	Indent IndentPolicy

	// FallbackLineEnding is used when the original text has no line
	// breaks. Nil makes Setup fail with *AmbiguousLineEndingError.
	FallbackLineEnding *eol.LineEnding

	// Logger receives debug traces. Nil disables logging.
	Logger *log.Logger
}
