package lexical_test

import (
	"strings"
	"testing"
	"unicode"

	"github.com/yaklabco/lexkeep/pkg/eol"
	"github.com/yaklabco/lexkeep/pkg/lexical"
	"github.com/yaklabco/lexkeep/pkg/render"
	"github.com/yaklabco/lexkeep/pkg/syntax"
)

// FuzzBuilderRoundTrip splits arbitrary text into word leaves under one
// root and checks that printing the untouched tree gives the text back.
func FuzzBuilderRoundTrip(f *testing.F) {
	f.Add("class A {\r\n  int x; // c\r\n}\r\n")
	f.Add("  leading\n\n\ttrailing  ")
	f.Add("\r\r\n\n")
	f.Add("")

	f.Fuzz(func(t *testing.T, text string) {
		root := syntax.NewNode("document")
		root.Range = syntax.SourceRange{StartOffset: 0, EndOffset: len(text)}

		start := -1
		for i, r := range text + " " {
			switch {
			case !unicode.IsSpace(r) && start < 0:
				start = i
			case unicode.IsSpace(r) && start >= 0:
				word := syntax.NewNode("word")
				word.Range = syntax.SourceRange{StartOffset: start, EndOffset: i}
				if err := syntax.AppendChild(root, word); err != nil {
					t.Fatalf("append: %v", err)
				}
				start = -1
			}
		}

		fallback := eol.LF
		tree := syntax.NewTree("fuzz.txt", []byte(text), root)
		sess, err := lexical.Setup(tree, lexical.Options{
			Printer:            render.Generic(),
			FallbackLineEnding: &fallback,
		})
		if err != nil {
			t.Fatalf("setup: %v", err)
		}

		got, err := sess.Print(root)
		if err != nil {
			t.Fatalf("print: %v", err)
		}
		if got != text {
			t.Fatalf("round trip differs:\n got %q\nwant %q", got, text)
		}
		if strings.ContainsAny(text, "\r\n") {
			if _, err := sess.LineEnding(root); err != nil {
				t.Fatalf("line ending of text with breaks: %v", err)
			}
		}
	})
}
