// Package langdetect picks the grammar for a source file. It uses
// go-enry to detect the language from the file name, a shebang line or,
// as a last resort, the content itself.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language names understood by the parser registry.
const (
	Go         = "go"
	Java       = "java"
	JavaScript = "javascript"
	Markdown   = "markdown"
	Python     = "python"
	Rust       = "rust"
	Text       = "text"
)

// classifierCandidates limits the content classifier to grammars we can parse.
var classifierCandidates = []string{
	"Go", "Java", "JavaScript", "Markdown", "Python", "Rust",
}

// Detect returns the language of a file. Returns Text if detection
// fails or confidence is low.
func Detect(path string, content []byte) string {
	if path != "" {
		if lang, safe := enry.GetLanguageByFilename(path); safe && lang != "" {
			return normalize(lang)
		}
		if lang, safe := enry.GetLanguageByExtension(path); safe && lang != "" {
			return normalize(lang)
		}
	}

	if len(content) == 0 || enry.IsBinary(content) {
		return Text
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	if lang := detectByPattern(content); lang != "" {
		return lang
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return Text
}

// Skip reports whether a file should be left out of batch processing:
// vendored, generated or binary files.
func Skip(path string, content []byte) bool {
	return enry.IsVendor(path) || enry.IsGenerated(path, content) || enry.IsBinary(content)
}

// detectByPattern checks for language-specific patterns that are highly indicative.
func detectByPattern(content []byte) string {
	contentStr := string(content)
	trimmed := bytes.TrimSpace(content)

	if lang := detectGo(trimmed); lang != "" {
		return lang
	}
	if lang := detectJava(contentStr); lang != "" {
		return lang
	}
	if lang := detectPython(contentStr); lang != "" {
		return lang
	}
	if lang := detectRust(contentStr); lang != "" {
		return lang
	}
	return ""
}

// detectGo checks for Go language patterns.
func detectGo(trimmed []byte) string {
	if bytes.HasPrefix(trimmed, []byte("package ")) &&
		(bytes.Contains(trimmed, []byte("func ")) || bytes.Contains(trimmed, []byte("import "))) &&
		!bytes.Contains(trimmed, []byte(";\n")) {
		return Go
	}
	return ""
}

// detectJava checks for Java class declarations.
func detectJava(contentStr string) string {
	if (strings.Contains(contentStr, "public class ") || strings.Contains(contentStr, "private ")) &&
		strings.Contains(contentStr, ";") && strings.Contains(contentStr, "{") {
		return Java
	}
	return ""
}

// detectPython checks for Python language patterns.
func detectPython(contentStr string) string {
	if strings.Contains(contentStr, "def ") && strings.Contains(contentStr, "):") {
		return Python
	}
	if strings.Contains(contentStr, "if __name__ ==") {
		return Python
	}
	return ""
}

// detectRust checks for Rust language patterns.
func detectRust(contentStr string) string {
	if strings.Contains(contentStr, "fn main()") ||
		strings.Contains(contentStr, "println!") ||
		strings.Contains(contentStr, "let mut ") {
		return Rust
	}
	return ""
}

// normalize converts go-enry language names to registry names.
func normalize(lang string) string {
	switch lang {
	case "Shell":
		return "bash"
	case "TSX", "JSX":
		return JavaScript
	}
	return strings.ToLower(lang)
}
