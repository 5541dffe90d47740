// Package render lays out syntax nodes canonically from per-language
// rule tables. It is the default printer used for nodes that have no
// original source text.
package render

import (
	"embed"
	"fmt"
	"maps"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed rules/*.yaml
var builtinFS embed.FS

// DefaultIndentUnit is used when a table does not set indent_unit.
const DefaultIndentUnit = "    "

// Rules is a rule table for one language.
type Rules struct {
	// Name identifies the table, usually the language name.
	Name string `yaml:"name"`

	// IndentUnit is the indentation added by rules with indent: true.
	IndentUnit string `yaml:"indent_unit"`

	// Strict makes kinds without a rule an error instead of falling
	// back to the generic layout.
	Strict bool `yaml:"strict"`

	// Kinds maps node kinds to their rule.
	Kinds map[string]Rule `yaml:"kinds"`
}

// Rule describes the canonical layout of one node kind.
type Rule struct {
	// Open and Close surround the children. Both may contain {prop}
	// placeholders.
	Open  string `yaml:"open,omitempty"`
	Close string `yaml:"close,omitempty"`

	// Separator is placed between children. Defaults to a line break
	// for block rules and a space otherwise.
	Separator string `yaml:"separator,omitempty"`

	// Before replaces the separator in front of children of the given kinds.
	Before map[string]string `yaml:"before,omitempty"`

	// Block puts each child on its own line.
	Block bool `yaml:"block,omitempty"`

	// Compact keeps the first child of a block on the opening line.
	Compact bool `yaml:"compact,omitempty"`

	// Indent indents children by one IndentUnit.
	Indent bool `yaml:"indent,omitempty"`

	// Hang is an explicit child indentation that overrides Indent.
	Hang string `yaml:"hang,omitempty"`

	// Leaf is the template for nodes without children, e.g. "{text}".
	Leaf string `yaml:"leaf,omitempty"`

	// Defaults supplies placeholder values for unset properties.
	Defaults map[string]string `yaml:"defaults,omitempty"`
}

// Builtin returns the embedded table with the given name.
func Builtin(name string) (*Rules, error) {
	data, err := builtinFS.ReadFile("rules/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("no builtin rules for %q", name)
	}
	return Parse(data)
}

// BuiltinNames lists the embedded tables.
func BuiltinNames() []string {
	entries, err := builtinFS.ReadDir("rules")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		names = append(names, name[:len(name)-len(".yaml")])
	}
	sort.Strings(names)
	return names
}

// ForLanguage returns the builtin table for lang, or the generic table.
func ForLanguage(lang string) *Rules {
	if rules, err := Builtin(lang); err == nil {
		return rules
	}
	return Generic()
}

// Generic returns an empty, non-strict table: leaves print their text
// and children are joined by a space.
func Generic() *Rules {
	return &Rules{Name: "generic", IndentUnit: DefaultIndentUnit, Kinds: map[string]Rule{}}
}

// Parse decodes a YAML rule table.
func Parse(data []byte) (*Rules, error) {
	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	if rules.IndentUnit == "" {
		rules.IndentUnit = DefaultIndentUnit
	}
	if rules.Kinds == nil {
		rules.Kinds = map[string]Rule{}
	}
	return &rules, nil
}

// Load reads a YAML rule table from a file.
func Load(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules %s: %w", path, err)
	}
	return Parse(data)
}

// Merge returns a copy of r with the kinds of override added or
// replaced. Non-empty scalar fields of override win.
func (r *Rules) Merge(override *Rules) *Rules {
	out := &Rules{
		Name:       r.Name,
		IndentUnit: r.IndentUnit,
		Strict:     r.Strict,
		Kinds:      maps.Clone(r.Kinds),
	}
	if out.Kinds == nil {
		out.Kinds = map[string]Rule{}
	}
	if override == nil {
		return out
	}
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.IndentUnit != "" {
		out.IndentUnit = override.IndentUnit
	}
	out.Strict = out.Strict || override.Strict
	maps.Copy(out.Kinds, override.Kinds)
	return out
}
