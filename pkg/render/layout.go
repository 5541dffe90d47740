package render

import (
	"fmt"
	"strings"

	"github.com/yaklabco/lexkeep/pkg/lexical"
	"github.com/yaklabco/lexkeep/pkg/syntax"
)

var _ lexical.DefaultPrinter = (*Rules)(nil)

func (r *Rules) rule(kind string) (Rule, error) {
	if rule, ok := r.Kinds[kind]; ok {
		return rule, nil
	}
	if r.Strict {
		return Rule{}, fmt.Errorf("%w: %s", lexical.ErrUnknownKind, kind)
	}
	return Rule{}, nil
}

// Layout implements lexical.DefaultPrinter.
func (r *Rules) Layout(n *syntax.Node, indent string) ([]lexical.Part, error) {
	rule, err := r.rule(n.Kind)
	if err != nil {
		return nil, err
	}

	open := expand(rule.Open, n, rule.Defaults)
	closing := expand(rule.Close, n, rule.Defaults)

	if !n.HasChildren() {
		var text string
		switch {
		case rule.Leaf != "":
			text = expand(rule.Leaf, n, rule.Defaults)
		case rule.Block && (open != "" || closing != ""):
			text = open + "\n" + closing
		case open != "" || closing != "":
			text = open + closing
		default:
			text = n.Prop(syntax.PropText)
		}
		return []lexical.Part{{Text: indentLines(text, indent)}}, nil
	}

	parts := []lexical.Part{{Text: open}}
	sep := r.separator(rule)

	if rule.Block {
		childIndent := indent + r.childIndent(rule)
		for child := n.FirstChild; child != nil; child = child.Next {
			switch {
			case child != n.FirstChild:
				parts = append(parts, lexical.Part{Text: sep + childIndent})
			case open != "" && !rule.Compact:
				parts = append(parts, lexical.Part{Text: "\n" + childIndent})
			}
			parts = append(parts, lexical.Part{Child: child, Indent: childIndent})
		}
		if closing != "" {
			parts = append(parts, lexical.Part{Text: "\n" + indent + closing})
		}
		return parts, nil
	}

	for child := n.FirstChild; child != nil; child = child.Next {
		before, ok := rule.Before[child.Kind]
		switch {
		case child == n.FirstChild && ok:
			parts = append(parts, lexical.Part{Text: strings.TrimLeft(before, " \t")})
		case child == n.FirstChild:
		case ok:
			parts = append(parts, lexical.Part{Text: before})
		default:
			parts = append(parts, lexical.Part{Text: sep})
		}
		parts = append(parts, lexical.Part{Child: child, Indent: indent})
	}
	parts = append(parts, lexical.Part{Text: closing})

	return parts, nil
}

// Separator implements lexical.DefaultPrinter.
func (r *Rules) Separator(parent *syntax.Node) string {
	rule, err := r.rule(parent.Kind)
	if err != nil {
		return " "
	}
	return r.separator(rule)
}

// ChildIndent implements lexical.DefaultPrinter.
func (r *Rules) ChildIndent(n *syntax.Node) string {
	rule, err := r.rule(n.Kind)
	if err != nil {
		return ""
	}
	return r.childIndent(rule)
}

func (r *Rules) separator(rule Rule) string {
	switch {
	case rule.Separator != "":
		return rule.Separator
	case rule.Block:
		return "\n"
	default:
		return " "
	}
}

func (r *Rules) childIndent(rule Rule) string {
	switch {
	case rule.Hang != "":
		return rule.Hang
	case rule.Indent:
		return r.IndentUnit
	default:
		return ""
	}
}

// Render lays out n and its whole subtree canonically.
func (r *Rules) Render(n *syntax.Node) (string, error) {
	var b strings.Builder
	if err := r.render(&b, n, ""); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (r *Rules) render(b *strings.Builder, n *syntax.Node, indent string) error {
	parts, err := r.Layout(n, indent)
	if err != nil {
		return err
	}
	for _, part := range parts {
		if part.Child == nil {
			b.WriteString(part.Text)
			continue
		}
		if err := r.render(b, part.Child, part.Indent); err != nil {
			return err
		}
	}
	return nil
}

// expand replaces {name} placeholders with node properties or defaults.
// Braces that do not enclose a name are kept.
func expand(tmpl string, n *syntax.Node, defaults map[string]string) string {
	if !strings.Contains(tmpl, "{") {
		return tmpl
	}

	var b strings.Builder
	for i := 0; i < len(tmpl); i++ {
		if tmpl[i] == '{' {
			if end := strings.IndexByte(tmpl[i+1:], '}'); end > 0 && isName(tmpl[i+1:i+1+end]) {
				name := tmpl[i+1 : i+1+end]
				value, ok := n.Props[name]
				if !ok {
					value = defaults[name]
				}
				b.WriteString(value)
				i += end + 1
				continue
			}
		}
		b.WriteByte(tmpl[i])
	}
	return b.String()
}

func isName(s string) bool {
	for _, c := range s {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') && (c < '0' || c > '9') && c != '_' {
			return false
		}
	}
	return s != ""
}

// indentLines prefixes every non-empty line after the first with indent.
func indentLines(text, indent string) string {
	if indent == "" || !strings.Contains(text, "\n") {
		return text
	}
	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = indent + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
