// Package script applies YAML edit scripts to a syntax tree through a
// lexical session, so that every edit keeps the untouched source text.
//
// A script is a mapping with a list of edits:
//
//	edits:
//	  - op: insert
//	    target: class_body
//	    index: 0
//	    node:
//	      kind: field_declaration
//	      children:
//	        - {kind: modifiers, text: private}
//	        - {kind: type_identifier, text: String}
//	        - kind: variable_declarator
//	          children: [{kind: identifier, text: name}]
//	  - op: set
//	    target: class_declaration/identifier
//	    prop: text
//	    value: Bar
package script

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/lexkeep/pkg/lexical"
	"github.com/yaklabco/lexkeep/pkg/syntax"
)

// Operation names.
const (
	OpInsert  = "insert"
	OpRemove  = "remove"
	OpReplace = "replace"
	OpSet     = "set"
	OpMove    = "move"
)

// Sentinel errors.
var (
	ErrUnknownOp   = errors.New("unknown operation")
	ErrMissingNode = errors.New("edit requires a node")
	ErrMissingProp = errors.New("edit requires a prop")
	ErrNoParent    = errors.New("target has no parent")
)

// Script is an ordered list of edits.
type Script struct {
	Edits []Edit `yaml:"edits"`
}

// Edit is a single tree mutation.
type Edit struct {
	// Op is one of insert, remove, replace, set or move.
	Op string `yaml:"op"`

	// Target selects the node the edit applies to. For insert it is the
	// parent; for the other operations it is the node itself.
	Target string `yaml:"target"`

	// Index is the insertion position for insert and move. Nil appends.
	Index *int `yaml:"index,omitempty"`

	// Node describes the node to insert or the replacement.
	Node *NodeSpec `yaml:"node,omitempty"`

	// Prop and Value are used by set.
	Prop  string `yaml:"prop,omitempty"`
	Value string `yaml:"value,omitempty"`

	// To selects the new parent for move.
	To string `yaml:"to,omitempty"`
}

// NodeSpec describes a detached subtree to create.
type NodeSpec struct {
	Kind     string            `yaml:"kind"`
	Text     string            `yaml:"text,omitempty"`
	Props    map[string]string `yaml:"props,omitempty"`
	Children []NodeSpec        `yaml:"children,omitempty"`
}

// Parse decodes a script. Both a bare list of edits and a mapping with
// an "edits" key are accepted. Unknown fields are rejected.
func Parse(data []byte) (*Script, error) {
	var probe yaml.Node
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}

	script := &Script{}
	if len(probe.Content) == 0 {
		return script, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var err error
	if probe.Content[0].Kind == yaml.SequenceNode {
		err = dec.Decode(&script.Edits)
	} else {
		err = dec.Decode(script)
	}
	if err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}

	for i, edit := range script.Edits {
		if err := edit.validate(); err != nil {
			return nil, fmt.Errorf("edit %d: %w", i+1, err)
		}
	}
	return script, nil
}

// Load reads and parses a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	script, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return script, nil
}

// Apply runs every edit in order against the session's tree. It stops at
// the first failing edit.
func (s *Script) Apply(sess *lexical.Session) error {
	for i, edit := range s.Edits {
		if err := edit.Apply(sess); err != nil {
			return fmt.Errorf("edit %d (%s %s): %w", i+1, edit.Op, edit.Target, err)
		}
	}
	return nil
}

// Apply runs a single edit.
func (e Edit) Apply(sess *lexical.Session) error {
	if err := e.validate(); err != nil {
		return err
	}

	root := sess.Tree().Root
	target, err := Select(root, e.Target)
	if err != nil {
		return err
	}

	switch e.Op {
	case OpInsert:
		child, err := e.Node.Build()
		if err != nil {
			return err
		}
		_, err = sess.Insert(target, e.position(target), child)
		return err

	case OpRemove:
		if target.Parent == nil {
			return ErrNoParent
		}
		_, err = sess.Remove(target.Parent, target)
		return err

	case OpReplace:
		if target.Parent == nil {
			return ErrNoParent
		}
		child, err := e.Node.Build()
		if err != nil {
			return err
		}
		_, err = sess.Replace(target.Parent, target, child)
		return err

	case OpSet:
		_, err = sess.Set(target, e.Prop, e.Value)
		return err

	case OpMove:
		if target.Parent == nil {
			return ErrNoParent
		}
		dest, err := Select(root, e.To)
		if err != nil {
			return err
		}
		if _, err := sess.Remove(target.Parent, target); err != nil {
			return err
		}
		_, err = sess.Insert(dest, e.position(dest), target)
		return err
	}
	return fmt.Errorf("%w: %q", ErrUnknownOp, e.Op)
}

// position resolves Index against parent. A nil or negative index appends.
func (e Edit) position(parent *syntax.Node) int {
	n := parent.ChildCount()
	if e.Index == nil || *e.Index < 0 || *e.Index > n {
		return n
	}
	return *e.Index
}

func (e Edit) validate() error {
	switch e.Op {
	case OpInsert, OpReplace:
		if e.Node == nil {
			return fmt.Errorf("%s: %w", e.Op, ErrMissingNode)
		}
	case OpSet:
		if e.Prop == "" {
			return fmt.Errorf("%s: %w", e.Op, ErrMissingProp)
		}
	case OpRemove, OpMove:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, e.Op)
	}
	return nil
}

// Build creates the detached subtree described by spec.
func (spec *NodeSpec) Build() (*syntax.Node, error) {
	if spec == nil || spec.Kind == "" {
		return nil, fmt.Errorf("%w: kind is empty", ErrMissingNode)
	}

	node := syntax.NewNode(spec.Kind)
	if len(spec.Props) > 0 || spec.Text != "" {
		node.Props = make(map[string]string, len(spec.Props)+1)
		for k, v := range spec.Props {
			node.Props[k] = v
		}
		if spec.Text != "" {
			node.Props[syntax.PropText] = spec.Text
		}
	}

	for i := range spec.Children {
		child, err := spec.Children[i].Build()
		if err != nil {
			return nil, err
		}
		if err := syntax.AppendChild(node, child); err != nil {
			return nil, err
		}
	}
	return node, nil
}
