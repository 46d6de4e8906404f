// Package tsast locates interface declarations in TypeScript sources using
// the tree-sitter TypeScript grammar.
//
// Only the structure the fixers need is extracted: each interface's name, its
// body braces and its member names. Nested object types, comments and strings
// containing braces are handled by the grammar, so the closing brace found is
// always the one that ends the interface.
package tsast

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Member is one property or method signature of an interface.
type Member struct {
	Name     string
	Optional bool
	Start    uint32
	End      uint32
	Indent   string
}

// Interface is an interface declaration and the byte offsets of its body.
type Interface struct {
	Name     string
	Exported bool
	Start    uint32 // first byte of the declaration (including `export`)
	End      uint32
	Open     uint32 // offset of `{`
	Close    uint32 // offset of `}`; valid only when Complete
	Complete bool
	Members  []Member
}

// HasMember reports whether the interface declares name.
func (i *Interface) HasMember(name string) bool {
	for _, m := range i.Members {
		if m.Name == name {
			return true
		}
	}
	return false
}

// MemberIndent returns the indentation of the first member, or def when the
// body has no members on their own line.
func (i *Interface) MemberIndent(def string) string {
	for _, m := range i.Members {
		if m.Indent != "" {
			return m.Indent
		}
	}
	return def
}

// File is the parse result of one source file.
type File struct {
	Path       string
	Interfaces []Interface
	HasErrors  bool
}

// Lookup returns the first exported interface called name.
func (f *File) Lookup(name string) (*Interface, bool) {
	for i := range f.Interfaces {
		if f.Interfaces[i].Name == name && f.Interfaces[i].Exported {
			return &f.Interfaces[i], true
		}
	}
	return nil, false
}

// Parse parses content as TypeScript (TSX for .tsx paths) and collects every
// interface declaration, including those nested in namespaces and
// `declare module` blocks.
func Parse(ctx context.Context, path string, content []byte) (*File, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	if strings.HasSuffix(path, ".tsx") {
		parser.SetLanguage(tsx.GetLanguage())
	} else {
		parser.SetLanguage(typescript.GetLanguage())
	}

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("parse %s: empty syntax tree", path)
	}

	f := &File{Path: path, HasErrors: root.HasError()}
	collect(root, content, f)
	return f, nil
}

func collect(node *sitter.Node, content []byte, f *File) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if child.Type() == "interface_declaration" {
			if iface, ok := interfaceFrom(child, content); ok {
				f.Interfaces = append(f.Interfaces, iface)
			}
			continue
		}
		collect(child, content, f)
	}
}

func interfaceFrom(node *sitter.Node, content []byte) (Interface, bool) {
	iface := Interface{
		Start: node.StartByte(),
		End:   node.EndByte(),
	}
	if parent := node.Parent(); parent != nil && parent.Type() == "export_statement" {
		iface.Exported = true
		iface.Start = parent.StartByte()
	}

	var body *sitter.Node
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "type_identifier":
			if iface.Name == "" {
				iface.Name = child.Content(content)
			}
		case "interface_body", "object_type":
			body = child
		}
	}
	if iface.Name == "" || body == nil {
		return Interface{}, false
	}

	iface.Open = body.StartByte()
	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(i)
		switch child.Type() {
		case "}":
			if !child.IsMissing() {
				iface.Close = child.StartByte()
				iface.Complete = true
			}
		case "property_signature", "method_signature":
			if m, ok := memberFrom(child, content); ok {
				iface.Members = append(iface.Members, m)
			}
		}
	}
	return iface, true
}

func memberFrom(node *sitter.Node, content []byte) (Member, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return Member{}, false
	}
	name := strings.Trim(nameNode.Content(content), `'"`)
	m := Member{
		Name:   name,
		Start:  node.StartByte(),
		End:    node.EndByte(),
		Indent: lineIndent(content, node.StartByte()),
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if node.Child(i).Type() == "?" {
			m.Optional = true
		}
	}
	return m, true
}

// lineIndent returns the whitespace between the start of the line and off,
// or "" when anything else precedes off on that line.
func lineIndent(content []byte, off uint32) string {
	start := int(off)
	for start > 0 && content[start-1] != '\n' {
		start--
	}
	prefix := content[start:off]
	for _, b := range prefix {
		if b != ' ' && b != '\t' {
			return ""
		}
	}
	return string(prefix)
}
