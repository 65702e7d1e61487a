//go:build cgo

package extract

import (
	"context"
	"fmt"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	lenserr "repolens/internal/errors"
	"repolens/internal/model"
)

// JavaExtractor extracts structural facts from Java sources using
// tree-sitter. Each Extract call builds its own parser, so a single instance
// is safe to share across workers.
type JavaExtractor struct{}

// NewJavaExtractor creates a Java extractor.
func NewJavaExtractor() *JavaExtractor {
	return &JavaExtractor{}
}

// Extract reads and parses one Java file.
func (e *JavaExtractor) Extract(ctx context.Context, path string) (*model.SourceFileRecord, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, lenserr.NewPath(lenserr.ExtractionFailed, path, "read file", err)
	}
	rec, err := e.ExtractSource(ctx, path, source)
	if err != nil {
		return nil, lenserr.NewPath(lenserr.ExtractionFailed, path, "parse file", err)
	}
	return rec, nil
}

// ExtractSource parses source bytes into a record.
func (e *JavaExtractor) ExtractSource(ctx context.Context, path string, source []byte) (*model.SourceFileRecord, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(java.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	root := tree.RootNode()

	rec := &model.SourceFileRecord{
		Path:    path,
		Package: packageName(root, source),
	}
	rec.Dependencies = imports(root, source)

	seq := 0
	for _, decl := range findNodes(root, classNodeTypes) {
		cls := e.extractClass(decl, source)
		if cls == nil {
			continue
		}
		rec.Calls = append(rec.Calls, callEdges(decl, source, cls.Name, &seq)...)
		rec.Classes = append(rec.Classes, *cls)
	}

	return rec, nil
}

var classNodeTypes = []string{"class_declaration", "interface_declaration", "enum_declaration"}

// packageName returns the declared package, or "" for the default package.
func packageName(root *sitter.Node, source []byte) string {
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if child == nil || child.Type() != "package_declaration" {
			continue
		}
		for j := 0; j < int(child.NamedChildCount()); j++ {
			name := child.NamedChild(j)
			if name != nil && (name.Type() == "scoped_identifier" || name.Type() == "identifier") {
				return text(name, source)
			}
		}
	}
	return ""
}

// imports collects import paths, skipping the java standard library the same
// way the rest of the pipeline treats it: as a foreign collaborator with no
// structural information.
func imports(root *sitter.Node, source []byte) []string {
	var deps []string
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if child == nil || child.Type() != "import_declaration" {
			continue
		}
		for j := 0; j < int(child.NamedChildCount()); j++ {
			name := child.NamedChild(j)
			if name == nil {
				continue
			}
			if name.Type() == "scoped_identifier" || name.Type() == "identifier" {
				imp := text(name, source)
				if strings.HasPrefix(imp, "java.") {
					break
				}
				deps = append(deps, imp)
				break
			}
		}
	}
	return deps
}

func (e *JavaExtractor) extractClass(decl *sitter.Node, source []byte) *model.ClassSummary {
	nameNode := decl.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}

	cls := &model.ClassSummary{
		Name:        text(nameNode, source),
		IsInterface: decl.Type() == "interface_declaration",
	}

	mods := modifierSet(decl, source)
	cls.IsAbstract = mods["abstract"]

	if sup := decl.ChildByFieldName("superclass"); sup != nil {
		// superclass node wraps "extends <type>"
		if t := lastNamedChild(sup); t != nil {
			cls.Parent = text(t, source)
		}
	}
	cls.Interfaces = implementedInterfaces(decl, source)

	body := decl.ChildByFieldName("body")
	if body == nil {
		return cls
	}

	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		if member == nil {
			continue
		}
		switch member.Type() {
		case "field_declaration":
			cls.Attributes = append(cls.Attributes, fields(member, source)...)
		case "method_declaration":
			if m := method(member, source); m != nil {
				cls.Methods = append(cls.Methods, *m)
			}
		}
	}

	return cls
}

// implementedInterfaces reads "implements" lists on classes and "extends"
// lists on interfaces; both yield inheritance edges downstream.
func implementedInterfaces(decl *sitter.Node, source []byte) []string {
	var names []string
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		child := decl.NamedChild(i)
		if child == nil {
			continue
		}
		if child.Type() != "super_interfaces" && child.Type() != "extends_interfaces" {
			continue
		}
		for j := 0; j < int(child.NamedChildCount()); j++ {
			list := child.NamedChild(j)
			if list == nil || list.Type() != "type_list" {
				continue
			}
			for k := 0; k < int(list.NamedChildCount()); k++ {
				if t := list.NamedChild(k); t != nil {
					names = append(names, text(t, source))
				}
			}
		}
	}
	return names
}

// fields expands one field_declaration into AttributeInfos (a declaration may
// carry several declarators sharing a type).
func fields(member *sitter.Node, source []byte) []model.AttributeInfo {
	typeNode := member.ChildByFieldName("type")
	if typeNode == nil {
		return nil
	}
	declaredType := text(typeNode, source)
	mods := modifierSet(member, source)

	var attrs []model.AttributeInfo
	for i := 0; i < int(member.NamedChildCount()); i++ {
		child := member.NamedChild(i)
		if child == nil || child.Type() != "variable_declarator" {
			continue
		}
		nameNode := child.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		attr := model.AttributeInfo{
			Name:         text(nameNode, source),
			DeclaredType: declaredType,
			Visibility:   visibility(mods),
			IsFinal:      mods["final"],
		}
		if elem, ok := model.CollectionElementType(declaredType); ok {
			attr.IsCollection = true
			attr.ElementType = elem
		}
		attrs = append(attrs, attr)
	}
	return attrs
}

func method(member *sitter.Node, source []byte) *model.MethodInfo {
	nameNode := member.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}

	m := &model.MethodInfo{
		Name:       text(nameNode, source),
		Visibility: visibility(modifierSet(member, source)),
		ReturnType: "void",
	}
	if ret := member.ChildByFieldName("type"); ret != nil {
		m.ReturnType = text(ret, source)
	}
	if params := member.ChildByFieldName("parameters"); params != nil {
		for i := 0; i < int(params.NamedChildCount()); i++ {
			p := params.NamedChild(i)
			if p == nil {
				continue
			}
			if p.Type() != "formal_parameter" && p.Type() != "spread_parameter" {
				continue
			}
			if t := p.ChildByFieldName("type"); t != nil {
				m.ParameterTypes = append(m.ParameterTypes, text(t, source))
			}
		}
	}
	return m
}

// callEdges walks the methods of one class declaration and records every
// method invocation in source order. seq is the per-file sequence counter.
func callEdges(decl *sitter.Node, source []byte, className string, seq *int) []model.CallEdge {
	body := decl.ChildByFieldName("body")
	if body == nil {
		return nil
	}

	var edges []model.CallEdge
	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		if member == nil || member.Type() != "method_declaration" {
			continue
		}
		nameNode := member.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		callerMethod := text(nameNode, source)

		for _, call := range findNodes(member, []string{"method_invocation"}) {
			calleeName := call.ChildByFieldName("name")
			if calleeName == nil {
				continue
			}
			calleeClass := className
			if obj := call.ChildByFieldName("object"); obj != nil {
				switch obj.Type() {
				case "identifier", "field_access":
					calleeClass = text(obj, source)
				}
			}
			*seq++
			edges = append(edges, model.CallEdge{
				CallerClass:  className,
				CallerMethod: callerMethod,
				CalleeClass:  calleeClass,
				CalleeMethod: text(calleeName, source),
				Sequence:     *seq,
			})
		}
	}
	return edges
}

// modifierSet collects modifier keywords ("public", "final", "abstract", ...)
// declared on a node.
func modifierSet(node *sitter.Node, source []byte) map[string]bool {
	mods := make(map[string]bool)
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child == nil || child.Type() != "modifiers" {
			continue
		}
		for j := 0; j < int(child.ChildCount()); j++ {
			if m := child.Child(j); m != nil {
				mods[m.Type()] = true
			}
		}
	}
	return mods
}

func visibility(mods map[string]bool) model.Visibility {
	switch {
	case mods["private"]:
		return model.VisibilityPrivate
	case mods["protected"]:
		return model.VisibilityProtected
	case mods["public"]:
		return model.VisibilityPublic
	default:
		return model.VisibilityPackage
	}
}

func lastNamedChild(node *sitter.Node) *sitter.Node {
	n := int(node.NamedChildCount())
	if n == 0 {
		return nil
	}
	return node.NamedChild(n - 1)
}

func text(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}

// findNodes collects all descendants of the given types, in document order.
func findNodes(root *sitter.Node, types []string) []*sitter.Node {
	if len(types) == 0 {
		return nil
	}

	var result []*sitter.Node
	var walk func(*sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil {
			return
		}
		for _, t := range types {
			if node.Type() == t {
				result = append(result, node)
				break
			}
		}
		for i := 0; i < int(node.ChildCount()); i++ {
			walk(node.Child(i))
		}
	}
	walk(root)
	return result
}
