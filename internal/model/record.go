// Package model defines the structural facts accumulated per source file.
//
// A SourceFileRecord is the unit the index store keys by path; all downstream
// passes (relationship classification, view assembly) consume these value
// types and nothing else from the parsed source.
package model

import "strings"

// Visibility is the declared access level of a member.
type Visibility string

const (
	// VisibilityPublic for public members
	VisibilityPublic Visibility = "public"
	// VisibilityPrivate for private members
	VisibilityPrivate Visibility = "private"
	// VisibilityProtected for protected members
	VisibilityProtected Visibility = "protected"
	// VisibilityPackage for package-private members (no modifier)
	VisibilityPackage Visibility = "package"
)

// Symbol returns the UML visibility marker for class labels.
func (v Visibility) Symbol() string {
	switch v {
	case VisibilityPrivate:
		return "-"
	case VisibilityProtected:
		return "#"
	case VisibilityPublic:
		return "+"
	default:
		return "~"
	}
}

// AttributeInfo describes a declared field of a class.
type AttributeInfo struct {
	Name         string     `json:"name"`
	DeclaredType string     `json:"declaredType"`
	Visibility   Visibility `json:"visibility"`
	IsFinal      bool       `json:"isFinal"`
	IsCollection bool       `json:"isCollection"`
	// ElementType is the collection element type (for maps, the value type).
	// Empty unless IsCollection is set.
	ElementType string `json:"elementType,omitempty"`
}

// MethodInfo describes a declared method of a class.
type MethodInfo struct {
	Name           string     `json:"name"`
	Visibility     Visibility `json:"visibility"`
	ReturnType     string     `json:"returnType"`
	ParameterTypes []string   `json:"parameterTypes,omitempty"`
}

// CallEdge is one observed method invocation. Sequence is unique per file and
// follows call-site insertion order.
type CallEdge struct {
	CallerClass  string `json:"callerClass"`
	CallerMethod string `json:"callerMethod"`
	CalleeClass  string `json:"calleeClass"`
	CalleeMethod string `json:"calleeMethod"`
	Sequence     int    `json:"sequence"`
}

// ClassSummary describes one class-like entity declared in a file.
type ClassSummary struct {
	Name        string          `json:"name"`
	Parent      string          `json:"parent,omitempty"`
	Interfaces  []string        `json:"interfaces,omitempty"`
	Attributes  []AttributeInfo `json:"attributes,omitempty"`
	Methods     []MethodInfo    `json:"methods,omitempty"`
	IsAbstract  bool            `json:"isAbstract,omitempty"`
	IsInterface bool            `json:"isInterface,omitempty"`
}

// SourceFileRecord holds every structural fact extracted from a single file.
// Records are replaced wholesale on re-extraction of the same path, never
// merged additively, so re-indexing an unchanged file is idempotent.
type SourceFileRecord struct {
	Path         string         `json:"path"`
	Package      string         `json:"package"`
	Classes      []ClassSummary `json:"classes,omitempty"`
	Dependencies []string       `json:"dependencies,omitempty"`
	Calls        []CallEdge     `json:"calls,omitempty"`
}

// QualifiedName joins a package and a simple name, or returns the simple name
// when the package is empty.
func QualifiedName(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

// SimpleName returns the final segment of a possibly qualified name.
func SimpleName(qualified string) string {
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}

// PackageOf returns the package portion of a qualified name, or "" for a
// bare simple name.
func PackageOf(qualified string) string {
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		return qualified[:i]
	}
	return ""
}

// Clone returns a deep copy of the record. Snapshots hand out clones so that
// downstream passes can never observe later store mutation.
func (r *SourceFileRecord) Clone() *SourceFileRecord {
	if r == nil {
		return nil
	}
	out := &SourceFileRecord{
		Path:    r.Path,
		Package: r.Package,
	}
	if r.Classes != nil {
		out.Classes = make([]ClassSummary, len(r.Classes))
		for i, c := range r.Classes {
			out.Classes[i] = c.clone()
		}
	}
	if r.Dependencies != nil {
		out.Dependencies = append([]string(nil), r.Dependencies...)
	}
	if r.Calls != nil {
		out.Calls = append([]CallEdge(nil), r.Calls...)
	}
	return out
}

func (c ClassSummary) clone() ClassSummary {
	out := c
	if c.Interfaces != nil {
		out.Interfaces = append([]string(nil), c.Interfaces...)
	}
	if c.Attributes != nil {
		out.Attributes = append([]AttributeInfo(nil), c.Attributes...)
	}
	if c.Methods != nil {
		out.Methods = make([]MethodInfo, len(c.Methods))
		for i, m := range c.Methods {
			out.Methods[i] = m
			if m.ParameterTypes != nil {
				out.Methods[i].ParameterTypes = append([]string(nil), m.ParameterTypes...)
			}
		}
	}
	return out
}
