package classify

import (
	"sort"
	"strings"

	"repolens/internal/config"
	lenserr "repolens/internal/errors"
	"repolens/internal/index"
	"repolens/internal/logging"
	"repolens/internal/model"
)

// Kind is the relationship type between two classes.
type Kind string

const (
	Inheritance Kind = "inheritance"
	Composition Kind = "composition"
	Aggregation Kind = "aggregation"
	Association Kind = "association"
)

// Edge is one typed relationship between two qualified class names.
// Edge sets are deduplicated and recomputed fully on every pass.
type Edge struct {
	Kind   Kind   `json:"kind"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Class is a retained class together with where it was declared.
type Class struct {
	Qualified string
	Package   string
	Path      string
	Summary   model.ClassSummary
}

// Classifier infers relationship edges from an index snapshot.
type Classifier struct {
	excluded []string
	roots    map[string]bool
	logger   *logging.Logger
}

func New(cfg config.ClassifierConfig, logger *logging.Logger) *Classifier {
	roots := make(map[string]bool, len(cfg.RootTypes))
	for _, r := range cfg.RootTypes {
		roots[r] = true
	}
	return &Classifier{
		excluded: cfg.ExcludedPrefixes,
		roots:    roots,
		logger:   logger,
	}
}

// Excluded reports whether a name belongs to a foreign, standard-library or
// test-framework namespace the index has no structural information about.
func (c *Classifier) Excluded(name string) bool {
	for _, prefix := range c.excluded {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// Resolve turns an unqualified type name into pkg.name. Names that already
// carry a separator are kept as-is.
func Resolve(name, pkg string) string {
	if name == "" || strings.Contains(name, ".") || pkg == "" {
		return name
	}
	return model.QualifiedName(pkg, name)
}

// Classes collects the retained classes from a snapshot. Duplicate qualified
// names across files resolve first-wins, with a merge-conflict warning for
// every later occurrence. Snapshot paths are visited in sorted order so the
// winner does not depend on extraction completion order.
func (c *Classifier) Classes(snap index.Snapshot) map[string]Class {
	classes := make(map[string]Class)
	for _, path := range snap.SortedPaths() {
		rec := snap[path]
		for _, cls := range rec.Classes {
			qualified := model.QualifiedName(rec.Package, cls.Name)
			if c.Excluded(qualified) {
				continue
			}
			if prev, exists := classes[qualified]; exists {
				warn := lenserr.NewPath(lenserr.MergeConflict, path, "duplicate class "+qualified, nil)
				c.logger.Warn(warn.Error(), map[string]interface{}{
					"class":    qualified,
					"keptFrom": prev.Path,
					"ignored":  path,
				})
				continue
			}
			classes[qualified] = Class{
				Qualified: qualified,
				Package:   rec.Package,
				Path:      path,
				Summary:   cls,
			}
		}
	}
	return classes
}

// Classify runs a full inference pass over the snapshot and returns the
// deduplicated edge set, sorted for deterministic output, together with the
// retained class table.
func (c *Classifier) Classify(snap index.Snapshot) ([]Edge, map[string]Class) {
	classes := c.Classes(snap)
	seen := make(map[Edge]bool)

	names := make([]string, 0, len(classes))
	for name := range classes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cls := classes[name]
		c.inheritanceEdges(cls, classes, seen)
		for _, attr := range cls.Summary.Attributes {
			if edge, ok := c.attributeEdge(cls, attr); ok {
				seen[edge] = true
			}
		}
	}

	edges := make([]Edge, 0, len(seen))
	for e := range seen {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		a, b := edges[i], edges[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		return a.Target < b.Target
	})
	return edges, classes
}

// inheritanceEdges emits edges for the parent class and each implemented
// interface. Targets must resolve to a retained class; universal root types
// never produce an edge.
func (c *Classifier) inheritanceEdges(cls Class, classes map[string]Class, seen map[Edge]bool) {
	targets := make([]string, 0, 1+len(cls.Summary.Interfaces))
	if cls.Summary.Parent != "" {
		targets = append(targets, cls.Summary.Parent)
	}
	targets = append(targets, cls.Summary.Interfaces...)

	for _, raw := range targets {
		if c.roots[raw] {
			continue
		}
		resolved := Resolve(raw, cls.Package)
		if c.roots[resolved] || c.Excluded(resolved) || resolved == cls.Qualified {
			continue
		}
		if _, known := classes[resolved]; !known {
			continue
		}
		seen[Edge{Kind: Inheritance, Source: cls.Qualified, Target: resolved}] = true
	}
}

// attributeEdge applies the field heuristics: collection element types become
// aggregation, immutable fields composition, everything else association.
// Primitive, boxed and excluded types yield nothing, as do self references.
func (c *Classifier) attributeEdge(cls Class, attr model.AttributeInfo) (Edge, bool) {
	kind := Association
	target := attr.DeclaredType

	if attr.IsCollection && attr.ElementType != "" {
		kind = Aggregation
		target = attr.ElementType
	} else if elem, ok := model.CollectionElementType(attr.DeclaredType); ok {
		kind = Aggregation
		target = elem
	} else if attr.IsFinal {
		kind = Composition
	}

	if target == "" || model.IsPrimitive(target) {
		return Edge{}, false
	}
	if c.Excluded(target) {
		return Edge{}, false
	}
	resolved := Resolve(target, cls.Package)
	if c.Excluded(resolved) || resolved == cls.Qualified {
		return Edge{}, false
	}
	return Edge{Kind: kind, Source: cls.Qualified, Target: resolved}, true
}
