package views

import (
	"fmt"
	"sort"
	"strings"

	"repolens/internal/classify"
	"repolens/internal/config"
	"repolens/internal/logging"
	"repolens/internal/model"
)

const labelSeparator = "─────────────────"

// Builder assembles graph views from classification output and index
// snapshots.
type Builder struct {
	cfg        config.ViewsConfig
	theme      Theme
	classifier *classify.Classifier
	logger     *logging.Logger
}

func NewBuilder(cfg config.ViewsConfig, theme Theme, classifier *classify.Classifier, logger *logging.Logger) *Builder {
	return &Builder{
		cfg:        cfg,
		theme:      theme,
		classifier: classifier,
		logger:     logger,
	}
}

// ClassView builds the UML-style class graph: one node per retained class,
// relationship edges styled per kind. Edges referencing classes not present
// in the index are dropped here; association edges are capped to keep the
// diagram readable.
func (b *Builder) ClassView(classes map[string]classify.Class, edges []classify.Edge) *Graph {
	g := &Graph{
		Name:     "class_view",
		Title:    "Class Diagram",
		RankDir:  "TB",
		Splines:  "ortho",
		BGColor:  b.theme.Background,
		FontName: "Arial",
	}

	names := make([]string, 0, len(classes))
	for name := range classes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cls := classes[name]
		g.Nodes = append(g.Nodes, Node{
			ID:    cls.Qualified,
			Label: b.classLabel(cls.Summary),
			Style: b.classNodeStyle(cls.Summary),
		})
	}

	associations := 0
	for _, edge := range edges {
		if _, ok := classes[edge.Source]; !ok {
			continue
		}
		if _, ok := classes[edge.Target]; !ok {
			continue
		}
		if edge.Kind == classify.Association {
			if associations >= b.cfg.MaxAssociationEdges {
				continue
			}
			associations++
		}
		g.Edges = append(g.Edges, Edge{
			From:  edge.Source,
			To:    edge.Target,
			Style: b.relationshipStyle(edge.Kind),
		})
	}
	return g
}

func (b *Builder) relationshipStyle(kind classify.Kind) EdgeStyle {
	switch kind {
	case classify.Inheritance:
		return EdgeStyle{ArrowHead: "onormal", Style: "solid", Color: b.theme.InheritanceEdge, PenWidth: 1.5}
	case classify.Composition:
		return EdgeStyle{ArrowHead: "diamond", Style: "solid", Color: b.theme.CompositionEdge, PenWidth: 1.5}
	case classify.Aggregation:
		return EdgeStyle{ArrowHead: "odiamond", Style: "solid", Color: b.theme.AggregationEdge, PenWidth: 1.5}
	default:
		return EdgeStyle{ArrowHead: "vee", Style: "dashed", Color: b.theme.AssociationEdge, PenWidth: 1.2}
	}
}

func (b *Builder) classNodeStyle(cls model.ClassSummary) NodeStyle {
	fill, border := b.theme.ClassFill, b.theme.ClassBorder
	if cls.IsInterface {
		fill, border = b.theme.InterfaceFill, b.theme.InterfaceBorder
	} else if cls.IsAbstract {
		fill, border = b.theme.AbstractFill, b.theme.AbstractBorder
	}
	return NodeStyle{
		Shape:     "record",
		Style:     "filled",
		FillColor: fill,
		Color:     border,
		FontName:  "Arial",
		FontSize:  10,
		PenWidth:  1.5,
	}
}

// classLabel formats a class in compact UML style: stereotype, visible
// attributes and methods with visibility symbols, a "..." marker when
// members are truncated.
func (b *Builder) classLabel(cls model.ClassSummary) string {
	var lines []string
	switch {
	case cls.IsInterface:
		lines = append(lines, "<<interface>>\\n"+cls.Name)
	case cls.IsAbstract:
		lines = append(lines, "<<abstract>>\\n"+cls.Name)
	default:
		lines = append(lines, cls.Name)
	}

	lines = append(lines, labelSeparator)
	for i, attr := range cls.Attributes {
		if i >= b.cfg.MaxAttributes {
			lines = append(lines, "...")
			break
		}
		lines = append(lines, fmt.Sprintf("%s %s: %s", attr.Visibility.Symbol(), attr.Name, attr.DeclaredType))
	}

	lines = append(lines, labelSeparator)
	for i, method := range cls.Methods {
		if i >= b.cfg.MaxMethods {
			lines = append(lines, "...")
			break
		}
		params := "()"
		if n := len(method.ParameterTypes); n > 0 {
			params = fmt.Sprintf("(%d params)", n)
		}
		ret := method.ReturnType
		if ret == "" {
			ret = "void"
		}
		lines = append(lines, fmt.Sprintf("%s %s%s: %s", method.Visibility.Symbol(), method.Name, params, ret))
	}

	return strings.Join(lines, "\\l") + "\\l"
}
