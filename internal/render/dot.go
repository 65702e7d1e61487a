package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lenserr "repolens/internal/errors"
	"repolens/internal/views"
)

// DOT writes graphs in Graphviz DOT format, ready for dot/neato layout.
type DOT struct{}

func NewDOT() *DOT {
	return &DOT{}
}

// Render writes the graph to outputPath, creating parent directories as
// needed.
func (d *DOT) Render(g *views.Graph, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return lenserr.NewPath(lenserr.RenderFailed, outputPath, "create output directory", err)
	}

	var sb strings.Builder
	d.writeGraph(&sb, g)

	if err := os.WriteFile(outputPath, []byte(sb.String()), 0o644); err != nil {
		return lenserr.NewPath(lenserr.RenderFailed, outputPath, "write dot file", err)
	}
	return nil
}

func (d *DOT) writeGraph(sb *strings.Builder, g *views.Graph) {
	fmt.Fprintf(sb, "digraph %s {\n", quote(g.Name))
	if g.Title != "" {
		fmt.Fprintf(sb, "  label=%s;\n  labelloc=\"t\";\n  fontsize=24;\n", quote(g.Title))
	}
	if g.BGColor != "" {
		fmt.Fprintf(sb, "  bgcolor=%s;\n", quote(g.BGColor))
	}
	if g.RankDir != "" {
		fmt.Fprintf(sb, "  rankdir=%s;\n", quote(g.RankDir))
	}
	if g.Splines != "" {
		fmt.Fprintf(sb, "  splines=%s;\n", quote(g.Splines))
	}
	if g.FontName != "" {
		fmt.Fprintf(sb, "  fontname=%s;\n", quote(g.FontName))
	}

	for _, cluster := range g.Clusters {
		fmt.Fprintf(sb, "  subgraph %s {\n", quote(cluster.ID))
		fmt.Fprintf(sb, "    label=%s;\n", quote(cluster.Label))
		if cluster.FillColor != "" {
			fmt.Fprintf(sb, "    style=\"filled\";\n    fillcolor=%s;\n", quote(cluster.FillColor))
		}
		for _, node := range cluster.Nodes {
			sb.WriteString("    ")
			d.writeNode(sb, node)
		}
		sb.WriteString("  }\n")
	}

	for _, node := range g.Nodes {
		sb.WriteString("  ")
		d.writeNode(sb, node)
	}
	for _, edge := range g.Edges {
		sb.WriteString("  ")
		d.writeEdge(sb, edge)
	}
	sb.WriteString("}\n")
}

func (d *DOT) writeNode(sb *strings.Builder, n views.Node) {
	attrs := []string{"label=" + quote(n.Label)}
	if n.Style.Shape != "" {
		attrs = append(attrs, "shape="+quote(n.Style.Shape))
	}
	if n.Style.Style != "" {
		attrs = append(attrs, "style="+quote(n.Style.Style))
	}
	if n.Style.FillColor != "" {
		attrs = append(attrs, "fillcolor="+quote(n.Style.FillColor))
	}
	if n.Style.Color != "" {
		attrs = append(attrs, "color="+quote(n.Style.Color))
	}
	if n.Style.FontName != "" {
		attrs = append(attrs, "fontname="+quote(n.Style.FontName))
	}
	if n.Style.FontSize > 0 {
		attrs = append(attrs, fmt.Sprintf("fontsize=%d", n.Style.FontSize))
	}
	if n.Style.PenWidth > 0 {
		attrs = append(attrs, fmt.Sprintf("penwidth=%.1f", n.Style.PenWidth))
	}
	fmt.Fprintf(sb, "%s [%s];\n", quote(n.ID), strings.Join(attrs, ", "))
}

func (d *DOT) writeEdge(sb *strings.Builder, e views.Edge) {
	var attrs []string
	if e.Label != "" {
		attrs = append(attrs, "label="+quote(e.Label))
	}
	if e.Style.ArrowHead != "" {
		attrs = append(attrs, "arrowhead="+quote(e.Style.ArrowHead))
	}
	if e.Style.Style != "" {
		attrs = append(attrs, "style="+quote(e.Style.Style))
	}
	if e.Style.Color != "" {
		attrs = append(attrs, "color="+quote(e.Style.Color))
	}
	if e.Style.FontColor != "" {
		attrs = append(attrs, "fontcolor="+quote(e.Style.FontColor))
	}
	if e.Style.PenWidth > 0 {
		attrs = append(attrs, fmt.Sprintf("penwidth=%.1f", e.Style.PenWidth))
	}
	fmt.Fprintf(sb, "%s -> %s [%s];\n", quote(e.From), quote(e.To), strings.Join(attrs, ", "))
}

// quote wraps a value in DOT double quotes, escaping embedded quotes and
// newlines. Backslash sequences like \l pass through untouched so label
// alignment survives.
func quote(s string) string {
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return `"` + s + `"`
}
