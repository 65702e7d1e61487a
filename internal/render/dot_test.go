package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"repolens/internal/views"
)

func TestRenderWritesDOT(t *testing.T) {
	g := &views.Graph{
		Name:    "class_view",
		Title:   "Class Diagram",
		RankDir: "TB",
		BGColor: "white",
		Clusters: []views.Cluster{{
			ID:        "cluster_app",
			Label:     "Package: app",
			FillColor: "#ECECFC",
			Nodes: []views.Node{{
				ID:    "app.Order",
				Label: "Order",
				Style: views.NodeStyle{Shape: "box", Style: "filled", FillColor: "#B5CAFB"},
			}},
		}},
		Nodes: []views.Node{{
			ID:    "app.Customer",
			Label: `say "hi"`,
			Style: views.NodeStyle{Shape: "record", FontSize: 10, PenWidth: 1.5},
		}},
		Edges: []views.Edge{{
			From:  "app.Order",
			To:    "app.Customer",
			Label: "uses",
			Style: views.EdgeStyle{ArrowHead: "vee", Style: "dashed", Color: "#3498DB", PenWidth: 1.2},
		}},
	}

	out := filepath.Join(t.TempDir(), "nested", "class_view.dot")
	if err := NewDOT().Render(g, out); err != nil {
		t.Fatalf("Render: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)

	for _, want := range []string{
		`digraph "class_view" {`,
		`label="Class Diagram";`,
		`rankdir="TB";`,
		`subgraph "cluster_app" {`,
		`"app.Order" [label="Order", shape="box", style="filled", fillcolor="#B5CAFB"];`,
		`"app.Customer" [label="say \"hi\"", shape="record", fontsize=10, penwidth=1.5];`,
		`"app.Order" -> "app.Customer" [label="uses", arrowhead="vee", style="dashed", color="#3498DB", penwidth=1.2];`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q\n%s", want, text)
		}
	}
	if !strings.HasSuffix(strings.TrimSpace(text), "}") {
		t.Error("graph not closed")
	}
}

func TestQuotePreservesAlignmentEscapes(t *testing.T) {
	got := quote(`+ id: OrderId\l`)
	if got != `"+ id: OrderId\l"` {
		t.Errorf("quote = %s", got)
	}
}
