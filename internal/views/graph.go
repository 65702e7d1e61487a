package views

// NodeStyle carries the visual hints a renderer applies to a node.
type NodeStyle struct {
	Shape     string
	Style     string
	FillColor string
	Color     string
	FontName  string
	FontSize  int
	PenWidth  float64
}

// EdgeStyle carries the visual hints a renderer applies to an edge.
type EdgeStyle struct {
	ArrowHead string
	Style     string
	Color     string
	FontColor string
	PenWidth  float64
}

type Node struct {
	ID    string
	Label string
	Style NodeStyle
}

type Edge struct {
	From  string
	To    string
	Label string
	Style EdgeStyle
}

// Cluster groups nodes visually, one per package.
type Cluster struct {
	ID        string
	Label     string
	FillColor string
	Nodes     []Node
}

// Graph is the abstract view handed to a renderer. Nodes inside clusters do
// not repeat in the top-level Nodes slice.
type Graph struct {
	Name     string
	Title    string
	RankDir  string
	Splines  string
	BGColor  string
	FontName string
	Clusters []Cluster
	Nodes    []Node
	Edges    []Edge
}

// Empty reports whether the graph carries no drawable content.
func (g *Graph) Empty() bool {
	return len(g.Nodes) == 0 && len(g.Clusters) == 0
}
