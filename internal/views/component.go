package views

import (
	"sort"
	"strings"

	"repolens/internal/index"
	"repolens/internal/model"
)

// ComponentView groups classes into per-package clusters and draws
// class-to-class "uses" edges derived from the import lists. Foreign and
// framework dependencies are filtered out again here.
func (b *Builder) ComponentView(snap index.Snapshot) *Graph {
	g := &Graph{
		Name:     "component_view",
		Title:    "Component Diagram",
		RankDir:  "TB",
		BGColor:  b.theme.Background,
		FontName: "Arial",
	}

	type pkgGroup struct {
		name    string
		classes []string
	}
	groups := make(map[string]*pkgGroup)
	known := make(map[string]bool)

	for _, path := range snap.SortedPaths() {
		rec := snap[path]
		pkg := rec.Package
		if pkg == "" {
			pkg = "default"
		}
		group := groups[pkg]
		if group == nil {
			group = &pkgGroup{name: pkg}
			groups[pkg] = group
		}
		for _, cls := range rec.Classes {
			id := model.QualifiedName(pkg, cls.Name)
			if known[id] || b.classifier.Excluded(id) {
				continue
			}
			known[id] = true
			group.classes = append(group.classes, cls.Name)
		}
	}

	pkgNames := make([]string, 0, len(groups))
	for name := range groups {
		pkgNames = append(pkgNames, name)
	}
	sort.Strings(pkgNames)
	for _, name := range pkgNames {
		group := groups[name]
		if len(group.classes) == 0 {
			continue
		}
		cluster := Cluster{
			ID:        "cluster_" + strings.ReplaceAll(name, ".", "_"),
			Label:     "Package: " + name,
			FillColor: b.theme.PackageFill,
		}
		for _, cls := range group.classes {
			cluster.Nodes = append(cluster.Nodes, Node{
				ID:    model.QualifiedName(name, cls),
				Label: cls,
				Style: NodeStyle{
					Shape:     "box",
					Style:     "filled",
					FillColor: b.theme.ComponentFill,
					FontName:  "Arial",
				},
			})
		}
		g.Clusters = append(g.Clusters, cluster)
	}

	type pair struct{ from, to string }
	seen := make(map[pair]bool)
	for _, path := range snap.SortedPaths() {
		rec := snap[path]
		pkg := rec.Package
		if pkg == "" {
			pkg = "default"
		}
		for _, cls := range rec.Classes {
			source := model.QualifiedName(pkg, cls.Name)
			if !known[source] {
				continue
			}
			for _, dep := range rec.Dependencies {
				if dep == "" || b.classifier.Excluded(dep) {
					continue
				}
				// Unqualified imports resolve within the referencing
				// file's own package.
				target := dep
				if !strings.Contains(dep, ".") {
					target = model.QualifiedName(pkg, dep)
				}
				if !known[target] || target == source {
					continue
				}
				p := pair{from: source, to: target}
				if seen[p] {
					continue
				}
				seen[p] = true
				g.Edges = append(g.Edges, Edge{
					From:  source,
					To:    target,
					Label: "uses",
					Style: EdgeStyle{
						ArrowHead: "vee",
						Style:     "solid",
						Color:     b.theme.UsesEdge,
						FontColor: b.theme.UsesEdge,
					},
				})
			}
		}
	}
	return g
}

// PackageView is the coarser container diagram: one node per package and
// "depends on" edges derived from the package part of each qualified import.
func (b *Builder) PackageView(snap index.Snapshot) *Graph {
	g := &Graph{
		Name:     "package_view",
		Title:    "Package Diagram",
		RankDir:  "TB",
		BGColor:  b.theme.Background,
		FontName: "Arial",
	}

	pkgs := make(map[string]bool)
	type pair struct{ from, to string }
	deps := make(map[pair]bool)

	for _, path := range snap.SortedPaths() {
		rec := snap[path]
		pkg := rec.Package
		if pkg == "" {
			pkg = "default"
		}
		pkgs[pkg] = true
		for _, dep := range rec.Dependencies {
			if b.classifier.Excluded(dep) || !strings.Contains(dep, ".") {
				continue
			}
			target := model.PackageOf(dep)
			if target == "" || target == pkg {
				continue
			}
			deps[pair{from: pkg, to: target}] = true
		}
	}

	names := make([]string, 0, len(pkgs))
	for name := range pkgs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		g.Nodes = append(g.Nodes, Node{
			ID:    name,
			Label: name + " (Package)",
			Style: NodeStyle{
				Shape:     "box",
				Style:     "filled",
				FillColor: b.theme.ComponentFill,
				FontName:  "Arial",
			},
		})
	}

	pairs := make([]pair, 0, len(deps))
	for p := range deps {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].from != pairs[j].from {
			return pairs[i].from < pairs[j].from
		}
		return pairs[i].to < pairs[j].to
	})
	for _, p := range pairs {
		// Only draw edges between packages the index actually contains.
		if !pkgs[p.to] {
			continue
		}
		g.Edges = append(g.Edges, Edge{
			From:  p.from,
			To:    p.to,
			Label: "depends on",
			Style: EdgeStyle{
				ArrowHead: "vee",
				Style:     "solid",
				Color:     b.theme.UsesEdge,
				FontColor: b.theme.UsesEdge,
			},
		})
	}
	return g
}
