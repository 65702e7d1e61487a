package views

import (
	"fmt"
	"sort"
	"strings"

	"repolens/internal/index"
	"repolens/internal/model"
)

// SequenceView summarizes the call graph as class-to-class interaction
// edges. Utility-method noise, self-calls and foreign classes are filtered;
// each class pair is drawn once, labeled with up to MaxCallLabels
// representative calls or a total call count.
func (b *Builder) SequenceView(snap index.Snapshot) *Graph {
	g := &Graph{
		Name:     "sequence_view",
		Title:    "Application Sequence Flow",
		RankDir:  "LR",
		BGColor:  b.theme.Background,
		FontName: "Helvetica",
	}

	utility := make(map[string]bool, len(b.cfg.UtilityMethods))
	for _, m := range b.cfg.UtilityMethods {
		utility[strings.ToLower(m)] = true
	}

	type pair struct{ caller, callee string }
	participants := make(map[string]bool)
	callsByPair := make(map[pair][]model.CallEdge)
	var pairOrder []pair

	for _, path := range snap.SortedPaths() {
		for _, call := range snap[path].Calls {
			if call.CallerClass == "" || call.CalleeClass == "" ||
				call.CallerMethod == "" || call.CalleeMethod == "" {
				continue
			}
			if call.CallerClass == call.CalleeClass {
				continue
			}
			if b.classifier.Excluded(call.CallerClass) || b.classifier.Excluded(call.CalleeClass) {
				continue
			}
			if utility[strings.ToLower(call.CalleeMethod)] || utility[strings.ToLower(call.CallerMethod)] {
				continue
			}

			p := pair{caller: call.CallerClass, callee: call.CalleeClass}
			if _, exists := callsByPair[p]; !exists {
				pairOrder = append(pairOrder, p)
			}
			callsByPair[p] = append(callsByPair[p], call)
			participants[call.CallerClass] = true
			participants[call.CalleeClass] = true
		}
	}

	names := make([]string, 0, len(participants))
	for name := range participants {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		g.Nodes = append(g.Nodes, Node{
			ID:    name,
			Label: model.SimpleName(name),
			Style: NodeStyle{
				Shape:     "box",
				Style:     "filled,rounded",
				FillColor: b.theme.ParticipantFill,
				Color:     b.theme.CallEdge,
				FontName:  "Helvetica",
				PenWidth:  1.5,
			},
		})
	}

	for _, p := range pairOrder {
		calls := callsByPair[p]
		g.Edges = append(g.Edges, Edge{
			From:  p.caller,
			To:    p.callee,
			Label: b.callLabel(calls),
			Style: EdgeStyle{
				ArrowHead: "vee",
				Style:     "solid",
				Color:     b.theme.CallEdge,
				FontColor: "#555555",
				PenWidth:  1.2,
			},
		})
	}
	return g
}

func (b *Builder) callLabel(calls []model.CallEdge) string {
	if len(calls) > b.cfg.MaxCallLabels {
		return fmt.Sprintf("%d calls", len(calls))
	}
	labels := make([]string, len(calls))
	for i, call := range calls {
		labels[i] = call.CallerMethod + " -> " + call.CalleeMethod
	}
	return strings.Join(labels, "\\l")
}
