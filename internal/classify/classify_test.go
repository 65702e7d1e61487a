package classify

import (
	"io"
	"reflect"
	"testing"

	"repolens/internal/config"
	"repolens/internal/index"
	"repolens/internal/logging"
	"repolens/internal/model"
)

func testClassifier() *Classifier {
	logger := logging.NewLogger(logging.Config{
		Format: logging.JSONFormat,
		Level:  logging.ErrorLevel,
		Output: io.Discard,
	})
	return New(config.DefaultConfig().Classifier, logger)
}

func snapshotOf(records ...*model.SourceFileRecord) index.Snapshot {
	snap := make(index.Snapshot, len(records))
	for _, rec := range records {
		snap[rec.Path] = rec
	}
	return snap
}

func TestClassifyFieldHeuristics(t *testing.T) {
	snap := snapshotOf(
		&model.SourceFileRecord{
			Path:    "src/Order.java",
			Package: "app",
			Classes: []model.ClassSummary{{
				Name: "Order",
				Attributes: []model.AttributeInfo{
					{Name: "customer", DeclaredType: "Customer"},
					{Name: "id", DeclaredType: "OrderId", IsFinal: true},
					{Name: "items", DeclaredType: "List<Item>", IsCollection: true, ElementType: "Item"},
					{Name: "total", DeclaredType: "double"},
					{Name: "label", DeclaredType: "String", IsFinal: true},
				},
			}},
		},
		&model.SourceFileRecord{
			Path:    "src/Customer.java",
			Package: "app",
			Classes: []model.ClassSummary{{Name: "Customer"}},
		},
	)

	edges, _ := testClassifier().Classify(snap)
	want := []Edge{
		{Kind: Aggregation, Source: "app.Order", Target: "app.Item"},
		{Kind: Association, Source: "app.Order", Target: "app.Customer"},
		{Kind: Composition, Source: "app.Order", Target: "app.OrderId"},
	}
	if !reflect.DeepEqual(edges, want) {
		t.Errorf("edges = %v, want %v", edges, want)
	}
}

func TestClassifyInheritance(t *testing.T) {
	snap := snapshotOf(&model.SourceFileRecord{
		Path:    "src/types.java",
		Package: "app",
		Classes: []model.ClassSummary{
			{Name: "Base"},
			{Name: "Flag", IsInterface: true},
			{Name: "Derived", Parent: "Base", Interfaces: []string{"Flag"}},
		},
	})

	edges, classes := testClassifier().Classify(snap)
	want := []Edge{
		{Kind: Inheritance, Source: "app.Derived", Target: "app.Base"},
		{Kind: Inheritance, Source: "app.Derived", Target: "app.Flag"},
	}
	if !reflect.DeepEqual(edges, want) {
		t.Errorf("edges = %v, want %v", edges, want)
	}
	if len(classes) != 3 {
		t.Errorf("retained %d classes, want 3", len(classes))
	}
}

func TestClassifyIgnoresRootAndUnknownParents(t *testing.T) {
	snap := snapshotOf(&model.SourceFileRecord{
		Path:    "src/a.java",
		Package: "app",
		Classes: []model.ClassSummary{
			{Name: "Plain", Parent: "Object"},
			{Name: "External", Parent: "SomeLibraryBase", Interfaces: []string{"java.io.Serializable"}},
		},
	})
	edges, _ := testClassifier().Classify(snap)
	if len(edges) != 0 {
		t.Errorf("edges = %v, want none", edges)
	}
}

func TestClassifyExcludedAndSelfTargets(t *testing.T) {
	snap := snapshotOf(&model.SourceFileRecord{
		Path:    "src/Node.java",
		Package: "app",
		Classes: []model.ClassSummary{{
			Name: "Node",
			Attributes: []model.AttributeInfo{
				{Name: "next", DeclaredType: "Node", IsFinal: true},
				{Name: "clock", DeclaredType: "java.time.Clock"},
				{Name: "cache", DeclaredType: "com.google.common.cache.Cache", IsFinal: true},
			},
		}},
	})
	edges, _ := testClassifier().Classify(snap)
	if len(edges) != 0 {
		t.Errorf("edges = %v, want none (self and excluded targets dropped)", edges)
	}
}

func TestClassifyDuplicateClassFirstWins(t *testing.T) {
	first := &model.SourceFileRecord{
		Path:    "src/a/Widget.java",
		Package: "app",
		Classes: []model.ClassSummary{{
			Name:       "Widget",
			Attributes: []model.AttributeInfo{{Name: "peer", DeclaredType: "Peer"}},
		}},
	}
	second := &model.SourceFileRecord{
		Path:    "src/b/Widget.java",
		Package: "app",
		Classes: []model.ClassSummary{{Name: "Widget", Parent: "Peer"}},
	}
	snap := snapshotOf(first, second, &model.SourceFileRecord{
		Path:    "src/Peer.java",
		Package: "app",
		Classes: []model.ClassSummary{{Name: "Peer"}},
	})

	edges, classes := testClassifier().Classify(snap)
	if got := classes["app.Widget"].Path; got != "src/a/Widget.java" {
		t.Errorf("kept definition from %s, want first sorted path", got)
	}
	want := []Edge{{Kind: Association, Source: "app.Widget", Target: "app.Peer"}}
	if !reflect.DeepEqual(edges, want) {
		t.Errorf("edges = %v, want %v", edges, want)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	snap := snapshotOf(
		&model.SourceFileRecord{
			Path:    "src/Order.java",
			Package: "app",
			Classes: []model.ClassSummary{{
				Name: "Order",
				Attributes: []model.AttributeInfo{
					{Name: "customer", DeclaredType: "Customer"},
					{Name: "lines", DeclaredType: "List<Line>", IsCollection: true, ElementType: "Line"},
				},
			}},
		},
		&model.SourceFileRecord{
			Path:    "src/Customer.java",
			Package: "app",
			Classes: []model.ClassSummary{{Name: "Customer", Parent: "Party"}},
		},
		&model.SourceFileRecord{
			Path:    "src/Party.java",
			Package: "app",
			Classes: []model.ClassSummary{{Name: "Party"}},
		},
	)

	c := testClassifier()
	baseline, _ := c.Classify(snap)
	for i := 0; i < 20; i++ {
		edges, _ := c.Classify(snap)
		if !reflect.DeepEqual(edges, baseline) {
			t.Fatalf("pass %d produced %v, want %v", i, edges, baseline)
		}
	}
}
