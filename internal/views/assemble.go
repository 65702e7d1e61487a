package views

import (
	"path/filepath"

	"repolens/internal/classify"
	lenserr "repolens/internal/errors"
	"repolens/internal/index"
	"repolens/internal/logging"
)

// Renderer materializes an abstract graph into an output file.
type Renderer interface {
	Render(g *Graph, outputPath string) error
}

// ViewResult reports the outcome of one view's assembly and render.
type ViewResult struct {
	Name    string `json:"name"`
	Output  string `json:"output,omitempty"`
	Skipped bool   `json:"skipped,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Assembler builds every view from a snapshot and hands each to the
// renderer. One view failing to render never stops the others.
type Assembler struct {
	builder    *Builder
	classifier *classify.Classifier
	renderer   Renderer
	logger     *logging.Logger
	outputDir  string
}

func NewAssembler(builder *Builder, classifier *classify.Classifier, renderer Renderer, logger *logging.Logger, outputDir string) *Assembler {
	return &Assembler{
		builder:    builder,
		classifier: classifier,
		renderer:   renderer,
		logger:     logger,
		outputDir:  outputDir,
	}
}

// RenderAll assembles and renders the class, component, package and sequence
// views from the snapshot. An empty index skips every view with a warning.
func (a *Assembler) RenderAll(snap index.Snapshot) []ViewResult {
	viewNames := []string{"class_view", "component_view", "package_view", "sequence_view"}

	if len(snap) == 0 {
		a.logger.Warn("index is empty, skipping diagram generation", nil)
		results := make([]ViewResult, 0, len(viewNames))
		for _, name := range viewNames {
			results = append(results, ViewResult{Name: name, Skipped: true})
		}
		return results
	}

	edges, classes := a.classifier.Classify(snap)

	graphs := []*Graph{
		a.builder.ClassView(classes, edges),
		a.builder.ComponentView(snap),
		a.builder.PackageView(snap),
		a.builder.SequenceView(snap),
	}

	results := make([]ViewResult, 0, len(graphs))
	for _, g := range graphs {
		results = append(results, a.renderOne(g))
	}
	return results
}

func (a *Assembler) renderOne(g *Graph) ViewResult {
	result := ViewResult{Name: g.Name}
	if g.Empty() {
		a.logger.Warn("view has no content, skipping", map[string]interface{}{"view": g.Name})
		result.Skipped = true
		return result
	}

	output := filepath.Join(a.outputDir, g.Name+".dot")
	if err := a.renderer.Render(g, output); err != nil {
		wrapped := lenserr.NewPath(lenserr.RenderFailed, g.Name, "render view", err)
		a.logger.Error(wrapped.Error(), map[string]interface{}{"view": g.Name})
		result.Error = wrapped.Error()
		return result
	}

	a.logger.Info("view rendered", map[string]interface{}{"view": g.Name, "output": output})
	result.Output = output
	return result
}
