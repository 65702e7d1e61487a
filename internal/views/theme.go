package views

import (
	"os"

	"gopkg.in/yaml.v3"

	lenserr "repolens/internal/errors"
)

// Theme is the color palette shared by all views. Every field can be
// overridden from a YAML file; unset fields keep their defaults.
type Theme struct {
	Background      string `yaml:"background"`
	ClassFill       string `yaml:"classFill"`
	ClassBorder     string `yaml:"classBorder"`
	AbstractFill    string `yaml:"abstractFill"`
	AbstractBorder  string `yaml:"abstractBorder"`
	InterfaceFill   string `yaml:"interfaceFill"`
	InterfaceBorder string `yaml:"interfaceBorder"`
	PackageFill     string `yaml:"packageFill"`
	ComponentFill   string `yaml:"componentFill"`
	ParticipantFill string `yaml:"participantFill"`
	InheritanceEdge string `yaml:"inheritanceEdge"`
	CompositionEdge string `yaml:"compositionEdge"`
	AggregationEdge string `yaml:"aggregationEdge"`
	AssociationEdge string `yaml:"associationEdge"`
	CallEdge        string `yaml:"callEdge"`
	UsesEdge        string `yaml:"usesEdge"`
}

func DefaultTheme() Theme {
	return Theme{
		Background:      "white",
		ClassFill:       "#F5F5F5",
		ClassBorder:     "#34495E",
		AbstractFill:    "#F5EEF8",
		AbstractBorder:  "#8E44AD",
		InterfaceFill:   "#E8F8F5",
		InterfaceBorder: "#16A085",
		PackageFill:     "#ECECFC",
		ComponentFill:   "#B5CAFB",
		ParticipantFill: "#E8F4F9",
		InheritanceEdge: "#333333",
		CompositionEdge: "#E74C3C",
		AggregationEdge: "#F39C12",
		AssociationEdge: "#3498DB",
		CallEdge:        "#4682B4",
		UsesEdge:        "#666666",
	}
}

// LoadTheme reads a theme overlay from path. An empty path returns the
// default theme as-is.
func LoadTheme(path string) (Theme, error) {
	theme := DefaultTheme()
	if path == "" {
		return theme, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return theme, lenserr.NewPath(lenserr.ThemeLoadFailed, path, "read theme file", err)
	}
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return theme, lenserr.NewPath(lenserr.ThemeLoadFailed, path, "parse theme file", err)
	}
	return theme, nil
}
