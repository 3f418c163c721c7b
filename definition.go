package tafiti

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/pitabwire/tafiti/resource"
)

// DefinitionKey is the bundle-root location of the study definition.
const DefinitionKey = "definition.yaml"

// Definition is the language-agnostic study definition shipped at the bundle
// root. The engine only consumes the resource references its components
// carry; scheduling and enrollment semantics belong to other systems.
type Definition struct {
	Study      StudyInfo   `yaml:"study"`
	Components []Component `yaml:"components"`
}

type StudyInfo struct {
	ID           string `yaml:"id"`
	Title        string `yaml:"title"`
	BaseLanguage string `yaml:"base_language"`
}

// Component is one unit of study content referencing a logical resource that
// must resolve in every shipped localization.
type Component struct {
	ID       string       `yaml:"id"`
	Kind     string       `yaml:"kind"`
	Resource ResourceSpec `yaml:"resource"`
}

type ResourceSpec struct {
	Category  string `yaml:"category"`
	Name      string `yaml:"name"`
	Extension string `yaml:"extension"`
}

// ParseDefinition reads a study definition document.
func ParseDefinition(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("could not parse study definition: %w", err)
	}

	return &def, nil
}

// References lists the logical resources the definition requires, in
// component order.
func (d *Definition) References() []resource.FileReference {
	refs := make([]resource.FileReference, 0, len(d.Components))
	for _, component := range d.Components {
		refs = append(refs, resource.FileReference{
			Category:  resource.Category(component.Resource.Category),
			Name:      component.Resource.Name,
			Extension: component.Resource.Extension,
		})
	}

	return refs
}

// LoadDefinition reads and parses the definition from the bundle store and
// attaches it to the bundle. The definition's base language, when declared,
// takes effect for base-localization election.
func (b *Bundle) LoadDefinition(ctx context.Context) (*Definition, error) {
	if b.store == nil {
		return nil, ErrNoStore
	}

	data, err := b.store.ReadKey(ctx, DefinitionKey)
	if err != nil {
		return nil, err
	}

	def, err := ParseDefinition(data)
	if err != nil {
		return nil, err
	}

	b.definition = def
	if def.Study.BaseLanguage != "" {
		b.baseLanguage = def.Study.BaseLanguage
	}

	return def, nil
}
