package presentation

import (
	"github.com/zjrosen/defreg/internal/defcache"
	"github.com/zjrosen/defreg/internal/defs"
	"github.com/zjrosen/defreg/internal/domain/definition"
	"github.com/zjrosen/defreg/internal/domain/descriptor"
)

// DescriptorDTO represents a descriptor for presentation
type DescriptorDTO struct {
	Key       string `json:"key"`
	Qualified string `json:"qualified"`
	Type      string `json:"type"`
	Prefix    string `json:"prefix"`
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
}

func FromDescriptor(d descriptor.Descriptor) DescriptorDTO {
	return DescriptorDTO{
		Key:       d.Key(),
		Qualified: d.QualifiedName(),
		Type:      string(d.DefType),
		Prefix:    d.Prefix,
		Namespace: d.Namespace,
		Name:      d.Name,
	}
}

func FromDescriptors(ds []descriptor.Descriptor) []DescriptorDTO {
	out := make([]DescriptorDTO, len(ds))
	for i, d := range ds {
		out[i] = FromDescriptor(d)
	}
	return out
}

// UIDDTO is the result of a uid lookup.
type UIDDTO struct {
	Root DescriptorDTO `json:"root"`
	UID  string        `json:"uid"`
}

// DependenciesDTO lists the dependency set of a root.
type DependenciesDTO struct {
	Root         DescriptorDTO   `json:"root"`
	UID          string          `json:"uid"`
	Dependencies []DescriptorDTO `json:"dependencies"`
}

// AttributeDTO is a declared markup attribute.
type AttributeDTO struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required,omitempty"`
	Default  string `json:"default,omitempty"`
}

// DefinitionDTO represents a definition for presentation. Markup fields are
// empty for other definition kinds.
type DefinitionDTO struct {
	Descriptor     DescriptorDTO  `json:"descriptor"`
	Access         string         `json:"access"`
	Authentication string         `json:"authentication"`
	Valid          bool           `json:"valid"`
	OwnHash        string         `json:"own_hash"`
	Description    string         `json:"description,omitempty"`
	Extends        string         `json:"extends,omitempty"`
	Implements     []string       `json:"implements,omitempty"`
	Components     []string       `json:"components,omitempty"`
	Attributes     []AttributeDTO `json:"attributes,omitempty"`
	Members        []string       `json:"members,omitempty"`
	Source         string         `json:"source,omitempty"`
}

func qualified(ds []descriptor.Descriptor) []string {
	if len(ds) == 0 {
		return nil
	}
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.QualifiedName()
	}
	return out
}

// FromDefinition converts a definition to a DTO.
func FromDefinition(def definition.Definition) DefinitionDTO {
	a := def.Access()
	dto := DefinitionDTO{
		Descriptor:     FromDescriptor(def.Descriptor()),
		Access:         string(a.Level),
		Authentication: string(a.Authentication),
		Valid:          def.IsValid(),
		OwnHash:        def.OwnHash(),
	}

	switch d := def.(type) {
	case *defs.MarkupDef:
		dto.Description = d.Description
		if !d.Extends.IsZero() {
			dto.Extends = d.Extends.QualifiedName()
		}
		dto.Implements = qualified(d.Implements)
		dto.Components = qualified(d.Components)
		dto.Members = qualified(d.Members)
		for _, attr := range d.Attributes {
			dto.Attributes = append(dto.Attributes, AttributeDTO{
				Name:     attr.Name,
				Type:     attr.Type.QualifiedName(),
				Required: attr.Required,
				Default:  attr.Default,
			})
		}
	case *defs.ScriptDef:
		dto.Source = d.Source
	}
	return dto
}

// ExistsDTO is the result of an existence check.
type ExistsDTO struct {
	Descriptor DescriptorDTO `json:"descriptor"`
	Exists     bool          `json:"exists"`
}

// FindDTO is the result of a filter search.
type FindDTO struct {
	Filter  string          `json:"filter"`
	Results []DescriptorDTO `json:"results"`
}

// LibrariesDTO lists the client libraries of a dependency set.
type LibrariesDTO struct {
	Root      DescriptorDTO              `json:"root"`
	UID       string                     `json:"uid"`
	Libraries []definition.ClientLibrary `json:"libraries"`
}

// InvalidationDTO reports one applied source change.
type InvalidationDTO struct {
	Kind       string         `json:"kind"`
	Descriptor DescriptorDTO  `json:"descriptor"`
	Generation uint64         `json:"generation"`
	Evicted    map[string]int `json:"evicted"`
	Delta      string         `json:"delta,omitempty"`
}

func FromInvalidation(inv defcache.Invalidation) InvalidationDTO {
	evicted := make(map[string]int, len(inv.Evicted))
	for k, n := range inv.Evicted {
		evicted[string(k)] = n
	}
	return InvalidationDTO{
		Kind:       string(inv.Event.Kind),
		Descriptor: FromDescriptor(inv.Event.Descriptor),
		Generation: inv.Generation,
		Evicted:    evicted,
		Delta:      inv.Event.Delta,
	}
}
