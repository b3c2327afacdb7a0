package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"gopkg.in/yaml.v3"

	"github.com/okra-platform/modelgen/internal/catalog"
)

// DocumentVersion is written into every schema document
const DocumentVersion = "1"

// Format is a serialization of the schema document
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatProto Format = "proto"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatYAML, FormatProto:
		return Format(s), nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown document format %q", s)
}

// Document is the canonical, field-tagged form of a Schema
type Document struct {
	Version  string           `json:"version" yaml:"version"`
	Entities []EntityDocument `json:"entities" yaml:"entities"`
}

// EntityDocument is one entity of a Document
type EntityDocument struct {
	Name       string             `json:"name" yaml:"name"`
	Embedded   bool               `json:"embedded,omitempty" yaml:"embedded,omitempty"`
	PrimaryKey string             `json:"primaryKey,omitempty" yaml:"primaryKey,omitempty"`
	Properties []PropertyDocument `json:"properties" yaml:"properties"`
}

// PropertyDocument is one property of an EntityDocument
type PropertyDocument struct {
	Name        string              `json:"name" yaml:"name"`
	Type        catalog.ScalarType  `json:"type" yaml:"type"`
	Cardinality catalog.Cardinality `json:"cardinality" yaml:"cardinality"`
	Nullable    bool                `json:"nullable" yaml:"nullable"`
	Indexed     bool                `json:"indexed,omitempty" yaml:"indexed,omitempty"`
	PrimaryKey  bool                `json:"primaryKey,omitempty" yaml:"primaryKey,omitempty"`
	ObjectType  string              `json:"objectType,omitempty" yaml:"objectType,omitempty"`
}

// NewDocument converts a Schema to its document form
func NewDocument(s *Schema) Document {
	doc := Document{
		Version:  DocumentVersion,
		Entities: make([]EntityDocument, 0, s.Len()),
	}
	for _, e := range s.entities {
		ed := EntityDocument{
			Name:       e.Name,
			Embedded:   e.Embedded,
			PrimaryKey: e.PrimaryKey,
			Properties: make([]PropertyDocument, 0, len(e.Properties)),
		}
		for _, p := range e.Properties {
			ed.Properties = append(ed.Properties, PropertyDocument{
				Name:        p.Name,
				Type:        p.Type,
				Cardinality: p.Cardinality,
				Nullable:    p.Nullable,
				Indexed:     p.Indexed,
				PrimaryKey:  p.PrimaryKey,
				ObjectType:  p.ObjectType,
			})
		}
		doc.Entities = append(doc.Entities, ed)
	}
	return doc
}

// ToEntities converts the document back to unresolved entities
func (d Document) ToEntities() ([]Entity, error) {
	if d.Version != DocumentVersion {
		return nil, fmt.Errorf("unsupported schema document version %q", d.Version)
	}
	entities := make([]Entity, 0, len(d.Entities))
	for _, ed := range d.Entities {
		e := Entity{
			Name:       ed.Name,
			Embedded:   ed.Embedded,
			PrimaryKey: ed.PrimaryKey,
			Properties: make([]Property, 0, len(ed.Properties)),
		}
		for _, pd := range ed.Properties {
			typ, err := catalog.ParseScalarType(string(pd.Type))
			if err != nil {
				return nil, fmt.Errorf("entity %s property %s: %w", ed.Name, pd.Name, err)
			}
			card, err := catalog.ParseCardinality(string(pd.Cardinality))
			if err != nil {
				return nil, fmt.Errorf("entity %s property %s: %w", ed.Name, pd.Name, err)
			}
			e.Properties = append(e.Properties, Property{
				Name:        pd.Name,
				Type:        typ,
				Cardinality: card,
				Nullable:    pd.Nullable,
				Indexed:     pd.Indexed,
				PrimaryKey:  pd.PrimaryKey,
				ObjectType:  pd.ObjectType,
				Target:      NoTarget,
			})
		}
		entities = append(entities, e)
	}
	return entities, nil
}

// Build validates the document and turns it back into a Schema
func (d Document) Build() (*Schema, error) {
	entities, err := d.ToEntities()
	if err != nil {
		return nil, err
	}
	return Build(entities)
}

// Encode serializes the document
func (d Document) Encode(f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		data, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatProto:
		st, err := d.toStruct()
		if err != nil {
			return nil, err
		}
		return proto.MarshalOptions{Deterministic: true}.Marshal(st)
	}
	return nil, fmt.Errorf("unknown document format %q", f)
}

// DecodeDocument parses a serialized document
func DecodeDocument(data []byte, f Format) (Document, error) {
	var d Document
	switch f {
	case FormatJSON:
		if err := json.Unmarshal(data, &d); err != nil {
			return Document{}, fmt.Errorf("failed to decode schema document: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &d); err != nil {
			return Document{}, fmt.Errorf("failed to decode schema document: %w", err)
		}
	case FormatProto:
		var st structpb.Struct
		if err := proto.Unmarshal(data, &st); err != nil {
			return Document{}, fmt.Errorf("failed to decode schema document: %w", err)
		}
		raw, err := json.Marshal(st.AsMap())
		if err != nil {
			return Document{}, err
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return Document{}, fmt.Errorf("failed to decode schema document: %w", err)
		}
	default:
		return Document{}, fmt.Errorf("unknown document format %q", f)
	}
	return d, nil
}

// toStruct goes through JSON so the struct keys match the JSON tags
func (d Document) toStruct() (*structpb.Struct, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return structpb.NewStruct(m)
}
