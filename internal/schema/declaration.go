package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Annotation is a field-level marker on a declaration
type Annotation string

const (
	AnnotationRequired   Annotation = "required"
	AnnotationIndex      Annotation = "index"
	AnnotationPrimaryKey Annotation = "primaryKey"
)

// FieldDeclaration is one raw field: a name, a type token and annotations
type FieldDeclaration struct {
	Name        string       `json:"name" yaml:"name"`
	Type        string       `json:"type" yaml:"type"`
	Annotations []Annotation `json:"annotations,omitempty" yaml:"annotations,omitempty"`
}

// Declaration is one raw entity declaration
type Declaration struct {
	Name     string             `json:"name" yaml:"name"`
	Embedded bool               `json:"embedded,omitempty" yaml:"embedded,omitempty"`
	Fields   []FieldDeclaration `json:"fields" yaml:"fields"`
}

// DeclarationSet is the document form of an ordered list of declarations
type DeclarationSet struct {
	Entities []Declaration `json:"entities" yaml:"entities"`
}

// Has reports whether the field carries annotation a. Matching ignores
// case and a leading "@".
func (f FieldDeclaration) Has(a Annotation) bool {
	for _, got := range f.Annotations {
		if normalizeAnnotation(got) == a {
			return true
		}
	}
	return false
}

func normalizeAnnotation(a Annotation) Annotation {
	s := strings.TrimPrefix(strings.TrimSpace(string(a)), "@")
	switch strings.ToLower(s) {
	case "required":
		return AnnotationRequired
	case "index", "indexed":
		return AnnotationIndex
	case "primarykey":
		return AnnotationPrimaryKey
	}
	return Annotation(s)
}

// DecodeDeclarations reads a YAML or JSON declaration document. Unknown keys
// are rejected so typos in field names surface early.
func DecodeDeclarations(data []byte) (DeclarationSet, error) {
	var set DeclarationSet
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&set); err != nil && !errors.Is(err, io.EOF) {
		return DeclarationSet{}, fmt.Errorf("failed to decode declarations: %w", err)
	}
	return set, nil
}

// EncodeDeclarations writes a declaration set as YAML
func EncodeDeclarations(set DeclarationSet) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(set); err != nil {
		return nil, fmt.Errorf("failed to encode declarations: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
