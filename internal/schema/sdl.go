package schema

import (
	"fmt"

	"github.com/wundergraph/graphql-go-tools/v2/pkg/ast"
	"github.com/wundergraph/graphql-go-tools/v2/pkg/astparser"
)

// ParseSDL reads model declarations written as GraphQL object types:
//
//	type Point @embedded {
//	  x: double @required
//	  tags: [String!]
//	}
//
// A non-null marker is read as the required annotation, and field
// directives are read as annotations. Definitions other than object types
// are ignored.
func ParseSDL(input string) ([]Declaration, error) {
	preprocessed := PreprocessSDL(input)

	doc, report := astparser.ParseGraphqlDocumentString(preprocessed)
	if report.HasErrors() {
		return nil, fmt.Errorf("failed to parse model SDL: %v", report)
	}

	decls := []Declaration{}
	for i := range doc.RootNodes {
		node := &doc.RootNodes[i]
		if node.Kind != ast.NodeKindObjectTypeDefinition {
			continue
		}
		decls = append(decls, parseSDLObject(&doc, node.Ref))
	}
	return decls, nil
}

func parseSDLObject(doc *ast.Document, ref int) Declaration {
	typeDef := doc.ObjectTypeDefinitions[ref]

	decl := Declaration{
		Name:   doc.Input.ByteSliceString(typeDef.Name),
		Fields: []FieldDeclaration{},
	}
	for _, name := range directiveNames(doc, typeDef.Directives) {
		if name == "embedded" {
			decl.Embedded = true
		}
	}

	for _, fieldRef := range typeDef.FieldsDefinition.Refs {
		decl.Fields = append(decl.Fields, parseSDLField(doc, fieldRef))
	}
	return decl
}

func parseSDLField(doc *ast.Document, fieldRef int) FieldDeclaration {
	fieldDef := doc.FieldDefinitions[fieldRef]

	field := FieldDeclaration{
		Name: doc.Input.ByteSliceString(fieldDef.Name),
	}
	token, required := parseSDLType(doc, fieldDef.Type)
	field.Type = token
	if required {
		field.Annotations = append(field.Annotations, AnnotationRequired)
	}
	for _, name := range directiveNames(doc, fieldDef.Directives) {
		a := Annotation(name)
		if normalizeAnnotation(a) == AnnotationRequired && required {
			continue
		}
		field.Annotations = append(field.Annotations, a)
	}
	return field
}

// parseSDLType returns the declaration type token for a GraphQL type. A non-null
// marker on the list or on its elements both mean the field is required.
func parseSDLType(doc *ast.Document, typeRef int) (string, bool) {
	required := false
	currentRef := typeRef

	if doc.Types[currentRef].TypeKind == ast.TypeKindNonNull {
		required = true
		currentRef = doc.Types[currentRef].OfType
	}

	if doc.Types[currentRef].TypeKind == ast.TypeKindList {
		inner, innerRequired := parseSDLType(doc, doc.Types[currentRef].OfType)
		return "RealmList<" + inner + ">", required || innerRequired
	}

	if doc.Types[currentRef].TypeKind == ast.TypeKindNamed {
		return restoreTypeName(doc.Input.ByteSliceString(doc.Types[currentRef].Name)), required
	}

	return "", required
}

func directiveNames(doc *ast.Document, directives ast.DirectiveList) []string {
	names := make([]string, 0, len(directives.Refs))
	for _, ref := range directives.Refs {
		names = append(names, doc.Input.ByteSliceString(doc.Directives[ref].Name))
	}
	return names
}
