package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSchema(t *testing.T) *Schema {
	t.Helper()
	s, err := Extract([]Declaration{
		{Name: "Shape", Fields: []FieldDeclaration{
			field("id", "String", AnnotationPrimaryKey),
			field("sides", "long", AnnotationIndex),
			field("center", "Point"),
			field("points", "RealmList<Point>"),
			field("tags", "RealmList<String>", AnnotationRequired),
			field("parent", "Shape"),
		}},
		{Name: "Point", Embedded: true, Fields: []FieldDeclaration{
			field("x", "double"),
			field("y", "Double"),
		}},
	})
	require.NoError(t, err)
	return s
}

func TestDocument_RoundTrip(t *testing.T) {
	// Test plan:
	// - Encode the document in every format
	// - Decode it and build it again
	// - The rebuilt schema produces the same document

	s := sampleSchema(t)
	doc := NewDocument(s)
	assert.Equal(t, DocumentVersion, doc.Version)
	require.Len(t, doc.Entities, 2)
	assert.Equal(t, "id", doc.Entities[0].PrimaryKey)

	for _, f := range []Format{FormatJSON, FormatYAML, FormatProto} {
		t.Run(string(f), func(t *testing.T) {
			data, err := doc.Encode(f)
			require.NoError(t, err)
			require.NotEmpty(t, data)

			decoded, err := DecodeDocument(data, f)
			require.NoError(t, err)
			assert.Equal(t, doc, decoded)

			rebuilt, err := decoded.Build()
			require.NoError(t, err)
			assert.Equal(t, s.Entities(), rebuilt.Entities())
		})
	}
}

func TestDocument_EncodeIsStable(t *testing.T) {
	// Test: encoding the same schema twice gives identical bytes
	doc := NewDocument(sampleSchema(t))
	for _, f := range []Format{FormatJSON, FormatYAML, FormatProto} {
		a, err := doc.Encode(f)
		require.NoError(t, err)
		b, err := NewDocument(sampleSchema(t)).Encode(f)
		require.NoError(t, err)
		assert.Equal(t, a, b, "format %s", f)
	}
}

func TestDocument_JSONShape(t *testing.T) {
	data, err := NewDocument(sampleSchema(t)).Encode(FormatJSON)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, `"version": "1"`)
	assert.Contains(t, out, `"embedded": true`)
	assert.Contains(t, out, `"type": "embeddedLink"`)
	assert.Contains(t, out, `"objectType": "Point"`)
	assert.NotContains(t, out, "Target")
}

func TestDocument_DecodeErrors(t *testing.T) {
	_, err := DecodeDocument([]byte("{"), FormatJSON)
	assert.Error(t, err)

	_, err = DecodeDocument([]byte("{}"), "xml")
	assert.Error(t, err)

	// Test: version mismatch
	_, err = Document{Version: "0"}.Build()
	assert.Error(t, err)

	// Test: unknown types are reported before building
	doc := Document{Version: DocumentVersion, Entities: []EntityDocument{{
		Name:       "A",
		Properties: []PropertyDocument{{Name: "m", Type: "mixed"}},
	}}}
	_, err = doc.Build()
	assert.Error(t, err)

	// Test: a hand-written document still goes through validation
	doc = Document{Version: DocumentVersion, Entities: []EntityDocument{{
		Name:       "A",
		Properties: []PropertyDocument{{Name: "id", Type: "double", PrimaryKey: true}},
	}}}
	_, err = doc.Build()
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("toml")
	assert.Error(t, err)
}
