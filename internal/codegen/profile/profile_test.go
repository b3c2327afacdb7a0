package profile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okra-platform/modelgen/internal/catalog"
	"github.com/okra-platform/modelgen/internal/schema"
)

// Test plan:
// - Casing rules convert names, Join builds prefixed accessors
// - Getter and Setter honour the boolean prefix for single bools only
// - Flags follow primary key, indexed and required rules
// - With applies and validates overrides
// - Resolve reports a *RenderError that matches ErrRender
// - CheckMembers rejects properties that derive the same member name
// - Imports are sorted and duplicate free

func javaLike() Profile {
	return Profile{
		Name:                  "test",
		AccessorCasing:        CasingPascal,
		GetterPrefix:          "get",
		SetterPrefix:          "set",
		BooleanAccessorPrefix: "is",
		Annotations: map[Flag]Annotation{
			FlagPrimaryKey: {Syntax: "@PrimaryKey", Import: "a.PrimaryKey"},
			FlagIndexed:    {Syntax: "@Index", Import: "a.Index"},
			FlagRequired:   {Syntax: "@Required", Import: "a.Required"},
			FlagEmbedded:   {Syntax: "@Embedded"},
		},
		Types: catalog.Vocabulary{
			Forms: map[catalog.ScalarType]catalog.Forms{
				catalog.Bool:   {Value: "boolean", Optional: "Boolean", Element: "Boolean", OptionalElement: "Boolean"},
				catalog.Int:    {Value: "long", Optional: "Long", Element: "Long", OptionalElement: "Long"},
				catalog.String: catalog.Same("String", ""),
				catalog.Date:   catalog.Same("Date", "java.util.Date"),
				catalog.Link:   catalog.Same("%s", ""),
			},
			List:       "RealmList<%s>",
			ListImport: "io.realm.RealmList",
		},
		BaseType: "RealmObject",
	}
}

func TestCasing_Apply(t *testing.T) {
	tests := []struct {
		casing Casing
		in     string
		want   string
	}{
		{CasingPascal, "stringRequired", "StringRequired"},
		{CasingPascal, "x", "X"},
		{CasingPascal, "", ""},
		{CasingTitle, "stringRequired", "Stringrequired"},
		{CasingTitle, "id", "Id"},
		{CasingCamel, "StringRequired", "stringRequired"},
		{CasingSnake, "stringRequired", "string_required"},
		{CasingSnake, "firstName", "first_name"},
		{CasingSnake, "id", "id"},
		{CasingVerbatim, "stringRequired", "stringRequired"},
	}
	for _, tt := range tests {
		t.Run(string(tt.casing)+"/"+tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.casing.Apply(tt.in))
		})
	}
}

func TestCasing_Join(t *testing.T) {
	assert.Equal(t, "getStringRequired", CasingPascal.Join("get", "stringRequired"))
	assert.Equal(t, "getStringrequired", CasingTitle.Join("get", "stringRequired"))
	assert.Equal(t, "getStringRequired", CasingCamel.Join("get", "stringRequired"))
	assert.Equal(t, "get_string_required", CasingSnake.Join("get", "stringRequired"))
	assert.Equal(t, "getstringRequired", CasingVerbatim.Join("get", "stringRequired"))

	// Test: no prefix applies the casing alone
	assert.Equal(t, "StringRequired", CasingPascal.Join("", "stringRequired"))
}

func TestParseCasing(t *testing.T) {
	for _, c := range Casings() {
		got, err := ParseCasing(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	_, err := ParseCasing("upper")
	assert.Error(t, err)
}

func TestProfile_Accessors(t *testing.T) {
	p := javaLike()

	flag := schema.Property{Name: "active", Type: catalog.Bool, Cardinality: catalog.Single}
	assert.Equal(t, "isActive", p.Getter(flag))
	assert.Equal(t, "setActive", p.Setter(flag))

	// Test: the boolean prefix does not apply to lists of bools
	flags := schema.Property{Name: "flags", Type: catalog.Bool, Cardinality: catalog.List}
	assert.Equal(t, "getFlags", p.Getter(flags))

	name := schema.Property{Name: "stringRequired", Type: catalog.String, Cardinality: catalog.Single}
	assert.Equal(t, "getStringRequired", p.Getter(name))
	assert.Equal(t, "StringRequired", p.AccessorName(name))

	p.BooleanAccessorPrefix = ""
	assert.Equal(t, "getActive", p.Getter(flag))
}

func TestProfile_CheckMembers(t *testing.T) {
	str := func(name string) schema.Property {
		return schema.Property{Name: name, Type: catalog.String, Cardinality: catalog.Single, Nullable: true}
	}
	flag := func(name string) schema.Property {
		return schema.Property{Name: name, Type: catalog.Bool, Cardinality: catalog.Single}
	}
	verbatim := javaLike()
	verbatim.GetterPrefix, verbatim.SetterPrefix, verbatim.AccessorCasing = "", "", CasingVerbatim
	pascal := verbatim
	pascal.AccessorCasing = CasingPascal

	tests := []struct {
		name    string
		profile Profile
		props   []schema.Property
		wantErr string
	}{
		{name: "distinct accessors", profile: javaLike(), props: []schema.Property{str("id"), str("name")}},
		{name: "getters differ only in case", profile: javaLike(), props: []schema.Property{str("id"), str("Id")}, wantErr: "getId is also derived from property id"},
		// Test: isActive and getActive differ, but both set through setActive
		{name: "setter shared with boolean", profile: javaLike(), props: []schema.Property{flag("active"), str("Active")}, wantErr: "setActive is also derived from property active"},
		{name: "cased member names", profile: pascal, props: []schema.Property{str("id"), str("Id")}, wantErr: "Id is also derived from property id"},
		{name: "verbatim names never clash", profile: verbatim, props: []schema.Property{str("id"), str("Id")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.CheckMembers(schema.Entity{Name: "A", Properties: tt.props}, nil)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrRender)
			assert.ErrorIs(t, err, ErrMemberCollision)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.NotContains(t, err.Error(), "no type for")

			var re *RenderError
			require.True(t, errors.As(err, &re))
			assert.Equal(t, "A", re.Entity)
			assert.Equal(t, tt.props[1].Name, re.Property)
		})
	}
}

func TestProfile_Flags(t *testing.T) {
	p := javaLike()

	tests := []struct {
		name string
		prop schema.Property
		want []Flag
	}{
		{
			name: "primary key drops indexed and keeps required",
			prop: schema.Property{Type: catalog.String, Cardinality: catalog.Single, PrimaryKey: true, Indexed: true},
			want: []Flag{FlagPrimaryKey, FlagRequired},
		},
		{
			name: "primitive primary key",
			prop: schema.Property{Type: catalog.Int, Cardinality: catalog.Single, PrimaryKey: true, Indexed: true},
			want: []Flag{FlagPrimaryKey},
		},
		{
			name: "indexed",
			prop: schema.Property{Type: catalog.Int, Cardinality: catalog.Single, Indexed: true},
			want: []Flag{FlagIndexed},
		},
		{
			name: "nullable string",
			prop: schema.Property{Type: catalog.String, Cardinality: catalog.Single, Nullable: true},
			want: nil,
		},
		{
			name: "non-null boxed list",
			prop: schema.Property{Type: catalog.Int, Cardinality: catalog.List},
			want: []Flag{FlagRequired},
		},
		{
			name: "link list",
			prop: schema.Property{Type: catalog.Link, Cardinality: catalog.List, ObjectType: "Node"},
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Flags(tt.prop))
		})
	}
}

func TestProfile_Annotations(t *testing.T) {
	p := javaLike()

	prop := schema.Property{Type: catalog.String, Cardinality: catalog.Single, PrimaryKey: true, Indexed: true}
	annotations := p.PropertyAnnotations(prop)
	require.Len(t, annotations, 2)
	assert.Equal(t, "@PrimaryKey", annotations[0].Syntax)
	assert.Equal(t, "@Required", annotations[1].Syntax)

	// Test: flags without syntax are skipped
	delete(p.Annotations, FlagRequired)
	assert.Len(t, p.PropertyAnnotations(prop), 1)

	assert.Nil(t, p.EntityAnnotations(schema.Entity{Name: "A"}))
	embedded := p.EntityAnnotations(schema.Entity{Name: "B", Embedded: true})
	require.Len(t, embedded, 1)
	assert.Equal(t, "@Embedded", embedded[0].Syntax)
}

func TestProfile_Base(t *testing.T) {
	p := javaLike()
	assert.Equal(t, "RealmObject", p.Base(schema.Entity{Embedded: true}))

	p.EmbeddedBaseType = "EmbeddedObject"
	assert.Equal(t, "EmbeddedObject", p.Base(schema.Entity{Embedded: true}))
	assert.Equal(t, "RealmObject", p.Base(schema.Entity{}))
}

func TestProfile_With(t *testing.T) {
	p := javaLike()

	got, err := p.With(Overrides{AccessorCasing: "title", BooleanAccessorPrefix: "get"})
	require.NoError(t, err)
	assert.Equal(t, CasingTitle, got.AccessorCasing)
	assert.Equal(t, "get", got.BooleanAccessorPrefix)

	// Test: the receiver is not modified
	assert.Equal(t, CasingPascal, p.AccessorCasing)

	got, err = p.With(Overrides{})
	require.NoError(t, err)
	assert.Equal(t, p.AccessorCasing, got.AccessorCasing)

	_, err = p.With(Overrides{AccessorCasing: "kebab"})
	assert.Error(t, err)
	_, err = p.With(Overrides{BooleanAccessorPrefix: "has"})
	assert.Error(t, err)
}

func TestProfile_Validate(t *testing.T) {
	// Test: a vocabulary with gaps fails with a render error
	p := javaLike()
	err := p.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRender)
	assert.ErrorIs(t, err, catalog.ErrNoMapping)

	p.AccessorCasing = "loud"
	assert.Error(t, p.Validate())
}

func TestProfile_Resolve(t *testing.T) {
	p := javaLike()
	s, err := schema.Build([]schema.Entity{
		{
			Name: "Node",
			Properties: []schema.Property{
				{Name: "next", Type: catalog.Link, Cardinality: catalog.Single, Nullable: true, ObjectType: "Node"},
				{Name: "tags", Type: catalog.String, Cardinality: catalog.List},
				{Name: "when", Type: catalog.Date, Cardinality: catalog.Single, Nullable: true},
				{Name: "price", Type: catalog.Decimal128, Cardinality: catalog.Single, Nullable: true},
			},
		},
	})
	require.NoError(t, err)
	node := s.Entity(0)

	r, err := p.Resolve(s, node, node.Properties[0])
	require.NoError(t, err)
	assert.Equal(t, "Node", r.Name)

	r, err = p.Resolve(s, node, node.Properties[1])
	require.NoError(t, err)
	assert.Equal(t, "RealmList<String>", r.Name)
	assert.Equal(t, []string{"io.realm.RealmList"}, r.Imports)

	r, err = p.Resolve(s, node, node.Properties[2])
	require.NoError(t, err)
	assert.Equal(t, []string{"java.util.Date"}, r.Imports)

	// Test: an unmapped type is a render error with context
	_, err = p.Resolve(s, node, node.Properties[3])
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRender)
	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, "test", renderErr.Profile)
	assert.Equal(t, "Node", renderErr.Entity)
	assert.Equal(t, "price", renderErr.Property)
	assert.Contains(t, err.Error(), "decimal128?")
}

func TestImports(t *testing.T) {
	var imports Imports
	imports.Add("java.util.Date", "", "io.realm.RealmList", "java.util.Date")
	imports.Add()

	assert.Equal(t, 2, imports.Len())
	assert.Equal(t, []string{"io.realm.RealmList", "java.util.Date"}, imports.Sorted())

	var empty Imports
	assert.Empty(t, empty.Sorted())
}
