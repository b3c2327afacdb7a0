package codegen

import (
	"github.com/okra-platform/modelgen/internal/codegen/csharp"
	"github.com/okra-platform/modelgen/internal/codegen/golang"
	"github.com/okra-platform/modelgen/internal/codegen/java"
	"github.com/okra-platform/modelgen/internal/codegen/javascript"
	"github.com/okra-platform/modelgen/internal/codegen/kotlin"
	"github.com/okra-platform/modelgen/internal/codegen/profile"
	"github.com/okra-platform/modelgen/internal/codegen/protobuf"
	"github.com/okra-platform/modelgen/internal/codegen/swift"
	"github.com/okra-platform/modelgen/internal/codegen/typescript"
)

// DefaultRegistry is the global registry instance with pre-registered generators
var DefaultRegistry = NewRegistry()

// configured adapts a generator constructor into a factory that layers the
// option overrides onto the language's built-in profile
func configured[G Generator](base func() profile.Profile, build func(string, profile.Profile) G) Factory {
	return func(opts Options) (Generator, error) {
		p, err := base().With(opts.Overrides)
		if err != nil {
			return nil, err
		}
		return build(opts.PackageName, p), nil
	}
}

func init() {
	DefaultRegistry.Register("java", configured(java.DefaultProfile, java.NewGenerator))
	DefaultRegistry.Register("java-legacy", configured(java.LegacyProfile, java.NewGenerator))
	DefaultRegistry.Register("kotlin", configured(kotlin.DefaultProfile, kotlin.NewGenerator))
	DefaultRegistry.Register("csharp", configured(csharp.DefaultProfile, csharp.NewGenerator))
	DefaultRegistry.Register("swift", configured(swift.DefaultProfile, swift.NewGenerator))
	DefaultRegistry.Register("javascript", configured(javascript.DefaultProfile, javascript.NewGenerator))
	DefaultRegistry.Register("typescript", configured(typescript.DefaultProfile, typescript.NewGenerator))
	DefaultRegistry.Register("go", configured(golang.DefaultProfile, golang.NewGenerator))
	DefaultRegistry.Register("protobuf", configured(protobuf.DefaultProfile, protobuf.NewGenerator))

	DefaultRegistry.Alias("kt", "kotlin")
	DefaultRegistry.Alias("cs", "csharp")
	DefaultRegistry.Alias("js", "javascript")
	DefaultRegistry.Alias("ts", "typescript")
	DefaultRegistry.Alias("golang", "go")
	DefaultRegistry.Alias("proto", "protobuf")
}
