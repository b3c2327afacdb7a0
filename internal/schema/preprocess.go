package schema

import (
	"regexp"
	"strings"
)

// byteArrayName stands in for byte[] while the document goes through the
// GraphQL parser
const byteArrayName = "byte__array"

// embeddedTypeRegex matches `embedded type X` at the start of a line
var embeddedTypeRegex = regexp.MustCompile(`(?m)^(\s*)embedded\s+type\s+(\w+)`)

// genericListRegex matches the innermost RealmList<X> or List<X>
var genericListRegex = regexp.MustCompile(`\b(?:RealmList|List)\s*<\s*([^<>]*?)\s*>`)

// byteArrayRegex matches byte[] with optional spacing
var byteArrayRegex = regexp.MustCompile(`\bbyte\s*\[\s*\]`)

// PreprocessSDL rewrites host-binding spellings into valid GraphQL:
// byte[] becomes a named type, RealmList<X> becomes [X], and
// `embedded type X` becomes `type X @embedded`.
func PreprocessSDL(input string) string {
	input = byteArrayRegex.ReplaceAllString(input, byteArrayName)

	// Nested generics are unwrapped from the inside out.
	for {
		next := genericListRegex.ReplaceAllString(input, "[$1]")
		if next == input {
			break
		}
		input = next
	}

	return embeddedTypeRegex.ReplaceAllString(input, "${1}type $2 @embedded")
}

func restoreTypeName(name string) string {
	if name == byteArrayName {
		return "byte[]"
	}
	return strings.TrimSpace(name)
}
