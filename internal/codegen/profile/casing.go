package profile

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Casing is the rule that turns a property name into an accessor suffix
type Casing string

const (
	// CasingPascal upper-cases the first letter: stringRequired -> StringRequired.
	CasingPascal Casing = "pascal"
	// CasingTitle title-cases the whole name, lower-casing the rest:
	// stringRequired -> Stringrequired.
	CasingTitle Casing = "title"
	// CasingCamel lower-cases the first letter.
	CasingCamel Casing = "camel"
	// CasingSnake splits words with underscores: stringRequired -> string_required.
	CasingSnake Casing = "snake"
	// CasingVerbatim keeps the name as declared.
	CasingVerbatim Casing = "verbatim"
)

// Casings lists every supported rule
func Casings() []Casing {
	return []Casing{CasingPascal, CasingTitle, CasingCamel, CasingSnake, CasingVerbatim}
}

// ParseCasing validates a casing name
func ParseCasing(s string) (Casing, error) {
	for _, c := range Casings() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown accessor casing %q", s)
}

// Apply converts name according to the rule
func (c Casing) Apply(name string) string {
	switch c {
	case CasingPascal:
		return mapFirst(name, unicode.ToUpper)
	case CasingTitle:
		// A Caser is stateful; language.Und keeps the result host independent.
		return cases.Title(language.Und).String(name)
	case CasingCamel:
		return mapFirst(name, unicode.ToLower)
	case CasingSnake:
		return inflect.Underscore(name)
	}
	return name
}

// Join prefixes a cased name, e.g. "get" + "Name" or "get" + "_" + "name"
func (c Casing) Join(prefix, name string) string {
	if prefix == "" {
		return c.Apply(name)
	}
	if c == CasingSnake {
		return prefix + "_" + c.Apply(name)
	}
	if c == CasingCamel {
		return prefix + CasingPascal.Apply(name)
	}
	return prefix + c.Apply(name)
}

func mapFirst(s string, f func(rune) rune) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(f(r)) + s[size:]
}
