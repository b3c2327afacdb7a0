package codegen_test

import (
	"fmt"
	"log"

	"github.com/okra-platform/modelgen/internal/codegen"
	"github.com/okra-platform/modelgen/internal/schema"
)

func Example_usage() {
	decls, err := schema.ParseSDL(`
type Person {
  name: String! @primaryKey
  age: int
  dog: Dog
}

type Dog {
  name: String
}
`)
	if err != nil {
		log.Fatal(err)
	}
	s, err := schema.Extract(decls)
	if err != nil {
		log.Fatal(err)
	}

	gen, err := codegen.DefaultRegistry.Get("js", codegen.Options{})
	if err != nil {
		log.Fatal(err)
	}
	units, err := codegen.Render(s, gen)
	if err != nil {
		log.Fatal(err)
	}
	for _, u := range units {
		fmt.Printf("// %s\n%s", u.Filename, u.Content)
	}

	// Output:
	// // Person.js
	// exports.Person = {
	//   name: 'Person',
	//   primaryKey: 'name',
	//   properties: {
	//     name: 'string',
	//     age: 'int',
	//     dog: 'Dog'
	//   },
	// };
	// // Dog.js
	// exports.Dog = {
	//   name: 'Dog',
	//   properties: {
	//     name: 'string?'
	//   },
	// };
}
