package schema

import (
	"github.com/okra-platform/modelgen/internal/catalog"
)

// Build assembles parsed entities into a validated Schema. It resolves every
// link, including self and forward references, and reports every violation
// it finds as Errors rather than stopping at the first.
func Build(entities []Entity) (*Schema, error) {
	s := &Schema{
		entities: make([]Entity, len(entities)),
		byName:   make(map[string]int, len(entities)),
	}
	var errs Errors

	for i, e := range entities {
		s.entities[i] = e.clone()
		if _, dup := s.byName[e.Name]; dup {
			errs = append(errs, validationf(KindDuplicateEntity, e.Name, "", "entity declared more than once"))
			continue
		}
		s.byName[e.Name] = i
	}

	for i := range s.entities {
		errs = append(errs, s.validateEntity(&s.entities[i])...)
	}

	if err := errs.errorOrNil(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Schema) validateEntity(e *Entity) Errors {
	var errs Errors

	var keys []string
	for _, p := range e.Properties {
		if p.PrimaryKey {
			keys = append(keys, p.Name)
		}
	}
	if e.PrimaryKey == "" && len(keys) == 1 {
		e.PrimaryKey = keys[0]
	}

	switch {
	case e.Embedded && (e.PrimaryKey != "" || len(keys) > 0):
		errs = append(errs, validationf(KindEmbeddedPrimaryKey, e.Name, e.PrimaryKey, "embedded entities cannot declare a primary key"))
	case len(keys) > 1:
		errs = append(errs, validationf(KindMultiplePrimaryKeys, e.Name, "", "primary keys declared on %v", keys))
	case e.PrimaryKey != "":
		p, ok := e.Property(e.PrimaryKey)
		if !ok {
			errs = append(errs, validationf(KindPrimaryKeyMismatch, e.Name, e.PrimaryKey, "primary key names no property"))
		} else if !p.PrimaryKey {
			errs = append(errs, validationf(KindPrimaryKeyMismatch, e.Name, e.PrimaryKey, "property is not flagged as primary key"))
		}
	}

	for j := range e.Properties {
		errs = append(errs, s.validateProperty(e.Name, &e.Properties[j])...)
	}
	return errs
}

func (s *Schema) validateProperty(entity string, p *Property) Errors {
	var errs Errors

	info, ok := catalog.Lookup(p.Type)
	if !ok || (p.Cardinality != catalog.Single && p.Cardinality != catalog.List) {
		return Errors{validationf(KindIllegalType, entity, p.Name, "unknown type %s", p.Key())}
	}

	if p.PrimaryKey {
		if !info.PrimaryKey || p.IsList() {
			errs = append(errs, validationf(KindPrimaryKeyType, entity, p.Name, "%s cannot be a primary key", p.Key()))
		}
		if p.Nullable {
			errs = append(errs, validationf(KindPrimaryKeyNullable, entity, p.Name, "primary keys cannot be nullable"))
		}
		p.Indexed = true
	}

	if !info.Reference {
		p.ObjectType = ""
		p.Target = NoTarget
	} else {
		target, found := s.byName[p.ObjectType]
		if !found {
			errs = append(errs, &UnresolvedReferenceError{Entity: entity, Property: p.Name, Target: p.ObjectType})
			p.Target = NoTarget
		} else {
			p.Target = target
			if s.entities[target].Embedded {
				p.Type = catalog.EmbeddedLink
			} else {
				p.Type = catalog.Link
			}
		}
		if p.IsList() && p.Nullable {
			errs = append(errs, validationf(KindNullableLinkElement, entity, p.Name, "list elements of links cannot be nullable"))
		}
	}

	if p.Indexed && !p.PrimaryKey {
		if p.IsList() || info.Reference || !info.Indexable {
			errs = append(errs, validationf(KindIllegalIndex, entity, p.Name, "%s cannot be indexed", p.Key()))
		}
	}

	return errs
}
