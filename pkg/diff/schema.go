package diff

import (
	"fmt"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// callableFormat marks a JSON Schema property as a method rather than a
// data property; JSON Schema has no native function type.
const callableFormat = "callable"

// ShapeFromSchema builds an expected shape from a JSON Schema document.
// Top-level properties become shape members: entries with
// format "callable" become methods, everything else becomes a property
// tagged by its schema type. Names in the schema's required list are
// marked required.
func ShapeFromSchema(schemaJSON []byte) (*Shape, error) {
	sch, err := jsonschema.CompileString("shape.json", string(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("compile shape schema: %w", err)
	}

	required := make(map[string]bool, len(sch.Required))
	for _, name := range sch.Required {
		required[name] = true
	}

	s := NewShape()
	for name, prop := range sch.Properties {
		if prop.Format == callableFormat {
			s.Methods[name] = Member{Type: TagFunction, Required: required[name]}
			continue
		}
		s.Properties[name] = Member{Type: schemaTypeTag(prop.Types), Required: required[name]}
	}
	return s, nil
}

// schemaTypeTag maps JSON Schema types onto coarse type tags.
func schemaTypeTag(types []string) TypeTag {
	if len(types) == 0 {
		return TagObject
	}
	switch types[0] {
	case "string":
		return TagString
	case "number", "integer":
		return TagNumber
	case "boolean":
		return TagBoolean
	case "array":
		return TagArray
	default:
		return TagObject
	}
}

// functionMarker is the string value that marks a method in a reference
// JSON document, where functions cannot be represented directly.
const functionMarker = "<function>"

// ShapeFromDocument builds an expected shape from a reference JSON
// document, optionally narrowed to the object selected by a JSONPath
// expression. String values equal to "<function>" become methods. All
// members are optional; call Require to mark the mandatory ones.
func ShapeFromDocument(doc []byte, path string) (*Shape, error) {
	parsed, err := oj.Parse(doc)
	if err != nil {
		return nil, fmt.Errorf("parse reference document: %w", err)
	}

	if path != "" {
		x, err := jp.ParseString(path)
		if err != nil {
			return nil, fmt.Errorf("parse path %q: %w", path, err)
		}
		parsed = x.First(parsed)
		if parsed == nil {
			return nil, fmt.Errorf("path %q selects nothing in the reference document", path)
		}
	}

	obj, ok := parsed.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("reference document is not an object (got %T)", parsed)
	}

	s := NewShape()
	for name, value := range obj {
		if str, ok := value.(string); ok && str == functionMarker {
			s.Methods[name] = Member{Type: TagFunction}
			continue
		}
		s.Properties[name] = Member{Type: typeTagOf(value)}
	}
	return s, nil
}
