package diff

import (
	"reflect"
	"sort"

	"github.com/mockharness/mockharness/pkg/mock"
)

// TypeTag is the coarse type classification used for structural comparison.
type TypeTag string

const (
	TagString   TypeTag = "string"
	TagNumber   TypeTag = "number"
	TagBoolean  TypeTag = "boolean"
	TagArray    TypeTag = "array"
	TagObject   TypeTag = "object"
	TagFunction TypeTag = "function"
)

// Member is one expected property or method of a shape.
type Member struct {
	// Type is the expected coarse type tag
	Type TypeTag

	// Required marks the member as mandatory; a missing required member
	// is a critical difference, a missing optional one is medium.
	Required bool
}

// Shape is the expected surface of a mock: named properties and methods,
// compared one level deep.
type Shape struct {
	Properties map[string]Member
	Methods    map[string]Member
}

// NewShape creates an empty shape.
func NewShape() *Shape {
	return &Shape{
		Properties: make(map[string]Member),
		Methods:    make(map[string]Member),
	}
}

// Property adds an expected property and returns the shape for chaining.
func (s *Shape) Property(name string, t TypeTag, required bool) *Shape {
	s.Properties[name] = Member{Type: t, Required: required}
	return s
}

// Method adds an expected method and returns the shape for chaining.
func (s *Shape) Method(name string, required bool) *Shape {
	s.Methods[name] = Member{Type: TagFunction, Required: required}
	return s
}

// Require marks the named members required, whichever bucket they are in.
func (s *Shape) Require(names ...string) *Shape {
	for _, name := range names {
		if m, ok := s.Properties[name]; ok {
			m.Required = true
			s.Properties[name] = m
		}
		if m, ok := s.Methods[name]; ok {
			m.Required = true
			s.Methods[name] = m
		}
	}
	return s
}

// MemberNames returns the sorted member names of both buckets.
func (s *Shape) MemberNames() []string {
	names := make([]string, 0, len(s.Properties)+len(s.Methods))
	for name := range s.Properties {
		names = append(names, name)
	}
	for name := range s.Methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ShapeOf builds an expected shape from a known-good reference value using
// the same analysis the engine applies to actual values. Every member is
// optional; call Require to mark the mandatory ones.
func ShapeOf(reference any) *Shape {
	s := NewShape()
	a := analyze(reference)
	if a.opaque {
		return s
	}
	for name, m := range a.members {
		if m.kind == kindMethod {
			s.Methods[name] = Member{Type: TagFunction}
		} else {
			s.Properties[name] = Member{Type: m.tag}
		}
	}
	return s
}

// memberKind distinguishes callable members from data members.
type memberKind uint8

const (
	kindProperty memberKind = iota
	kindMethod
)

// actualMember is one analyzed member of a live value.
type actualMember struct {
	kind         memberKind
	tag          TypeTag
	instrumented bool
}

// actualShape is the analyzed surface of a live value. opaque means the
// value could not be walked (a bare function whose invocation failed, or a
// scalar) and must be treated as a leaf.
type actualShape struct {
	members map[string]actualMember
	opaque  bool
	tag     TypeTag
}

// analyze inspects a live value one level deep. Callables are invoked with
// no arguments and the return value is analyzed instead: a hook mock is a
// function that returns its API surface. Invocation failures fall back to
// an opaque function leaf.
func analyze(actual any) actualShape {
	if c, ok := actual.(*mock.Callable); ok && c != nil {
		if out, ok := invoke(c.Fn); ok {
			return analyze(out)
		}
		return actualShape{opaque: true, tag: TagFunction}
	}

	v := reflect.ValueOf(actual)
	if v.Kind() == reflect.Func {
		if out, ok := invoke(actual); ok {
			return analyze(out)
		}
		return actualShape{opaque: true, tag: TagFunction}
	}

	switch surface := actual.(type) {
	case map[string]any:
		return walkMap(surface)
	}

	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return actualShape{opaque: true, tag: TagObject}
		}
		v = v.Elem()
	}
	if v.Kind() == reflect.Struct {
		return walkStruct(v)
	}

	return actualShape{opaque: true, tag: typeTagOf(actual)}
}

// invoke calls fn with no arguments and returns its first result. Returns
// ok=false when fn is not a zero-argument function or panics.
func invoke(fn any) (out any, ok bool) {
	defer func() {
		if recover() != nil {
			out, ok = nil, false
		}
	}()

	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return nil, false
	}
	t := v.Type()
	if t.NumIn() != 0 && !(t.IsVariadic() && t.NumIn() == 1) {
		return nil, false
	}
	if t.NumOut() == 0 {
		return nil, false
	}

	results := v.Call(nil)
	return results[0].Interface(), true
}

func walkMap(surface map[string]any) actualShape {
	a := actualShape{members: make(map[string]actualMember, len(surface))}
	for name, value := range surface {
		a.members[name] = classify(value)
	}
	return a
}

func walkStruct(v reflect.Value) actualShape {
	t := v.Type()
	a := actualShape{members: make(map[string]actualMember)}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		a.members[field.Name] = classify(v.Field(i).Interface())
	}
	for i := 0; i < t.NumMethod(); i++ {
		a.members[t.Method(i).Name] = actualMember{kind: kindMethod, tag: TagFunction}
	}
	return a
}

// classify tags one member as a method or property.
func classify(value any) actualMember {
	if c, ok := value.(*mock.Callable); ok && c != nil {
		return actualMember{kind: kindMethod, tag: TagFunction, instrumented: c.Instrumented()}
	}
	tag := typeTagOf(value)
	if tag == TagFunction {
		return actualMember{kind: kindMethod, tag: TagFunction}
	}
	return actualMember{kind: kindProperty, tag: tag}
}

// typeTagOf maps a Go value to its coarse type tag.
func typeTagOf(value any) TypeTag {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.String:
		return TagString
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return TagNumber
	case reflect.Bool:
		return TagBoolean
	case reflect.Slice, reflect.Array:
		return TagArray
	case reflect.Func:
		return TagFunction
	default:
		return TagObject
	}
}
