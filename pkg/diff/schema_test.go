package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeFromSchema(t *testing.T) {
	schema := []byte(`{
		"type": "object",
		"required": ["toast"],
		"properties": {
			"toast":  {"type": "object", "format": "callable"},
			"toasts": {"type": "array"},
			"title":  {"type": "string"},
			"count":  {"type": "integer"},
			"open":   {"type": "boolean"}
		}
	}`)

	shape, err := ShapeFromSchema(schema)
	require.NoError(t, err)

	require.Contains(t, shape.Methods, "toast")
	assert.True(t, shape.Methods["toast"].Required)

	require.Contains(t, shape.Properties, "toasts")
	assert.Equal(t, TagArray, shape.Properties["toasts"].Type)
	assert.False(t, shape.Properties["toasts"].Required)

	assert.Equal(t, TagString, shape.Properties["title"].Type)
	assert.Equal(t, TagNumber, shape.Properties["count"].Type)
	assert.Equal(t, TagBoolean, shape.Properties["open"].Type)
}

func TestShapeFromSchema_Invalid(t *testing.T) {
	_, err := ShapeFromSchema([]byte(`{"type": 12}`))
	assert.Error(t, err)
}

func TestShapeFromDocument(t *testing.T) {
	doc := []byte(`{
		"toast": "<function>",
		"toasts": [],
		"title": "hello",
		"count": 3,
		"open": false,
		"config": {"position": "top"}
	}`)

	shape, err := ShapeFromDocument(doc, "")
	require.NoError(t, err)

	assert.Contains(t, shape.Methods, "toast")
	assert.Equal(t, TagArray, shape.Properties["toasts"].Type)
	assert.Equal(t, TagString, shape.Properties["title"].Type)
	assert.Equal(t, TagNumber, shape.Properties["count"].Type)
	assert.Equal(t, TagBoolean, shape.Properties["open"].Type)
	assert.Equal(t, TagObject, shape.Properties["config"].Type)
}

func TestShapeFromDocument_WithJSONPath(t *testing.T) {
	doc := []byte(`{
		"hooks": {
			"useToast": {"toast": "<function>", "toasts": []}
		}
	}`)

	shape, err := ShapeFromDocument(doc, "$.hooks.useToast")
	require.NoError(t, err)

	assert.Contains(t, shape.Methods, "toast")
	assert.Contains(t, shape.Properties, "toasts")
}

func TestShapeFromDocument_PathSelectsNothing(t *testing.T) {
	_, err := ShapeFromDocument([]byte(`{"a": 1}`), "$.missing.path")
	assert.Error(t, err)
}

func TestShapeFromDocument_NotAnObject(t *testing.T) {
	_, err := ShapeFromDocument([]byte(`[1, 2, 3]`), "")
	assert.Error(t, err)
}

func TestShapeFromDocument_RoundTripWithEngine(t *testing.T) {
	doc := []byte(`{"toast": "<function>", "toasts": []}`)
	shape, err := ShapeFromDocument(doc, "")
	require.NoError(t, err)
	shape.Require("toast")

	report := NewEngine().Compare("useToast", shape, map[string]any{
		"toasts": []any{},
	})

	require.Len(t, report.Differences, 1)
	assert.Equal(t, Missing, report.Differences[0].Type)
	assert.Equal(t, "methods.toast", report.Differences[0].Path)
	assert.Equal(t, SeverityCritical, report.Differences[0].Severity)
}
