package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/panyam/designboard/editor"
)

const eventSchemaURL = "mem://designboard/event.schema.json"

var (
	schemaOnce  sync.Once
	eventSchema *jsonschema.Schema
	schemaErr   error
)

func point() map[string]any {
	return map[string]any{
		"type":                 "object",
		"required":             []string{"x", "y"},
		"properties":           map[string]any{"x": map[string]any{"type": "number"}, "y": map[string]any{"type": "number"}},
		"additionalProperties": false,
	}
}

// eventSchemaDoc describes editor.Event. The event types come from the editor
// so the two cannot drift apart.
func eventSchemaDoc() map[string]any {
	str := map[string]any{"type": "string"}
	boolean := map[string]any{"type": "boolean"}
	num := map[string]any{"type": "number"}
	anchor := map[string]any{"type": "string", "pattern": "^(top|bottom|left|right)-(source|target)$"}
	return map[string]any{
		"$schema":  "http://json-schema.org/draft-07/schema#",
		"type":     "object",
		"required": []string{"type"},
		"properties": map[string]any{
			"type":         map[string]any{"enum": editor.EventTypes},
			"client":       point(),
			"at":           point(),
			"kind":         str,
			"key":          str,
			"ctrl":         boolean,
			"shift":        boolean,
			"meta":         boolean,
			"alt":          boolean,
			"inTextField":  boolean,
			"deltaX":       num,
			"deltaY":       num,
			"node":         str,
			"edge":         str,
			"source":       str,
			"sourceAnchor": anchor,
			"target":       str,
			"targetAnchor": anchor,
			"end":          map[string]any{"enum": []string{"start", "end", "source", "target"}},
			"anchor":       anchor,
			"color":        map[string]any{"type": "string", "pattern": "^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$"},
			"routing":      map[string]any{"enum": []string{"bezier", "step", "smoothstep", "straight"}},
			"arrow":        map[string]any{"enum": []string{"none", "arrow"}},
			"thickness":    map[string]any{"type": "integer"},
			"tab":          map[string]any{"enum": []string{string(editor.StyleTab), string(editor.ConnectionTab)}},
			"text":         str,
			"viewport": map[string]any{
				"type":     "object",
				"required": []string{"zoom"},
				"properties": map[string]any{
					"x": num, "y": num, "zoom": map[string]any{"type": "number", "exclusiveMinimum": 0},
				},
			},
		},
		"additionalProperties": false,
	}
}

func loadEventSchema() {
	doc, err := json.Marshal(eventSchemaDoc())
	if err != nil {
		schemaErr = err
		return
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(eventSchemaURL, bytes.NewReader(doc)); err != nil {
		schemaErr = err
		return
	}
	eventSchema, schemaErr = c.Compile(eventSchemaURL)
}

// DecodeEvent validates a JSON event against the event schema and decodes it.
func DecodeEvent(data []byte) (editor.Event, error) {
	schemaOnce.Do(loadEventSchema)
	if schemaErr != nil {
		return editor.Event{}, fmt.Errorf("error loading event schema: %w", schemaErr)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return editor.Event{}, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := eventSchema.Validate(v); err != nil {
		return editor.Event{}, fmt.Errorf("%w: %w", editor.ErrInvalidEvent, err)
	}
	var ev editor.Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return editor.Event{}, fmt.Errorf("invalid event: %w", err)
	}
	return ev, nil
}
