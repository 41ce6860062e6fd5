package blueprint

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaSource string

const schemaURL = "https://architect.local/schemas/blueprint.schema.json"

// ErrEmpty is returned when there is no text to decode.
var ErrEmpty = errors.New("blueprint: empty payload")

// ErrMalformed is returned when the payload is not JSON or does not match
// the blueprint schema.
var ErrMalformed = errors.New("blueprint: malformed payload")

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(schemaURL, bytes.NewReader([]byte(schemaSource))); err != nil {
			compileErr = fmt.Errorf("failed to load blueprint schema: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("failed to compile blueprint schema: %w", compileErr)
		}
	})
	return compiled, compileErr
}

// SchemaJSON returns the raw JSON Schema document.
func SchemaJSON() string {
	return schemaSource
}

// Validate checks raw JSON against the blueprint schema.
func Validate(raw []byte) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return validateValue(v)
}

func validateValue(v any) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: schema validation failed: %v", ErrMalformed, err)
	}
	return nil
}

// Decode parses and validates a raw response and stamps keyword onto the
// result. Surrounding whitespace and a markdown code fence are tolerated.
func Decode(raw []byte, keyword string) (*Blueprint, error) {
	text := StripCodeFence(raw)
	if len(text) == 0 {
		return nil, ErrEmpty
	}

	var v any
	if err := json.Unmarshal(text, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := validateValue(v); err != nil {
		return nil, err
	}

	var bp Blueprint
	if err := json.Unmarshal(text, &bp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	bp.Keyword = keyword
	return &bp, nil
}

// StripCodeFence trims whitespace and removes a surrounding ``` fence,
// with or without a language tag.
func StripCodeFence(raw []byte) []byte {
	text := bytes.TrimSpace(raw)
	if !bytes.HasPrefix(text, []byte("```")) {
		return text
	}
	text = text[3:]
	if nl := bytes.IndexByte(text, '\n'); nl >= 0 {
		text = text[nl+1:]
	}
	text = bytes.TrimSpace(text)
	text = bytes.TrimSuffix(text, []byte("```"))
	return bytes.TrimSpace(text)
}
