package schemas

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// compiled caches schemas by absolute path; the CLI and tests validate against the same few files
// repeatedly.
var compiled sync.Map // string -> *gojsonschema.Schema

func load(schemaPath string) (*gojsonschema.Schema, error) {
	abs, err := filepath.Abs(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve schema path: %w", err)
	}
	if cached, ok := compiled.Load(abs); ok {
		return cached.(*gojsonschema.Schema), nil
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("schema file not found: %s", abs)
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewReferenceLoader("file://" + filepath.ToSlash(abs)))
	if err != nil {
		return nil, &SchemaLoadError{Path: abs, Cause: err}
	}
	actual, _ := compiled.LoadOrStore(abs, schema)
	return actual.(*gojsonschema.Schema), nil
}

func check(schemaPath string, doc gojsonschema.JSONLoader) error {
	schema, err := load(schemaPath)
	if err != nil {
		return err
	}
	result, err := schema.Validate(doc)
	if err != nil {
		return &SchemaLoadError{Path: schemaPath, Cause: err}
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		verr.Errors = append(verr.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return verr
}

// ValidateJSON validates the JSON file at jsonPath.
func ValidateJSON(schemaPath, jsonPath string) error {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("JSON file not found: %s", jsonPath)
		}
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	return ValidateBytes(schemaPath, data)
}

// ValidateBytes validates raw JSON content.
func ValidateBytes(schemaPath string, data []byte) error {
	return check(schemaPath, gojsonschema.NewBytesLoader(data))
}

// ValidateDocument validates an in-memory value as it would be encoded by encoding/json.
func ValidateDocument(schemaPath string, doc any) error {
	return check(schemaPath, gojsonschema.NewGoLoader(doc))
}
