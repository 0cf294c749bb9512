// Package validation checks rule files against the JSON schemas embedded
// in the binary.
package validation

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Embedded schema names
const (
	SchemaStatWeights   = "stat_weights.schema.json"
	SchemaActionCatalog = "action_catalog.schema.json"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// SchemaValidator validates JSON documents against a named schema
type SchemaValidator interface {
	ValidateFile(dataPath, schema string) error
	ValidateBytes(data []byte, schema string) error
}

type validator struct {
	mu       sync.Mutex
	compiler *jsonschema.Compiler
	schemas  map[string]*jsonschema.Schema
}

// NewSchemaValidator creates a validator over the embedded schemas
func NewSchemaValidator() SchemaValidator {
	return &validator{
		compiler: jsonschema.NewCompiler(),
		schemas:  make(map[string]*jsonschema.Schema),
	}
}

// ValidateFile validates the JSON file at dataPath
func (v *validator) ValidateFile(dataPath, schema string) error {
	data, err := os.ReadFile(dataPath)
	if err != nil {
		return fmt.Errorf("%s %s: %w", ErrMsgReadData, dataPath, err)
	}
	if err := v.ValidateBytes(data, schema); err != nil {
		return fmt.Errorf("%s: %w", dataPath, err)
	}
	return nil
}

// ValidateBytes validates a JSON document
func (v *validator) ValidateBytes(data []byte, schema string) error {
	compiled, err := v.load(schema)
	if err != nil {
		return err
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgParseData, err)
	}

	if err := compiled.Validate(doc); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// load compiles an embedded schema once
func (v *validator) load(name string) (*jsonschema.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if s, ok := v.schemas[name]; ok {
		return s, nil
	}

	raw, err := schemaFS.ReadFile("schemas/" + name)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", ErrMsgUnknownSchema, name, err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", ErrMsgCompileSchema, name, err)
	}
	if err := v.compiler.AddResource(name, doc); err != nil {
		return nil, fmt.Errorf("%s %q: %w", ErrMsgCompileSchema, name, err)
	}

	s, err := v.compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", ErrMsgCompileSchema, name, err)
	}

	v.schemas[name] = s
	return s, nil
}

// formatValidationError flattens the cause tree into one line per failure
func formatValidationError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("%s: %w", ErrMsgValidation, err)
	}

	var lines []string
	collectErrors(ve, &lines)
	return fmt.Errorf("%s:\n%s", ErrMsgValidation, strings.Join(lines, "\n"))
}

func collectErrors(err *jsonschema.ValidationError, lines *[]string) {
	if len(err.Causes) == 0 {
		*lines = append(*lines, formatLeaf(err))
		return
	}
	for _, cause := range err.Causes {
		collectErrors(cause, lines)
	}
}

func formatLeaf(err *jsonschema.ValidationError) string {
	location := "(root)"
	if len(err.InstanceLocation) > 0 {
		location = "/" + strings.Join(err.InstanceLocation, "/")
	}

	keyword := "schema"
	if err.ErrorKind != nil {
		if path := err.ErrorKind.KeywordPath(); len(path) > 0 {
			keyword = strings.Join(path, ".")
		}
	}
	return fmt.Sprintf("  - at %s: %s validation failed", location, keyword)
}
