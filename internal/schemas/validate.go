// Package schemas checks config files and JSON exports against the JSON
// Schemas shipped inside the binary.
package schemas

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	jsonschemas "github.com/jonathan/jobdash/schemas"
)

// Name identifies a built-in schema.
type Name string

const (
	Config Name = "config"
	Export Name = "export"
)

// RootField is the FieldError.Field for constraints on the whole document,
// such as a missing required key.
const RootField = "(document)"

var builtin = map[Name]func() (*gojsonschema.Schema, error){
	Config: compileOnce(Config, jsonschemas.Config),
	Export: compileOnce(Export, jsonschemas.Export),
}

func compileOnce(name Name, content string) func() (*gojsonschema.Schema, error) {
	return sync.OnceValues(func() (*gojsonschema.Schema, error) {
		return compile(string(name), []byte(content))
	})
}

// Lookup reports whether s names a built-in schema.
func Lookup(s string) (Name, bool) {
	n := Name(strings.ToLower(strings.TrimSpace(s)))
	_, ok := builtin[n]
	return n, ok
}

// FieldError is one failed constraint.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every constraint a document failed.
type ValidationError struct {
	Schema string
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "document does not match %s schema (%d problems)", e.Schema, len(e.Errors))
	for _, fe := range e.Errors {
		fmt.Fprintf(&sb, "\n  %s: %s", fe.Field, fe.Message)
	}
	return sb.String()
}

// SchemaError reports a schema that could not be read or compiled.
type SchemaError struct {
	Schema string
	Cause  error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("unusable schema %s: %v", e.Schema, e.Cause)
}

func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Validate checks doc against a built-in schema.
func Validate(name Name, doc []byte) error {
	load, ok := builtin[name]
	if !ok {
		return fmt.Errorf("unknown schema %q: use config or export", name)
	}
	schema, err := load()
	if err != nil {
		return err
	}
	return check(string(name), schema, doc)
}

// ValidateWithFile checks doc against the schema file at path, for schemas
// other than the built-in ones.
func ValidateWithFile(path string, doc []byte) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return &SchemaError{Schema: path, Cause: err}
	}
	schema, err := compile(path, content)
	if err != nil {
		return err
	}
	return check(path, schema, doc)
}

func compile(label string, content []byte) (*gojsonschema.Schema, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(content))
	if err != nil {
		return nil, &SchemaError{Schema: label, Cause: err}
	}
	return schema, nil
}

func check(label string, schema *gojsonschema.Schema, doc []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("document for %s schema is not valid JSON: %w", label, err)
	}
	if result.Valid() {
		return nil
	}

	ve := &ValidationError{Schema: label, Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" || field == "(root)" {
			field = RootField
		}
		ve.Errors = append(ve.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return ve
}
