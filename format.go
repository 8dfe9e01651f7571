package jsonschema

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonpointer"
)

// EvaluateFormat checks if the data conforms to the format specified in the schema.
// According to the JSON Schema Draft 2020-12:
//   - The "format" keyword defines the data format expected for a value.
//   - The format must be a string that names a specific format which the value should conform to.
//   - The function uses custom formats first, then falls back to the global `Formats` map.
//   - If the format is not supported or not found, it may fall back to a no-op validation depending on configuration.
//
// This method ensures that data matches the expected format as specified in the schema.
// It handles formats as annotations by default, but can assert format validation if configured.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-format
func evaluateFormat(schema *Schema, value interface{}) *EvaluationError {
	if schema.Format == nil {
		return nil
	}

	formatName := *schema.Format
	var formatDef *FormatDef
	var customValidator func(interface{}) bool

	// 1. Check compiler-specific custom formats first
	if schema.compiler != nil {
		schema.compiler.customFormatsRW.RLock()
		formatDef = schema.compiler.customFormats[formatName]
		schema.compiler.customFormatsRW.RUnlock()
	}

	if formatDef != nil {
		// Found in custom formats
		if formatDef.Type != "" {
			valueType := getDataType(value)
			if !matchesType(valueType, formatDef.Type) {
				return nil // Type doesn't match, so skip validation
			}
		}
		customValidator = formatDef.Validate
	} else if globalValidator, ok := Formats[formatName]; ok {
		// Fallback to global formats
		customValidator = globalValidator
	}

	// If a validator was found (either custom or global)
	if customValidator != nil {
		if !customValidator(value) {
			if schema.compiler != nil && schema.compiler.AssertFormat {
				return NewEvaluationError("format", "format_mismatch", "Value does not match format '{format}'", map[string]interface{}{"format": formatName})
			}
		}
		return nil // Validation passed or not asserted
	}

	// If no validator was found and AssertFormat is true, fail
	if schema.compiler != nil && schema.compiler.AssertFormat {
		return NewEvaluationError("format", "unknown_format", "Unknown format '{format}'", map[string]interface{}{"format": formatName})
	}

	return nil // Default behavior: ignore unknown formats
}

// validateFormatAvailability walks the schema tree and reports every `format`
// keyword whose value names neither a custom format registered on compiler
// nor a builtin entry in Formats. Only called when Compiler.RequireFormat is set.
func (s *Schema) validateFormatAvailability(compiler *Compiler) error {
	if s == nil {
		return nil
	}

	visited := make(map[*Schema]bool)
	var names []string
	s.collectUnknownFormats(compiler, nil, visited, &names)
	if len(names) == 0 {
		return nil
	}

	return fmt.Errorf("%w: %s", ErrUnregisteredFormat, strings.Join(names, ", "))
}

func (s *Schema) collectUnknownFormats(compiler *Compiler, pathTokens []string, visited map[*Schema]bool, names *[]string) {
	if s == nil || visited[s] {
		return
	}
	visited[s] = true

	if s.Format != nil {
		name := *s.Format
		known := false
		if compiler != nil {
			compiler.customFormatsRW.RLock()
			_, known = compiler.customFormats[name]
			compiler.customFormatsRW.RUnlock()
		}
		if !known {
			_, known = Formats[name]
		}
		if !known {
			*names = append(*names, "#"+jsonpointer.Format(slices.Concat(pathTokens, []string{"format"})...)+"="+name)
		}
	}

	addSchema := func(child *Schema, token string) {
		child.collectUnknownFormats(compiler, slices.Concat(pathTokens, []string{token}), visited, names)
	}
	addSchemaMap := func(m map[string]*Schema, prefix string) {
		for key, schema := range m {
			schema.collectUnknownFormats(compiler, slices.Concat(pathTokens, []string{prefix, key}), visited, names)
		}
	}
	addSchemaSlice := func(children []*Schema, prefix string) {
		for i, child := range children {
			child.collectUnknownFormats(compiler, slices.Concat(pathTokens, []string{prefix, strconv.Itoa(i)}), visited, names)
		}
	}

	if s.Properties != nil {
		addSchemaMap(map[string]*Schema(*s.Properties), "properties")
	}
	if s.PatternProperties != nil {
		addSchemaMap(map[string]*Schema(*s.PatternProperties), "patternProperties")
	}
	if s.Defs != nil {
		addSchemaMap(s.Defs, "$defs")
	}
	if s.DependentSchemas != nil {
		addSchemaMap(s.DependentSchemas, "dependentSchemas")
	}

	addSchema(s.AdditionalProperties, "additionalProperties")
	addSchema(s.UnevaluatedProperties, "unevaluatedProperties")
	addSchema(s.UnevaluatedItems, "unevaluatedItems")
	addSchema(s.PropertyNames, "propertyNames")
	addSchema(s.ContentSchema, "contentSchema")
	addSchema(s.Items, "items")
	addSchema(s.Contains, "contains")
	addSchema(s.Not, "not")
	addSchema(s.If, "if")
	addSchema(s.Then, "then")
	addSchema(s.Else, "else")

	addSchemaSlice(s.PrefixItems, "prefixItems")
	addSchemaSlice(s.AllOf, "allOf")
	addSchemaSlice(s.AnyOf, "anyOf")
	addSchemaSlice(s.OneOf, "oneOf")
}

// matchesType checks if a value type matches the required type
func matchesType(valueType, requiredType string) bool {
	if requiredType == "" {
		return true // No type restriction
	}

	// Special handling: integer is also considered number
	if requiredType == "number" && valueType == "integer" {
		return true
	}

	return valueType == requiredType
}
