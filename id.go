package jsonschema

import "net/url"

// evaluateID checks if the `$id` attribute in the schema conforms to URI standards and JSON Schema
// Draft 2020-12 specifications.
//   - `$id` is a URI that uniquely identifies the schema.
//   - It must be an absolute URI without a fragment.
//   - This URI serves both as an identifier and as a base URI for resolving relative references.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-the-id-keyword
func evaluateID(schema *Schema) *EvaluationError {
	if schema.ID == "" {
		return nil
	}

	id := schema.ID
	if !isValidURI(id) {
		id = resolveRelativeURI(schema.baseURI, id)
	}

	uri, err := url.Parse(id)
	if err != nil {
		return NewEvaluationError("$id", "id_invalid", "Invalid `$id` URI: {error}", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if !uri.IsAbs() {
		return NewEvaluationError("$id", "id_not_absolute", "`$id` must be an absolute URI without a fragment.")
	}

	if uri.Fragment != "" {
		return NewEvaluationError("$id", "id_contains_fragment", "`$id` must not contain a fragment.")
	}

	return nil
}
