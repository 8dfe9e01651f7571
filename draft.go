package jsonschema

import "strings"

// Draft identifies which JSON Schema dialect a schema document evaluates
// under, as reported by DetectDraft and Schema.EffectiveDraft. Evaluation
// does not consult it: keywords are not filtered by draft, $recursiveRef and
// $dynamicRef are each evaluated wherever they appear, and the output shape
// is chosen by the caller (ToList, ToLegacy, Options.OutputFormat).
type Draft string

const (
	// Draft201909 identifies the 2019-09 dialect, the one that defines
	// $recursiveRef/$recursiveAnchor.
	Draft201909 Draft = "2019-09"

	// Draft202012 identifies the 2020-12 dialect, the one that defines
	// $dynamicRef/$dynamicAnchor.
	Draft202012 Draft = "2020-12"
)

var draftMetaSchemas = map[string]Draft{
	"https://json-schema.org/draft/2019-09/schema":        Draft201909,
	"https://json-schema.org/draft/2019-09/hyper-schema":  Draft201909,
	"https://json-schema.org/draft/2020-12/schema":        Draft202012,
	"https://json-schema.org/draft/2020-12/hyper-schema":  Draft202012,
}

// DetectDraft maps a `$schema` URI to the draft it declares. It tolerates a
// trailing `#` fragment and falls back to substring matching for vocabulary
// or custom meta-schema URIs that still embed the draft name. Returns ""
// when the URI names neither supported draft.
func DetectDraft(schemaURI string) Draft {
	if schemaURI == "" {
		return ""
	}

	trimmed := strings.TrimSuffix(schemaURI, "#")
	if draft, ok := draftMetaSchemas[trimmed]; ok {
		return draft
	}

	switch {
	case strings.Contains(trimmed, "2019-09"):
		return Draft201909
	case strings.Contains(trimmed, "2020-12"):
		return Draft202012
	}

	return ""
}

// EffectiveDraft returns the draft this schema evaluates under: the owning
// Compiler's forced draft (Options.evaluate_as) if set, else auto-detected
// from the root schema's `$schema`, defaulting to 2020-12 when neither is
// available.
func (s *Schema) EffectiveDraft() Draft {
	if s == nil {
		return Draft202012
	}

	if c := s.GetCompiler(); c != nil && c.Draft != "" {
		return c.Draft
	}

	if root := s.getRootSchema(); root != nil && root.Schema != "" {
		if draft := DetectDraft(root.Schema); draft != "" {
			return draft
		}
	}

	return Draft202012
}
