package jsonschema

import "sort"

// LegacyNode is a single node in the pre-2020-12 output shape described by
// the external interfaces: keywordLocation/absoluteKeywordLocation instead
// of evaluationPath/schemaLocation, and per-keyword entries folded into
// `errors`/`annotations` arrays instead of a map, placed after the nested
// results (which keep traversal order) in sorted keyword order.
type LegacyNode struct {
	Valid                   bool         `json:"valid"`
	KeywordLocation         string       `json:"keywordLocation"`
	AbsoluteKeywordLocation string       `json:"absoluteKeywordLocation,omitempty"`
	InstanceLocation        string       `json:"instanceLocation"`
	Error                   string       `json:"error,omitempty"`
	Errors                  []LegacyNode `json:"errors,omitempty"`
	Annotations             []LegacyNode `json:"annotations,omitempty"`
	Annotation              any          `json:"annotation,omitempty"`
}

// ToLegacy converts the hierarchical evaluation result into the
// pre-2020-12 output mode. Invalid nodes carry a top-level `error` plus an
// `errors` array (nested results first, then one entry per remaining
// keyword error); valid nodes carry an `annotations` array built the same
// way. Leftover per-keyword entries are emitted in sorted keyword order for
// determinism, since a Go map does not preserve declaration order.
func (e *EvaluationResult) ToLegacy() *LegacyNode {
	node := &LegacyNode{
		Valid:                   e.Valid,
		KeywordLocation:         e.EvaluationPath,
		AbsoluteKeywordLocation: e.SchemaLocation,
		InstanceLocation:        e.InstanceLocation,
	}

	if !e.Valid {
		if err, ok := e.Errors[""]; ok {
			node.Error = err.Error()
		} else {
			node.Error = "evaluation failed"
		}

		var entries []LegacyNode
		for _, detail := range e.Details {
			entries = append(entries, *detail.ToLegacy())
		}
		for _, key := range sortedKeys(e.Errors) {
			if key == "" {
				continue
			}
			entries = append(entries, LegacyNode{
				Valid:                   false,
				KeywordLocation:         joinPointer(e.EvaluationPath, key),
				AbsoluteKeywordLocation: joinAbsolute(e.SchemaLocation, key),
				InstanceLocation:        e.InstanceLocation,
				Error:                   e.Errors[key].Error(),
			})
		}
		node.Errors = entries
		return node
	}

	var entries []LegacyNode
	for _, detail := range e.Details {
		entries = append(entries, *detail.ToLegacy())
	}
	for _, key := range sortedAnnotationKeys(e.Annotations) {
		entries = append(entries, LegacyNode{
			Valid:                   true,
			KeywordLocation:         joinPointer(e.EvaluationPath, key),
			AbsoluteKeywordLocation: joinAbsolute(e.SchemaLocation, key),
			InstanceLocation:        e.InstanceLocation,
			Annotation:              e.Annotations[key],
		})
	}
	if len(entries) > 0 {
		node.Annotations = entries
	}
	return node
}

func joinPointer(base, token string) string {
	return base + "/" + token
}

func joinAbsolute(base, token string) string {
	if base == "" {
		return ""
	}
	return base + "/" + token
}

func sortedKeys(m map[string]*EvaluationError) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedAnnotationKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
