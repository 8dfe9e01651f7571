package jsonschema

// OutputFormat selects which of the three standard result shapes
// ValidateWithOptions produces: Flag collapses to a bare validity bit, Basic
// flattens the tree into a single-level list, Hierarchical keeps the full
// evaluation tree.
type OutputFormat int

const (
	// FormatHierarchical returns the full evaluation tree (the default).
	FormatHierarchical OutputFormat = iota
	// FormatBasic flattens the tree to a single level, as ToList(false) does.
	FormatBasic
	// FormatFlag collapses the result to {"valid": bool}, as ToFlag does.
	FormatFlag
)

// LogFunc receives a diagnostic trace message during evaluation. Messages
// are free-form and exist for troubleshooting, not for programmatic
// consumption.
type LogFunc func(message string, fields map[string]any)

// Options carries the per-call evaluation configuration the specification
// groups under "Options": output shape, cooperative cancellation, and an
// optional diagnostic sink. Compile-time configuration (default base URI,
// format-assertion strictness, draft selection, custom formats/media
// types/loaders) lives on Compiler instead, since those are consulted during
// Compile, not Validate.
type Options struct {
	// OutputFormat selects Flag, Basic, or Hierarchical. Zero value is Hierarchical.
	OutputFormat OutputFormat

	// Cancel, when set, is polled at every subschema boundary; once
	// cancelled, evaluation unwinds early with a partial, invalid result.
	Cancel *CancellationToken

	// Log, when set, receives trace messages as evaluation proceeds.
	Log LogFunc
}

// NewOptions returns Options defaulted to Hierarchical output with no
// cancellation token or log sink.
func NewOptions() *Options {
	return &Options{OutputFormat: FormatHierarchical}
}

// WithOutputFormat sets the output shape and returns the Options for chaining.
func (o *Options) WithOutputFormat(format OutputFormat) *Options {
	o.OutputFormat = format
	return o
}

// WithCancel attaches a cancellation token and returns the Options for chaining.
func (o *Options) WithCancel(token *CancellationToken) *Options {
	o.Cancel = token
	return o
}

// WithLog attaches a trace sink and returns the Options for chaining.
func (o *Options) WithLog(log LogFunc) *Options {
	o.Log = log
	return o
}

func (o *Options) trace(message string, fields map[string]any) {
	if o != nil && o.Log != nil {
		o.Log(message, fields)
	}
}

// ValidateWithOptions checks instance against the schema the way Validate
// does, but honors OutputFormat and cooperative cancellation. The returned
// `any` is a *Flag or *List depending on opts.OutputFormat; callers that
// always want the full *EvaluationResult tree should use Validate instead.
func (s *Schema) ValidateWithOptions(instance interface{}, opts *Options) any {
	if opts == nil {
		opts = NewOptions()
	}

	opts.trace("validate:start", map[string]any{"outputFormat": opts.OutputFormat})

	dynamicScope := NewDynamicScopeWithCancel(opts.Cancel)
	result, _, _ := s.evaluate(instance, dynamicScope)

	opts.trace("validate:done", map[string]any{"valid": result.Valid})

	switch opts.OutputFormat {
	case FormatFlag:
		return result.ToFlag()
	case FormatBasic:
		return result.ToList(false)
	default:
		return result.ToList(true)
	}
}
