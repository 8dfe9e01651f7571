package jsonschema

import "sync/atomic"

// CancellationToken is a cooperative cancellation signal threaded through
// evaluation. The evaluator polls it at each subschema boundary; once
// cancelled, evaluation unwinds and returns a partial result tree whose root
// is invalid and carries a Cancelled error. The evaluator owns no timers —
// callers that need a timeout call Cancel from their own timer goroutine.
type CancellationToken struct {
	cancelled atomic.Bool
}

// NewCancellationToken returns a token that has not yet been cancelled.
func NewCancellationToken() *CancellationToken {
	return &CancellationToken{}
}

// Cancel marks the token cancelled. Safe to call concurrently with an
// in-flight evaluation.
func (t *CancellationToken) Cancel() {
	if t == nil {
		return
	}
	t.cancelled.Store(true)
}

// IsCancelled reports whether Cancel has been called. A nil token is never cancelled.
func (t *CancellationToken) IsCancelled() bool {
	return t != nil && t.cancelled.Load()
}
