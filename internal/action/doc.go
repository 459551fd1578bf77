// Package action defines invocable console actions and the pieces that turn
// untyped operator input into a call.
//
// An Action pairs a callable with an explicit parameter signature and three
// classification flags (anonymous, risky, value-only). The Registry keeps actions
// in insertion order, the loader derives names and flags from heterogeneous
// entries, the Binder coerces raw strings through the signature, and the
// SignatureValidator decides whether a signature can be bound at all.
//
// Execution, output capture and confirmation live in the engine and confirm
// subpackages so front-ends can compose them independently.
package action
