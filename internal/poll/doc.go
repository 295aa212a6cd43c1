// Package poll provides the wait-until-predicate primitive the fetch
// pipeline is built on.
//
// The remote service exposes no completion callbacks, so every readiness
// and completion check is a predicate evaluated on an interval with a
// hard timeout ceiling. Until checks the predicate immediately, then
// sleeps between attempts, and never blocks past the timeout or the
// caller's context.
package poll
