// Package overview provides run lifecycle tracking for calculator sessions.
// It collects evaluation counts, per-operator application statistics, the
// most recent result, and wall-clock bounds over a single run.
// The central type is [Overview]; use [OverviewFromContext] to obtain or create
// an instance bound to a [context.Context], and [Overview.Summary] to
// retrieve a detailed breakdown after the run completes.
package overview
