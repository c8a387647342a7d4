// Package pipeline runs the analysis of one article URL through an ordered
// list of strategies and always produces a result.
//
// The default order is content first (fetch, extract, structured scoring),
// then the URL-only analysis. A strategy that cannot produce a result
// declines and the next one is tried. An error or panic from any strategy
// ends the run and triggers the single recovery path: a URL-only analysis
// with reduced confidence and a localized warning.
//
// Design decision: We keep the strategy list ordered and uniform instead of
// nesting the fallbacks in one function because:
// 1. Every strategy has the same contract, so the orchestrator logs and
// recovers them the same way
// 2. The CLI can swap the content strategy (structured or plain text)
// without touching the recovery logic
// 3. Tests can inject strategies that fail or panic
//
// BatchProcessor analyzes several URLs concurrently with errgroup. The
// analyses share nothing except the blacklist cache.
package pipeline
