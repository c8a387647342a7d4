// Package model defines the core data structures used throughout bsdetector.
//
// This package contains the following main types:
//   - AnalysisScore: The verdict, rating, confidence and reasons produced by a scorer
//   - AnalysisResult: One immutable analysis of one URL
//   - ExtractedContent: Structured features pulled out of an article's HTML
//   - Vote and VotingStats: Community feedback on previous analyses
//   - Report: What the report writers render
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The analyzer, pipeline, votes and report packages all exchange
// these types, so centralizing them prevents import cycles.
//
// JSON field names follow the camelCase names of the persisted vote records so
// that stored votes and rendered analyses share one vocabulary.
package model
