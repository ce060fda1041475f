// Package match scores how well a candidate's resume fits a target job
// description. It combines semantic similarity between sentence embeddings
// with an explicit keyword-gap analysis and produces a structured,
// reproducible report.
//
// All value types (Document, KeywordSet, MatchResult) are immutable once
// created, so independent evaluations can run fully in parallel without
// locking. The embedding model is the only process-wide state and is
// read-only after initialization.
package match
