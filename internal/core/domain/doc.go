// Package domain defines the core business entities for Veritext.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A piece of submitted text, optionally labelled
//   - TrainingExample: A validated, labelled document in the corpus
//   - Vocabulary: A frozen term-to-index mapping with IDF statistics
//   - FeatureVector: A sparse TF-IDF projection of a document
//   - ModelVersion: An immutable (vocabulary, weights) bundle
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
