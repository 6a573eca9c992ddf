// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate calls to the
// pipeline (normaliser, feature extractor, classifier) and to driven
// ports (stores, external classifiers).
//
// Services are pure Go with no CGO or external dependencies.
package services
