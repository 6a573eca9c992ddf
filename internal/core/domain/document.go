package domain

import (
	"strings"
	"time"
)

// Label classifies a document as authentic or fabricated.
type Label string

const (
	// LabelReal marks authentic content.
	LabelReal Label = "REAL"

	// LabelFake marks fabricated content.
	LabelFake Label = "FAKE"
)

// ParseLabel normalises a raw label string to a Label.
// Matching is case-insensitive; surrounding whitespace is ignored.
func ParseLabel(raw string) (Label, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(LabelReal):
		return LabelReal, true
	case string(LabelFake):
		return LabelFake, true
	default:
		return "", false
	}
}

// Document is a piece of submitted text. Immutable once created.
type Document struct {
	// Text is the raw text as submitted.
	Text string

	// Label is the known label, empty for unlabelled documents.
	Label Label
}

// NormalizedDocument is the ordered token stream produced by the
// normaliser. It is never mutated after creation. A zero-length token
// sequence is valid (a document may normalise to nothing).
type NormalizedDocument struct {
	// Tokens are lower-cased, stopword-filtered terms in document order.
	Tokens []string
}

// TrainingExample is a validated, labelled document.
// Created on dataset upload or bootstrap load, appended to the corpus,
// never deleted.
type TrainingExample struct {
	// Text is the raw document text.
	Text string

	// Label is REAL or FAKE, always uppercase.
	Label Label

	// AddedAt is when the example entered the corpus.
	AddedAt time.Time
}

// DatasetRow is an unvalidated row as submitted by a user.
// Rows only become TrainingExamples after validation.
type DatasetRow struct {
	// Text is the raw text column.
	Text string

	// Label is the raw label column, not yet normalised.
	Label string
}
