package domain

// Classification is the outcome of classifying a piece of text.
type Classification struct {
	// Label is REAL or FAKE.
	Label Label `json:"label"`

	// Confidence is in [0, 1]. A value of 0.5 means the document sits
	// exactly on the decision boundary.
	Confidence float64 `json:"confidence"`

	// ModelVersion is the id of the model version that produced this
	// classification.
	ModelVersion string `json:"model_version"`
}

// ImageClassification is the outcome reported by the external image
// authenticity classifier. Veritext consumes this result; it does not
// implement the detector.
type ImageClassification struct {
	// Label is REAL or FAKE.
	Label Label `json:"label"`

	// Confidence is in [0, 1].
	Confidence float64 `json:"confidence"`
}
