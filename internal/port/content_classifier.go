package port

import "context"

// ClassifyInput carries the listing content sent to a remote classifier.
type ClassifyInput struct {
	Name        string
	Description string
	Category    string
}

// ClassifyOutput is the structured verdict returned by a remote classifier.
type ClassifyOutput struct {
	Safe      bool
	Reason    string
	ModelUsed string
}

// ContentClassifier abstracts LLM-based content moderation.
type ContentClassifier interface {
	Classify(ctx context.Context, input ClassifyInput) (*ClassifyOutput, error)
}
