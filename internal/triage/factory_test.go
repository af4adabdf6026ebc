package triage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locali/internal/config"
	"locali/internal/port"
	"locali/internal/triage"
)

// stubClassifier is a minimal ContentClassifier for testing the factory.
type stubClassifier struct {
	model string
}

func (s *stubClassifier) Classify(_ context.Context, _ port.ClassifyInput) (*port.ClassifyOutput, error) {
	return &port.ClassifyOutput{Safe: true, ModelUsed: s.model}, nil
}

func TestFactory_RegisterAndCreate(t *testing.T) {
	triage.RegisterProvider("test-provider", func(cfg *config.TriageConfig) (port.ContentClassifier, error) {
		return &stubClassifier{model: cfg.DefaultModel}, nil
	})

	c, err := triage.NewRemoteClassifier(&config.TriageConfig{
		Provider:     "test-provider",
		APIKey:       "key",
		DefaultModel: "test-model",
	})

	require.NoError(t, err)
	require.NotNil(t, c)
	out, _ := c.Classify(context.Background(), port.ClassifyInput{})
	assert.Equal(t, "test-model", out.ModelUsed)
}

func TestFactory_NoAPIKeyMeansNotConfigured(t *testing.T) {
	c, err := triage.NewRemoteClassifier(&config.TriageConfig{Provider: "nonexistent-provider-xyz", APIKey: "  "})

	assert.NoError(t, err)
	assert.Nil(t, c)
}

func TestFactory_UnknownProvider(t *testing.T) {
	c, err := triage.NewRemoteClassifier(&config.TriageConfig{
		Provider: "nonexistent-provider-xyz",
		APIKey:   "key",
	})

	assert.Nil(t, c)
	assert.ErrorContains(t, err, "unknown triage provider")
}
