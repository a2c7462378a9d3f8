package vision

import (
	"context"
	"fmt"

	"github.com/kaiwastudio/kaiwa/pkg/studioapi"
)

// StudioAnalyzer delegates analysis to the Studio backend, which holds
// the provider credentials server-side.
type StudioAnalyzer struct {
	client *studioapi.Client
}

// NewStudioAnalyzer creates an analyzer backed by the Studio backend.
func NewStudioAnalyzer(client *studioapi.Client) *StudioAnalyzer {
	return &StudioAnalyzer{client: client}
}

// AnalyzeImage implements Analyzer.
func (a *StudioAnalyzer) AnalyzeImage(ctx context.Context, image []byte, prompt string) (string, error) {
	analysis, err := a.client.Vision.Analyze(ctx, image, prompt)
	if err != nil {
		return "", fmt.Errorf("vision: studio analyze: %w", err)
	}
	return analysis.Description, nil
}
