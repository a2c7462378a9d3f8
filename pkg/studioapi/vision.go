package studioapi

import (
	"context"
	"encoding/base64"
	"net/http"
)

// VisionService provides image analysis operations.
type VisionService struct {
	http *httpClient
}

type imageAnalysisRequest struct {
	ImageBase64 string `json:"image_base64"`
	Prompt      string `json:"prompt,omitzero"`
}

// Analyze describes an image. prompt may be empty for the backend's
// default question.
func (s *VisionService) Analyze(ctx context.Context, image []byte, prompt string) (*ImageAnalysis, error) {
	body := imageAnalysisRequest{
		ImageBase64: base64.StdEncoding.EncodeToString(image),
		Prompt:      prompt,
	}
	var result ImageAnalysis
	if err := s.http.request(ctx, http.MethodPost, "/api/vision/analyze", nil, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Capture submits a camera capture for analysis. This is the endpoint
// behind the spoken capture command.
func (s *VisionService) Capture(ctx context.Context, image []byte, prompt string) (*CaptureResult, error) {
	body := imageAnalysisRequest{
		ImageBase64: base64.StdEncoding.EncodeToString(image),
		Prompt:      prompt,
	}
	var result CaptureResult
	if err := s.http.request(ctx, http.MethodPost, "/api/vision/capture", nil, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
